package model

type ProductType string

const (
	ProductInternal ProductType = "INTERNAL" // produced in-house via recipe
	ProductRaw      ProductType = "RAW"      // raw material, consumed when building
	ProductService  ProductType = "SERVICE"  // no stock tracking
)

type Product struct {
	BaseModel
	SKU         string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name        string      `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category    string      `gorm:"type:varchar(100)" json:"category"`
	Unit        string      `gorm:"type:varchar(20)" json:"unit"`
	ProductType ProductType `gorm:"type:varchar(10);not null;default:'INTERNAL'" json:"product_type" validate:"required,oneof=INTERNAL RAW SERVICE"`
	BaseCost    int64       `gorm:"default:0" json:"base_cost" validate:"gte=0"`
	SellPrice   int64       `gorm:"default:0" json:"sell_price" validate:"gte=0"`
	StockQty    int         `gorm:"default:0" json:"stock_qty"`
	MinStock    int         `gorm:"default:0" json:"min_stock" validate:"gte=0"`
	IsActive    bool        `gorm:"default:true" json:"is_active"`
}

// TracksStock reports whether stock quantities are meaningful for this product
func (p *Product) TracksStock() bool {
	return p.ProductType != ProductService
}
