package model

import "github.com/google/uuid"

// Recipe is one bill-of-materials row: building one unit of ProductID
// consumes QtyPerUnit of ComponentID. The parent must be INTERNAL and
// every component must be RAW.
type Recipe struct {
	BaseModel
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product     *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	ComponentID uuid.UUID `gorm:"type:uuid;not null" json:"component_id" validate:"uuid_required"`
	Component   *Product  `gorm:"foreignKey:ComponentID" json:"component,omitempty" validate:"-"`
	QtyPerUnit  float64   `gorm:"not null" json:"qty_per_unit" validate:"required,gt=0"`
}

// HPP computes the cost of goods per unit over a product's recipe rows:
// sum of qty_per_unit * component base cost. Rows without a preloaded
// component contribute nothing.
func HPP(rows []Recipe) int64 {
	var total float64
	for _, row := range rows {
		if row.Component == nil {
			continue
		}
		total += row.QtyPerUnit * float64(row.Component.BaseCost)
	}
	return int64(total)
}
