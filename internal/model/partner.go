package model

// Customer channels, used by the customers-by-channel report
const (
	ChannelWalkIn   = "WALK_IN"
	ChannelOnline   = "ONLINE"
	ChannelReseller = "RESELLER"
)

type Customer struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone    string `gorm:"type:varchar(30)" json:"phone"`
	Address  string `gorm:"type:text" json:"address"`
	Channel  string `gorm:"type:varchar(20);default:'WALK_IN'" json:"channel" validate:"omitempty,oneof=WALK_IN ONLINE RESELLER"`
	Notes    string `gorm:"type:text" json:"notes"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

type Supplier struct {
	BaseModel
	Name          string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactPerson string `gorm:"type:varchar(255)" json:"contact_person"`
	Phone         string `gorm:"type:varchar(30)" json:"phone"`
	Address       string `gorm:"type:text" json:"address"`
	Notes         string `gorm:"type:text" json:"notes"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
}
