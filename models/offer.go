package models

import (
	"time"
)

// PricingOffer ưu đãi giảm giá theo phần trăm cho một loại phòng trong khoảng ngày
type PricingOffer struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	RoomTypeID    uint      `json:"room_type_id" gorm:"index;not null"`
	Kind          string    `json:"kind" gorm:"size:20;not null"` // seasonal | weekend
	ValidFrom     time.Time `json:"valid_from" gorm:"index;not null"`
	ValidTo       time.Time `json:"valid_to" gorm:"index;not null"`
	DiscountValue float64   `json:"discount_value" gorm:"not null"` // %
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ServicePackage gói dịch vụ tính theo giá niêm yết
type ServicePackage struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
