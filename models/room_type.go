package models

import (
	"time"

	"github.com/lib/pq"
)

// RoomType loại phòng: giá theo đêm, sức chứa, tiện ích
type RoomType struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	Name       string        `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Price      float64       `json:"price" gorm:"not null"` // Giá mỗi đêm
	Capacity   int           `json:"capacity" gorm:"not null;default:1"`
	BedCount   int           `json:"bed_count"`
	BedType    string        `json:"bed_type"`
	AmenityIDs pq.Int64Array `json:"amenity_ids" gorm:"type:integer[]"`
	Size       float64       `json:"size"` // m2
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}
