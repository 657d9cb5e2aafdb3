package models

import (
	"fmt"
	"slices"
	"time"

	"hotelpms/constants"
)

// Room một phòng vật lý (số phòng) thuộc một RoomType
type Room struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	RoomNumber string    `json:"room_number" gorm:"uniqueIndex;size:20;not null"`
	RoomTypeID uint      `json:"room_type_id" gorm:"index;not null"`
	RoomType   *RoomType `json:"room_type,omitempty" gorm:"foreignKey:RoomTypeID"`
	Status     string    `json:"status" gorm:"size:20;not null;default:'available'"`
	Floor      int       `json:"floor"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Room) ValidateStatus() error {
	if !slices.Contains(constants.RoomStatuses, r.Status) {
		return fmt.Errorf("invalid status: %s", r.Status)
	}
	return nil
}

// Bookable false khi phòng đang bảo trì, hỏng hoặc bị khóa
func (r *Room) Bookable() bool {
	return !slices.Contains(constants.UnbookableRoomStatuses, r.Status)
}

// Capacity sức chứa theo loại phòng, 0 nếu chưa nạp RoomType
func (r *Room) Capacity() int {
	if r.RoomType == nil {
		return 0
	}
	return r.RoomType.Capacity
}
