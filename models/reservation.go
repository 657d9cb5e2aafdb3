package models

import (
	"slices"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ReservationRoom một phòng được gán cho reservation
type ReservationRoom struct {
	RoomID   uint `json:"room_id"`
	RoomType uint `json:"room_type"`
}

type Reservation struct {
	ID                 uint                                 `json:"id" gorm:"primaryKey"`
	BookingReference   string                               `json:"booking_reference" gorm:"uniqueIndex;size:32;not null"`
	GuestID            uint                                 `json:"guest_id" gorm:"index"`
	Guest              *Guest                               `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	AdditionalGuestIDs pq.Int64Array                        `json:"additional_guest_ids" gorm:"type:integer[]"`
	AdditionalGuests   []Guest                              `json:"additional_guests,omitempty" gorm:"-"`
	Rooms              datatypes.JSONSlice[ReservationRoom] `json:"rooms" gorm:"type:jsonb;not null"`
	TotalRooms         int                                  `json:"total_rooms"`
	CheckIn            time.Time                            `json:"check_in_date_time" gorm:"index;not null"`
	CheckOut           time.Time                            `json:"check_out_date_time" gorm:"index;not null"`
	CheckedInAt        *time.Time                           `json:"checked_in_at,omitempty"`
	CheckedOutAt       *time.Time                           `json:"checked_out_at,omitempty"`
	BookingStatus      string                               `json:"booking_status" gorm:"size:20;index;not null"`
	BookingType        string                               `json:"booking_type"`
	PaymentStatus      string                               `json:"payment_status"`
	ServiceIDs         pq.Int64Array                        `json:"package_ids" gorm:"type:integer[]"`
	ExtraBed           int                                  `json:"extra_bed"`
	TotalAmount        float64                              `json:"total_amount"`
	Reason             string                               `json:"reason"`
	Remarks            string                               `json:"remarks"`
	CreatedBy          string                               `json:"created_by"`
	Folios             []Folio                              `json:"folios,omitempty" gorm:"foreignKey:ReservationID"`
	CreatedAt          time.Time                            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time                            `gorm:"autoUpdateTime" json:"updated_at"`
}

// RoomIDs danh sách id phòng theo thứ tự đã gán
func (r *Reservation) RoomIDs() []uint {
	ids := make([]uint, 0, len(r.Rooms))
	for _, room := range r.Rooms {
		ids = append(ids, room.RoomID)
	}
	return ids
}

// HasRoom kiểm tra phòng có thuộc reservation không
func (r *Reservation) HasRoom(roomID uint) bool {
	return slices.Contains(r.RoomIDs(), roomID)
}

// GuestIDs khách chính đứng đầu, sau đó là khách đi kèm
func (r *Reservation) GuestIDs() []uint {
	ids := []uint{r.GuestID}
	for _, id := range r.AdditionalGuestIDs {
		ids = append(ids, uint(id))
	}
	return ids
}

func (r *Reservation) PackageIDs() []uint {
	ids := make([]uint, 0, len(r.ServiceIDs))
	for _, id := range r.ServiceIDs {
		ids = append(ids, uint(id))
	}
	return ids
}

// BookingLog nhật ký thao tác trên reservation
type BookingLog struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	ReservationID uint           `json:"reservation_id" gorm:"index;not null"`
	Action        string         `json:"action" gorm:"size:40;not null"`
	PerformedBy   string         `json:"performed_by"`
	Details       datatypes.JSON `json:"details" gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
