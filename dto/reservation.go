package dto

import "time"

// RoomRef phòng được yêu cầu trong payload đặt phòng
type RoomRef struct {
	RoomID uint `json:"room_id" schema:"room_id" validate:"required"`
}

// GuestPayload thông tin một khách trong payload
type GuestPayload struct {
	ID             uint   `json:"id,omitempty" schema:"id"`
	FirstName      string `json:"first_name" schema:"first_name"`
	LastName       string `json:"last_name" schema:"last_name"`
	Email          string `json:"email" schema:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" schema:"phone"`
	Gender         string `json:"gender" schema:"gender"`
	DateOfBirth    string `json:"date_of_birth" schema:"date_of_birth"` // yyyy-mm-dd
	Nationality    string `json:"nationality" schema:"nationality"`
	Address        string `json:"address" schema:"address"`
	City           string `json:"city" schema:"city"`
	State          string `json:"state" schema:"state"`
	Country        string `json:"country" schema:"country"`
	ZipCode        string `json:"zip_code" schema:"zip_code"`
	DocumentType   string `json:"document_type" schema:"document_type"`
	DocumentNumber string `json:"document_number" schema:"document_number"`
}

// CreateReservationRequest là DTO cho request tạo reservation
type CreateReservationRequest struct {
	Rooms         []RoomRef      `json:"rooms" schema:"rooms" validate:"required,min=1,dive"`
	TotalRooms    int            `json:"total_rooms" schema:"total_rooms" validate:"gte=0"`
	CheckIn       time.Time      `json:"check_in_date_time" schema:"check_in_date_time" validate:"required"`
	CheckOut      time.Time      `json:"check_out_date_time" schema:"check_out_date_time" validate:"required"`
	BookingType   string         `json:"booking_type" schema:"booking_type"`
	Guests        []GuestPayload `json:"guests" schema:"guests" validate:"required,min=1,dive"`
	PackageIDs    []uint         `json:"package_ids" schema:"package_ids"`
	ExtraBed      int            `json:"extra_bed" schema:"extra_bed" validate:"gte=0"`
	PaymentStatus string         `json:"payment_status" schema:"payment_status"`
	Remarks       string         `json:"remarks" schema:"remarks"`
}

// RoomIDs danh sách id phòng theo thứ tự, bỏ trùng lặp
func (r *CreateReservationRequest) RoomIDs() []uint {
	return uniqueRoomIDs(r.Rooms)
}

// PriceRequest là DTO cho request tính giá, cùng cấu trúc nhưng không có khách
type PriceRequest struct {
	Rooms      []RoomRef `json:"rooms" validate:"required,min=1,dive"`
	CheckIn    time.Time `json:"check_in_date_time" validate:"required"`
	CheckOut   time.Time `json:"check_out_date_time" validate:"required"`
	PackageIDs []uint    `json:"package_ids"`
	ExtraBed   int       `json:"extra_bed" validate:"gte=0"`
}

func (r *PriceRequest) RoomIDs() []uint {
	return uniqueRoomIDs(r.Rooms)
}

func uniqueRoomIDs(rooms []RoomRef) []uint {
	seen := make(map[uint]bool, len(rooms))
	ids := make([]uint, 0, len(rooms))
	for _, room := range rooms {
		if seen[room.RoomID] {
			continue
		}
		seen[room.RoomID] = true
		ids = append(ids, room.RoomID)
	}
	return ids
}

// UpdateReservationRequest cập nhật từng phần, trường nil giữ nguyên
type UpdateReservationRequest struct {
	CheckIn       *time.Time     `json:"check_in_date_time"`
	CheckOut      *time.Time     `json:"check_out_date_time"`
	BookingType   *string        `json:"booking_type"`
	PaymentStatus *string        `json:"payment_status"`
	Remarks       *string        `json:"remarks"`
	Guests        []GuestPayload `json:"guests" validate:"dive"`
}

// RoomSwap đổi phòng room_id sang phòng có số new_room_number
type RoomSwap struct {
	RoomID        uint   `json:"room_id" validate:"required"`
	NewRoomNumber string `json:"new_room_number"`
}

// ReassignRoomRequest là DTO cho request đổi phòng
type ReassignRoomRequest struct {
	ChangeReason string     `json:"change_reason" validate:"required"`
	RoomIDs      []RoomSwap `json:"room_ids" validate:"required,min=1,dive"`
}

// CheckoutRequest là DTO cho request trả phòng
type CheckoutRequest struct {
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=cash card bank_transfer upi other"`
	PaymentAmount float64 `json:"payment_amount" validate:"gte=0"`
	Notes         string  `json:"notes"`
}

// PaymentRequest là DTO cho request ghi nhận thanh toán
type PaymentRequest struct {
	ReservationID   uint    `json:"reservation_id" validate:"required"`
	PaymentMethod   string  `json:"payment_method" validate:"required,oneof=cash card bank_transfer upi other"`
	Amount          float64 `json:"amount"`
	TransactionID   string  `json:"transaction_id"`
	ReferenceNumber string  `json:"reference_number"`
	Notes           string  `json:"notes"`
}

// CancelRequest là DTO cho request hủy đặt phòng
type CancelRequest struct {
	Reason string `json:"reason"`
}

// ReservationQuery tham số lọc danh sách reservation
type ReservationQuery struct {
	Status string `form:"status"`
	From   string `form:"from"` // yyyy-mm-dd
	To     string `form:"to"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}
