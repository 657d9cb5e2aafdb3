package dto

// RoomTypeRequest là DTO tạo/cập nhật loại phòng
type RoomTypeRequest struct {
	Name       string  `json:"name" validate:"required,max=100"`
	Price      float64 `json:"price" validate:"gte=0"`
	Capacity   int     `json:"capacity" validate:"gte=1"`
	BedCount   int     `json:"bed_count" validate:"gte=0"`
	BedType    string  `json:"bed_type"`
	AmenityIDs []int64 `json:"amenity_ids"`
	Size       float64 `json:"size" validate:"gte=0"`
}

// RoomRequest là DTO tạo/cập nhật phòng
type RoomRequest struct {
	RoomNumber string `json:"room_number" validate:"required,max=20"`
	RoomTypeID uint   `json:"room_type_id" validate:"required"`
	Status     string `json:"status"`
	Floor      int    `json:"floor"`
}

// RoomStatusRequest đổi trạng thái phòng (housekeeping)
type RoomStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RoomQuery lọc danh sách phòng
type RoomQuery struct {
	Status     string `form:"status"`
	RoomTypeID uint   `form:"room_type_id"`
	Floor      *int   `form:"floor"`
}

// AvailabilityQuery tham số kiểm tra phòng trống
type AvailabilityQuery struct {
	CheckIn   string `form:"check_in" binding:"required"`
	CheckOut  string `form:"check_out" binding:"required"`
	ExcludeID uint   `form:"exclude_reservation_id"`
}

// OfferRequest là DTO tạo ưu đãi, ngày dạng yyyy-mm-dd
type OfferRequest struct {
	RoomTypeID    uint    `json:"room_type_id" validate:"required"`
	Kind          string  `json:"kind" validate:"required,oneof=seasonal weekend"`
	ValidFrom     string  `json:"valid_from" validate:"required"`
	ValidTo       string  `json:"valid_to" validate:"required"`
	DiscountValue float64 `json:"discount_value" validate:"gte=0,lte=100"`
}

// PackageRequest là DTO tạo gói dịch vụ
type PackageRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}
