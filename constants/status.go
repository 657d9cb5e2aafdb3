package constants

// Room status
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusBooked      = "booked"
	RoomStatusCleaning    = "cleaning"
	RoomStatusMaintenance = "maintenance"
	RoomStatusOutOfOrder  = "out_of_order"
	RoomStatusBlocked     = "blocked"
)

// Booking status
const (
	BookingStatusBooked    = "booked"
	BookingStatusCheckIn   = "check_in"
	BookingStatusCheckOut  = "check_out"
	BookingStatusCancelled = "cancelled"
)

// Offer kind
const (
	OfferKindSeasonal = "seasonal"
	OfferKindWeekend  = "weekend"
)

// Folio charge kind
const (
	ChargeKindRoom     = "room"
	ChargeKindService  = "service"
	ChargeKindExtraBed = "extra_bed"
)

// Folio status
const (
	FolioStatusActive = "active"
	FolioStatusClosed = "closed"
)

// Invoice status
const (
	InvoiceStatusUnpaid  = "unpaid"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
)

// Payment method
const (
	PaymentMethodCash         = "cash"
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodUPI          = "upi"
	PaymentMethodOther        = "other"
)

// Booking log action
const (
	LogActionCreated   = "created"
	LogActionUpdated   = "updated"
	LogActionReassign  = "room_reassigned"
	LogActionCheckIn   = "checked_in"
	LogActionCheckOut  = "checked_out"
	LogActionCancelled = "cancelled"
	LogActionPayment   = "payment_recorded"
	LogActionArrival   = "arrival_marked"
)

const (
	// StandardTaxRate thuế suất mặc định (%) áp cho tiền phòng và dịch vụ
	StandardTaxRate = 18.0
	// DefaultExtraBedRate giá giường phụ mỗi đêm
	DefaultExtraBedRate = 500.0
	// BookingReferenceLength độ dài mã đặt phòng
	BookingReferenceLength = 6
)

// RoomStatuses tập trạng thái hợp lệ của phòng
var RoomStatuses = []string{
	RoomStatusAvailable,
	RoomStatusOccupied,
	RoomStatusBooked,
	RoomStatusCleaning,
	RoomStatusMaintenance,
	RoomStatusOutOfOrder,
	RoomStatusBlocked,
}

// UnbookableRoomStatuses trạng thái khiến phòng không thể đặt bất kể lịch
var UnbookableRoomStatuses = []string{
	RoomStatusMaintenance,
	RoomStatusOutOfOrder,
	RoomStatusBlocked,
}

// VacantRoomStatuses trạng thái phòng không có khách, được phép chuyển sang booked
var VacantRoomStatuses = []string{
	RoomStatusAvailable,
	RoomStatusCleaning,
}

// ActiveBookingStatuses trạng thái đặt phòng còn chiếm phòng
var ActiveBookingStatuses = []string{
	BookingStatusBooked,
	BookingStatusCheckIn,
}

// PaymentMethods phương thức thanh toán hợp lệ
var PaymentMethods = []string{
	PaymentMethodCash,
	PaymentMethodCard,
	PaymentMethodBankTransfer,
	PaymentMethodUPI,
	PaymentMethodOther,
}
