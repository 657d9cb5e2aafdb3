package builders

import (
	"time"

	"hotelpms/constants"
	"hotelpms/models"

	"github.com/lib/pq"
)

// ReservationBuilder giúp tạo reservation theo từng bước
type ReservationBuilder struct {
	reservation *models.Reservation
}

// NewReservationBuilder tạo instance mới, trạng thái mặc định là booked
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		reservation: &models.Reservation{
			BookingStatus: constants.BookingStatusBooked,
		},
	}
}

// WithReference mã đặt phòng
func (b *ReservationBuilder) WithReference(ref string) *ReservationBuilder {
	b.reservation.BookingReference = ref
	return b
}

// WithGuests khách đầu tiên là khách chính, còn lại là khách đi kèm.
// Một khách xuất hiện nhiều lần (trùng email/phone) chỉ được ghi một lần.
func (b *ReservationBuilder) WithGuests(guests []models.Guest) *ReservationBuilder {
	if len(guests) == 0 {
		return b
	}
	b.reservation.GuestID = guests[0].ID
	primary := guests[0]
	b.reservation.Guest = &primary

	seen := map[uint]bool{primary.ID: true}
	additional := make(pq.Int64Array, 0, len(guests)-1)
	var others []models.Guest
	for _, g := range guests[1:] {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		additional = append(additional, int64(g.ID))
		others = append(others, g)
	}
	b.reservation.AdditionalGuestIDs = additional
	b.reservation.AdditionalGuests = others
	return b
}

// WithRooms gán phòng, lưu kèm loại phòng
func (b *ReservationBuilder) WithRooms(rooms []models.Room, totalRooms int) *ReservationBuilder {
	assigned := make([]models.ReservationRoom, 0, len(rooms))
	for _, r := range rooms {
		assigned = append(assigned, models.ReservationRoom{RoomID: r.ID, RoomType: r.RoomTypeID})
	}
	b.reservation.Rooms = assigned
	if totalRooms <= 0 {
		totalRooms = len(rooms)
	}
	b.reservation.TotalRooms = totalRooms
	return b
}

// WithStay thời gian lưu trú
func (b *ReservationBuilder) WithStay(checkIn, checkOut time.Time) *ReservationBuilder {
	b.reservation.CheckIn = checkIn
	b.reservation.CheckOut = checkOut
	return b
}

// WithPackages gói dịch vụ đã chọn
func (b *ReservationBuilder) WithPackages(ids []uint) *ReservationBuilder {
	arr := make(pq.Int64Array, 0, len(ids))
	for _, id := range ids {
		arr = append(arr, int64(id))
	}
	b.reservation.ServiceIDs = arr
	return b
}

func (b *ReservationBuilder) WithExtraBed(count int) *ReservationBuilder {
	b.reservation.ExtraBed = count
	return b
}

// WithBookingInfo loại đặt phòng, trạng thái thanh toán, ghi chú
func (b *ReservationBuilder) WithBookingInfo(bookingType, paymentStatus, remarks string) *ReservationBuilder {
	b.reservation.BookingType = bookingType
	b.reservation.PaymentStatus = paymentStatus
	b.reservation.Remarks = remarks
	return b
}

// WithTotalAmount thêm tổng giá
func (b *ReservationBuilder) WithTotalAmount(total float64) *ReservationBuilder {
	b.reservation.TotalAmount = total
	return b
}

func (b *ReservationBuilder) CreatedBy(actor string) *ReservationBuilder {
	b.reservation.CreatedBy = actor
	return b
}

// Build tạo reservation hoàn chỉnh
func (b *ReservationBuilder) Build() *models.Reservation {
	return b.reservation
}
