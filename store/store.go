// Package store là lớp lưu trữ của hệ thống: một interface duy nhất với hai
// cài đặt, Postgres qua gorm và bộ nhớ trong cho test/demo.
package store

import (
	"context"
	"errors"
	"time"

	"hotelpms/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicate     = errors.New("duplicate record")
	ErrSerialization = errors.New("transaction serialization failure")
)

// RoomFilter điều kiện lọc danh sách phòng
type RoomFilter struct {
	Status     string
	RoomTypeID uint
	Floor      *int
}

// ReservationFilter điều kiện lọc danh sách reservation
type ReservationFilter struct {
	Status      string
	CheckInFrom *time.Time
	CheckInTo   *time.Time
	GuestID     uint
	Page        int
	Limit       int
}

// Store interface lưu trữ dùng bởi các service
type Store interface {
	// Transaction chạy fn trong một transaction. Gọi lồng nhau dùng chung transaction ngoài.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	CreateRoomType(ctx context.Context, rt *models.RoomType) error
	UpdateRoomType(ctx context.Context, rt *models.RoomType) error
	GetRoomType(ctx context.Context, id uint) (*models.RoomType, error)
	ListRoomTypes(ctx context.Context) ([]models.RoomType, error)

	CreateRoom(ctx context.Context, room *models.Room) error
	UpdateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	GetRoomByNumber(ctx context.Context, number string) (*models.Room, error)
	GetRoomsByIDs(ctx context.Context, ids []uint) ([]models.Room, error)
	ListRooms(ctx context.Context, filter RoomFilter) ([]models.Room, error)
	// LockRooms khóa hàng (FOR UPDATE) các phòng theo thứ tự id và trả về chúng kèm RoomType
	LockRooms(ctx context.Context, ids []uint) ([]models.Room, error)
	UpdateRoomStatus(ctx context.Context, ids []uint, status string) error

	CreateOffer(ctx context.Context, offer *models.PricingOffer) error
	GetOffer(ctx context.Context, id uint) (*models.PricingOffer, error)
	ListOffers(ctx context.Context) ([]models.PricingOffer, error)
	DeleteOffer(ctx context.Context, id uint) error
	// FindOffersInWindow ưu đãi có khoảng hiệu lực giao với [from, to], theo thứ tự id
	FindOffersInWindow(ctx context.Context, from, to time.Time) ([]models.PricingOffer, error)

	CreateServicePackage(ctx context.Context, pkg *models.ServicePackage) error
	ListServicePackages(ctx context.Context) ([]models.ServicePackage, error)
	GetServicePackagesByIDs(ctx context.Context, ids []uint) ([]models.ServicePackage, error)

	CreateGuest(ctx context.Context, guest *models.Guest) error
	UpdateGuest(ctx context.Context, guest *models.Guest) error
	GetGuest(ctx context.Context, id uint) (*models.Guest, error)
	GetGuestsByIDs(ctx context.Context, ids []uint) ([]models.Guest, error)
	// FindGuestByContact tìm khách theo email HOẶC phone (chỉ dùng trường không rỗng)
	FindGuestByContact(ctx context.Context, email, phone string) (*models.Guest, error)
	ListGuests(ctx context.Context) ([]models.Guest, error)
	DeleteGuest(ctx context.Context, id uint) error
	GetGuestDetail(ctx context.Context, guestID uint) (*models.GuestDetail, error)
	SaveGuestDetail(ctx context.Context, detail *models.GuestDetail) error

	CreateReservation(ctx context.Context, r *models.Reservation) error
	UpdateReservation(ctx context.Context, r *models.Reservation) error
	GetReservation(ctx context.Context, id uint) (*models.Reservation, error)
	ListReservations(ctx context.Context, filter ReservationFilter) ([]models.Reservation, int, error)
	BookingReferenceExists(ctx context.Context, ref string) (bool, error)
	// FindOverlappingReservations reservation đang hoạt động chứa roomID và giao [checkIn, checkOut)
	FindOverlappingReservations(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Reservation, error)
	// FindArrivals reservation trạng thái booked có check-in trong [from, to)
	FindArrivals(ctx context.Context, from, to time.Time) ([]models.Reservation, error)

	CreateFolio(ctx context.Context, folio *models.Folio) error
	UpdateFolio(ctx context.Context, folio *models.Folio) error
	GetOpenFolio(ctx context.Context, reservationID uint) (*models.Folio, error)
	AddFolioCharge(ctx context.Context, charge *models.FolioCharge) error
	DeleteFolioCharges(ctx context.Context, folioID uint) error
	ListFolioCharges(ctx context.Context, folioID uint) ([]models.FolioCharge, error)

	CreateInvoice(ctx context.Context, invoice *models.Invoice) error
	UpdateInvoice(ctx context.Context, invoice *models.Invoice) error
	CountInvoices(ctx context.Context, folioID uint) (int, error)

	CreatePayment(ctx context.Context, payment *models.Payment) error
	ListPayments(ctx context.Context, folioID uint) ([]models.Payment, error)

	CreateBookingLog(ctx context.Context, log *models.BookingLog) error
	ListBookingLogs(ctx context.Context, reservationID uint) ([]models.BookingLog, error)
}
