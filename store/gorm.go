package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelpms/constants"
	"hotelpms/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// GormStore cài đặt Store trên Postgres
type GormStore struct {
	db         *gorm.DB
	maxRetries int
	inTx       bool
}

func NewGormStore(db *gorm.DB, maxRetries int) *GormStore {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &GormStore{db: db, maxRetries: maxRetries}
}

// AutoMigrate tạo/cập nhật bảng cho toàn bộ model
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.PricingOffer{},
		&models.ServicePackage{},
		&models.Guest{},
		&models.GuestDetail{},
		&models.Reservation{},
		&models.Folio{},
		&models.FolioCharge{},
		&models.Invoice{},
		&models.Payment{},
		&models.BookingLog{},
	)
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}

	var err error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&GormStore{db: tx, maxRetries: s.maxRetries, inTx: true})
		})
		if err == nil || !isRetryable(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
		}
	}
	return errors.Join(ErrSerialization, err)
}

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.Detail)
		case pgSerializationFailure, pgDeadlockDetected:
			return fmt.Errorf("%w: %s", ErrSerialization, pgErr.Message)
		}
	}
	return err
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrSerialization) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}
	return false
}

// Room types

func (s *GormStore) CreateRoomType(ctx context.Context, rt *models.RoomType) error {
	return translate(s.conn(ctx).Create(rt).Error)
}

func (s *GormStore) UpdateRoomType(ctx context.Context, rt *models.RoomType) error {
	return translate(s.conn(ctx).Save(rt).Error)
}

func (s *GormStore) GetRoomType(ctx context.Context, id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := s.conn(ctx).First(&rt, id).Error; err != nil {
		return nil, translate(err)
	}
	return &rt, nil
}

func (s *GormStore) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	var types []models.RoomType
	if err := s.conn(ctx).Order("id").Find(&types).Error; err != nil {
		return nil, translate(err)
	}
	return types, nil
}

// Rooms

func (s *GormStore) CreateRoom(ctx context.Context, room *models.Room) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(room).Error)
}

func (s *GormStore) UpdateRoom(ctx context.Context, room *models.Room) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(room).Error)
}

func (s *GormStore) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.conn(ctx).Preload("RoomType").First(&room, id).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (s *GormStore) GetRoomByNumber(ctx context.Context, number string) (*models.Room, error) {
	var room models.Room
	if err := s.conn(ctx).Preload("RoomType").Where("room_number = ?", number).First(&room).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (s *GormStore) GetRoomsByIDs(ctx context.Context, ids []uint) ([]models.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rooms []models.Room
	if err := s.conn(ctx).Preload("RoomType").Where("id IN ?", ids).Order("id").Find(&rooms).Error; err != nil {
		return nil, translate(err)
	}
	return rooms, nil
}

func (s *GormStore) ListRooms(ctx context.Context, filter RoomFilter) ([]models.Room, error) {
	query := s.conn(ctx).Preload("RoomType")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.RoomTypeID != 0 {
		query = query.Where("room_type_id = ?", filter.RoomTypeID)
	}
	if filter.Floor != nil {
		query = query.Where("floor = ?", *filter.Floor)
	}

	var rooms []models.Room
	if err := query.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, translate(err)
	}
	return rooms, nil
}

func (s *GormStore) LockRooms(ctx context.Context, ids []uint) ([]models.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rooms []models.Room
	err := s.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&rooms).Error
	if err != nil {
		return nil, translate(err)
	}

	// Preload không đi cùng FOR UPDATE, nạp RoomType riêng
	typeIDs := make([]uint, 0, len(rooms))
	for _, room := range rooms {
		typeIDs = append(typeIDs, room.RoomTypeID)
	}
	var types []models.RoomType
	if len(typeIDs) > 0 {
		if err := s.conn(ctx).Where("id IN ?", typeIDs).Find(&types).Error; err != nil {
			return nil, translate(err)
		}
	}
	byID := make(map[uint]*models.RoomType, len(types))
	for i := range types {
		byID[types[i].ID] = &types[i]
	}
	for i := range rooms {
		rooms[i].RoomType = byID[rooms[i].RoomTypeID]
	}
	return rooms, nil
}

func (s *GormStore) UpdateRoomStatus(ctx context.Context, ids []uint, status string) error {
	if len(ids) == 0 {
		return nil
	}
	return translate(s.conn(ctx).Model(&models.Room{}).Where("id IN ?", ids).Update("status", status).Error)
}

// Offers & packages

func (s *GormStore) CreateOffer(ctx context.Context, offer *models.PricingOffer) error {
	return translate(s.conn(ctx).Create(offer).Error)
}

func (s *GormStore) GetOffer(ctx context.Context, id uint) (*models.PricingOffer, error) {
	var offer models.PricingOffer
	if err := s.conn(ctx).First(&offer, id).Error; err != nil {
		return nil, translate(err)
	}
	return &offer, nil
}

func (s *GormStore) ListOffers(ctx context.Context) ([]models.PricingOffer, error) {
	var offers []models.PricingOffer
	if err := s.conn(ctx).Order("id").Find(&offers).Error; err != nil {
		return nil, translate(err)
	}
	return offers, nil
}

func (s *GormStore) DeleteOffer(ctx context.Context, id uint) error {
	result := s.conn(ctx).Delete(&models.PricingOffer{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) FindOffersInWindow(ctx context.Context, from, to time.Time) ([]models.PricingOffer, error) {
	var offers []models.PricingOffer
	err := s.conn(ctx).
		Where("valid_from <= ? AND valid_to >= ?", to, from).
		Order("id").
		Find(&offers).Error
	if err != nil {
		return nil, translate(err)
	}
	return offers, nil
}

func (s *GormStore) CreateServicePackage(ctx context.Context, pkg *models.ServicePackage) error {
	return translate(s.conn(ctx).Create(pkg).Error)
}

func (s *GormStore) ListServicePackages(ctx context.Context) ([]models.ServicePackage, error) {
	var pkgs []models.ServicePackage
	if err := s.conn(ctx).Order("id").Find(&pkgs).Error; err != nil {
		return nil, translate(err)
	}
	return pkgs, nil
}

func (s *GormStore) GetServicePackagesByIDs(ctx context.Context, ids []uint) ([]models.ServicePackage, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var pkgs []models.ServicePackage
	if err := s.conn(ctx).Where("id IN ?", ids).Order("id").Find(&pkgs).Error; err != nil {
		return nil, translate(err)
	}
	return pkgs, nil
}

// Guests

// CreateGuest trong transaction dùng savepoint để lỗi trùng khóa không làm hỏng tx,
// cho phép đọc lại khách đã tồn tại
func (s *GormStore) CreateGuest(ctx context.Context, guest *models.Guest) error {
	db := s.conn(ctx)
	if !s.inTx {
		return translate(db.Omit(clause.Associations).Create(guest).Error)
	}

	const sp = "guest_insert"
	if err := db.SavePoint(sp).Error; err != nil {
		return translate(err)
	}
	if err := db.Omit(clause.Associations).Create(guest).Error; err != nil {
		if rbErr := db.RollbackTo(sp).Error; rbErr != nil {
			return errors.Join(translate(err), rbErr)
		}
		return translate(err)
	}
	return nil
}

func (s *GormStore) UpdateGuest(ctx context.Context, guest *models.Guest) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(guest).Error)
}

func (s *GormStore) GetGuest(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.conn(ctx).Preload("Detail").First(&guest, id).Error; err != nil {
		return nil, translate(err)
	}
	return &guest, nil
}

func (s *GormStore) GetGuestsByIDs(ctx context.Context, ids []uint) ([]models.Guest, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var guests []models.Guest
	if err := s.conn(ctx).Where("id IN ?", ids).Order("id").Find(&guests).Error; err != nil {
		return nil, translate(err)
	}
	return guests, nil
}

func (s *GormStore) FindGuestByContact(ctx context.Context, email, phone string) (*models.Guest, error) {
	query := s.conn(ctx).Model(&models.Guest{})
	switch {
	case email != "" && phone != "":
		query = query.Where("email = ? OR phone = ?", email, phone)
	case email != "":
		query = query.Where("email = ?", email)
	case phone != "":
		query = query.Where("phone = ?", phone)
	default:
		return nil, ErrNotFound
	}

	var guest models.Guest
	if err := query.Order("id").First(&guest).Error; err != nil {
		return nil, translate(err)
	}
	return &guest, nil
}

func (s *GormStore) ListGuests(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.conn(ctx).Order("id").Find(&guests).Error; err != nil {
		return nil, translate(err)
	}
	return guests, nil
}

func (s *GormStore) DeleteGuest(ctx context.Context, id uint) error {
	result := s.conn(ctx).Delete(&models.Guest{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) GetGuestDetail(ctx context.Context, guestID uint) (*models.GuestDetail, error) {
	var detail models.GuestDetail
	if err := s.conn(ctx).Where("guest_id = ?", guestID).First(&detail).Error; err != nil {
		return nil, translate(err)
	}
	return &detail, nil
}

func (s *GormStore) SaveGuestDetail(ctx context.Context, detail *models.GuestDetail) error {
	err := s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guest_id"}},
		UpdateAll: true,
	}).Create(detail).Error
	return translate(err)
}

// Reservations

func (s *GormStore) CreateReservation(ctx context.Context, r *models.Reservation) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(r).Error)
}

func (s *GormStore) UpdateReservation(ctx context.Context, r *models.Reservation) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(r).Error)
}

func (s *GormStore) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	var r models.Reservation
	err := s.conn(ctx).
		Preload("Guest").
		Preload("Folios", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Folios.Charges", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&r, id).Error
	if err != nil {
		return nil, translate(err)
	}

	if len(r.AdditionalGuestIDs) > 0 {
		ids := make([]uint, 0, len(r.AdditionalGuestIDs))
		for _, id := range r.AdditionalGuestIDs {
			ids = append(ids, uint(id))
		}
		guests, err := s.GetGuestsByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		r.AdditionalGuests = guests
	}
	return &r, nil
}

func (s *GormStore) ListReservations(ctx context.Context, filter ReservationFilter) ([]models.Reservation, int, error) {
	query := s.conn(ctx).Model(&models.Reservation{})
	if filter.Status != "" {
		query = query.Where("booking_status = ?", filter.Status)
	}
	if filter.CheckInFrom != nil {
		query = query.Where("check_in >= ?", *filter.CheckInFrom)
	}
	if filter.CheckInTo != nil {
		query = query.Where("check_in < ?", *filter.CheckInTo)
	}
	if filter.GuestID != 0 {
		query = query.Where("guest_id = ?", filter.GuestID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	if filter.Limit > 0 {
		query = query.Offset(filter.Page * filter.Limit).Limit(filter.Limit)
	}

	var reservations []models.Reservation
	if err := query.Preload("Guest").Order("check_in DESC, id DESC").Find(&reservations).Error; err != nil {
		return nil, 0, translate(err)
	}
	return reservations, int(total), nil
}

func (s *GormStore) BookingReferenceExists(ctx context.Context, ref string) (bool, error) {
	var count int64
	if err := s.conn(ctx).Model(&models.Reservation{}).Where("booking_reference = ?", ref).Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (s *GormStore) FindOverlappingReservations(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Reservation, error) {
	query := s.conn(ctx).
		Where("booking_status IN ?", constants.ActiveBookingStatuses).
		Where("rooms @> ?", fmt.Sprintf(`[{"room_id":%d}]`, roomID)).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var reservations []models.Reservation
	if err := query.Order("id").Find(&reservations).Error; err != nil {
		return nil, translate(err)
	}
	return reservations, nil
}

func (s *GormStore) FindArrivals(ctx context.Context, from, to time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.conn(ctx).
		Where("booking_status = ?", constants.BookingStatusBooked).
		Where("check_in >= ? AND check_in < ?", from, to).
		Order("id").
		Find(&reservations).Error
	if err != nil {
		return nil, translate(err)
	}
	return reservations, nil
}

// Billing

func (s *GormStore) CreateFolio(ctx context.Context, folio *models.Folio) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(folio).Error)
}

func (s *GormStore) UpdateFolio(ctx context.Context, folio *models.Folio) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(folio).Error)
}

func (s *GormStore) GetOpenFolio(ctx context.Context, reservationID uint) (*models.Folio, error) {
	var folio models.Folio
	err := s.conn(ctx).
		Where("reservation_id = ? AND status = ?", reservationID, constants.FolioStatusActive).
		Order("id DESC").
		First(&folio).Error
	if err != nil {
		return nil, translate(err)
	}
	return &folio, nil
}

func (s *GormStore) AddFolioCharge(ctx context.Context, charge *models.FolioCharge) error {
	return translate(s.conn(ctx).Create(charge).Error)
}

func (s *GormStore) DeleteFolioCharges(ctx context.Context, folioID uint) error {
	return translate(s.conn(ctx).Where("folio_id = ?", folioID).Delete(&models.FolioCharge{}).Error)
}

func (s *GormStore) ListFolioCharges(ctx context.Context, folioID uint) ([]models.FolioCharge, error) {
	var charges []models.FolioCharge
	if err := s.conn(ctx).Where("folio_id = ?", folioID).Order("id").Find(&charges).Error; err != nil {
		return nil, translate(err)
	}
	return charges, nil
}

func (s *GormStore) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	return translate(s.conn(ctx).Create(invoice).Error)
}

func (s *GormStore) UpdateInvoice(ctx context.Context, invoice *models.Invoice) error {
	return translate(s.conn(ctx).Save(invoice).Error)
}

func (s *GormStore) CountInvoices(ctx context.Context, folioID uint) (int, error) {
	var count int64
	if err := s.conn(ctx).Model(&models.Invoice{}).Where("folio_id = ?", folioID).Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return int(count), nil
}

func (s *GormStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return translate(s.conn(ctx).Create(payment).Error)
}

func (s *GormStore) ListPayments(ctx context.Context, folioID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.conn(ctx).Where("folio_id = ?", folioID).Order("id").Find(&payments).Error; err != nil {
		return nil, translate(err)
	}
	return payments, nil
}

func (s *GormStore) CreateBookingLog(ctx context.Context, log *models.BookingLog) error {
	return translate(s.conn(ctx).Create(log).Error)
}

func (s *GormStore) ListBookingLogs(ctx context.Context, reservationID uint) ([]models.BookingLog, error) {
	var logs []models.BookingLog
	if err := s.conn(ctx).Where("reservation_id = ?", reservationID).Order("id").Find(&logs).Error; err != nil {
		return nil, translate(err)
	}
	return logs, nil
}

var _ Store = (*GormStore)(nil)
