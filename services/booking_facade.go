package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"hotelpms/builders"
	"hotelpms/commands"
	"hotelpms/constants"
	"hotelpms/dto"
	apperrors "hotelpms/errors"
	"hotelpms/models"
	"hotelpms/services/logger"
	"hotelpms/services/notification"
	"hotelpms/store"
	"hotelpms/validator"
)

// BookingFacadeOptions phụ thuộc của BookingFacade; trường nil dùng mặc định
type BookingFacadeOptions struct {
	Store        store.Store
	Logger       logger.Logger
	Clock        Clock
	Availability *AvailabilityChecker
	Pricing      *PricingEngine
	Guests       *GuestResolver
	Billing      *BillingService
	References   *ReferenceGenerator
	Notifier     notification.Service
	Cache        Cache
	// SystemActor ghi vào booking log cho thao tác của job nền
	SystemActor  string
}

// BookingFacade điều phối vòng đời reservation: đặt phòng, cập nhật, đổi phòng,
// nhận phòng, hủy, trả phòng và thanh toán
type BookingFacade struct {
	store        store.Store
	logger       logger.Logger
	clock        Clock
	availability *AvailabilityChecker
	pricing      *PricingEngine
	guests       *GuestResolver
	billing      *BillingService
	references   *ReferenceGenerator
	notifier     notification.Service
	cache        Cache
	systemActor  string
}

// NewBookingFacade tạo instance mới của BookingFacade
func NewBookingFacade(opts BookingFacadeOptions) (*BookingFacade, error) {
	if opts.Store == nil {
		return nil, errors.New("booking facade requires a store")
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Availability == nil {
		opts.Availability = NewAvailabilityChecker(opts.Store)
	}
	if opts.Pricing == nil {
		opts.Pricing = NewPricingEngine(opts.Store, PricingOptions{})
	}
	if opts.Guests == nil {
		opts.Guests = NewGuestResolver(opts.Logger)
	}
	if opts.Billing == nil {
		opts.Billing = NewBillingService(opts.Store, opts.Pricing, opts.Clock, opts.Logger)
	}
	if opts.References == nil {
		refs, err := NewReferenceGenerator(0, 1)
		if err != nil {
			return nil, err
		}
		opts.References = refs
	}
	if opts.Notifier == nil {
		opts.Notifier = notification.NopService{}
	}
	if opts.Cache == nil {
		opts.Cache = NopCache{}
	}
	if opts.SystemActor == "" {
		opts.SystemActor = "system"
	}

	return &BookingFacade{
		store:        opts.Store,
		logger:       opts.Logger,
		clock:        opts.Clock,
		availability: opts.Availability,
		pricing:      opts.Pricing,
		guests:       opts.Guests,
		billing:      opts.Billing,
		references:   opts.References,
		notifier:     opts.Notifier,
		cache:        opts.Cache,
		systemActor:  opts.SystemActor,
	}, nil
}

// transaction chạy fn trong transaction; xung đột ghi đồng thời sau khi hết lượt thử trả Conflict
func (f *BookingFacade) transaction(ctx context.Context, fn func(tx store.Store) error) error {
	err := f.store.Transaction(ctx, fn)
	if errors.Is(err, store.ErrSerialization) {
		if appErr := apperrors.GetAppError(err); appErr == nil || appErr.HTTPStatus() >= 500 {
			return apperrors.NewAppError(apperrors.ErrCodeConflict, "reservation data changed concurrently, please retry", err)
		}
	}
	return err
}

func requireActor(actor string) error {
	if strings.TrimSpace(actor) == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "actor id is required", apperrors.ErrMissingActor)
	}
	return nil
}

func stateError(err error) error {
	return apperrors.NewAppError(apperrors.ErrCodeInvalidState, err.Error(), err)
}

// loadReservation đọc reservation trong tx, NotFound nếu không có
func loadReservation(ctx context.Context, tx store.Store, id uint) (*models.Reservation, error) {
	r, err := tx.GetReservation(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound,
				fmt.Sprintf("reservation %d not found", id), apperrors.ErrReservationNotFound)
		}
		return nil, apperrors.NewInternalError("failed to load reservation", err)
	}
	return r, nil
}

// lockRooms khóa các phòng; thiếu phòng nào thì trả NotFound
func lockRooms(ctx context.Context, tx store.Store, ids []uint) ([]models.Room, error) {
	rooms, err := tx.LockRooms(ctx, ids)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to lock rooms", err)
	}
	if len(rooms) == len(ids) {
		return rooms, nil
	}

	found := make(map[uint]bool, len(rooms))
	for _, r := range rooms {
		found[r.ID] = true
	}
	var missing []uint
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound,
		fmt.Sprintf("rooms %v not found", missing), apperrors.ErrRoomNotFound)
}

// bookedRoomStatus phòng của reservation nhận phòng hôm nay thì occupied, còn lại booked
func (f *BookingFacade) bookedRoomStatus(r *models.Reservation) string {
	if r.BookingStatus == constants.BookingStatusCheckIn || sameDay(f.clock.Now(), r.CheckIn) {
		return constants.RoomStatusOccupied
	}
	return constants.RoomStatusBooked
}

// claimRooms đổi trạng thái phòng cho reservation. Khách đến hôm nay thì occupied; đặt trước
// chỉ đánh dấu booked trên phòng đang trống, phòng có khách ở giữ nguyên.
func (f *BookingFacade) claimRooms(tx store.Store, rooms []models.Room, r *models.Reservation) commands.Command {
	status := f.bookedRoomStatus(r)
	ids := make([]uint, 0, len(rooms))
	for _, room := range rooms {
		if status == constants.RoomStatusOccupied || slices.Contains(constants.VacantRoomStatuses, room.Status) {
			ids = append(ids, room.ID)
		}
	}
	return commands.NewSetRoomStatusCommand(tx, ids, status)
}

// farFuture cận trên khi tìm mọi reservation của một phòng
var farFuture = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// releaseRooms trả phòng về available, bỏ qua phòng còn reservation khác đang check_in.
// Khách nhận phòng sớm hoặc ở quá ngày trả vẫn tính là đang ở.
func (f *BookingFacade) releaseRooms(ctx context.Context, tx store.Store, roomIDs []uint, excludeID uint) (commands.Command, error) {
	free := make([]uint, 0, len(roomIDs))
	for _, id := range roomIDs {
		others, err := tx.FindOverlappingReservations(ctx, id, time.Time{}, farFuture, excludeID)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to check room occupancy", err)
		}
		inHouse := slices.ContainsFunc(others, func(o models.Reservation) bool {
			return o.BookingStatus == constants.BookingStatusCheckIn
		})
		if !inHouse {
			free = append(free, id)
		}
	}
	return commands.NewSetRoomStatusCommand(tx, free, constants.RoomStatusAvailable), nil
}

// CreateBooking tạo reservation mới. Kiểm tra phòng, khách, giá, mã đặt phòng và trạng thái
// phòng nằm trong một transaction; ghi folio và gửi thông báo chạy sau commit, lỗi chỉ được ghi log.
func (f *BookingFacade) CreateBooking(ctx context.Context, req *dto.CreateReservationRequest, attachments []string, actor string) (*models.Reservation, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := validator.ValidateStayDates(req.CheckIn, req.CheckOut, f.clock.Now(), true); err != nil {
		return nil, err
	}

	roomIDs := req.RoomIDs()
	var (
		reservation *models.Reservation
		price       *PriceBreakdown
	)

	err := f.transaction(ctx, func(tx store.Store) error {
		rooms, err := lockRooms(ctx, tx, roomIDs)
		if err != nil {
			return err
		}
		if err := f.availability.checkAll(ctx, tx, rooms, req.CheckIn, req.CheckOut, 0); err != nil {
			return err
		}

		guests, err := f.guests.ResolveGuests(ctx, tx, rooms, req.Guests, req.ExtraBed, attachments)
		if err != nil {
			return err
		}

		price, err = f.pricing.calculate(ctx, tx, PriceInput{
			RoomIDs:    roomIDs,
			CheckIn:    req.CheckIn,
			CheckOut:   req.CheckOut,
			PackageIDs: req.PackageIDs,
			ExtraBed:   req.ExtraBed,
		})
		if err != nil {
			return err
		}

		ref, err := f.references.Next(ctx, tx)
		if err != nil {
			return err
		}

		reservation = builders.NewReservationBuilder().
			WithReference(ref).
			WithGuests(guests).
			WithRooms(rooms, req.TotalRooms).
			WithStay(req.CheckIn, req.CheckOut).
			WithPackages(req.PackageIDs).
			WithExtraBed(req.ExtraBed).
			WithBookingInfo(req.BookingType, req.PaymentStatus, req.Remarks).
			WithTotalAmount(price.GrandTotal).
			CreatedBy(actor).
			Build()

		if err := tx.CreateReservation(ctx, reservation); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return apperrors.NewConflictError("booking reference already in use, please retry")
			}
			return apperrors.NewInternalError("failed to create reservation", err)
		}

		return commands.Run(ctx,
			f.claimRooms(tx, rooms, reservation),
			commands.NewBookingLogCommand(tx, reservation.ID, constants.LogActionCreated, actor, map[string]interface{}{
				"booking_reference": reservation.BookingReference,
				"room_ids":          roomIDs,
				"total_amount":      reservation.TotalAmount,
			}),
		)
	})
	if err != nil {
		return nil, err
	}

	f.logger.Info("reservation %d created with reference %s", reservation.ID, reservation.BookingReference)

	if _, err := f.billing.PostBookingCharges(ctx, reservation.ID, price); err != nil {
		f.logger.Error("failed to post folio charges for reservation %d: %v", reservation.ID, err)
	}

	f.notify(ctx, notification.NewMessageBuilder(notification.EventReservationCreated, f.clock.Now()).
		Reservation(reservation.ID, reservation.BookingReference).
		Rooms(roomIDs).
		Data(price).
		Build())

	if full, err := f.store.GetReservation(ctx, reservation.ID); err == nil {
		return full, nil
	}
	return reservation, nil
}

// CalculatePrices báo giá, không ghi dữ liệu
func (f *BookingFacade) CalculatePrices(ctx context.Context, req *dto.PriceRequest) (*PriceBreakdown, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := validator.ValidateStayDates(req.CheckIn, req.CheckOut, f.clock.Now(), false); err != nil {
		return nil, err
	}
	return f.pricing.CalculatePrices(ctx, PriceInput{
		RoomIDs:    req.RoomIDs(),
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		PackageIDs: req.PackageIDs,
		ExtraBed:   req.ExtraBed,
	})
}

// GetReservation đọc reservation kèm khách và folio, có cache
func (f *BookingFacade) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	key := reservationCacheKey(id)
	var cached models.Reservation
	if err := f.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		f.logger.Warn("reservation cache read failed for %d: %v", id, err)
	}

	r, err := loadReservation(ctx, f.store, id)
	if err != nil {
		return nil, err
	}
	if err := f.cache.Set(ctx, key, r, reservationCacheTTL); err != nil {
		f.logger.Warn("reservation cache write failed for %d: %v", id, err)
	}
	return r, nil
}

// ListReservations lọc theo trạng thái và khoảng ngày check-in (yyyy-mm-dd, bao gồm cả ngày to)
func (f *BookingFacade) ListReservations(ctx context.Context, q dto.ReservationQuery) ([]models.Reservation, int, error) {
	filter := store.ReservationFilter{Status: q.Status, Page: q.Page, Limit: q.Limit}
	if q.Page < 0 {
		filter.Page = 0
	}
	if q.From != "" {
		from, err := validator.ParseDate("from", q.From)
		if err != nil {
			return nil, 0, err
		}
		filter.CheckInFrom = &from
	}
	if q.To != "" {
		to, err := validator.ParseDate("to", q.To)
		if err != nil {
			return nil, 0, err
		}
		to = to.AddDate(0, 0, 1)
		filter.CheckInTo = &to
	}

	list, total, err := f.store.ListReservations(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to list reservations", err)
	}
	return list, total, nil
}

// ListLogs nhật ký thao tác của reservation
func (f *BookingFacade) ListLogs(ctx context.Context, id uint) ([]models.BookingLog, error) {
	if _, err := loadReservation(ctx, f.store, id); err != nil {
		return nil, err
	}
	logs, err := f.store.ListBookingLogs(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list booking logs", err)
	}
	return logs, nil
}

func (f *BookingFacade) notify(ctx context.Context, event notification.Event) {
	if err := f.notifier.Send(ctx, event); err != nil {
		f.logger.Error("failed to send %s notification for reservation %d: %v", event.Type, event.ReservationID, err)
	}
}

func (f *BookingFacade) invalidate(ctx context.Context, id uint) {
	if err := f.cache.Delete(ctx, reservationCacheKey(id)); err != nil {
		f.logger.Warn("failed to invalidate reservation cache for %d: %v", id, err)
	}
}
