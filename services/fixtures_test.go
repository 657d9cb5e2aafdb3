package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"hotelpms/constants"
	"hotelpms/dto"
	apperrors "hotelpms/errors"
	"hotelpms/models"
	"hotelpms/services/logger"
	"hotelpms/services/notification"
	"hotelpms/store"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// 2026-03-10 là thứ Ba
var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func day(d, hour int) time.Time {
	return time.Date(2026, 3, d, hour, 0, 0, 0, time.UTC)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (n *recordingNotifier) Send(ctx context.Context, event notification.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}

type hotelFixture struct {
	ctx      context.Context
	store    *store.MemoryStore
	clock    FixedClock
	notifier *recordingNotifier
	facade   *BookingFacade
	pricing  *PricingEngine
	billing  *BillingService
	deluxe   models.RoomType
	suite    models.RoomType
	rooms    map[string]models.Room
}

func newHotelFixture(t *testing.T) *hotelFixture {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()

	f := &hotelFixture{
		ctx:      ctx,
		store:    st,
		clock:    FixedClock{Time: testNow},
		notifier: &recordingNotifier{},
		rooms:    map[string]models.Room{},
	}

	f.deluxe = models.RoomType{Name: "Deluxe", Price: 1000, Capacity: 2}
	require.NoError(t, st.CreateRoomType(ctx, &f.deluxe))
	f.suite = models.RoomType{Name: "Suite", Price: 2500, Capacity: 4}
	require.NoError(t, st.CreateRoomType(ctx, &f.suite))

	for _, spec := range []struct {
		number string
		rtID   uint
	}{
		{"101", f.deluxe.ID},
		{"102", f.deluxe.ID},
		{"103", f.deluxe.ID},
		{"201", f.suite.ID},
	} {
		room := models.Room{RoomNumber: spec.number, RoomTypeID: spec.rtID, Status: constants.RoomStatusAvailable}
		require.NoError(t, st.CreateRoom(ctx, &room))
		f.rooms[spec.number] = room
	}

	log := logger.NewNopLogger()
	f.pricing = NewPricingEngine(st, PricingOptions{})
	f.billing = NewBillingService(st, f.pricing, f.clock, log)

	facade, err := NewBookingFacade(BookingFacadeOptions{
		Store:    st,
		Logger:   log,
		Clock:    f.clock,
		Pricing:  f.pricing,
		Billing:  f.billing,
		Notifier: f.notifier,
	})
	require.NoError(t, err)
	f.facade = facade
	return f
}

func (f *hotelFixture) roomID(number string) uint {
	return f.rooms[number].ID
}

func (f *hotelFixture) roomStatus(t *testing.T, number string) string {
	t.Helper()
	room, err := f.store.GetRoom(f.ctx, f.roomID(number))
	require.NoError(t, err)
	return room.Status
}

func (f *hotelFixture) bookingRequest(checkIn, checkOut time.Time, numbers ...string) *dto.CreateReservationRequest {
	req := &dto.CreateReservationRequest{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests: []dto.GuestPayload{
			{FirstName: "Lan", LastName: "Nguyen", Email: "lan@example.com", Phone: "0901000001"},
		},
	}
	for _, n := range numbers {
		req.Rooms = append(req.Rooms, dto.RoomRef{RoomID: f.roomID(n)})
	}
	return req
}

// book đặt phòng 2 đêm 11/03 -> 13/03
func (f *hotelFixture) book(t *testing.T, numbers ...string) *models.Reservation {
	t.Helper()
	r, err := f.facade.CreateBooking(f.ctx, f.bookingRequest(day(11, 14), day(13, 12), numbers...), nil, "clerk-1")
	require.NoError(t, err)
	return r
}

// seedReservation ghi thẳng vào store, bỏ qua facade
func (f *hotelFixture) seedReservation(t *testing.T, ref, status string, checkIn, checkOut time.Time, numbers ...string) *models.Reservation {
	t.Helper()
	r := &models.Reservation{
		BookingReference: ref,
		BookingStatus:    status,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
	}
	rooms := datatypes.JSONSlice[models.ReservationRoom]{}
	for _, n := range numbers {
		rooms = append(rooms, models.ReservationRoom{RoomID: f.roomID(n), RoomType: f.rooms[n].RoomTypeID})
	}
	r.Rooms = rooms
	require.NoError(t, f.store.CreateReservation(f.ctx, r))
	return r
}

func requireCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperrors.HasCode(err, code), "expected %s, got %v", code, err)
}
