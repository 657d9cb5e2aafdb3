package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hotelpms/constants"
	"hotelpms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRoom(t *testing.T, s *MemoryStore, number string) models.Room {
	t.Helper()
	ctx := context.Background()
	types, err := s.ListRoomTypes(ctx)
	require.NoError(t, err)
	var rt models.RoomType
	if len(types) == 0 {
		rt = models.RoomType{Name: "Deluxe", Price: 1000, Capacity: 2}
		require.NoError(t, s.CreateRoomType(ctx, &rt))
	} else {
		rt = types[0]
	}
	room := models.Room{RoomNumber: number, RoomTypeID: rt.ID, Status: constants.RoomStatusAvailable}
	require.NoError(t, s.CreateRoom(ctx, &room))
	return room
}

func stay(d int) (time.Time, time.Time) {
	in := time.Date(2026, 3, d, 14, 0, 0, 0, time.UTC)
	return in, in.Add(46 * time.Hour)
}

func TestMemoryStore_TransactionRollback(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	room := seedRoom(t, s, "101")
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(tx Store) error {
		require.NoError(t, tx.UpdateRoomStatus(ctx, []uint{room.ID}, constants.RoomStatusOccupied))
		guest := &models.Guest{FirstName: "Lan", Email: "lan@example.com"}
		require.NoError(t, tx.CreateGuest(ctx, guest))

		// transaction lồng nhau dùng chung transaction ngoài
		return tx.Transaction(ctx, func(inner Store) error {
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.RoomStatusAvailable, got.Status)
	guests, err := s.ListGuests(ctx)
	require.NoError(t, err)
	assert.Empty(t, guests)
}

func TestMemoryStore_TransactionCommit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	room := seedRoom(t, s, "101")

	require.NoError(t, s.Transaction(ctx, func(tx Store) error {
		return tx.UpdateRoomStatus(ctx, []uint{room.ID}, constants.RoomStatusCleaning)
	}))

	got, err := s.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.RoomStatusCleaning, got.Status)
	require.NotNil(t, got.RoomType)
	assert.Equal(t, 2, got.Capacity())
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewMemoryStore().Transaction(ctx, func(tx Store) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_Uniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seedRoom(t, s, "101")

	dupType := models.RoomType{Name: "Deluxe", Price: 1, Capacity: 1}
	assert.ErrorIs(t, s.CreateRoomType(ctx, &dupType), ErrDuplicate)

	types, err := s.ListRoomTypes(ctx)
	require.NoError(t, err)
	dupRoom := models.Room{RoomNumber: "101", RoomTypeID: types[0].ID}
	assert.ErrorIs(t, s.CreateRoom(ctx, &dupRoom), ErrDuplicate)

	first := &models.Guest{FirstName: "Lan", Email: "lan@example.com", Phone: "0901"}
	require.NoError(t, s.CreateGuest(ctx, first))
	assert.ErrorIs(t, s.CreateGuest(ctx, &models.Guest{FirstName: "X", Phone: "0901"}), ErrDuplicate)

	r := &models.Reservation{BookingReference: "111111", BookingStatus: constants.BookingStatusBooked}
	require.NoError(t, s.CreateReservation(ctx, r))
	assert.ErrorIs(t, s.CreateReservation(ctx, &models.Reservation{BookingReference: "111111"}), ErrDuplicate)

	exists, err := s.BookingReferenceExists(ctx, "111111")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := s.FindGuestByContact(ctx, "", "0901")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
	_, err = s.FindGuestByContact(ctx, "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_RoomTypeNameIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateRoomType(ctx, &models.RoomType{Name: "Deluxe", Price: 1000, Capacity: 2}))

	// unique index trên postgres phân biệt hoa thường
	require.NoError(t, s.CreateRoomType(ctx, &models.RoomType{Name: "deluxe", Price: 900, Capacity: 2}))
	assert.ErrorIs(t, s.CreateRoomType(ctx, &models.RoomType{Name: "Deluxe", Price: 1, Capacity: 1}), ErrDuplicate)

	types, err := s.ListRoomTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 2)
}

func TestMemoryStore_OverlapsAndArrivals(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	room := seedRoom(t, s, "101")

	in, out := stay(11)
	booked := &models.Reservation{
		BookingReference: "AAA111",
		BookingStatus:    constants.BookingStatusBooked,
		CheckIn:          in,
		CheckOut:         out,
		Rooms:            []models.ReservationRoom{{RoomID: room.ID}},
	}
	require.NoError(t, s.CreateReservation(ctx, booked))
	cancelled := &models.Reservation{
		BookingReference: "BBB222",
		BookingStatus:    constants.BookingStatusCancelled,
		CheckIn:          in,
		CheckOut:         out,
		Rooms:            []models.ReservationRoom{{RoomID: room.ID}},
	}
	require.NoError(t, s.CreateReservation(ctx, cancelled))

	got, err := s.FindOverlappingReservations(ctx, room.ID, in.Add(24*time.Hour), out.Add(24*time.Hour), 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, booked.ID, got[0].ID)

	got, err = s.FindOverlappingReservations(ctx, room.ID, out, out.Add(48*time.Hour), 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.FindOverlappingReservations(ctx, room.ID, in, out, booked.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	arrivals, err := s.FindArrivals(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, arrivals, 1)
	assert.Equal(t, "AAA111", arrivals[0].BookingReference)
}

func TestMemoryStore_ListReservationsPagination(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for d := 1; d <= 5; d++ {
		in, out := stay(d)
		require.NoError(t, s.CreateReservation(ctx, &models.Reservation{
			BookingReference: fmt.Sprintf("REF00%d", d),
			BookingStatus:    constants.BookingStatusBooked,
			CheckIn:          in,
			CheckOut:         out,
		}))
	}

	page, total, err := s.ListReservations(ctx, ReservationFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "REF003", page[0].BookingReference)
	assert.Equal(t, "REF002", page[1].BookingReference)

	page, _, err = s.ListReservations(ctx, ReservationFilter{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	room := seedRoom(t, s, "101")
	r := &models.Reservation{
		BookingReference: "COPY01",
		BookingStatus:    constants.BookingStatusBooked,
		Rooms:            []models.ReservationRoom{{RoomID: room.ID}},
	}
	require.NoError(t, s.CreateReservation(ctx, r))

	loaded, err := s.GetReservation(ctx, r.ID)
	require.NoError(t, err)
	loaded.Rooms[0].RoomID = 999

	again, err := s.GetReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, again.Rooms[0].RoomID)
}
