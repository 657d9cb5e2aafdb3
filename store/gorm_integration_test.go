package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"hotelpms/constants"
	"hotelpms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// HOTELPMS_TEST_DSN trỏ tới một postgres dùng riêng cho test,
// ví dụ host=localhost user=postgres password=postgres dbname=hotelpms_test sslmode=disable
const testDSNEnv = "HOTELPMS_TEST_DSN"

var errRollback = errors.New("rollback test transaction")

func newPostgresStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDSNEnv)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	s := NewGormStore(db, 3)
	require.NoError(t, s.AutoMigrate())
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return s
}

// inRollback chạy fn trong một transaction luôn bị hủy để không để lại dữ liệu
func inRollback(t *testing.T, s *GormStore, fn func(tx Store)) {
	t.Helper()
	err := s.Transaction(context.Background(), func(tx Store) error {
		fn(tx)
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)
}

func TestGormStore_FindOverlappingReservations(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()
	suffix := time.Now().UnixNano() % 1_000_000
	roomID := uint(1_000_000 + suffix)
	otherRoom := roomID + 1

	inRollback(t, s, func(tx Store) {
		guest := &models.Guest{FirstName: "Lan"}
		require.NoError(t, tx.CreateGuest(ctx, guest))

		newReservation := func(ref, status string, rooms ...uint) *models.Reservation {
			r := &models.Reservation{
				BookingReference: fmt.Sprintf("%s-%d", ref, suffix),
				GuestID:          guest.ID,
				CheckIn:          time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC),
				CheckOut:         time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC),
				BookingStatus:    status,
			}
			for _, id := range rooms {
				r.Rooms = append(r.Rooms, models.ReservationRoom{RoomID: id, RoomType: 1})
			}
			require.NoError(t, tx.CreateReservation(ctx, r))
			return r
		}

		multi := newReservation("MULTI", constants.BookingStatusBooked, otherRoom, roomID)
		inHouse := newReservation("INHOUSE", constants.BookingStatusCheckIn, roomID)
		newReservation("CANCEL", constants.BookingStatusCancelled, roomID)
		newReservation("ELSEWHERE", constants.BookingStatusBooked, otherRoom)

		found, err := tx.FindOverlappingReservations(ctx, roomID,
			time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC), time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), 0)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, multi.ID, found[0].ID)
		assert.Equal(t, inHouse.ID, found[1].ID)

		found, err = tx.FindOverlappingReservations(ctx, roomID,
			time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC), time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), multi.ID)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, inHouse.ID, found[0].ID)

		// trả phòng 12:00 và nhận phòng 12:00 cùng ngày không chồng nhau
		found, err = tx.FindOverlappingReservations(ctx, roomID,
			time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC), time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC), 0)
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestGormStore_CreateGuestDuplicateKeepsTransaction(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()
	email := fmt.Sprintf("guest-%d@example.com", time.Now().UnixNano())

	inRollback(t, s, func(tx Store) {
		first := &models.Guest{FirstName: "Lan", Email: email}
		require.NoError(t, tx.CreateGuest(ctx, first))

		err := tx.CreateGuest(ctx, &models.Guest{FirstName: "Lan again", Email: email})
		require.ErrorIs(t, err, ErrDuplicate)

		// savepoint đã rollback nên tx vẫn dùng được
		found, err := tx.FindGuestByContact(ctx, email, "")
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)

		second := &models.Guest{FirstName: "Minh", Email: "other-" + email}
		require.NoError(t, tx.CreateGuest(ctx, second))
		assert.NotZero(t, second.ID)
	})
}
