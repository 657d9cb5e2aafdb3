package builders

import (
	"testing"
	"time"

	"hotelpms/constants"
	"hotelpms/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestReservationBuilder(t *testing.T) {
	in := time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)
	out := in.Add(46 * time.Hour)
	guests := []models.Guest{{ID: 4, FirstName: "Lan"}, {ID: 9, FirstName: "Minh"}}
	rooms := []models.Room{{ID: 3, RoomTypeID: 1}, {ID: 5, RoomTypeID: 2}}

	r := NewReservationBuilder().
		WithReference("123456").
		WithGuests(guests).
		WithRooms(rooms, 0).
		WithStay(in, out).
		WithPackages([]uint{2, 7}).
		WithExtraBed(1).
		WithBookingInfo("walk_in", "unpaid", "late arrival").
		WithTotalAmount(2360).
		CreatedBy("clerk-1").
		Build()

	assert.Equal(t, constants.BookingStatusBooked, r.BookingStatus)
	assert.Equal(t, "123456", r.BookingReference)
	assert.Equal(t, uint(4), r.GuestID)
	assert.Equal(t, pq.Int64Array{9}, r.AdditionalGuestIDs)
	assert.Equal(t, []uint{3, 5}, r.RoomIDs())
	assert.Equal(t, uint(2), r.Rooms[1].RoomType)
	assert.Equal(t, 2, r.TotalRooms)
	assert.Equal(t, []uint{2, 7}, r.PackageIDs())
	assert.Equal(t, 1, r.ExtraBed)
	assert.Equal(t, "walk_in", r.BookingType)
	assert.Equal(t, 2360.0, r.TotalAmount)
	assert.Equal(t, "clerk-1", r.CreatedBy)
	assert.True(t, r.CheckOut.Equal(out))
}

func TestReservationBuilder_ExplicitTotalRooms(t *testing.T) {
	r := NewReservationBuilder().
		WithRooms([]models.Room{{ID: 1}}, 3).
		WithGuests(nil).
		Build()

	assert.Equal(t, 3, r.TotalRooms)
	assert.Zero(t, r.GuestID)
}

func TestReservationBuilder_RepeatedGuests(t *testing.T) {
	guests := []models.Guest{{ID: 1}, {ID: 1}, {ID: 6}, {ID: 6}, {ID: 1}}

	r := NewReservationBuilder().WithGuests(guests).Build()

	assert.Equal(t, uint(1), r.GuestID)
	assert.Equal(t, pq.Int64Array{6}, r.AdditionalGuestIDs)
	assert.Len(t, r.AdditionalGuests, 1)
}
