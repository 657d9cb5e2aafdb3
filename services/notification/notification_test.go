package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureService struct {
	events []Event
	err    error
}

func (s *captureService) Send(ctx context.Context, event Event) error {
	s.events = append(s.events, event)
	return s.err
}

func TestMessageBuilder(t *testing.T) {
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	event := NewMessageBuilder(EventReservationCreated, at).
		Reservation(12, "654321").
		Rooms([]uint{3, 4}).
		Data(map[string]int{"nights": 2}).
		Build()

	assert.Equal(t, EventReservationCreated, event.Type)
	assert.Equal(t, uint(12), event.ReservationID)
	assert.Equal(t, "654321", event.BookingReference)
	assert.Equal(t, []uint{3, 4}, event.RoomIDs)
	assert.Equal(t, at, event.OccurredAt)
	assert.Contains(t, event.Message, "654321")
	assert.Equal(t, "12", event.Key())

	status := NewMessageBuilder(EventRoomStatusChanged, at).Rooms([]uint{7}).Build()
	assert.Equal(t, EventRoomStatusChanged, status.Key())
	assert.Contains(t, status.Message, "7")
}

func TestMultiService(t *testing.T) {
	ok := &captureService{}
	failing := &captureService{err: errors.New("broker down")}
	multi := MultiService{ok, failing, NopService{}}

	event := NewMessageBuilder(EventPaymentRecorded, time.Now()).Reservation(1, "111111").Build()
	err := multi.Send(context.Background(), event)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Len(t, ok.events, 1)
	assert.Len(t, failing.events, 1)

	assert.NoError(t, MultiService{ok}.Send(context.Background(), event))
}
