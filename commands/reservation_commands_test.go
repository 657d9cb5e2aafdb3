package commands

import (
	"context"
	"errors"
	"testing"

	"hotelpms/models"
	"hotelpms/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCommand struct{ err error }

func (c failingCommand) Execute(ctx context.Context) error { return c.err }

func TestBookingLogCommand(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	require.NoError(t, NewBookingLogCommand(st, 7, "created", "clerk-1", map[string]interface{}{"room_ids": []uint{1, 2}}).Execute(ctx))
	require.NoError(t, NewBookingLogCommand(st, 7, "checked_in", "clerk-1", nil).Execute(ctx))

	logs, err := st.ListBookingLogs(ctx, 7)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "created", logs[0].Action)
	assert.JSONEq(t, `{"room_ids":[1,2]}`, string(logs[0].Details))
	assert.JSONEq(t, `{}`, string(logs[1].Details))
	assert.Equal(t, "clerk-1", logs[1].PerformedBy)
}

func TestSetRoomStatusCommand(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	rt := models.RoomType{Name: "Standard", Price: 500, Capacity: 1}
	require.NoError(t, st.CreateRoomType(ctx, &rt))
	room := models.Room{RoomNumber: "301", RoomTypeID: rt.ID, Status: "available"}
	require.NoError(t, st.CreateRoom(ctx, &room))

	require.NoError(t, NewSetRoomStatusCommand(st, nil, "occupied").Execute(ctx))
	require.NoError(t, NewSetRoomStatusCommand(st, []uint{room.ID}, "cleaning").Execute(ctx))

	got, err := st.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "cleaning", got.Status)
}

func TestRunStopsAtFirstError(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	boom := errors.New("boom")

	err := Run(ctx,
		NewBookingLogCommand(st, 1, "first", "a", nil),
		failingCommand{err: boom},
		NewBookingLogCommand(st, 1, "never", "a", nil),
	)
	assert.ErrorIs(t, err, boom)

	logs, err := st.ListBookingLogs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "first", logs[0].Action)
}
