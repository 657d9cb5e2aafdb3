package commands

import (
	"context"
	"fmt"

	"hotelpms/models"
	"hotelpms/store"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

// Command định nghĩa interface cho các thao tác ghi chạy trong transaction
type Command interface {
	Execute(ctx context.Context) error
}

// SetRoomStatusCommand đổi trạng thái một nhóm phòng
type SetRoomStatusCommand struct {
	tx      store.Store
	roomIDs []uint
	status  string
}

func NewSetRoomStatusCommand(tx store.Store, roomIDs []uint, status string) *SetRoomStatusCommand {
	return &SetRoomStatusCommand{
		tx:      tx,
		roomIDs: roomIDs,
		status:  status,
	}
}

func (c *SetRoomStatusCommand) Execute(ctx context.Context) error {
	if len(c.roomIDs) == 0 {
		return nil
	}
	if err := c.tx.UpdateRoomStatus(ctx, c.roomIDs, c.status); err != nil {
		return fmt.Errorf("set rooms %v to %s: %w", c.roomIDs, c.status, err)
	}
	return nil
}

// BookingLogCommand ghi một dòng nhật ký cho reservation
type BookingLogCommand struct {
	tx            store.Store
	reservationID uint
	action        string
	performedBy   string
	details       interface{}
}

func NewBookingLogCommand(tx store.Store, reservationID uint, action, performedBy string, details interface{}) *BookingLogCommand {
	return &BookingLogCommand{
		tx:            tx,
		reservationID: reservationID,
		action:        action,
		performedBy:   performedBy,
		details:       details,
	}
}

func (c *BookingLogCommand) Execute(ctx context.Context) error {
	raw := []byte("{}")
	if c.details != nil {
		var err error
		raw, err = json.Marshal(c.details)
		if err != nil {
			return fmt.Errorf("encode booking log details: %w", err)
		}
	}

	log := &models.BookingLog{
		ReservationID: c.reservationID,
		Action:        c.action,
		PerformedBy:   c.performedBy,
		Details:       datatypes.JSON(raw),
	}
	if err := c.tx.CreateBookingLog(ctx, log); err != nil {
		return fmt.Errorf("write booking log: %w", err)
	}
	return nil
}

// Run chạy lần lượt, dừng ở lỗi đầu tiên
func Run(ctx context.Context, cmds ...Command) error {
	for _, cmd := range cmds {
		if err := cmd.Execute(ctx); err != nil {
			return err
		}
	}
	return nil
}
