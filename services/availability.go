package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "hotelpms/errors"
	"hotelpms/models"
	"hotelpms/store"
)

// AvailabilityResult kết quả kiểm tra phòng trống
type AvailabilityResult struct {
	RoomID    uint   `json:"room_id"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	Conflicts []uint `json:"conflicts,omitempty"` // id reservation bị trùng lịch
}

// AvailabilityChecker kiểm tra một phòng có đặt được trong khoảng [checkIn, checkOut)
type AvailabilityChecker struct {
	store store.Store
}

func NewAvailabilityChecker(st store.Store) *AvailabilityChecker {
	return &AvailabilityChecker{store: st}
}

// CheckAvailability chỉ đọc. excludeReservationID = 0 nghĩa là không loại trừ.
func (a *AvailabilityChecker) CheckAvailability(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeReservationID uint) (*AvailabilityResult, error) {
	room, err := a.store.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("room %d not found", roomID))
		}
		return nil, apperrors.NewInternalError("failed to load room", err)
	}
	return a.check(ctx, a.store, room, checkIn, checkOut, excludeReservationID)
}

// check chạy trên tx của thao tác gọi (phòng đã được khóa trước đó)
func (a *AvailabilityChecker) check(ctx context.Context, tx store.Store, room *models.Room, checkIn, checkOut time.Time, excludeReservationID uint) (*AvailabilityResult, error) {
	result := &AvailabilityResult{RoomID: room.ID}
	if !room.Bookable() {
		result.Reason = fmt.Sprintf("Room is %s", room.Status)
		return result, nil
	}

	overlapping, err := tx.FindOverlappingReservations(ctx, room.ID, checkIn, checkOut, excludeReservationID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query overlapping reservations", err)
	}
	if len(overlapping) > 0 {
		for _, r := range overlapping {
			result.Conflicts = append(result.Conflicts, r.ID)
		}
		result.Reason = fmt.Sprintf("Room %s has %d overlapping reservation(s)", room.RoomNumber, len(overlapping))
		return result, nil
	}

	result.Available = true
	return result, nil
}

// checkAll kiểm tra mọi phòng, trả ConflictError liệt kê phòng không đặt được
func (a *AvailabilityChecker) checkAll(ctx context.Context, tx store.Store, rooms []models.Room, checkIn, checkOut time.Time, excludeReservationID uint) error {
	var unavailable []AvailabilityResult
	for i := range rooms {
		result, err := a.check(ctx, tx, &rooms[i], checkIn, checkOut, excludeReservationID)
		if err != nil {
			return err
		}
		if !result.Available {
			unavailable = append(unavailable, *result)
		}
	}
	if len(unavailable) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(unavailable))
	for _, u := range unavailable {
		ids = append(ids, u.RoomID)
	}
	msg := fmt.Sprintf("rooms %v are not available for the requested dates", ids)
	if len(unavailable) == 1 {
		msg = fmt.Sprintf("room %d is not available: %s", unavailable[0].RoomID, unavailable[0].Reason)
	}
	return apperrors.NewAppError(apperrors.ErrCodeRoomUnavailable, msg, apperrors.ErrRoomNotAvailable).WithDetails(unavailable)
}
