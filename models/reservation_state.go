package models

import (
	"errors"
	"time"

	"hotelpms/constants"
)

var (
	ErrAlreadyCheckedIn   = errors.New("reservation already checked in")
	ErrAlreadyCheckedOut  = errors.New("reservation already checked out")
	ErrAlreadyCancelled   = errors.New("reservation already cancelled")
	ErrCheckInAfterClose  = errors.New("cannot check in a closed reservation")
	ErrCancelCheckedOut   = errors.New("cannot cancel a checked out reservation")
	ErrCheckOutCancelled  = errors.New("cannot check out a cancelled reservation")
	ErrUnknownReservation = errors.New("unknown reservation status")
)

// ReservationState định nghĩa interface cho các trạng thái reservation
type ReservationState interface {
	CheckIn(r *Reservation, at time.Time) error
	CheckOut(r *Reservation, at time.Time) error
	Cancel(r *Reservation) error
	Terminal() bool
}

// BookedState đã đặt, chưa nhận phòng
type BookedState struct{}

func (s *BookedState) CheckIn(r *Reservation, at time.Time) error {
	r.BookingStatus = constants.BookingStatusCheckIn
	r.CheckedInAt = &at
	return nil
}

func (s *BookedState) CheckOut(r *Reservation, at time.Time) error {
	r.BookingStatus = constants.BookingStatusCheckOut
	r.CheckedOutAt = &at
	return nil
}

func (s *BookedState) Cancel(r *Reservation) error {
	r.BookingStatus = constants.BookingStatusCancelled
	return nil
}

func (s *BookedState) Terminal() bool { return false }

// CheckedInState khách đang lưu trú
type CheckedInState struct{}

func (s *CheckedInState) CheckIn(r *Reservation, at time.Time) error {
	return ErrAlreadyCheckedIn
}

func (s *CheckedInState) CheckOut(r *Reservation, at time.Time) error {
	r.BookingStatus = constants.BookingStatusCheckOut
	r.CheckedOutAt = &at
	return nil
}

func (s *CheckedInState) Cancel(r *Reservation) error {
	r.BookingStatus = constants.BookingStatusCancelled
	return nil
}

func (s *CheckedInState) Terminal() bool { return false }

// CheckedOutState đã trả phòng
type CheckedOutState struct{}

func (s *CheckedOutState) CheckIn(r *Reservation, at time.Time) error {
	return ErrCheckInAfterClose
}

func (s *CheckedOutState) CheckOut(r *Reservation, at time.Time) error {
	return ErrAlreadyCheckedOut
}

func (s *CheckedOutState) Cancel(r *Reservation) error {
	return ErrCancelCheckedOut
}

func (s *CheckedOutState) Terminal() bool { return true }

// CancelledState đã hủy
type CancelledState struct{}

func (s *CancelledState) CheckIn(r *Reservation, at time.Time) error {
	return ErrCheckInAfterClose
}

func (s *CancelledState) CheckOut(r *Reservation, at time.Time) error {
	return ErrCheckOutCancelled
}

func (s *CancelledState) Cancel(r *Reservation) error {
	return ErrAlreadyCancelled
}

func (s *CancelledState) Terminal() bool { return true }

// unknownState từ chối mọi chuyển trạng thái
type unknownState struct{}

func (s *unknownState) CheckIn(r *Reservation, at time.Time) error  { return ErrUnknownReservation }
func (s *unknownState) CheckOut(r *Reservation, at time.Time) error { return ErrUnknownReservation }
func (s *unknownState) Cancel(r *Reservation) error                 { return ErrUnknownReservation }
func (s *unknownState) Terminal() bool                              { return true }

// GetReservationState trả về state tương ứng với booking_status
func GetReservationState(status string) ReservationState {
	switch status {
	case constants.BookingStatusBooked:
		return &BookedState{}
	case constants.BookingStatusCheckIn:
		return &CheckedInState{}
	case constants.BookingStatusCheckOut:
		return &CheckedOutState{}
	case constants.BookingStatusCancelled:
		return &CancelledState{}
	default:
		return &unknownState{}
	}
}
