package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"hotelpms/commands"
	"hotelpms/constants"
	"hotelpms/dto"
	apperrors "hotelpms/errors"
	"hotelpms/models"
	"hotelpms/services/notification"
	"hotelpms/store"
	"hotelpms/validator"
)

// ReassignResult Changed = false khi danh sách phòng không đổi (không ghi gì)
type ReassignResult struct {
	Reservation *models.Reservation `json:"reservation"`
	Changed     bool                `json:"changed"`
}

// CheckoutResult kết quả trả phòng
type CheckoutResult struct {
	Reservation *models.Reservation `json:"reservation"`
	Invoice     *models.Invoice     `json:"invoice"`
	Payment     *models.Payment     `json:"payment,omitempty"`
	Balance     float64             `json:"balance"`
}

// PaymentResult kết quả ghi nhận thanh toán
type PaymentResult struct {
	Invoice *models.Invoice `json:"invoice"`
	Payment *models.Payment `json:"payment"`
	Balance float64         `json:"balance"`
}

func closedReservationError(r *models.Reservation) error {
	return apperrors.NewAppError(apperrors.ErrCodeInvalidState,
		fmt.Sprintf("reservation %d is already %s", r.ID, r.BookingStatus), apperrors.ErrReservationClosed)
}

// UpdateReservation cập nhật từng phần. Đổi ngày thì kiểm tra lại phòng trống (trừ chính nó)
// và tính lại giá; khách không thuộc reservation bị bỏ qua.
func (f *BookingFacade) UpdateReservation(ctx context.Context, id uint, req *dto.UpdateReservationRequest, actor string) (*models.Reservation, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	var reservation *models.Reservation
	err := f.transaction(ctx, func(tx store.Store) error {
		r, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if models.GetReservationState(r.BookingStatus).Terminal() {
			return closedReservationError(r)
		}

		changes := map[string]interface{}{}
		checkIn, checkOut := r.CheckIn, r.CheckOut
		if req.CheckIn != nil {
			checkIn = *req.CheckIn
		}
		if req.CheckOut != nil {
			checkOut = *req.CheckOut
		}

		if !checkIn.Equal(r.CheckIn) || !checkOut.Equal(r.CheckOut) {
			// Đã nhận phòng thì ngày check-in nằm trong quá khứ là hợp lệ
			requireFuture := r.BookingStatus == constants.BookingStatusBooked && !checkIn.Equal(r.CheckIn)
			if err := validator.ValidateStayDates(checkIn, checkOut, f.clock.Now(), requireFuture); err != nil {
				return err
			}

			rooms, err := lockRooms(ctx, tx, r.RoomIDs())
			if err != nil {
				return err
			}
			if err := f.availability.checkAll(ctx, tx, rooms, checkIn, checkOut, r.ID); err != nil {
				return err
			}

			price, err := f.pricing.calculate(ctx, tx, PriceInput{
				RoomIDs:    r.RoomIDs(),
				CheckIn:    checkIn,
				CheckOut:   checkOut,
				PackageIDs: r.PackageIDs(),
				ExtraBed:   r.ExtraBed,
			})
			if err != nil {
				return err
			}
			if err := f.billing.RepriceFolio(ctx, tx, r.ID, price); err != nil {
				return err
			}

			changes["check_in_date_time"] = checkIn
			changes["check_out_date_time"] = checkOut
			changes["total_amount"] = price.GrandTotal
			r.CheckIn, r.CheckOut = checkIn, checkOut
			r.TotalAmount = price.GrandTotal
		}

		if req.BookingType != nil {
			r.BookingType = *req.BookingType
			changes["booking_type"] = r.BookingType
		}
		if req.PaymentStatus != nil {
			r.PaymentStatus = *req.PaymentStatus
			changes["payment_status"] = r.PaymentStatus
		}
		if req.Remarks != nil {
			r.Remarks = *req.Remarks
			changes["remarks"] = r.Remarks
		}
		if len(req.Guests) > 0 {
			if err := f.guests.updateReservationGuests(ctx, tx, r, req.Guests); err != nil {
				return err
			}
			changes["guests"] = len(req.Guests)
		}

		if err := tx.UpdateReservation(ctx, r); err != nil {
			return apperrors.NewInternalError("failed to update reservation", err)
		}
		reservation = r
		return commands.NewBookingLogCommand(tx, r.ID, constants.LogActionUpdated, actor, changes).Execute(ctx)
	})
	if err != nil {
		return nil, err
	}

	f.invalidate(ctx, id)
	f.notify(ctx, notification.NewMessageBuilder(notification.EventReservationUpdated, f.clock.Now()).
		Reservation(reservation.ID, reservation.BookingReference).
		Build())

	if full, err := f.store.GetReservation(ctx, id); err == nil {
		return full, nil
	}
	return reservation, nil
}

// ReassignRoom đổi phòng theo từng vị trí. Mọi phòng đích được khóa và kiểm tra trùng lịch
// với chính khoảng ngày của reservation; có xung đột thì không thay đổi gì.
func (f *BookingFacade) ReassignRoom(ctx context.Context, id uint, req *dto.ReassignRoomRequest, actor string) (*ReassignResult, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	result := &ReassignResult{}
	err := f.transaction(ctx, func(tx store.Store) error {
		r, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if models.GetReservationState(r.BookingStatus).Terminal() {
			return closedReservationError(r)
		}

		oldIDs := r.RoomIDs()
		newRooms := slices.Clone([]models.ReservationRoom(r.Rooms))
		var targets []models.Room

		for _, swap := range req.RoomIDs {
			slot := slices.Index(oldIDs, swap.RoomID)
			if slot < 0 {
				return apperrors.NewValidationError(fmt.Sprintf("room %d is not assigned to reservation %d", swap.RoomID, r.ID))
			}
			number := strings.TrimSpace(swap.NewRoomNumber)
			if number == "" {
				continue
			}
			target, err := tx.GetRoomByNumber(ctx, number)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return apperrors.NewAppError(apperrors.ErrCodeNotFound,
						fmt.Sprintf("room number %s not found", number), apperrors.ErrRoomNotFound)
				}
				return apperrors.NewInternalError("failed to load room", err)
			}
			if target.ID == swap.RoomID {
				continue
			}
			newRooms[slot] = models.ReservationRoom{RoomID: target.ID, RoomType: target.RoomTypeID}
			targets = append(targets, *target)
		}

		newIDs := make([]uint, 0, len(newRooms))
		for _, room := range newRooms {
			newIDs = append(newIDs, room.RoomID)
		}
		if slices.Equal(newIDs, oldIDs) {
			result.Reservation = r
			return nil
		}
		if hasDuplicates(newIDs) {
			return apperrors.NewValidationError("a room cannot be assigned twice to the same reservation")
		}

		targetIDs := make([]uint, 0, len(targets))
		for _, t := range targets {
			targetIDs = append(targetIDs, t.ID)
		}
		locked, err := lockRooms(ctx, tx, targetIDs)
		if err != nil {
			return err
		}
		if err := f.availability.checkAll(ctx, tx, locked, r.CheckIn, r.CheckOut, r.ID); err != nil {
			return err
		}

		var released []uint
		for _, old := range oldIDs {
			if !slices.Contains(newIDs, old) {
				released = append(released, old)
			}
		}

		r.Rooms = newRooms
		r.Reason = req.ChangeReason
		if err := tx.UpdateReservation(ctx, r); err != nil {
			return apperrors.NewInternalError("failed to update reservation", err)
		}
		release, err := f.releaseRooms(ctx, tx, released, r.ID)
		if err != nil {
			return err
		}

		result.Reservation = r
		result.Changed = true
		return commands.Run(ctx,
			release,
			f.claimRooms(tx, locked, r),
			commands.NewBookingLogCommand(tx, r.ID, constants.LogActionReassign, actor, map[string]interface{}{
				"from":   oldIDs,
				"to":     newIDs,
				"reason": req.ChangeReason,
			}),
		)
	})
	if err != nil {
		return nil, err
	}
	if !result.Changed {
		return result, nil
	}

	f.invalidate(ctx, id)
	f.notify(ctx, notification.NewMessageBuilder(notification.EventRoomReassigned, f.clock.Now()).
		Reservation(result.Reservation.ID, result.Reservation.BookingReference).
		Rooms(result.Reservation.RoomIDs()).
		Build())
	return result, nil
}

func hasDuplicates(ids []uint) bool {
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}

// CheckIn chuyển booked -> check_in, phòng -> occupied
func (f *BookingFacade) CheckIn(ctx context.Context, id uint, actor string) (*models.Reservation, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var reservation *models.Reservation
	err := f.transaction(ctx, func(tx store.Store) error {
		r, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := models.GetReservationState(r.BookingStatus).CheckIn(r, f.clock.Now()); err != nil {
			return stateError(err)
		}
		if _, err := lockRooms(ctx, tx, r.RoomIDs()); err != nil {
			return err
		}
		if err := tx.UpdateReservation(ctx, r); err != nil {
			return apperrors.NewInternalError("failed to update reservation", err)
		}
		reservation = r
		return commands.Run(ctx,
			commands.NewSetRoomStatusCommand(tx, r.RoomIDs(), constants.RoomStatusOccupied),
			commands.NewBookingLogCommand(tx, r.ID, constants.LogActionCheckIn, actor, nil),
		)
	})
	if err != nil {
		return nil, err
	}

	f.invalidate(ctx, id)
	f.notify(ctx, notification.NewMessageBuilder(notification.EventReservationCheckedIn, f.clock.Now()).
		Reservation(reservation.ID, reservation.BookingReference).
		Rooms(reservation.RoomIDs()).
		Build())
	return reservation, nil
}

// Cancel hủy reservation chưa kết thúc, trả phòng về available và đóng folio
func (f *BookingFacade) Cancel(ctx context.Context, id uint, reason, actor string) (*models.Reservation, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var reservation *models.Reservation
	err := f.transaction(ctx, func(tx store.Store) error {
		r, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := models.GetReservationState(r.BookingStatus).Cancel(r); err != nil {
			return stateError(err)
		}
		if reason != "" {
			r.Reason = reason
		}
		if err := tx.UpdateReservation(ctx, r); err != nil {
			return apperrors.NewInternalError("failed to update reservation", err)
		}

		folio, err := tx.GetOpenFolio(ctx, r.ID)
		switch {
		case err == nil:
			if err := f.billing.CloseFolio(ctx, tx, folio, folio.Balance, actor); err != nil {
				return err
			}
		case !errors.Is(err, store.ErrNotFound):
			return apperrors.NewInternalError("failed to load folio", err)
		}

		release, err := f.releaseRooms(ctx, tx, r.RoomIDs(), r.ID)
		if err != nil {
			return err
		}

		reservation = r
		return commands.Run(ctx,
			release,
			commands.NewBookingLogCommand(tx, r.ID, constants.LogActionCancelled, actor, map[string]interface{}{
				"reason": reason,
			}),
		)
	})
	if err != nil {
		return nil, err
	}

	f.invalidate(ctx, id)
	f.notify(ctx, notification.NewMessageBuilder(notification.EventReservationCancelled, f.clock.Now()).
		Reservation(reservation.ID, reservation.BookingReference).
		Rooms(reservation.RoomIDs()).
		Build())
	return reservation, nil
}

// Checkout trả phòng: tính lại folio, xuất invoice, ghi payment nếu có, đóng folio
// và giải phóng phòng trong cùng một transaction
func (f *BookingFacade) Checkout(ctx context.Context, id uint, req *dto.CheckoutRequest, actor string) (*CheckoutResult, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.PaymentAmount > 0 && req.PaymentMethod == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "payment_method is required when payment_amount is greater than 0", nil)
	}

	result := &CheckoutResult{}
	err := f.transaction(ctx, func(tx store.Store) error {
		r, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		state := models.GetReservationState(r.BookingStatus)
		if state.Terminal() {
			return closedReservationError(r)
		}

		folio, err := f.billing.EnsureFolio(ctx, tx, r)
		if err != nil {
			return err
		}
		if err := f.billing.RecomputeFolio(ctx, tx, folio); err != nil {
			return err
		}
		balance := folio.Balance

		invoice, err := f.billing.GenerateInvoice(ctx, tx, folio)
		if err != nil {
			return err
		}
		if req.PaymentAmount > 0 {
			payment, err := f.billing.RecordPayment(ctx, tx, folio, invoice, PaymentInput{
				Method:     req.PaymentMethod,
				Amount:     req.PaymentAmount,
				Notes:      req.Notes,
				ReceivedBy: actor,
			})
			if err != nil {
				return err
			}
			result.Payment = payment
		}

		if err := state.CheckOut(r, f.clock.Now()); err != nil {
			return stateError(err)
		}
		if err := tx.UpdateReservation(ctx, r); err != nil {
			return apperrors.NewInternalError("failed to update reservation", err)
		}

		finalBalance := Sub(balance, req.PaymentAmount)
		if err := f.billing.CloseFolio(ctx, tx, folio, finalBalance, actor); err != nil {
			return err
		}

		release, err := f.releaseRooms(ctx, tx, r.RoomIDs(), r.ID)
		if err != nil {
			return err
		}

		result.Reservation = r
		result.Invoice = invoice
		result.Balance = finalBalance
		return commands.Run(ctx,
			release,
			commands.NewBookingLogCommand(tx, r.ID, constants.LogActionCheckOut, actor, map[string]interface{}{
				"invoice_number": invoice.InvoiceNumber,
				"payment_amount": req.PaymentAmount,
				"balance":        finalBalance,
				"notes":          req.Notes,
			}),
		)
	})
	if err != nil {
		return nil, err
	}

	f.logger.Info("reservation %d checked out by %s, balance %.2f", id, actor, result.Balance)
	f.invalidate(ctx, id)
	f.notify(ctx, notification.NewMessageBuilder(notification.EventReservationCheckout, f.clock.Now()).
		Reservation(result.Reservation.ID, result.Reservation.BookingReference).
		Rooms(result.Reservation.RoomIDs()).
		Data(result.Invoice).
		Build())
	return result, nil
}

// CreatePayment ghi nhận thanh toán cho reservation chưa kết thúc, kèm invoice mới
func (f *BookingFacade) CreatePayment(ctx context.Context, req *dto.PaymentRequest, actor string) (*PaymentResult, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := validator.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := validator.ValidatePaymentMethod(req.PaymentMethod); err != nil {
		return nil, err
	}

	result := &PaymentResult{}
	var reservation *models.Reservation
	err := f.transaction(ctx, func(tx store.Store) error {
		r, err := loadReservation(ctx, tx, req.ReservationID)
		if err != nil {
			return err
		}
		if models.GetReservationState(r.BookingStatus).Terminal() {
			return closedReservationError(r)
		}

		folio, err := f.billing.EnsureFolio(ctx, tx, r)
		if err != nil {
			return err
		}
		if err := f.billing.RecomputeFolio(ctx, tx, folio); err != nil {
			return err
		}
		invoice, err := f.billing.GenerateInvoice(ctx, tx, folio)
		if err != nil {
			return err
		}
		payment, err := f.billing.RecordPayment(ctx, tx, folio, invoice, PaymentInput{
			Method:          req.PaymentMethod,
			Amount:          req.Amount,
			TransactionID:   req.TransactionID,
			ReferenceNumber: req.ReferenceNumber,
			Notes:           req.Notes,
			ReceivedBy:      actor,
		})
		if err != nil {
			return err
		}

		r.PaymentStatus = invoice.Status
		if err := tx.UpdateReservation(ctx, r); err != nil {
			return apperrors.NewInternalError("failed to update reservation", err)
		}

		reservation = r
		result.Invoice = invoice
		result.Payment = payment
		result.Balance = folio.Balance
		return commands.NewBookingLogCommand(tx, r.ID, constants.LogActionPayment, actor, map[string]interface{}{
			"invoice_number": invoice.InvoiceNumber,
			"amount":         payment.Amount,
			"method":         payment.PaymentMethod,
		}).Execute(ctx)
	})
	if err != nil {
		return nil, err
	}

	f.invalidate(ctx, req.ReservationID)
	f.notify(ctx, notification.NewMessageBuilder(notification.EventPaymentRecorded, f.clock.Now()).
		Reservation(reservation.ID, reservation.BookingReference).
		Data(result.Payment).
		Build())
	return result, nil
}

// MarkArrivals phòng của reservation booked có check-in trong ngày hôm nay chuyển sang occupied.
// Chạy lại nhiều lần không đổi kết quả.
func (f *BookingFacade) MarkArrivals(ctx context.Context) (int, error) {
	from := startOfDay(f.clock.Now())
	to := from.AddDate(0, 0, 1)

	count := 0
	var marked map[uint][]uint
	err := f.transaction(ctx, func(tx store.Store) error {
		count = 0
		marked = map[uint][]uint{}
		arrivals, err := tx.FindArrivals(ctx, from, to)
		if err != nil {
			return apperrors.NewInternalError("failed to load arrivals", err)
		}
		for _, r := range arrivals {
			rooms, err := lockRooms(ctx, tx, r.RoomIDs())
			if err != nil {
				return err
			}
			pending := make([]uint, 0, len(rooms))
			for _, room := range rooms {
				if room.Status != constants.RoomStatusOccupied {
					pending = append(pending, room.ID)
				}
			}
			if len(pending) == 0 {
				continue
			}
			if err := commands.Run(ctx,
				commands.NewSetRoomStatusCommand(tx, pending, constants.RoomStatusOccupied),
				commands.NewBookingLogCommand(tx, r.ID, constants.LogActionArrival, f.systemActor, map[string]interface{}{
					"room_ids": pending,
				}),
			); err != nil {
				return err
			}
			count += len(pending)
			marked[r.ID] = pending
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for id, roomIDs := range marked {
		f.invalidate(ctx, id)
		f.notify(ctx, notification.NewMessageBuilder(notification.EventRoomStatusChanged, f.clock.Now()).
			Rooms(roomIDs).
			Data(map[string]string{"status": constants.RoomStatusOccupied}).
			Build())
	}
	return count, nil
}
