package services

import (
	"testing"

	"hotelpms/constants"
	"hotelpms/dto"
	apperrors "hotelpms/errors"
	"hotelpms/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCharge(t *testing.T) {
	roomID := uint(3)
	c := NewCharge(constants.ChargeKindRoom, "Room 101", &roomID, 2000, 200, 18)

	assert.Equal(t, 2000.0, c.Amount)
	assert.Equal(t, 200.0, c.Discount)
	assert.Equal(t, 324.0, c.TaxAmount)
	assert.Equal(t, 2124.0, c.Total)
	assert.Equal(t, &roomID, c.ReferenceID)
}

func TestInvoiceStatus(t *testing.T) {
	assert.Equal(t, constants.InvoiceStatusUnpaid, invoiceStatus(100, 0))
	assert.Equal(t, constants.InvoiceStatusPartial, invoiceStatus(100, 99.99))
	assert.Equal(t, constants.InvoiceStatusPaid, invoiceStatus(100, 100))
	assert.Equal(t, constants.InvoiceStatusPaid, invoiceStatus(100, 150))
}

func TestBilling_RepriceKeepsPayments(t *testing.T) {
	f := newHotelFixture(t)
	r := f.book(t, "101")

	_, err := f.facade.CreatePayment(f.ctx, &dto.PaymentRequest{
		ReservationID: r.ID,
		PaymentMethod: constants.PaymentMethodCash,
		Amount:        1000,
	}, "clerk-1")
	require.NoError(t, err)

	price, err := f.pricing.CalculatePrices(f.ctx, PriceInput{
		RoomIDs:  []uint{f.roomID("101")},
		CheckIn:  day(11, 14),
		CheckOut: day(14, 12),
	})
	require.NoError(t, err)

	require.NoError(t, f.store.Transaction(f.ctx, func(tx store.Store) error {
		return f.billing.RepriceFolio(f.ctx, tx, r.ID, price)
	}))

	folio, err := f.store.GetOpenFolio(f.ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 3540.0, folio.TotalAmount)
	assert.Equal(t, 1000.0, folio.TotalPayments)
	assert.Equal(t, 2540.0, folio.Balance)

	charges, err := f.store.ListFolioCharges(f.ctx, folio.ID)
	require.NoError(t, err)
	assert.Len(t, charges, 1)
}

func TestBilling_EnsureFolioRebuildsCharges(t *testing.T) {
	f := newHotelFixture(t)
	r := f.seedReservation(t, "NOFOL1", constants.BookingStatusBooked, day(11, 14), day(13, 12), "101", "102")

	err := f.store.Transaction(f.ctx, func(tx store.Store) error {
		folio, err := f.billing.EnsureFolio(f.ctx, tx, r)
		if err != nil {
			return err
		}
		assert.Equal(t, constants.FolioStatusActive, folio.Status)
		assert.Equal(t, 4720.0, folio.TotalAmount)

		again, err := f.billing.EnsureFolio(f.ctx, tx, r)
		if err != nil {
			return err
		}
		assert.Equal(t, folio.ID, again.ID)
		return nil
	})
	require.NoError(t, err)
}

func TestBilling_RecordPaymentRejectsNonPositive(t *testing.T) {
	f := newHotelFixture(t)
	r := f.book(t, "101")

	err := f.store.Transaction(f.ctx, func(tx store.Store) error {
		folio, err := tx.GetOpenFolio(f.ctx, r.ID)
		if err != nil {
			return err
		}
		invoice, err := f.billing.GenerateInvoice(f.ctx, tx, folio)
		if err != nil {
			return err
		}
		_, err = f.billing.RecordPayment(f.ctx, tx, folio, invoice, PaymentInput{Method: constants.PaymentMethodCash, Amount: -5})
		return err
	})
	requireCode(t, err, apperrors.ErrCodeInvalidAmount)
}
