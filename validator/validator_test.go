package validator

import (
	"testing"
	"time"

	"hotelpms/constants"
	apperrors "hotelpms/errors"
	"hotelpms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guestInput struct {
	FirstName string `json:"first_name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
}

type bookingInput struct {
	Rooms  []uint       `json:"rooms" validate:"required,min=1"`
	Guests []guestInput `json:"guests" validate:"required,min=1,dive"`
}

func codeOf(t *testing.T, err error) apperrors.ErrorCode {
	t.Helper()
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr, "expected AppError, got %v", err)
	return appErr.Code
}

func TestValidateStruct(t *testing.T) {
	ok := bookingInput{Rooms: []uint{1}, Guests: []guestInput{{FirstName: "Lan"}}}
	assert.NoError(t, ValidateStruct(ok))

	bad := bookingInput{Rooms: []uint{1}, Guests: []guestInput{{FirstName: "Lan"}, {FirstName: "Minh", Email: "not-an-email"}}}
	err := ValidateStruct(bad)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, codeOf(t, err))

	appErr := apperrors.GetAppError(err)
	fields, isFields := appErr.Details.([]FieldError)
	require.True(t, isFields)
	require.Len(t, fields, 1)
	assert.Equal(t, FieldError{Field: "guests[1].email", Rule: "email"}, fields[0])
	assert.Contains(t, appErr.Message, "guests[1].email")
}

func TestValidateStayDates(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	in := time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)
	out := time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateStayDates(in, out, now, true))
	// hôm nay vẫn hợp lệ dù đã qua giờ check-in
	assert.NoError(t, ValidateStayDates(now.Add(-3*time.Hour), out, now, true))

	assert.Equal(t, apperrors.ErrCodeRequiredField, codeOf(t, ValidateStayDates(time.Time{}, out, now, true)))
	assert.Equal(t, apperrors.ErrCodeRequiredField, codeOf(t, ValidateStayDates(in, time.Time{}, now, true)))
	assert.Equal(t, apperrors.ErrCodeValidation, codeOf(t, ValidateStayDates(out, in, now, true)))
	assert.Equal(t, apperrors.ErrCodeValidation, codeOf(t, ValidateStayDates(in, in, now, true)))

	past := now.AddDate(0, 0, -1)
	assert.Equal(t, apperrors.ErrCodeValidation, codeOf(t, ValidateStayDates(past, out, now, true)))
	assert.NoError(t, ValidateStayDates(past, out, now, false))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("from", " 2026-03-11 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("from", "2026/03/11")
	assert.Equal(t, apperrors.ErrCodeInvalidFormat, codeOf(t, err))
}

func TestValidateInventoryAndOffers(t *testing.T) {
	assert.NoError(t, ValidateRoomType(&models.RoomType{Name: "Deluxe", Capacity: 2, Price: 1000}))
	assert.Equal(t, apperrors.ErrCodeRequiredField, codeOf(t, ValidateRoomType(&models.RoomType{Capacity: 2})))
	assert.Equal(t, apperrors.ErrCodeValidation, codeOf(t, ValidateRoomType(&models.RoomType{Name: "X"})))
	assert.Equal(t, apperrors.ErrCodeInvalidAmount, codeOf(t, ValidateRoomType(&models.RoomType{Name: "X", Capacity: 1, Price: -1})))

	assert.NoError(t, ValidateRoom(&models.Room{RoomNumber: "101", RoomTypeID: 1, Status: constants.RoomStatusAvailable}))
	assert.Equal(t, apperrors.ErrCodeInvalidStatus, codeOf(t, ValidateRoom(&models.Room{RoomNumber: "101", RoomTypeID: 1, Status: "flooded"})))

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	offer := &models.PricingOffer{Kind: constants.OfferKindWeekend, ValidFrom: from, ValidTo: from.AddDate(0, 1, 0), DiscountValue: 20}
	assert.NoError(t, ValidateOffer(offer))
	offer.DiscountValue = 120
	assert.Equal(t, apperrors.ErrCodeInvalidAmount, codeOf(t, ValidateOffer(offer)))
	offer.DiscountValue = 20
	offer.ValidTo = from.AddDate(0, 0, -1)
	assert.Equal(t, apperrors.ErrCodeValidation, codeOf(t, ValidateOffer(offer)))
	offer.Kind = "holiday"
	assert.Equal(t, apperrors.ErrCodeValidation, codeOf(t, ValidateOffer(offer)))
}

func TestValidatePayment(t *testing.T) {
	for _, m := range constants.PaymentMethods {
		assert.NoError(t, ValidatePaymentMethod(m))
	}
	assert.Error(t, ValidatePaymentMethod("bitcoin"))
	assert.Equal(t, apperrors.ErrCodeInvalidAmount, codeOf(t, ValidateAmount(0)))
	assert.NoError(t, ValidateAmount(0.01))
}
