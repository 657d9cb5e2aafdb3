package validator

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"hotelpms/constants"
	apperrors "hotelpms/errors"
	"hotelpms/models"

	playground "github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldError một lỗi ở một trường
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidateStruct kiểm tra các tag `validate`, trả AppError liệt kê trường sai
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Dữ liệu không hợp lệ", err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fieldPath(fe), Rule: fe.Tag()})
	}
	first := fields[0]
	msg := fmt.Sprintf("%s failed on '%s'", first.Field, first.Rule)
	return apperrors.NewAppError(apperrors.ErrCodeValidation, msg, nil).WithDetails(fields)
}

// fieldPath bỏ tên struct gốc: CreateReservationRequest.guests[0].email -> guests[0].email
func fieldPath(fe playground.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// ValidateStayDates check-out phải sau check-in; nếu requireFuture thì ngày check-in
// không được trước ngày hiện tại
func ValidateStayDates(checkIn, checkOut, now time.Time, requireFuture bool) error {
	if checkIn.IsZero() {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "check_in_date_time is required", nil)
	}
	if checkOut.IsZero() {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "check_out_date_time is required", nil)
	}
	if !checkOut.After(checkIn) {
		return apperrors.NewValidationError("check_out_date_time must be after check_in_date_time")
	}

	if requireFuture {
		today := dayOf(now, now.Location())
		if dayOf(checkIn, now.Location()).Before(today) {
			return apperrors.NewValidationError("check_in_date_time cannot be in the past")
		}
	}
	return nil
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ParseDate đọc ngày dạng yyyy-mm-dd
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat,
			fmt.Sprintf("%s must be formatted as %s", field, DateLayout), err)
	}
	return t, nil
}

func ValidateRoomType(rt *models.RoomType) error {
	if strings.TrimSpace(rt.Name) == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "name is required", nil)
	}
	if rt.Capacity < 1 {
		return apperrors.NewValidationError("capacity must be at least 1")
	}
	if rt.Price < 0 {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "price cannot be negative", nil)
	}
	return nil
}

func ValidateRoom(room *models.Room) error {
	if strings.TrimSpace(room.RoomNumber) == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "room_number is required", nil)
	}
	if room.RoomTypeID == 0 {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "room_type_id is required", nil)
	}
	if err := room.ValidateStatus(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidStatus, err.Error(), nil)
	}
	return nil
}

func ValidateOffer(offer *models.PricingOffer) error {
	if offer.Kind != constants.OfferKindSeasonal && offer.Kind != constants.OfferKindWeekend {
		return apperrors.NewValidationError("kind must be seasonal or weekend")
	}
	if offer.ValidTo.Before(offer.ValidFrom) {
		return apperrors.NewValidationError("valid_to must not be before valid_from")
	}
	if offer.DiscountValue < 0 || offer.DiscountValue > 100 {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "discount_value must be between 0 and 100", nil)
	}
	return nil
}

func ValidatePaymentMethod(method string) error {
	if !slices.Contains(constants.PaymentMethods, method) {
		return apperrors.NewValidationError(fmt.Sprintf("unsupported payment_method %q", method))
	}
	return nil
}

// ValidateAmount số tiền thanh toán phải dương
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "amount must be greater than 0", nil)
	}
	return nil
}
