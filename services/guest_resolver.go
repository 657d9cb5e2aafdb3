package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotelpms/dto"
	apperrors "hotelpms/errors"
	"hotelpms/models"
	"hotelpms/services/logger"
	"hotelpms/store"
	"hotelpms/validator"
)

// GuestResolver tạo mới hoặc cập nhật khách theo email/phone
type GuestResolver struct {
	logger logger.Logger
}

func NewGuestResolver(log logger.Logger) *GuestResolver {
	return &GuestResolver{logger: log}
}

// ResolveGuests trả danh sách khách theo đúng thứ tự payload; phần tử 0 là khách đặt phòng.
// attachments[i] là URL giấy tờ của payload thứ i (có thể rỗng).
func (g *GuestResolver) ResolveGuests(ctx context.Context, tx store.Store, rooms []models.Room, payloads []dto.GuestPayload, extraBed int, attachments []string) ([]models.Guest, error) {
	capacity := extraBed
	for i := range rooms {
		capacity += rooms[i].Capacity()
	}
	if len(payloads) > capacity {
		return nil, apperrors.NewAppError(apperrors.ErrCodeCapacityExceeded,
			fmt.Sprintf("guest count %d exceeds total capacity %d", len(payloads), capacity), nil)
	}

	for i := range payloads {
		if strings.TrimSpace(payloads[i].FirstName) == "" {
			return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField,
				fmt.Sprintf("guests[%d].first_name is required", i), nil)
		}
	}

	guests := make([]models.Guest, 0, len(payloads))
	for i, payload := range payloads {
		attachment := ""
		if i < len(attachments) {
			attachment = attachments[i]
		}
		guest, err := g.resolveOne(ctx, tx, payload, attachment)
		if err != nil {
			return nil, err
		}
		guests = append(guests, *guest)
	}
	return guests, nil
}

func (g *GuestResolver) resolveOne(ctx context.Context, tx store.Store, p dto.GuestPayload, attachment string) (*models.Guest, error) {
	email := strings.TrimSpace(p.Email)
	phone := strings.TrimSpace(p.Phone)

	guest, err := tx.FindGuestByContact(ctx, email, phone)
	switch {
	case err == nil:
		if err := applyGuestPayload(guest, p); err != nil {
			return nil, err
		}
		if err := tx.UpdateGuest(ctx, guest); err != nil {
			return nil, guestWriteError(err)
		}
	case errors.Is(err, store.ErrNotFound):
		guest = &models.Guest{}
		if err := applyGuestPayload(guest, p); err != nil {
			return nil, err
		}
		if err := tx.CreateGuest(ctx, guest); err != nil {
			if !errors.Is(err, store.ErrDuplicate) {
				return nil, guestWriteError(err)
			}
			// Request khác vừa tạo cùng khách: đọc lại và cập nhật
			g.logger.Debug("guest insert raced on contact %s/%s, updating existing", email, phone)
			guest, err = tx.FindGuestByContact(ctx, email, phone)
			if err != nil {
				return nil, apperrors.NewInternalError("failed to reload guest", err)
			}
			if err := applyGuestPayload(guest, p); err != nil {
				return nil, err
			}
			if err := tx.UpdateGuest(ctx, guest); err != nil {
				return nil, guestWriteError(err)
			}
		}
	default:
		return nil, apperrors.NewInternalError("failed to look up guest", err)
	}

	detail, err := g.upsertDetail(ctx, tx, guest.ID, p, attachment)
	if err != nil {
		return nil, err
	}
	guest.Detail = detail
	return guest, nil
}

func (g *GuestResolver) upsertDetail(ctx context.Context, tx store.Store, guestID uint, p dto.GuestPayload, attachment string) (*models.GuestDetail, error) {
	detail, err := tx.GetGuestDetail(ctx, guestID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewInternalError("failed to load guest detail", err)
		}
		detail = &models.GuestDetail{GuestID: guestID}
	}

	setIfPresent(&detail.Address, p.Address)
	setIfPresent(&detail.City, p.City)
	setIfPresent(&detail.State, p.State)
	setIfPresent(&detail.Country, p.Country)
	setIfPresent(&detail.ZipCode, p.ZipCode)
	setIfPresent(&detail.DocumentType, p.DocumentType)
	setIfPresent(&detail.DocumentNumber, p.DocumentNumber)
	setIfPresent(&detail.DocumentURL, attachment)

	if err := tx.SaveGuestDetail(ctx, detail); err != nil {
		return nil, apperrors.NewInternalError("failed to save guest detail", err)
	}
	return detail, nil
}

// applyGuestPayload ghi đè các trường có giá trị, giữ nguyên trường rỗng
func applyGuestPayload(guest *models.Guest, p dto.GuestPayload) error {
	setIfPresent(&guest.FirstName, p.FirstName)
	setIfPresent(&guest.LastName, p.LastName)
	setIfPresent(&guest.Email, p.Email)
	setIfPresent(&guest.Phone, p.Phone)
	setIfPresent(&guest.Gender, p.Gender)
	setIfPresent(&guest.Nationality, p.Nationality)

	if dob := strings.TrimSpace(p.DateOfBirth); dob != "" {
		t, err := validator.ParseDate("date_of_birth", dob)
		if err != nil {
			return err
		}
		guest.DateOfBirth = &t
	}
	return nil
}

func setIfPresent(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func guestWriteError(err error) error {
	if errors.Is(err, store.ErrDuplicate) {
		return apperrors.NewConflictError("email or phone already belongs to another guest")
	}
	return apperrors.NewInternalError("failed to save guest", err)
}

// guestUpdateAllowed id nằm trong tập khách của reservation
func guestUpdateAllowed(r *models.Reservation, id uint) bool {
	for _, gid := range r.GuestIDs() {
		if gid == id {
			return true
		}
	}
	return false
}

// updateReservationGuests áp cập nhật cho khách thuộc reservation, bỏ qua id lạ
func (g *GuestResolver) updateReservationGuests(ctx context.Context, tx store.Store, r *models.Reservation, payloads []dto.GuestPayload) error {
	for i, p := range payloads {
		if p.ID == 0 || !guestUpdateAllowed(r, p.ID) {
			g.logger.Debug("ignoring guest update %d (id %d) not on reservation %d", i, p.ID, r.ID)
			continue
		}
		guest, err := tx.GetGuest(ctx, p.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return apperrors.NewInternalError("failed to load guest", err)
		}
		if err := applyGuestPayload(guest, p); err != nil {
			return err
		}
		if err := tx.UpdateGuest(ctx, guest); err != nil {
			return guestWriteError(err)
		}
		if _, err := g.upsertDetail(ctx, tx, guest.ID, p, ""); err != nil {
			return err
		}
	}
	return nil
}
