package services

import (
	"context"
	"errors"
	"fmt"

	"hotelpms/dto"
	apperrors "hotelpms/errors"
	"hotelpms/models"
	"hotelpms/store"
	"hotelpms/validator"
)

// OfferService quản lý ưu đãi giá và gói dịch vụ
type OfferService struct {
	store store.Store
}

func NewOfferService(st store.Store) *OfferService {
	return &OfferService{store: st}
}

func (s *OfferService) CreateOffer(ctx context.Context, req *dto.OfferRequest) (*models.PricingOffer, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	from, err := validator.ParseDate("valid_from", req.ValidFrom)
	if err != nil {
		return nil, err
	}
	to, err := validator.ParseDate("valid_to", req.ValidTo)
	if err != nil {
		return nil, err
	}

	offer := &models.PricingOffer{
		RoomTypeID:    req.RoomTypeID,
		Kind:          req.Kind,
		ValidFrom:     from,
		ValidTo:       to,
		DiscountValue: req.DiscountValue,
	}
	if err := validator.ValidateOffer(offer); err != nil {
		return nil, err
	}

	if _, err := s.store.GetRoomType(ctx, req.RoomTypeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("room type %d not found", req.RoomTypeID))
		}
		return nil, apperrors.NewInternalError("failed to load room type", err)
	}

	if err := s.store.CreateOffer(ctx, offer); err != nil {
		return nil, apperrors.NewInternalError("failed to create offer", err)
	}
	return offer, nil
}

func (s *OfferService) ListOffers(ctx context.Context) ([]models.PricingOffer, error) {
	offers, err := s.store.ListOffers(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list offers", err)
	}
	return offers, nil
}

func (s *OfferService) DeleteOffer(ctx context.Context, id uint) error {
	if err := s.store.DeleteOffer(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NewNotFoundError(fmt.Sprintf("offer %d not found", id))
		}
		return apperrors.NewInternalError("failed to delete offer", err)
	}
	return nil
}

func (s *OfferService) CreatePackage(ctx context.Context, req *dto.PackageRequest) (*models.ServicePackage, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	pkg := &models.ServicePackage{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := s.store.CreateServicePackage(ctx, pkg); err != nil {
		return nil, apperrors.NewInternalError("failed to create service package", err)
	}
	return pkg, nil
}

func (s *OfferService) ListPackages(ctx context.Context) ([]models.ServicePackage, error) {
	pkgs, err := s.store.ListServicePackages(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list service packages", err)
	}
	return pkgs, nil
}
