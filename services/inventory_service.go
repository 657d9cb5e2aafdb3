package services

import (
	"context"
	"errors"
	"fmt"

	"hotelpms/commands"
	"hotelpms/constants"
	"hotelpms/dto"
	apperrors "hotelpms/errors"
	"hotelpms/models"
	"hotelpms/services/logger"
	"hotelpms/services/notification"
	"hotelpms/store"
	"hotelpms/validator"

	"github.com/lib/pq"
)

// InventoryService quản lý loại phòng và phòng
type InventoryService struct {
	store    store.Store
	cache    Cache
	notifier notification.Service
	clock    Clock
	logger   logger.Logger
}

func NewInventoryService(st store.Store, cache Cache, notifier notification.Service, clock Clock, log logger.Logger) *InventoryService {
	if cache == nil {
		cache = NopCache{}
	}
	if notifier == nil {
		notifier = notification.NopService{}
	}
	return &InventoryService{store: st, cache: cache, notifier: notifier, clock: clock, logger: log}
}

func (s *InventoryService) CreateRoomType(ctx context.Context, req *dto.RoomTypeRequest) (*models.RoomType, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	rt := &models.RoomType{}
	applyRoomType(rt, req)
	if err := validator.ValidateRoomType(rt); err != nil {
		return nil, err
	}

	if err := s.store.CreateRoomType(ctx, rt); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("room type %q already exists", rt.Name))
		}
		return nil, apperrors.NewInternalError("failed to create room type", err)
	}
	s.invalidateRoomTypes(ctx)
	return rt, nil
}

func (s *InventoryService) UpdateRoomType(ctx context.Context, id uint, req *dto.RoomTypeRequest) (*models.RoomType, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	rt, err := s.GetRoomType(ctx, id)
	if err != nil {
		return nil, err
	}
	applyRoomType(rt, req)
	if err := validator.ValidateRoomType(rt); err != nil {
		return nil, err
	}

	if err := s.store.UpdateRoomType(ctx, rt); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("room type %q already exists", rt.Name))
		}
		return nil, apperrors.NewInternalError("failed to update room type", err)
	}
	s.invalidateRoomTypes(ctx)
	return rt, nil
}

func applyRoomType(rt *models.RoomType, req *dto.RoomTypeRequest) {
	rt.Name = req.Name
	rt.Price = req.Price
	rt.Capacity = req.Capacity
	rt.BedCount = req.BedCount
	rt.BedType = req.BedType
	rt.AmenityIDs = pq.Int64Array(req.AmenityIDs)
	rt.Size = req.Size
}

func (s *InventoryService) GetRoomType(ctx context.Context, id uint) (*models.RoomType, error) {
	rt, err := s.store.GetRoomType(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("room type %d not found", id))
		}
		return nil, apperrors.NewInternalError("failed to load room type", err)
	}
	return rt, nil
}

// ListRoomTypes đọc qua cache
func (s *InventoryService) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	var cached []models.RoomType
	if err := s.cache.Get(ctx, roomTypesCacheKey, &cached); err == nil {
		return cached, nil
	}

	types, err := s.store.ListRoomTypes(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list room types", err)
	}
	if err := s.cache.Set(ctx, roomTypesCacheKey, types, roomTypeCacheTTL); err != nil {
		s.logger.Warn("room type cache write failed: %v", err)
	}
	return types, nil
}

func (s *InventoryService) invalidateRoomTypes(ctx context.Context) {
	if err := s.cache.Delete(ctx, roomTypesCacheKey); err != nil {
		s.logger.Warn("failed to invalidate room type cache: %v", err)
	}
}

func (s *InventoryService) CreateRoom(ctx context.Context, req *dto.RoomRequest) (*models.Room, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	room := &models.Room{
		RoomNumber: req.RoomNumber,
		RoomTypeID: req.RoomTypeID,
		Status:     req.Status,
		Floor:      req.Floor,
	}
	if err := s.saveRoom(ctx, room, true); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *InventoryService) UpdateRoom(ctx context.Context, id uint, req *dto.RoomRequest) (*models.Room, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	room.RoomNumber = req.RoomNumber
	room.RoomTypeID = req.RoomTypeID
	room.Floor = req.Floor
	if req.Status != "" {
		room.Status = req.Status
	}
	room.RoomType = nil
	if err := s.saveRoom(ctx, room, false); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *InventoryService) saveRoom(ctx context.Context, room *models.Room, create bool) error {
	if room.Status == "" {
		room.Status = constants.RoomStatusAvailable
	}
	if err := validator.ValidateRoom(room); err != nil {
		return err
	}
	rt, err := s.GetRoomType(ctx, room.RoomTypeID)
	if err != nil {
		return err
	}

	if create {
		err = s.store.CreateRoom(ctx, room)
	} else {
		err = s.store.UpdateRoom(ctx, room)
	}
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return apperrors.NewConflictError(fmt.Sprintf("room number %s already exists", room.RoomNumber))
		}
		return apperrors.NewInternalError("failed to save room", err)
	}
	room.RoomType = rt
	return nil
}

func (s *InventoryService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.store.GetRoom(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("room %d not found", id))
		}
		return nil, apperrors.NewInternalError("failed to load room", err)
	}
	return room, nil
}

func (s *InventoryService) ListRooms(ctx context.Context, q dto.RoomQuery) ([]models.Room, error) {
	rooms, err := s.store.ListRooms(ctx, store.RoomFilter{Status: q.Status, RoomTypeID: q.RoomTypeID, Floor: q.Floor})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list rooms", err)
	}
	return rooms, nil
}

// SetRoomStatus housekeeping đổi trạng thái phòng và đẩy lên bảng realtime
func (s *InventoryService) SetRoomStatus(ctx context.Context, id uint, status string) (*models.Room, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	room.Status = status
	if err := room.ValidateStatus(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidStatus, err.Error(), nil)
	}

	err = s.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := tx.LockRooms(ctx, []uint{id}); err != nil {
			return err
		}
		return commands.NewSetRoomStatusCommand(tx, []uint{id}, status).Execute(ctx)
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update room status", err)
	}

	event := notification.NewMessageBuilder(notification.EventRoomStatusChanged, s.clock.Now()).
		Rooms([]uint{id}).
		Data(map[string]string{"room_number": room.RoomNumber, "status": status}).
		Build()
	if err := s.notifier.Send(ctx, event); err != nil {
		s.logger.Error("failed to broadcast room %d status: %v", id, err)
	}
	return room, nil
}
