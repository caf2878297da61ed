package rooms

import (
	"context"
	"errors"
	"fmt"

	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
)

// Service сервис справочника комнат
// Флаг is_booked здесь только читается, его ведут создание и отмена бронирований
type Service struct {
	roomRepo RoomRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса комнат
func NewService(roomRepo RoomRepository, logger Logger) *Service {
	return &Service{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// List возвращает все комнаты с вложенными этажами и зданиями
func (s *Service) List(ctx context.Context) (*models.RoomListResponse, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainRoomList(rooms), nil
}

// GetByID получает комнату по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RoomResponse, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("GetByID", id, err)
	}
	return models.FromDomainRoom(room), nil
}

// Create создает комнату на указанном этаже
func (s *Service) Create(ctx context.Context, req *models.RoomRequest) (*models.RoomResponse, error) {
	created, err := s.roomRepo.Create(ctx, req.ToDomain())
	if err != nil {
		return nil, s.mapError("Create", 0, err)
	}

	s.logger.Info("Create: created room %s (id=%d) on floor id=%d", created.DisplayName(), created.ID, created.FloorID)
	return s.GetByID(ctx, created.ID)
}

// Update заменяет административные поля комнаты
func (s *Service) Update(ctx context.Context, id int64, req *models.RoomRequest) (*models.RoomResponse, error) {
	room := req.ToDomain()
	room.ID = id

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, s.mapError("Update", id, err)
	}

	s.logger.Info("Update: updated room id=%d", id)
	return s.GetByID(ctx, id)
}

// Delete удаляет комнату вместе с бронированиями
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return s.mapError("Delete", id, err)
	}

	s.logger.Info("Delete: deleted room id=%d", id)
	return nil
}

func (s *Service) mapError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, roomRepo.ErrRoomNotFound):
		s.logger.Warn("%s: room id=%d not found", op, id)
		return ErrRoomNotFound
	case errors.Is(err, roomRepo.ErrFloorNotFound):
		s.logger.Warn("%s: referenced floor not found", op)
		return ErrFloorNotFound
	}
	s.logger.Error("%s: repository error for room id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
