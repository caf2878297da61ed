package floors

import (
	"context"
	"errors"
	"fmt"

	floorRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/floor"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/floors/models"
)

// Service сервис справочника этажей
type Service struct {
	floorRepo FloorRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса этажей
func NewService(floorRepo FloorRepository, logger Logger) *Service {
	return &Service{
		floorRepo: floorRepo,
		logger:    logger,
	}
}

// List возвращает все этажи с вложенными зданиями
func (s *Service) List(ctx context.Context) (*models.FloorListResponse, error) {
	floors, err := s.floorRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainFloorList(floors), nil
}

// GetByID получает этаж по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.FloorResponse, error) {
	floor, err := s.floorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("GetByID", id, err)
	}
	return models.FromDomainFloor(floor), nil
}

// Create создает этаж в указанном здании
func (s *Service) Create(ctx context.Context, req *models.FloorRequest) (*models.FloorResponse, error) {
	created, err := s.floorRepo.Create(ctx, req.ToDomain())
	if err != nil {
		return nil, s.mapError("Create", 0, err)
	}

	s.logger.Info("Create: created floor id=%d in building id=%d", created.ID, created.BuildingID)
	return s.GetByID(ctx, created.ID)
}

// Update полностью заменяет данные этажа
func (s *Service) Update(ctx context.Context, id int64, req *models.FloorRequest) (*models.FloorResponse, error) {
	floor := req.ToDomain()
	floor.ID = id

	if err := s.floorRepo.Update(ctx, floor); err != nil {
		return nil, s.mapError("Update", id, err)
	}

	s.logger.Info("Update: updated floor id=%d", id)
	return s.GetByID(ctx, id)
}

// Delete удаляет этаж вместе с комнатами и бронированиями
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.floorRepo.Delete(ctx, id); err != nil {
		return s.mapError("Delete", id, err)
	}

	s.logger.Info("Delete: deleted floor id=%d", id)
	return nil
}

func (s *Service) mapError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, floorRepo.ErrFloorNotFound):
		s.logger.Warn("%s: floor id=%d not found", op, id)
		return ErrFloorNotFound
	case errors.Is(err, floorRepo.ErrBuildingNotFound):
		s.logger.Warn("%s: referenced building not found", op)
		return ErrBuildingNotFound
	}
	s.logger.Error("%s: repository error for floor id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
