package buildings

import (
	"context"
	"errors"
	"fmt"

	buildingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/building"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/buildings/models"
)

// Service сервис справочника зданий
type Service struct {
	buildingRepo BuildingRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса зданий
func NewService(buildingRepo BuildingRepository, logger Logger) *Service {
	return &Service{
		buildingRepo: buildingRepo,
		logger:       logger,
	}
}

// List возвращает все здания
func (s *Service) List(ctx context.Context) (*models.BuildingListResponse, error) {
	buildings, err := s.buildingRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBuildingList(buildings), nil
}

// GetByID получает здание по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BuildingResponse, error) {
	building, err := s.buildingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("GetByID", id, err)
	}
	return models.FromDomainBuilding(building), nil
}

// Create создает здание
func (s *Service) Create(ctx context.Context, req *models.BuildingRequest) (*models.BuildingResponse, error) {
	created, err := s.buildingRepo.Create(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created building %s (id=%d)", created, created.ID)
	return models.FromDomainBuilding(created), nil
}

// Update полностью заменяет данные здания
func (s *Service) Update(ctx context.Context, id int64, req *models.BuildingRequest) (*models.BuildingResponse, error) {
	building := req.ToDomain()
	building.ID = id

	updated, err := s.buildingRepo.Update(ctx, building)
	if err != nil {
		return nil, s.mapError("Update", id, err)
	}

	s.logger.Info("Update: updated building id=%d", id)
	return models.FromDomainBuilding(updated), nil
}

// Delete удаляет здание вместе с этажами, комнатами и бронированиями
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.buildingRepo.Delete(ctx, id); err != nil {
		return s.mapError("Delete", id, err)
	}

	s.logger.Info("Delete: deleted building id=%d", id)
	return nil
}

func (s *Service) mapError(op string, id int64, err error) error {
	if errors.Is(err, buildingRepo.ErrBuildingNotFound) {
		s.logger.Warn("%s: building id=%d not found", op, id)
		return ErrBuildingNotFound
	}
	s.logger.Error("%s: repository error for building id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
