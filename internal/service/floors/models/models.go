package models

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	buildingModels "github.com/m04kA/SMC-RoomBookingService/internal/service/buildings/models"
)

// FloorRequest запрос на создание или замену этажа
// building - ID здания
type FloorRequest struct {
	Building      int64   `json:"building" validate:"required,gt=0"`
	FloorNumber   *int    `json:"floor_number" validate:"required"`
	FloorName     string  `json:"floor_name" validate:"required,max=50"`
	FloorPlanning *string `json:"floor_planning" validate:"omitempty,max=255"`
}

// ToDomain конвертирует запрос в domain модель
func (r *FloorRequest) ToDomain() *domain.Floor {
	floor := &domain.Floor{
		BuildingID:    r.Building,
		FloorName:     r.FloorName,
		FloorPlanning: r.FloorPlanning,
	}
	if r.FloorNumber != nil {
		floor.FloorNumber = *r.FloorNumber
	}
	return floor
}

// FloorResponse ответ с данными этажа и вложенным зданием
type FloorResponse struct {
	ID            int64                            `json:"id"`
	Building      *buildingModels.BuildingResponse `json:"building"`
	FloorNumber   int                              `json:"floor_number"`
	FloorName     string                           `json:"floor_name"`
	FloorPlanning *string                          `json:"floor_planning"`
}

// FloorListResponse ответ со списком этажей
type FloorListResponse struct {
	Floors []FloorResponse `json:"floors"`
}

// FromDomainFloor конвертирует domain модель в DTO
func FromDomainFloor(f *domain.Floor) *FloorResponse {
	if f == nil {
		return nil
	}

	return &FloorResponse{
		ID:            f.ID,
		Building:      buildingModels.FromDomainBuilding(f.Building),
		FloorNumber:   f.FloorNumber,
		FloorName:     f.FloorName,
		FloorPlanning: f.FloorPlanning,
	}
}

// FromDomainFloorList конвертирует список domain моделей в DTO
func FromDomainFloorList(floors []*domain.Floor) *FloorListResponse {
	result := &FloorListResponse{
		Floors: make([]FloorResponse, 0, len(floors)),
	}
	for _, f := range floors {
		result.Floors = append(result.Floors, *FromDomainFloor(f))
	}
	return result
}
