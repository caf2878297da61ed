package models

import "github.com/m04kA/SMC-RoomBookingService/internal/domain"

// BuildingRequest запрос на создание или замену здания
type BuildingRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address" validate:"required"`
}

// ToDomain конвертирует запрос в domain модель
func (r *BuildingRequest) ToDomain() *domain.Building {
	return &domain.Building{
		Name:    r.Name,
		Address: r.Address,
	}
}

// BuildingResponse ответ с данными здания
type BuildingResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// BuildingListResponse ответ со списком зданий
type BuildingListResponse struct {
	Buildings []BuildingResponse `json:"buildings"`
}

// FromDomainBuilding конвертирует domain модель в DTO
func FromDomainBuilding(b *domain.Building) *BuildingResponse {
	if b == nil {
		return nil
	}

	return &BuildingResponse{
		ID:      b.ID,
		Name:    b.Name,
		Address: b.Address,
	}
}

// FromDomainBuildingList конвертирует список domain моделей в DTO
func FromDomainBuildingList(buildings []*domain.Building) *BuildingListResponse {
	result := &BuildingListResponse{
		Buildings: make([]BuildingResponse, 0, len(buildings)),
	}
	for _, b := range buildings {
		result.Buildings = append(result.Buildings, *FromDomainBuilding(b))
	}
	return result
}
