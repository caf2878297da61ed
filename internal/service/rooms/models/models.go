package models

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	floorModels "github.com/m04kA/SMC-RoomBookingService/internal/service/floors/models"
)

// RoomRequest запрос на создание или замену комнаты
// floor - ID этажа. is_booked вычисляется сервисом и из запроса не читается
type RoomRequest struct {
	Floor      int64  `json:"floor" validate:"required,gt=0"`
	RoomNumber *int   `json:"room_number" validate:"required"`
	RoomName   string `json:"room_name" validate:"required,max=50"`
	Capacity   int    `json:"capacity" validate:"required,min=1"`
	IsBookable *bool  `json:"is_bookable"` // по умолчанию true
}

// ToDomain конвертирует запрос в domain модель
func (r *RoomRequest) ToDomain() *domain.Room {
	room := &domain.Room{
		FloorID:    r.Floor,
		RoomName:   r.RoomName,
		Capacity:   r.Capacity,
		IsBookable: true,
	}
	if r.RoomNumber != nil {
		room.RoomNumber = *r.RoomNumber
	}
	if r.IsBookable != nil {
		room.IsBookable = *r.IsBookable
	}
	return room
}

// RoomResponse ответ с данными комнаты и вложенным этажом
type RoomResponse struct {
	ID         int64                      `json:"id"`
	Floor      *floorModels.FloorResponse `json:"floor"`
	RoomNumber int                        `json:"room_number"`
	RoomName   string                     `json:"room_name"`
	Capacity   int                        `json:"capacity"`
	IsBooked   bool                       `json:"is_booked"`
	IsBookable bool                       `json:"is_bookable"`
}

// RoomListResponse ответ со списком комнат
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// FromDomainRoom конвертирует domain модель в DTO
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}

	return &RoomResponse{
		ID:         r.ID,
		Floor:      floorModels.FromDomainFloor(r.Floor),
		RoomNumber: r.RoomNumber,
		RoomName:   r.RoomName,
		Capacity:   r.Capacity,
		IsBooked:   r.IsBooked,
		IsBookable: r.IsBookable,
	}
}

// FromDomainRoomList конвертирует список domain моделей в DTO
func FromDomainRoomList(rooms []*domain.Room) *RoomListResponse {
	result := &RoomListResponse{
		Rooms: make([]RoomResponse, 0, len(rooms)),
	}
	for _, r := range rooms {
		result.Rooms = append(result.Rooms, *FromDomainRoom(r))
	}
	return result
}
