package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Room        int64     `json:"room"`
	Name        *string   `json:"name"`
	PhoneNumber *string   `json:"phone_number"`
	Email       *string   `json:"email"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		Room:        b.RoomID,
		Name:        b.Name,
		PhoneNumber: b.PhoneNumber,
		Email:       b.Email,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		CreatedAt:   b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}

	return result
}
