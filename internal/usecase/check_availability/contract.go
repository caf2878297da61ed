package check_availability

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetOverlapping(ctx context.Context, roomID int64, interval domain.Interval) ([]*domain.Booking, error)
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
