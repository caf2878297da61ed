package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Room, error)
	RefreshBooked(ctx context.Context, id int64, now time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
