package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/roomlock"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetOverlapping(ctx context.Context, roomID int64, interval domain.Interval) ([]*domain.Booking, error)
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Room, error)
	SetBooked(ctx context.Context, id int64, booked bool) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker выдаёт блокировку комнаты на время проверки и вставки
type Locker interface {
	Acquire(ctx context.Context, key string) (roomlock.Lock, error)
}

// Metrics метрики попыток бронирования
type Metrics interface {
	IncBookingAdmission(result string)
	ObserveLockWait(duration time.Duration)
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type noopMetrics struct{}

func (noopMetrics) IncBookingAdmission(string)   {}
func (noopMetrics) ObserveLockWait(time.Duration) {}
