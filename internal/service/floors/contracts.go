package floors

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// FloorRepository интерфейс репозитория этажей
type FloorRepository interface {
	Create(ctx context.Context, floor *domain.Floor) (*domain.Floor, error)
	GetByID(ctx context.Context, id int64) (*domain.Floor, error)
	List(ctx context.Context) ([]*domain.Floor, error)
	Update(ctx context.Context, floor *domain.Floor) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
