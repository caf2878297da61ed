package buildings

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BuildingRepository интерфейс репозитория зданий
type BuildingRepository interface {
	Create(ctx context.Context, building *domain.Building) (*domain.Building, error)
	GetByID(ctx context.Context, id int64) (*domain.Building, error)
	List(ctx context.Context) ([]*domain.Building, error)
	Update(ctx context.Context, building *domain.Building) (*domain.Building, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
