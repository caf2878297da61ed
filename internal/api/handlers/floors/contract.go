package floors

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/floors/models"
)

type FloorService interface {
	List(ctx context.Context) (*models.FloorListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.FloorResponse, error)
	Create(ctx context.Context, req *models.FloorRequest) (*models.FloorResponse, error)
	Update(ctx context.Context, id int64, req *models.FloorRequest) (*models.FloorResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
