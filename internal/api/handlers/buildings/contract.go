package buildings

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/buildings/models"
)

type BuildingService interface {
	List(ctx context.Context) (*models.BuildingListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.BuildingResponse, error)
	Create(ctx context.Context, req *models.BuildingRequest) (*models.BuildingResponse, error)
	Update(ctx context.Context, id int64, req *models.BuildingRequest) (*models.BuildingResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
