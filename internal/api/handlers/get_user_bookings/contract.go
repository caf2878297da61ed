package get_user_bookings

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetUserBookings(ctx context.Context, identity domain.Identity) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
