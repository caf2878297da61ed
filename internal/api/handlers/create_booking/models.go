package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// start_time/end_time в RFC3339, интервал полуоткрытый [start_time, end_time)
type CreateBookingRequest struct {
	Room        int64      `json:"room" validate:"required,gt=0"`
	Name        *string    `json:"name" validate:"omitempty,max=100"`
	PhoneNumber *string    `json:"phone_number" validate:"omitempty,max=100"`
	Email       *string    `json:"email" validate:"omitempty,email,max=254"`
	StartTime   *time.Time `json:"start_time" validate:"required"`
	EndTime     *time.Time `json:"end_time" validate:"required"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Room        int64   `json:"room"`
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	CreatedAt   string  `json:"created_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Вызывается после валидации, StartTime и EndTime заполнены
// Время обрезается до точности хранения (микросекунды)
func (r *CreateBookingRequest) ToUseCaseRequest(identity domain.Identity) *createBooking.Request {
	return &createBooking.Request{
		Identity:    identity,
		RoomID:      r.Room,
		Name:        r.Name,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		StartTime:   r.StartTime.Truncate(domain.TimePrecision),
		EndTime:     r.EndTime.Truncate(domain.TimePrecision),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		Room:        resp.RoomID,
		Name:        resp.Name,
		PhoneNumber: resp.PhoneNumber,
		Email:       resp.Email,
		StartTime:   resp.StartTime.Format(domain.TimeFormat),
		EndTime:     resp.EndTime.Format(domain.TimeFormat),
		CreatedAt:   resp.CreatedAt.Format(domain.TimeFormat),
	}
}
