package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Identity domain.Identity // Кто бронирует (владелец бронирования)
	RoomID   int64           // ID комнаты

	// Контактные данные (опционально)
	Name        *string
	PhoneNumber *string
	Email       *string

	StartTime time.Time // Начало интервала (включительно)
	EndTime   time.Time // Конец интервала (не включительно)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	UserID      int64
	RoomID      int64
	Name        *string
	PhoneNumber *string
	Email       *string
	StartTime   time.Time
	EndTime     time.Time
	CreatedAt   time.Time
}
