package check_availability

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модель запроса на проверку доступности комнаты
type Request struct {
	RoomID    int64
	StartTime time.Time
	EndTime   time.Time
}

// Response результат проверки. Носит справочный характер: без блокировок,
// итоговое решение принимается при создании бронирования
type Response struct {
	RoomID     int64
	StartTime  time.Time
	EndTime    time.Time
	IsBookable bool
	Available  bool              // IsBookable и нет пересечений
	Conflicts  []*domain.Booking // Пересекающиеся бронирования
}
