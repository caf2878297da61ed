package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Identity.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: start_time is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: end_time is required", ErrInvalidInput)
	}

	return nil
}

// validateInterval проверяет правила интервала. Не зависит от состояния комнаты
func validateInterval(interval domain.Interval) error {
	if !interval.IsValid() {
		return ErrInvalidInterval
	}

	if interval.Duration() > domain.MaxBookingDuration {
		return fmt.Errorf("%w: got %s", ErrDurationExceeded, interval.Duration())
	}

	return nil
}
