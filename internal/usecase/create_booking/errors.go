package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrRoomNotBookable возвращается, когда администратор запретил бронировать комнату
	ErrRoomNotBookable = errors.New("create_booking: room is not bookable")

	// ErrInvalidInterval возвращается, когда end_time <= start_time
	ErrInvalidInterval = errors.New("create_booking: end_time must be after start_time")

	// ErrDurationExceeded возвращается, когда бронирование длиннее MaxBookingDuration
	ErrDurationExceeded = errors.New("create_booking: booking duration exceeds 3 hours")

	// ErrRoomConflict возвращается, когда интервал пересекается с существующим бронированием
	ErrRoomConflict = errors.New("create_booking: room is already booked for this time")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Значения метки result для метрики booking_admissions_total
const (
	resultAdmitted    = "admitted"
	resultInvalid     = "invalid"
	resultNotFound    = "not_found"
	resultNotBookable = "not_bookable"
	resultDuration    = "duration_exceeded"
	resultConflict    = "conflict"
	resultError       = "error"
)

func admissionResult(err error) string {
	switch {
	case err == nil:
		return resultAdmitted
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidInterval):
		return resultInvalid
	case errors.Is(err, ErrRoomNotFound):
		return resultNotFound
	case errors.Is(err, ErrRoomNotBookable):
		return resultNotBookable
	case errors.Is(err, ErrDurationExceeded):
		return resultDuration
	case errors.Is(err, ErrRoomConflict):
		return resultConflict
	default:
		return resultError
	}
}
