package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrOverlap возвращается, когда интервал пересекается с существующим бронированием комнаты
	// (нарушение EXCLUDE ограничения bookings_no_overlap)
	ErrOverlap = errors.New("booking.repository: interval overlaps existing booking")

	// ErrRoomNotFound возвращается, когда бронирование ссылается на несуществующую комнату
	ErrRoomNotFound = errors.New("booking.repository: referenced room not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
