package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInvalidInterval возвращается, когда end <= start
	ErrInvalidInterval = errors.New("check_availability: end must be after start")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("check_availability: room not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
