package rooms

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("room not found")

	// ErrFloorNotFound возвращается, когда указанный этаж не существует
	ErrFloorNotFound = errors.New("floor not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
