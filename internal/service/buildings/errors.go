package buildings

import "errors"

var (
	// ErrBuildingNotFound возвращается, когда здание не найдено
	ErrBuildingNotFound = errors.New("building not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
