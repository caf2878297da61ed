package floors

import "errors"

var (
	// ErrFloorNotFound возвращается, когда этаж не найден
	ErrFloorNotFound = errors.New("floor not found")

	// ErrBuildingNotFound возвращается, когда указанное здание не существует
	ErrBuildingNotFound = errors.New("building not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
