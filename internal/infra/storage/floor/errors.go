package floor

import "errors"

var (
	// ErrFloorNotFound возвращается, когда этаж не найден
	ErrFloorNotFound = errors.New("floor.repository: floor not found")

	// ErrBuildingNotFound возвращается, когда этаж ссылается на несуществующее здание
	ErrBuildingNotFound = errors.New("floor.repository: referenced building not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("floor.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("floor.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("floor.repository: failed to scan row")
)
