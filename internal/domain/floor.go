package domain

import "strconv"

// Floor represents a level of a building
type Floor struct {
	ID            int64
	BuildingID    int64
	FloorNumber   int
	FloorName     string
	FloorPlanning *string // путь или URL плана этажа, загрузка файлов вне сервиса

	// Building заполняется при чтении (вложенное представление)
	Building *Building
}

// DisplayName returns "<building>-<floor name>-<floor number>"
func (f *Floor) DisplayName() string {
	buildingName := ""
	if f.Building != nil {
		buildingName = f.Building.Name
	}
	return buildingName + "-" + f.FloorName + "-" + strconv.Itoa(f.FloorNumber)
}
