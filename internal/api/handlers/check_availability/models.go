package check_availability

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-RoomBookingService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Room       int64              `json:"room"`
	StartTime  string             `json:"start_time"`
	EndTime    string             `json:"end_time"`
	IsBookable bool               `json:"is_bookable"`
	Available  bool               `json:"available"`
	Conflicts  []ConflictResponse `json:"conflicts"`
}

// ConflictResponse пересекающееся бронирование без контактных данных владельца
type ConflictResponse struct {
	ID        int64  `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	conflicts := make([]ConflictResponse, 0, len(resp.Conflicts))
	for _, b := range resp.Conflicts {
		conflicts = append(conflicts, ConflictResponse{
			ID:        b.ID,
			StartTime: b.StartTime.Format(domain.TimeFormat),
			EndTime:   b.EndTime.Format(domain.TimeFormat),
		})
	}

	return &AvailabilityResponse{
		Room:       resp.RoomID,
		StartTime:  resp.StartTime.Format(domain.TimeFormat),
		EndTime:    resp.EndTime.Format(domain.TimeFormat),
		IsBookable: resp.IsBookable,
		Available:  resp.Available,
		Conflicts:  conflicts,
	}
}
