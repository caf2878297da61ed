package check_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-RoomBookingService/internal/usecase/check_availability"
)

const (
	msgInvalidRoomID   = "некорректный ID комнаты"
	msgInvalidStart    = "некорректный параметр start, ожидается RFC3339"
	msgInvalidEnd      = "некорректный параметр end, ожидается RFC3339"
	msgInvalidInterval = "время окончания должно быть позже времени начала"
	msgRoomNotFound    = "комната не найдена"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{id}/availability?start=...&end=...
// Результат справочный, место не резервируется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.ParseID(r, "id")
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	query := r.URL.Query()

	start, err := time.Parse(domain.TimeFormat, query.Get("start"))
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	end, err := time.Parse(domain.TimeFormat, query.Get("end"))
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid end: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEnd)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		RoomID:    roomID,
		StartTime: start.Truncate(domain.TimePrecision),
		EndTime:   end.Truncate(domain.TimePrecision),
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInterval), errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/availability - Invalid interval: room_id=%d", roomID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, checkAvailability.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/availability - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("GET /rooms/{id}/availability - Failed to check availability: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
