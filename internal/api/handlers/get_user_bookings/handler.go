package get_user_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Возвращает только бронирования текущего пользователя, в том числе прошедшие
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetUserBookings(r.Context(), identity)
	if err != nil {
		h.logger.Error("GET /bookings - Failed to get user bookings: user_id=%d, error=%v", identity.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
