package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
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

// Handle DELETE /api/v1/bookings/{id}
// Повторная отмена того же бронирования даёт 404
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.ParseID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Cancel(r.Context(), bookingID, identity); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("DELETE /bookings/{id} - Access denied: booking_id=%d, user_id=%d",
				bookingID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking cancelled successfully: booking_id=%d, user_id=%d",
		bookingID, identity.UserID)
	handlers.RespondNoContent(w)
}
