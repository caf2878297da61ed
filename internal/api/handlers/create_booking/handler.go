package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgRoomNotFound       = "комната не найдена"
	msgRoomNotBookable    = "комната недоступна для бронирования"
	msgInvalidInterval    = "время окончания должно быть позже времени начала"
	msgDurationExceeded   = "бронирование не может длиться больше 3 часов"
	msgRoomConflict       = "комната уже забронирована на это время"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings и POST /api/v1/bookings/{id}
// Комната берётся из тела запроса, ID в пути не используется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("POST /bookings - Validation failed: user_id=%d, fields=%v", identity.UserID, fields)
		handlers.RespondValidationError(w, handlers.MsgValidationFailed, fields)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(identity))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrRoomConflict):
			h.logger.Warn("POST /bookings - Room already booked: user_id=%d, room_id=%d", identity.UserID, req.Room)
			handlers.RespondBadRequest(w, msgRoomConflict)

		case errors.Is(err, createBooking.ErrDurationExceeded):
			h.logger.Warn("POST /bookings - Duration exceeded: user_id=%d, room_id=%d", identity.UserID, req.Room)
			handlers.RespondBadRequest(w, msgDurationExceeded)

		case errors.Is(err, createBooking.ErrInvalidInterval):
			h.logger.Warn("POST /bookings - Invalid interval: user_id=%d, room_id=%d", identity.UserID, req.Room)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrRoomNotBookable):
			h.logger.Warn("POST /bookings - Room not bookable: user_id=%d, room_id=%d", identity.UserID, req.Room)
			handlers.RespondBadRequest(w, msgRoomNotBookable)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%d", req.Room)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, room_id=%d, error=%v",
				identity.UserID, req.Room, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, room_id=%d",
		result.ID, identity.UserID, req.Room)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
