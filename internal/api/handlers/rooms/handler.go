package rooms

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
)

const (
	msgInvalidRoomID      = "некорректный ID комнаты"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "комната не найдена"
	msgFloorNotFound      = "указанный этаж не существует"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/rooms
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /rooms - Failed to list rooms: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/rooms/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseID(r, "id")
	if err != nil {
		h.logger.Warn("GET /rooms/{id} - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "GET /rooms/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/rooms
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RoomRequest
	if !h.decode(w, r, "POST /rooms", &req) {
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /rooms", 0, err)
		return
	}

	h.logger.Info("POST /rooms - Room created: room_id=%d, floor_id=%d", result.ID, req.Floor)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/rooms/{id}
// is_booked в теле игнорируется
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /rooms/{id} - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	var req models.RoomRequest
	if !h.decode(w, r, "PUT /rooms/{id}", &req) {
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /rooms/{id}", id, err)
		return
	}

	h.logger.Info("PUT /rooms/{id} - Room updated: room_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/rooms/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /rooms/{id} - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, "DELETE /rooms/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /rooms/{id} - Room deleted: room_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string, req *models.RoomRequest) bool {
	if err := handlers.DecodeJSON(r, req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}

	if fields := handlers.Validate(req); fields != nil {
		h.logger.Warn("%s - Validation failed: %v", route, fields)
		handlers.RespondValidationError(w, handlers.MsgValidationFailed, fields)
		return false
	}
	return true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, rooms.ErrRoomNotFound):
		h.logger.Warn("%s - Room not found: room_id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, rooms.ErrFloorNotFound):
		h.logger.Warn("%s - Floor does not exist: room_id=%d", route, id)
		handlers.RespondValidationError(w, msgFloorNotFound, map[string]string{"floor": "does_not_exist"})

	default:
		h.logger.Error("%s - Service error: room_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
