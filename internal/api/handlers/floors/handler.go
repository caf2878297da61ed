package floors

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/floors"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/floors/models"
)

const (
	msgInvalidFloorID     = "некорректный ID этажа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "этаж не найден"
	msgBuildingNotFound   = "указанное здание не существует"
)

type Handler struct {
	service FloorService
	logger  Logger
}

func NewHandler(service FloorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/floors
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /floors - Failed to list floors: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/floors/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseID(r, "id")
	if err != nil {
		h.logger.Warn("GET /floors/{id} - Invalid floor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFloorID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "GET /floors/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/floors
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.FloorRequest
	if !h.decode(w, r, "POST /floors", &req) {
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /floors", 0, err)
		return
	}

	h.logger.Info("POST /floors - Floor created: floor_id=%d, building_id=%d", result.ID, req.Building)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/floors/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /floors/{id} - Invalid floor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFloorID)
		return
	}

	var req models.FloorRequest
	if !h.decode(w, r, "PUT /floors/{id}", &req) {
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /floors/{id}", id, err)
		return
	}

	h.logger.Info("PUT /floors/{id} - Floor updated: floor_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/floors/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /floors/{id} - Invalid floor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFloorID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, "DELETE /floors/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /floors/{id} - Floor deleted: floor_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string, req *models.FloorRequest) bool {
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
	case errors.Is(err, floors.ErrFloorNotFound):
		h.logger.Warn("%s - Floor not found: floor_id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, floors.ErrBuildingNotFound):
		h.logger.Warn("%s - Building does not exist: floor_id=%d", route, id)
		handlers.RespondValidationError(w, msgBuildingNotFound, map[string]string{"building": "does_not_exist"})

	default:
		h.logger.Error("%s - Service error: floor_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
