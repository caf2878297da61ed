package buildings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/buildings"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/buildings/models"
)

const (
	msgInvalidBuildingID  = "некорректный ID здания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "здание не найдено"
)

type Handler struct {
	service BuildingService
	logger  Logger
}

func NewHandler(service BuildingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/buildings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /buildings - Failed to list buildings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/buildings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "GET /buildings/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "GET /buildings/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/buildings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r, "POST /buildings")
	if !ok {
		return
	}

	result, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, "POST /buildings", 0, err)
		return
	}

	h.logger.Info("POST /buildings - Building created: building_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/buildings/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "PUT /buildings/{id}")
	if !ok {
		return
	}

	req, ok := h.decode(w, r, "PUT /buildings/{id}")
	if !ok {
		return
	}

	result, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.respondServiceError(w, "PUT /buildings/{id}", id, err)
		return
	}

	h.logger.Info("PUT /buildings/{id} - Building updated: building_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/buildings/{id}
// Каскадно удаляет этажи, комнаты и их бронирования
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "DELETE /buildings/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, "DELETE /buildings/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /buildings/{id} - Building deleted: building_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.ParseID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid building ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBuildingID)
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string) (*models.BuildingRequest, bool) {
	var req models.BuildingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return nil, false
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("%s - Validation failed: %v", route, fields)
		handlers.RespondValidationError(w, handlers.MsgValidationFailed, fields)
		return nil, false
	}
	return &req, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, buildings.ErrBuildingNotFound):
		h.logger.Warn("%s - Building not found: building_id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("%s - Service error: building_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
