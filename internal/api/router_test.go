package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

// stub отвечает 200 и пишет в заголовок, какой обработчик сработал
type stub struct {
	name string
}

func (s stub) write(w http.ResponseWriter, action string) {
	w.Header().Set("X-Handler", s.name+"."+action)
	w.WriteHeader(http.StatusOK)
}

func (s stub) Handle(w http.ResponseWriter, _ *http.Request) { s.write(w, "Handle") }
func (s stub) List(w http.ResponseWriter, _ *http.Request)   { s.write(w, "List") }
func (s stub) Get(w http.ResponseWriter, _ *http.Request)    { s.write(w, "Get") }
func (s stub) Create(w http.ResponseWriter, _ *http.Request) { s.write(w, "Create") }
func (s stub) Update(w http.ResponseWriter, _ *http.Request) { s.write(w, "Update") }
func (s stub) Delete(w http.ResponseWriter, _ *http.Request) { s.write(w, "Delete") }

func newTestRouter() http.Handler {
	log := logger.NewNop()
	return NewRouter(Handlers{
		Health:            stub{"health"},
		Buildings:         stub{"buildings"},
		Floors:            stub{"floors"},
		Rooms:             stub{"rooms"},
		CheckAvailability: stub{"availability"},
		CreateBooking:     stub{"create_booking"},
		GetBooking:        stub{"get_booking"},
		GetUserBookings:   stub{"get_user_bookings"},
		CancelBooking:     stub{"cancel_booking"},
	}, Options{
		Auth:   middleware.NewAuth(config.AuthModeHeader, "", log),
		Logger: log,
	})
}

func TestRouter(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method      string
		path        string
		role        string // пусто - анонимный запрос
		wantStatus  int
		wantHandler string
	}{
		{method: http.MethodGet, path: "/health", wantStatus: http.StatusOK, wantHandler: "health.Handle"},

		{method: http.MethodGet, path: "/api/v1/buildings", wantStatus: http.StatusOK, wantHandler: "buildings.List"},
		{method: http.MethodGet, path: "/api/v1/floors/3", wantStatus: http.StatusOK, wantHandler: "floors.Get"},
		{method: http.MethodGet, path: "/api/v1/rooms/3/availability", wantStatus: http.StatusOK, wantHandler: "availability.Handle"},
		{method: http.MethodPost, path: "/api/v1/rooms", wantStatus: http.StatusUnauthorized},
		{method: http.MethodPost, path: "/api/v1/rooms", role: "user", wantStatus: http.StatusForbidden},
		{method: http.MethodPost, path: "/api/v1/rooms", role: "admin", wantStatus: http.StatusOK, wantHandler: "rooms.Create"},
		{method: http.MethodPut, path: "/api/v1/buildings/1", role: "admin", wantStatus: http.StatusOK, wantHandler: "buildings.Update"},
		{method: http.MethodDelete, path: "/api/v1/floors/1", role: "user", wantStatus: http.StatusForbidden},

		{method: http.MethodGet, path: "/api/v1/bookings", wantStatus: http.StatusUnauthorized},
		{method: http.MethodGet, path: "/api/v1/bookings", role: "user", wantStatus: http.StatusOK, wantHandler: "get_user_bookings.Handle"},
		{method: http.MethodPost, path: "/api/v1/bookings", role: "user", wantStatus: http.StatusOK, wantHandler: "create_booking.Handle"},
		{method: http.MethodPost, path: "/api/v1/bookings/5", role: "user", wantStatus: http.StatusOK, wantHandler: "create_booking.Handle"},
		{method: http.MethodGet, path: "/api/v1/bookings/5", role: "user", wantStatus: http.StatusOK, wantHandler: "get_booking.Handle"},
		{method: http.MethodDelete, path: "/api/v1/bookings/5", role: "user", wantStatus: http.StatusOK, wantHandler: "cancel_booking.Handle"},
		{method: http.MethodDelete, path: "/api/v1/bookings/5", wantStatus: http.StatusUnauthorized},

		{method: http.MethodPatch, path: "/api/v1/bookings/5", role: "user", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" "+tt.role, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.role != "" {
				r.Header.Set(middleware.HeaderUserID, "1")
				r.Header.Set(middleware.HeaderUserRole, tt.role)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantHandler, w.Header().Get("X-Handler"))
			if tt.wantStatus != http.StatusMethodNotAllowed {
				assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
			}
		})
	}
}
