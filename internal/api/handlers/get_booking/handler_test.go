package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type fakeService struct {
	resp *models.BookingResponse
	err  error
}

func (f *fakeService) GetByID(_ context.Context, _ int64, _ domain.Identity) (*models.BookingResponse, error) {
	return f.resp, f.err
}

func TestHandle(t *testing.T) {
	identity := domain.Identity{UserID: 1, Role: domain.RoleUser}

	tests := []struct {
		name string
		svc  *fakeService
		want int
	}{
		{name: "ok", svc: &fakeService{resp: &models.BookingResponse{ID: 3, UserID: 1, Room: 2}}, want: http.StatusOK},
		{name: "not found", svc: &fakeService{err: bookings.ErrBookingNotFound}, want: http.StatusNotFound},
		{name: "forbidden", svc: &fakeService{err: bookings.ErrAccessDenied}, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.svc, logger.NewNop())

			r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/bookings/3", nil), map[string]string{"id": "3"})
			r = r.WithContext(middleware.WithIdentity(r.Context(), identity))
			w := httptest.NewRecorder()

			h.Handle(w, r)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
