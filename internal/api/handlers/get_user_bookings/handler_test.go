package get_user_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

// fakeService отдаёт бронирования из пула, отфильтрованные по владельцу
type fakeService struct {
	pool  []*domain.Booking
	got   *domain.Identity
	calls int
	err   error
}

func (f *fakeService) GetUserBookings(_ context.Context, identity domain.Identity) (*models.BookingListResponse, error) {
	f.calls++
	f.got = &identity
	if f.err != nil {
		return nil, f.err
	}
	own := make([]*domain.Booking, 0)
	for _, b := range f.pool {
		if b.UserID == identity.UserID {
			own = append(own, b)
		}
	}
	return models.FromDomainBookingList(own), nil
}

var (
	start = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	owner = domain.Identity{UserID: 7, Role: domain.RoleUser}
	admin = domain.Identity{UserID: 1, Role: domain.RoleAdmin}
)

func pool() []*domain.Booking {
	return []*domain.Booking{
		{ID: 1, UserID: 7, RoomID: 1, StartTime: start, EndTime: start.Add(time.Hour)},
		{ID: 2, UserID: 8, RoomID: 1, StartTime: start.Add(time.Hour), EndTime: start.Add(2 * time.Hour)},
		{ID: 3, UserID: 7, RoomID: 2, StartTime: start.Add(-48 * time.Hour), EndTime: start.Add(-47 * time.Hour)},
	}
}

func newRequest(target string, identity *domain.Identity) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	if identity != nil {
		r = r.WithContext(middleware.WithIdentity(r.Context(), *identity))
	}
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) models.BookingListResponse {
	t.Helper()
	var body models.BookingListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandle_OnlyOwnBookings(t *testing.T) {
	svc := &fakeService{pool: pool()}
	h := NewHandler(svc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest("/api/v1/bookings", &owner))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, owner, *svc.got)

	body := decode(t, w)
	require.Len(t, body.Bookings, 2)
	assert.Equal(t, int64(1), body.Bookings[0].ID)
	assert.Equal(t, int64(3), body.Bookings[1].ID)
	for _, b := range body.Bookings {
		assert.Equal(t, owner.UserID, b.UserID)
	}
}

func TestHandle_QueryCannotSelectAnotherUser(t *testing.T) {
	svc := &fakeService{pool: pool()}
	h := NewHandler(svc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest("/api/v1/bookings?user_id=8", &owner))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, owner.UserID, svc.got.UserID)
	for _, b := range decode(t, w).Bookings {
		assert.NotEqual(t, int64(8), b.UserID)
	}
}

func TestHandle_AdminSeesOwnList(t *testing.T) {
	svc := &fakeService{pool: pool()}
	h := NewHandler(svc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest("/api/v1/bookings", &admin))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w).Bookings)
}

func TestHandle_EmptyListIsArray(t *testing.T) {
	h := NewHandler(&fakeService{}, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest("/api/v1/bookings", &owner))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bookings": []}`, w.Body.String())
}

func TestHandle_Unauthorized(t *testing.T) {
	svc := &fakeService{pool: pool()}
	h := NewHandler(svc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest("/api/v1/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, svc.calls)
}

func TestHandle_ServiceError(t *testing.T) {
	h := NewHandler(&fakeService{err: errors.New("connection reset")}, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest("/api/v1/bookings", &owner))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
