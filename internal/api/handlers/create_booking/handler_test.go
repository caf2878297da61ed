package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

var user = domain.Identity{UserID: 7, Role: domain.RoleUser}

func newRequest(body string, identity *domain.Identity) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if identity != nil {
		r = r.WithContext(middleware.WithIdentity(r.Context(), *identity))
	}
	return r
}

const validBody = `{
	"room": 1,
	"name": "Ann",
	"email": "ann@example.com",
	"start_time": "2024-01-01T09:00:00Z",
	"end_time": "2024-01-01T10:00:00Z"
}`

func TestHandle_Created(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:        10,
		UserID:    7,
		RoomID:    1,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		CreatedAt: start.Add(-time.Hour),
	}}
	h := NewHandler(uc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest(validBody, &user))

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, user, uc.got.Identity)
	assert.Equal(t, int64(1), uc.got.RoomID)
	assert.True(t, start.Equal(uc.got.StartTime))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(10), body["id"])
	assert.Equal(t, float64(1), body["room"])
	assert.Equal(t, "2024-01-01T09:00:00Z", body["start_time"])
	assert.Equal(t, "2024-01-01T10:00:00Z", body["end_time"])
}

func TestHandle_KeepsSubSecondPrecision(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 250_000_000, time.UTC)
	end := time.Date(2024, 1, 1, 10, 0, 0, 750_000_000, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:        11,
		UserID:    7,
		RoomID:    1,
		StartTime: start,
		EndTime:   end,
		CreatedAt: start,
	}}
	h := NewHandler(uc, logger.NewNop())

	body := `{
	"room": 1,
	"name": "Ann",
	"email": "ann@example.com",
	"start_time": "2024-01-01T09:00:00.25Z",
	"end_time": "2024-01-01T10:00:00.75Z"
}`
	w := httptest.NewRecorder()
	h.Handle(w, newRequest(body, &user))

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, uc.got)
	assert.True(t, start.Equal(uc.got.StartTime))
	assert.True(t, end.Equal(uc.got.EndTime))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2024-01-01T09:00:00.25Z", resp["start_time"])
	assert.Equal(t, "2024-01-01T10:00:00.75Z", resp["end_time"])

	echoed, err := time.Parse(domain.TimeFormat, resp["end_time"].(string))
	require.NoError(t, err)
	assert.True(t, end.Equal(echoed))
}

func TestHandle_TruncatesToStoragePrecision(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{ID: 12, UserID: 7, RoomID: 1}}
	h := NewHandler(uc, logger.NewNop())

	body := `{
	"room": 1,
	"start_time": "2024-01-01T09:00:00.123456789Z",
	"end_time": "2024-01-01T10:00:00Z"
}`
	w := httptest.NewRecorder()
	h.Handle(w, newRequest(body, &user))

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, 123456000, uc.got.StartTime.Nanosecond())
}

func TestHandle_Unauthorized(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest(validBody, nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_BadPayload(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{name: "not json", body: `{`},
		{name: "bad time format", body: `{"room":1,"start_time":"2024-01-01 09:00","end_time":"2024-01-01T10:00:00Z"}`},
		{name: "missing times", body: `{"room":1}`, wantFields: []string{"start_time", "end_time"}},
		{name: "missing room", body: `{"start_time":"2024-01-01T09:00:00Z","end_time":"2024-01-01T10:00:00Z"}`, wantFields: []string{"room"}},
		{name: "bad email", body: `{"room":1,"email":"nope","start_time":"2024-01-01T09:00:00Z","end_time":"2024-01-01T10:00:00Z"}`, wantFields: []string{"email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			h := NewHandler(uc, logger.NewNop())

			w := httptest.NewRecorder()
			h.Handle(w, newRequest(tt.body, &user))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, uc.got)

			var body struct {
				Fields map[string]string `json:"fields"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			for _, f := range tt.wantFields {
				assert.Contains(t, body.Fields, f)
			}
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: createBooking.ErrRoomConflict, want: http.StatusBadRequest},
		{err: createBooking.ErrDurationExceeded, want: http.StatusBadRequest},
		{err: createBooking.ErrInvalidInterval, want: http.StatusBadRequest},
		{err: createBooking.ErrRoomNotBookable, want: http.StatusBadRequest},
		{err: createBooking.ErrInvalidInput, want: http.StatusBadRequest},
		{err: createBooking.ErrRoomNotFound, want: http.StatusNotFound},
		{err: fmt.Errorf("%w: boom", createBooking.ErrInternal), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())

			w := httptest.NewRecorder()
			h.Handle(w, newRequest(validBody, &user))

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
