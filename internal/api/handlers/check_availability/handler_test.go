package check_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-RoomBookingService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type fakeUseCase struct {
	got  *checkAvailability.Request
	resp *checkAvailability.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error) {
	f.got = req
	return f.resp, f.err
}

func newRequest(id, query string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/"+id+"/availability?"+query, nil)
	return mux.SetURLVars(r, map[string]string{"id": id})
}

func TestHandle_WithConflict(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	email := "owner@example.com"

	uc := &fakeUseCase{resp: &checkAvailability.Response{
		RoomID:     1,
		StartTime:  start,
		EndTime:    end,
		IsBookable: true,
		Available:  false,
		Conflicts: []*domain.Booking{
			{ID: 4, RoomID: 1, UserID: 2, Email: &email, StartTime: start.Add(30 * time.Minute), EndTime: end.Add(time.Hour)},
		},
	}}
	h := NewHandler(uc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest("1", "start=2024-01-01T09:00:00Z&end=2024-01-01T10:00:00Z"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, start.Equal(uc.got.StartTime))
	assert.JSONEq(t, `{
		"room": 1,
		"start_time": "2024-01-01T09:00:00Z",
		"end_time": "2024-01-01T10:00:00Z",
		"is_bookable": true,
		"available": false,
		"conflicts": [{"id": 4, "start_time": "2024-01-01T09:30:00Z", "end_time": "2024-01-01T11:00:00Z"}]
	}`, w.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		query string
		err   error
		want  int
	}{
		{name: "bad room id", id: "x", query: "start=2024-01-01T09:00:00Z&end=2024-01-01T10:00:00Z", want: http.StatusBadRequest},
		{name: "missing start", id: "1", query: "end=2024-01-01T10:00:00Z", want: http.StatusBadRequest},
		{name: "bad end", id: "1", query: "start=2024-01-01T09:00:00Z&end=tomorrow", want: http.StatusBadRequest},
		{name: "inverted", id: "1", query: "start=2024-01-01T10:00:00Z&end=2024-01-01T09:00:00Z", err: checkAvailability.ErrInvalidInterval, want: http.StatusBadRequest},
		{name: "room not found", id: "1", query: "start=2024-01-01T09:00:00Z&end=2024-01-01T10:00:00Z", err: checkAvailability.ErrRoomNotFound, want: http.StatusNotFound},
		{name: "internal", id: "1", query: "start=2024-01-01T09:00:00Z&end=2024-01-01T10:00:00Z", err: checkAvailability.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())

			w := httptest.NewRecorder()
			h.Handle(w, newRequest(tt.id, tt.query))

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
