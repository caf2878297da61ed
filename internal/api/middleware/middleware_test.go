package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

const testSecret = "test-secret"

// echoIdentity отвечает 200 и пишет найденного пользователя в заголовки
func echoIdentity() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := GetIdentity(r.Context()); ok {
			w.Header().Set("X-Got-User", strconv.FormatInt(identity.UserID, 10))
			w.Header().Set("X-Got-Role", string(identity.Role))
		}
		w.WriteHeader(http.StatusOK)
	})
}

func signToken(t *testing.T, sub, role string, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestAuth_JWT(t *testing.T) {
	auth := NewAuth(config.AuthModeJWT, testSecret, logger.NewNop())
	h := auth.Middleware(echoIdentity())

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
		wantRole   string
	}{
		{
			name:       "no credentials is anonymous",
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid user token",
			header:     "Bearer " + signToken(t, "7", "user", jwt.SigningMethodHS256, []byte(testSecret)),
			wantStatus: http.StatusOK,
			wantUser:   "7",
			wantRole:   "user",
		},
		{
			name:       "role defaults to user",
			header:     "Bearer " + signToken(t, "3", "", jwt.SigningMethodHS256, []byte(testSecret)),
			wantStatus: http.StatusOK,
			wantUser:   "3",
			wantRole:   "user",
		},
		{
			name:       "admin token",
			header:     "Bearer " + signToken(t, "1", "admin", jwt.SigningMethodHS256, []byte(testSecret)),
			wantStatus: http.StatusOK,
			wantUser:   "1",
			wantRole:   "admin",
		},
		{
			name:       "wrong secret",
			header:     "Bearer " + signToken(t, "7", "user", jwt.SigningMethodHS256, []byte("other")),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong algorithm",
			header:     "Bearer " + signToken(t, "7", "user", jwt.SigningMethodHS512, []byte(testSecret)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non numeric subject",
			header:     "Bearer " + signToken(t, "alice", "user", jwt.SigningMethodHS256, []byte(testSecret)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown role",
			header:     "Bearer " + signToken(t, "7", "root", jwt.SigningMethodHS256, []byte(testSecret)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantUser, w.Header().Get("X-Got-User"))
			assert.Equal(t, tt.wantRole, w.Header().Get("X-Got-Role"))
		})
	}
}

func TestAuth_Headers(t *testing.T) {
	auth := NewAuth(config.AuthModeHeader, "", logger.NewNop())
	h := auth.Middleware(echoIdentity())

	t.Run("trusted headers", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderUserID, "5")
		r.Header.Set(HeaderUserRole, "admin")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-Got-User"))
		assert.Equal(t, "admin", w.Header().Get("X-Got-Role"))
	})

	t.Run("invalid user id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderUserID, "-1")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bearer ignored in header mode", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer whatever")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-Got-User"))
	})
}

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Info(string, ...interface{})  {}
func (l *recordingLogger) Error(string, ...interface{}) {}

func (l *recordingLogger) Warn(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, v...))
}

func TestNewAuth_WarnsInHeaderMode(t *testing.T) {
	log := &recordingLogger{}
	NewAuth(config.AuthModeHeader, "", log)

	require.Len(t, log.warns, 1)
	assert.Contains(t, log.warns[0], HeaderUserRole)

	log = &recordingLogger{}
	NewAuth(config.AuthModeJWT, testSecret, log)
	assert.Empty(t, log.warns)
}

func TestRequireIdentityAndAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name        string
		identity    *domain.Identity
		wantUser    int
		wantAdminly int
	}{
		{name: "anonymous", wantUser: http.StatusUnauthorized, wantAdminly: http.StatusUnauthorized},
		{name: "user", identity: &domain.Identity{UserID: 2, Role: domain.RoleUser}, wantUser: http.StatusOK, wantAdminly: http.StatusForbidden},
		{name: "admin", identity: &domain.Identity{UserID: 1, Role: domain.RoleAdmin}, wantUser: http.StatusOK, wantAdminly: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newReq := func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/", nil)
				if tt.identity != nil {
					r = r.WithContext(WithIdentity(r.Context(), *tt.identity))
				}
				return r
			}

			w := httptest.NewRecorder()
			RequireIdentity(ok).ServeHTTP(w, newReq())
			assert.Equal(t, tt.wantUser, w.Code)

			w = httptest.NewRecorder()
			RequireAdmin(ok).ServeHTTP(w, newReq())
			assert.Equal(t, tt.wantAdminly, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
	})

	t.Run("propagated", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderRequestID, "abc-123")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	})
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type observed struct {
	method string
	route  string
	status int
}

type fakeMetrics struct {
	calls []observed
}

func (f *fakeMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.calls = append(f.calls, observed{method: method, route: route, status: status})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	m := &fakeMetrics{}
	router := mux.NewRouter()
	router.Use(Metrics(m))
	router.HandleFunc("/rooms/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/42", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, observed{method: http.MethodGet, route: "/rooms/{id}", status: http.StatusTeapot}, m.calls[0])
}

func TestRateLimit(t *testing.T) {
	mw, err := RateLimit("2-M", logger.NewNop())
	require.NoError(t, err)

	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusCreated) }))

	send := func(userID int64) int {
		r := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		r = r.WithContext(WithIdentity(r.Context(), domain.Identity{UserID: userID, Role: domain.RoleUser}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, send(1))
	assert.Equal(t, http.StatusCreated, send(1))
	assert.Equal(t, http.StatusTooManyRequests, send(1))

	// Другой пользователь с того же адреса учитывается отдельно
	assert.Equal(t, http.StatusCreated, send(2))
}

func TestRateLimit_InvalidRate(t *testing.T) {
	_, err := RateLimit("lots", logger.NewNop())
	assert.Error(t, err)
}
