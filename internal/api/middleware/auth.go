package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Заголовки для режима auth.mode = "header"
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	msgUnauthorized = "требуется аутентификация"
	msgInvalidToken = "некорректный токен"
	msgForbidden    = "недостаточно прав"

	tokenLeeway = 30 * time.Second
)

var errNoCredentials = errors.New("no credentials")

// Claims полезная нагрузка токена: sub - ID пользователя, role - роль
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth определяет пользователя запроса
// Запрос без учётных данных проходит дальше анонимно, решение принимают RequireIdentity/RequireAdmin
// Некорректные учётные данные сразу дают 401
type Auth struct {
	mode   string
	secret []byte
	parser *jwt.Parser
	logger Logger
}

// NewAuth в режиме header предупреждает в лог: роль admin берётся из заголовка клиента
func NewAuth(mode, secret string, logger Logger) *Auth {
	if mode == config.AuthModeHeader {
		logger.Warn("Auth: mode=header trusts %s and %s from the client, expose only behind a gateway that overwrites them",
			HeaderUserID, HeaderUserRole)
	}
	return &Auth{
		mode:   mode,
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithLeeway(tokenLeeway),
		),
		logger: logger,
	}
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			identity domain.Identity
			err      error
		)
		if a.mode == config.AuthModeHeader {
			identity, err = identityFromHeaders(r)
		} else {
			identity, err = a.identityFromToken(r)
		}

		switch {
		case errors.Is(err, errNoCredentials):
			next.ServeHTTP(w, r)
		case err != nil:
			a.logger.Warn("%s %s - Authentication failed: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
		default:
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		}
	})
}

func (a *Auth) identityFromToken(r *http.Request) (domain.Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return domain.Identity{}, errNoCredentials
	}

	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return domain.Identity{}, errors.New("authorization header must be Bearer")
	}

	claims := &Claims{}
	_, err := a.parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parse token: %w", err)
	}

	return newIdentity(claims.Subject, claims.Role)
}

func identityFromHeaders(r *http.Request) (domain.Identity, error) {
	userID := r.Header.Get(HeaderUserID)
	if userID == "" {
		return domain.Identity{}, errNoCredentials
	}
	return newIdentity(userID, r.Header.Get(HeaderUserRole))
}

func newIdentity(rawUserID, role string) (domain.Identity, error) {
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Identity{}, fmt.Errorf("invalid user id %q", rawUserID)
	}

	if role == "" {
		role = string(domain.RoleUser)
	}
	if !domain.IsValidRole(role) {
		return domain.Identity{}, fmt.Errorf("unknown role %q", role)
	}

	return domain.Identity{UserID: userID, Role: domain.Role(role)}, nil
}

// RequireIdentity пропускает только аутентифицированные запросы
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); !ok {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin пропускает только администраторов
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		if !identity.IsAdmin() {
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
