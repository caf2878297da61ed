package middleware

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

type ctxKey int

const (
	identityKey ctxKey = iota
	requestIDKey
)

// WithIdentity кладёт пользователя в контекст
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity достаёт пользователя из контекста
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

// GetRequestID возвращает ID запроса или пустую строку
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
