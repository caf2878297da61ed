package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ulule/limiter/v3"
	limiterhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// RateLimit ограничивает частоту запросов на пользователя (при отсутствии - на IP)
// rate в формате ulule/limiter: "<limit>-<S|M|H|D>", например "30-M"
func RateLimit(rate string, logger Logger) (func(http.Handler) http.Handler, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("middleware: invalid rate %q: %w", rate, err)
	}

	instance := limiter.New(memory.NewStore(), parsed)

	mw := limiterhttp.NewMiddleware(instance,
		limiterhttp.WithKeyGetter(func(r *http.Request) string {
			if identity, ok := GetIdentity(r.Context()); ok {
				return "user:" + strconv.FormatInt(identity.UserID, 10)
			}
			return "ip:" + instance.GetIPKey(r)
		}),
		limiterhttp.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("%s %s - Rate limit reached, request_id=%s", r.Method, r.URL.Path, GetRequestID(r.Context()))
			handlers.RespondTooManyRequests(w, msgTooManyRequests)
		}),
		limiterhttp.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("%s %s - Rate limiter error: %v", r.Method, r.URL.Path, err)
			handlers.RespondInternalError(w)
		}),
	)

	return mw.Handler, nil
}
