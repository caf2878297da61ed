package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const unmatchedRoute = "unmatched"

// Metrics учитывает запросы в prometheus по шаблону маршрута, а не по пути,
// чтобы ID в пути не раздували кардинальность
func Metrics(m HTTPMetrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			m.ObserveHTTPRequest(r.Method, routeTemplate(r), rec.status, time.Since(start))
		})
	}
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unmatchedRoute
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return unmatchedRoute
	}
	return tpl
}
