package middleware

import "time"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// HTTPMetrics метрики HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}
