package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
)

// Handler обработчик одного эндпоинта
type Handler interface {
	Handle(w http.ResponseWriter, r *http.Request)
}

// ResourceHandler обработчик справочника (здания, этажи, комнаты)
type ResourceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// Handlers набор обработчиков API
type Handlers struct {
	Health Handler

	Buildings ResourceHandler
	Floors    ResourceHandler
	Rooms     ResourceHandler

	CheckAvailability Handler
	CreateBooking     Handler
	GetBooking        Handler
	GetUserBookings   Handler
	CancelBooking     Handler
}

// Options сквозные настройки роутера
// Metrics и BookingRateLimit необязательны
type Options struct {
	Auth   *middleware.Auth
	Logger middleware.Logger

	Metrics        middleware.HTTPMetrics
	MetricsPath    string
	MetricsHandler http.Handler

	BookingRateLimit func(http.Handler) http.Handler
}

// NewRouter собирает маршруты сервиса
func NewRouter(h Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(opts.Logger))
	r.Use(middleware.Logging(opts.Logger))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	// Служебные эндпоинты (без аутентификации)
	r.HandleFunc("/health", h.Health.Handle).Methods(http.MethodGet)
	if opts.MetricsHandler != nil {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(opts.Auth.Middleware)

	// ============================================================
	// СПРАВОЧНИКИ: чтение публичное, изменение только для admin
	// ============================================================

	registerResource(api, "/buildings", h.Buildings)
	registerResource(api, "/floors", h.Floors)
	registerResource(api, "/rooms", h.Rooms)

	// Проверка доступности комнаты (справочная)
	api.HandleFunc("/rooms/{id}/availability", h.CheckAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// БРОНИРОВАНИЯ (требуют аутентификации)
	// ============================================================

	createBooking := http.Handler(http.HandlerFunc(h.CreateBooking.Handle))
	if opts.BookingRateLimit != nil {
		createBooking = opts.BookingRateLimit(createBooking)
	}
	createBooking = middleware.RequireIdentity(createBooking)

	// Бронирования текущего пользователя
	api.Handle("/bookings", authenticated(h.GetUserBookings.Handle)).Methods(http.MethodGet)

	// Создание бронирования
	api.Handle("/bookings", createBooking).Methods(http.MethodPost)

	// Получение, создание и отмена по ID
	api.Handle("/bookings/{id}", authenticated(h.GetBooking.Handle)).Methods(http.MethodGet)
	api.Handle("/bookings/{id}", createBooking).Methods(http.MethodPost)
	api.Handle("/bookings/{id}", authenticated(h.CancelBooking.Handle)).Methods(http.MethodDelete)

	return r
}

func registerResource(api *mux.Router, path string, h ResourceHandler) {
	api.HandleFunc(path, h.List).Methods(http.MethodGet)
	api.Handle(path, adminOnly(h.Create)).Methods(http.MethodPost)

	item := path + "/{id}"
	api.HandleFunc(item, h.Get).Methods(http.MethodGet)
	api.Handle(item, adminOnly(h.Update)).Methods(http.MethodPut)
	api.Handle(item, adminOnly(h.Delete)).Methods(http.MethodDelete)
}

func authenticated(f http.HandlerFunc) http.Handler {
	return middleware.RequireIdentity(f)
}

func adminOnly(f http.HandlerFunc) http.Handler {
	return middleware.RequireAdmin(f)
}
