package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RoomBookingService/internal/api"
	buildingsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/buildings"
	cancelBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_booking"
	floorsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/floors"
	getBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_user_bookings"
	healthHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/health"
	roomsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/rooms"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	buildingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/building"
	floorRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/floor"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	bookingsService "github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	buildingsService "github.com/m04kA/SMC-RoomBookingService/internal/service/buildings"
	floorsService "github.com/m04kA/SMC-RoomBookingService/internal/service/floors"
	roomsService "github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
	checkAvailabilityUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/roomlock"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

const poolStatsInterval = 15 * time.Second

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-RoomBookingService...")

	// Метрики (если включены). Collector остаётся nil-интерфейсом, когда метрики выключены
	var (
		metricsCollector *metrics.Metrics
		dbCollector      dbmetrics.Collector
	)
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer sqlDB.Close()

	// Настраиваем connection pool
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := sqlDB.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	db := dbmetrics.Wrap(sqlDB, dbCollector)
	stopMetricsCh := make(chan struct{})
	db.StartPoolCollector(poolStatsInterval, stopMetricsCh)

	// Блокировки комнат
	locker, closeLocker, err := newLocker(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize room locker: %v", err)
	}
	defer closeLocker()

	// Репозитории
	buildingRepository := buildingRepo.NewRepository(db)
	floorRepository := floorRepo.NewRepository(db)
	roomRepository := roomRepo.NewRepository(db)
	bookingRepository := bookingRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db, txmanager.WithMaxRetries(cfg.Database.TxMaxRetries))

	// Сервисы
	buildingSvc := buildingsService.NewService(buildingRepository, log)
	floorSvc := floorsService.NewService(floorRepository, log)
	roomSvc := roomsService.NewService(roomRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, roomRepository, txMgr, log)

	// Use cases
	createBookingOpts := []createBookingUC.Option{}
	if metricsCollector != nil {
		createBookingOpts = append(createBookingOpts, createBookingUC.WithMetrics(metricsCollector))
	}
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		txMgr,
		locker,
		time.Duration(cfg.Locking.WaitTimeout)*time.Millisecond,
		log,
		createBookingOpts...,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(bookingRepository, roomRepository, log)

	// Handlers
	handlers := api.Handlers{
		Health:            healthHandler.NewHandler(db, log),
		Buildings:         buildingsHandler.NewHandler(buildingSvc, log),
		Floors:            floorsHandler.NewHandler(floorSvc, log),
		Rooms:             roomsHandler.NewHandler(roomSvc, log),
		CheckAvailability: checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log),
		CreateBooking:     createBookingHandler.NewHandler(createBookingUseCase, log),
		GetBooking:        getBookingHandler.NewHandler(bookingSvc, log),
		GetUserBookings:   getUserBookingsHandler.NewHandler(bookingSvc, log),
		CancelBooking:     cancelBookingHandler.NewHandler(bookingSvc, log),
	}

	opts := api.Options{
		Auth:   middleware.NewAuth(cfg.Auth.Mode, cfg.Auth.JWTSecret, log),
		Logger: log,
	}
	if metricsCollector != nil {
		opts.Metrics = metricsCollector
		opts.MetricsPath = cfg.Metrics.Path
		opts.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	if cfg.RateLimit.Enabled {
		opts.BookingRateLimit, err = middleware.RateLimit(cfg.RateLimit.Rate, log)
		if err != nil {
			log.Fatal("Failed to initialize rate limiter: %v", err)
		}
		log.Info("Booking rate limit enabled: %s", cfg.RateLimit.Rate)
	}

	router := api.NewRouter(handlers, opts)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

// newLocker создает блокировки комнат по locking.driver
// redis нужен, когда запущено несколько реплик сервиса
func newLocker(cfg *config.Config, log *logger.Logger) (roomlock.Locker, func(), error) {
	if cfg.Locking.Driver != config.LockDriverRedis {
		log.Info("Room locks: in-process")
		return roomlock.NewLocal(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
	}
	log.Info("Room locks: redis (addr=%s, ttl=%dms)", cfg.Redis.Addr, cfg.Locking.TTL)

	locker := roomlock.NewRedis(
		client,
		cfg.Redis.KeyPrefix,
		time.Duration(cfg.Locking.TTL)*time.Millisecond,
		time.Duration(cfg.Locking.RetryEvery)*time.Millisecond,
	)
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}
	return locker, closeFn, nil
}
