package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/pkg/roomlock"
)

// UseCase use case допуска бронирования: единые правила и атомарная проверка + вставка
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	txManager    TransactionManager
	locker       Locker
	lockWait     time.Duration
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// Option настраивает UseCase
type Option func(*UseCase)

// WithMetrics включает сбор метрик допуска
func WithMetrics(m Metrics) Option {
	return func(uc *UseCase) {
		uc.metrics = m
	}
}

// WithTimeProvider подменяет источник времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(uc *UseCase) {
		uc.timeProvider = tp
	}
}

// NewUseCase создает новый экземпляр use case
// lockWait ограничивает ожидание блокировки комнаты
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	locker Locker,
	lockWait time.Duration,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		txManager:    txManager,
		locker:       locker,
		lockWait:     lockWait,
		metrics:      noopMetrics{},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и вставка выполняются под блокировкой комнаты
// в сериализуемой транзакции. Либо сохраняются и бронирование, и флаг комнаты, либо ничего.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() {
		uc.metrics.IncBookingAdmission(admissionResult(err))
	}()

	uc.logger.Info("CreateBooking: user=%d, room=%d, start=%s, end=%s",
		req.Identity.UserID, req.RoomID, req.StartTime.Format(domain.TimeFormat), req.EndTime.Format(domain.TimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	interval := domain.NewInterval(req.StartTime, req.EndTime)

	// 2. Блокировка комнаты на время проверки и вставки
	lock, err := uc.acquire(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := lock.Release(context.WithoutCancel(ctx)); releaseErr != nil {
			uc.logger.Error("CreateBooking: failed to release lock for room=%d: %v", req.RoomID, releaseErr)
		}
	}()

	var result *domain.Booking

	// 3. Проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем строку комнаты (FOR UPDATE)
		room, err := uc.roomRepo.GetByIDForUpdate(txCtx, req.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("CreateBooking: room id=%d not found", req.RoomID)
				return ErrRoomNotFound
			}
			uc.logger.Error("CreateBooking: failed to get room id=%d: %v", req.RoomID, err)
			return fmt.Errorf("%w: failed to get room: %w", ErrInternal, err)
		}

		// 3.2. Административный запрет на бронирование
		if !room.CanBeBooked() {
			uc.logger.Warn("CreateBooking: room %s (id=%d) is not bookable", room.DisplayName(), room.ID)
			return ErrRoomNotBookable
		}

		// 3.3. Правила интервала
		if err := validateInterval(interval); err != nil {
			uc.logger.Warn("CreateBooking: interval rejected for room=%d: %v", room.ID, err)
			return err
		}

		// 3.4. Проверяем пересечения с существующими бронированиями
		existing, err := uc.bookingRepo.GetOverlapping(txCtx, room.ID, interval)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings for room id=%d: %v", room.ID, err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		if conflicts := domain.ConflictingBookings(interval, existing); len(conflicts) > 0 {
			uc.logger.Warn("CreateBooking: room id=%d conflicts with booking id=%d", room.ID, conflicts[0].ID)
			return ErrRoomConflict
		}

		// 3.5. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:      req.Identity.UserID,
			RoomID:      room.ID,
			Name:        req.Name,
			PhoneNumber: req.PhoneNumber,
			Email:       req.Email,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
		})
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrOverlap):
				uc.logger.Warn("CreateBooking: storage rejected overlapping booking for room id=%d", room.ID)
				return ErrRoomConflict
			case errors.Is(err, bookingRepo.ErrRoomNotFound):
				return ErrRoomNotFound
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// 3.6. Комната занята
		if err := uc.roomRepo.SetBooked(txCtx, room.ID, true); err != nil {
			uc.logger.Error("CreateBooking: failed to mark room id=%d booked: %v", room.ID, err)
			return fmt.Errorf("%w: failed to update room: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d for room=%d", result.ID, result.RoomID)

	return &Response{
		ID:          result.ID,
		UserID:      result.UserID,
		RoomID:      result.RoomID,
		Name:        result.Name,
		PhoneNumber: result.PhoneNumber,
		Email:       result.Email,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		CreatedAt:   result.CreatedAt,
	}, nil
}

// acquire получает блокировку комнаты, ожидая не дольше lockWait
func (uc *UseCase) acquire(ctx context.Context, roomID int64) (roomlock.Lock, error) {
	lockCtx := ctx
	if uc.lockWait > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, uc.lockWait)
		defer cancel()
	}

	started := uc.timeProvider.Now()
	lock, err := uc.locker.Acquire(lockCtx, roomlock.RoomKey(roomID))
	uc.metrics.ObserveLockWait(uc.timeProvider.Now().Sub(started))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to lock room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: failed to lock room: %w", ErrInternal, err)
	}

	return lock, nil
}

// classify оставляет бизнес-ошибки как есть, остальное превращает в ErrInternal
func classify(err error) error {
	switch {
	case errors.Is(err, ErrRoomNotFound),
		errors.Is(err, ErrRoomNotBookable),
		errors.Is(err, ErrInvalidInterval),
		errors.Is(err, ErrDurationExceeded),
		errors.Is(err, ErrRoomConflict),
		errors.Is(err, ErrInternal):
		return err
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
