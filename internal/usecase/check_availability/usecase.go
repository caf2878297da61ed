package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
)

// UseCase use case проверки доступности комнаты на интервал
type UseCase struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, roomRepo RoomRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		logger:      logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	interval := domain.NewInterval(req.StartTime, req.EndTime)
	if !interval.IsValid() {
		return nil, ErrInvalidInterval
	}

	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CheckAvailability: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetOverlapping(ctx, room.ID, interval)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings for room id=%d: %v", room.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	conflicts := domain.ConflictingBookings(interval, bookings)

	uc.logger.Info("CheckAvailability: room=%s, start=%s, end=%s, conflicts=%d",
		room.DisplayName(), req.StartTime.Format(domain.TimeFormat), req.EndTime.Format(domain.TimeFormat), len(conflicts))

	return &Response{
		RoomID:     room.ID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		IsBookable: room.CanBeBooked(),
		Available:  room.CanBeBooked() && len(conflicts) == 0,
		Conflicts:  conflicts,
	}, nil
}
