package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований: чтение, список, отмена
type Service struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		txManager:    txManager,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование может только владелец или администратор
func (s *Service) GetByID(ctx context.Context, id int64, identity domain.Identity) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, identity.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !identity.CanManage(booking.UserID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", identity.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя в порядке id
func (s *Service) GetUserBookings(ctx context.Context, identity domain.Identity) (*models.BookingListResponse, error) {
	if identity.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, identity.UserID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", identity.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), identity.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel удаляет бронирование и пересчитывает флаг занятости комнаты
// Отменить может владелец или администратор, в любой момент времени.
// Повторная отмена возвращает ErrBookingNotFound.
func (s *Service) Cancel(ctx context.Context, bookingID int64, identity domain.Identity) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, identity.UserID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if !identity.CanManage(booking.UserID) {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", identity.UserID, bookingID)
		return ErrAccessDenied
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Строка комнаты блокируется так же, как при создании бронирования
		if _, err := s.roomRepo.GetByIDForUpdate(txCtx, booking.RoomID); err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				// комната удалена вместе с бронированиями
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - lock room: %w", ErrInternal, err)
		}

		if err := s.bookingRepo.Delete(txCtx, bookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - delete booking: %w", ErrInternal, err)
		}

		if err := s.roomRepo.RefreshBooked(txCtx, booking.RoomID, s.timeProvider.Now()); err != nil {
			return fmt.Errorf("%w: Cancel - refresh room flag: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d already removed", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", bookingID, err)
		if errors.Is(err, ErrInternal) {
			return err
		}
		return fmt.Errorf("%w: Cancel - transaction: %w", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d (room id=%d)", bookingID, booking.RoomID)
	return nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	return booking, nil
}
