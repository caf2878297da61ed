package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"user_id",
	"room_id",
	"name",
	"phone_number",
	"email",
	"start_time",
	"end_time",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Пересечение с другим бронированием комнаты отсекается ограничением БД и возвращается как ErrOverlap.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"room_id",
			"name",
			"phone_number",
			"email",
			"start_time",
			"end_time",
		).
		Values(
			booking.UserID,
			booking.RoomID,
			booking.Name,
			booking.PhoneNumber,
			booking.Email,
			booking.StartTime,
			booking.EndTime,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		switch {
		case pgerr.IsExclusionViolation(err):
			return nil, ErrOverlap
		case pgerr.IsForeignKeyViolation(err):
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя в порядке id
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetOverlapping возвращает бронирования комнаты, пересекающиеся с интервалом [start, end)
// Условие то же, что в domain.Interval.Overlaps: start_time < end AND end_time > start.
// Внутри транзакции найденные строки блокируются (FOR UPDATE).
func (r *Repository) GetOverlapping(ctx context.Context, roomID int64, interval domain.Interval) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Lt{"start_time": interval.End}).
		Where(squirrel.Gt{"end_time": interval.Start}).
		OrderBy("start_time ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking            domain.Booking
		name, phone, email sql.NullString
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.RoomID,
		&name,
		&phone,
		&email,
		&booking.StartTime,
		&booking.EndTime,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Name = nullString(name)
	booking.PhoneNumber = nullString(phone)
	booking.Email = nullString(email)

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
