package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

var roomColumns = []string{
	"id",
	"floor_id",
	"room_number",
	"room_name",
	"capacity",
	"is_booked",
	"is_bookable",
}

// Repository репозиторий для работы с комнатами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// selectNested SELECT комнат вместе с этажом и зданием
func selectNested() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"r.id",
		"r.floor_id",
		"r.room_number",
		"r.room_name",
		"r.capacity",
		"r.is_booked",
		"r.is_bookable",
		"f.id",
		"f.building_id",
		"f.floor_number",
		"f.floor_name",
		"f.floor_planning",
		"b.id",
		"b.name",
		"b.address",
	).
		From("rooms r").
		Join("floors f ON f.id = r.floor_id").
		Join("buildings b ON b.id = f.building_id")
}

// Create создает новую комнату. is_booked всегда false при создании
func (r *Repository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rooms").
		Columns("floor_id", "room_number", "room_name", "capacity", "is_booked", "is_bookable").
		Values(room.FloorID, room.RoomNumber, room.RoomName, room.Capacity, false, room.IsBookable).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&room.ID); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, ErrFloorNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	room.IsBooked = false

	return room, nil
}

// GetByID получает комнату по ID вместе с этажом и зданием
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectNested().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	room, err := scanNested(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %w", ErrScanRow, err)
	}

	return room, nil
}

// GetByIDForUpdate читает комнату с блокировкой строки (SELECT ... FOR UPDATE)
// Должен вызываться внутри транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	var room domain.Room
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&room.ID,
		&room.FloorID,
		&room.RoomNumber,
		&room.RoomName,
		&room.Capacity,
		&room.IsBooked,
		&room.IsBookable,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForUpdate - scan room: %w", ErrScanRow, err)
	}

	return &room, nil
}

// List возвращает все комнаты в порядке id
func (r *Repository) List(ctx context.Context) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectNested().
		OrderBy("r.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanNested(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// Update заменяет административные поля комнаты. is_booked не изменяется
func (r *Repository) Update(ctx context.Context, room *domain.Room) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("floor_id", room.FloorID).
		Set("room_number", room.RoomNumber).
		Set("room_name", room.RoomName).
		Set("capacity", room.Capacity).
		Set("is_bookable", room.IsBookable).
		Where(squirrel.Eq{"id": room.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return ErrFloorNotFound
		}
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "Update")
}

// SetBooked выставляет флаг занятости комнаты
func (r *Repository) SetBooked(ctx context.Context, id int64, booked bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("is_booked", booked).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetBooked - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "SetBooked")
}

// RefreshBooked пересчитывает флаг занятости по оставшимся бронированиям:
// комната занята, пока есть бронирование с end_time после now
func (r *Repository) RefreshBooked(ctx context.Context, id int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("is_booked", squirrel.Expr(
			"EXISTS (SELECT 1 FROM bookings WHERE room_id = ? AND end_time > ?)", id, now,
		)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RefreshBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RefreshBooked - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "RefreshBooked")
}

// Delete удаляет комнату вместе с бронированиями (ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "Delete")
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNested(row rowScanner) (*domain.Room, error) {
	var (
		room     domain.Room
		floor    domain.Floor
		building domain.Building
		planning sql.NullString
	)

	err := row.Scan(
		&room.ID,
		&room.FloorID,
		&room.RoomNumber,
		&room.RoomName,
		&room.Capacity,
		&room.IsBooked,
		&room.IsBookable,
		&floor.ID,
		&floor.BuildingID,
		&floor.FloorNumber,
		&floor.FloorName,
		&planning,
		&building.ID,
		&building.Name,
		&building.Address,
	)
	if err != nil {
		return nil, err
	}

	if planning.Valid {
		floor.FloorPlanning = &planning.String
	}
	floor.Building = &building
	room.Floor = &floor

	return &room, nil
}
