package floor

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

// Repository репозиторий для работы с этажами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория этажей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// selectWithBuilding SELECT этажей вместе со зданием для вложенного представления
func selectWithBuilding() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"f.id",
		"f.building_id",
		"f.floor_number",
		"f.floor_name",
		"f.floor_planning",
		"b.id",
		"b.name",
		"b.address",
	).
		From("floors f").
		Join("buildings b ON b.id = f.building_id")
}

// Create создает новый этаж
func (r *Repository) Create(ctx context.Context, floor *domain.Floor) (*domain.Floor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("floors").
		Columns("building_id", "floor_number", "floor_name", "floor_planning").
		Values(floor.BuildingID, floor.FloorNumber, floor.FloorName, floor.FloorPlanning).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&floor.ID); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, ErrBuildingNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return floor, nil
}

// GetByID получает этаж по ID вместе со зданием
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Floor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWithBuilding().
		Where(squirrel.Eq{"f.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	floor, err := scanFloor(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFloorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan floor: %w", ErrScanRow, err)
	}

	return floor, nil
}

// List возвращает все этажи в порядке id
func (r *Repository) List(ctx context.Context) ([]*domain.Floor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWithBuilding().
		OrderBy("f.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	floors := make([]*domain.Floor, 0)
	for rows.Next() {
		floor, err := scanFloor(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		floors = append(floors, floor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return floors, nil
}

// Update полностью заменяет данные этажа
func (r *Repository) Update(ctx context.Context, floor *domain.Floor) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("floors").
		Set("building_id", floor.BuildingID).
		Set("floor_number", floor.FloorNumber).
		Set("floor_name", floor.FloorName).
		Set("floor_planning", floor.FloorPlanning).
		Where(squirrel.Eq{"id": floor.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return ErrBuildingNotFound
		}
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrFloorNotFound
	}

	return nil
}

// Delete удаляет этаж вместе с комнатами (ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("floors").
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
		return ErrFloorNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFloor(row rowScanner) (*domain.Floor, error) {
	var (
		floor    domain.Floor
		building domain.Building
		planning sql.NullString
	)

	err := row.Scan(
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

	return &floor, nil
}
