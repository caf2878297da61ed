package building

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

var columns = []string{"id", "name", "address"}

// Repository репозиторий для работы со зданиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория зданий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое здание
func (r *Repository) Create(ctx context.Context, building *domain.Building) (*domain.Building, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("buildings").
		Columns("name", "address").
		Values(building.Name, building.Address).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&building.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return building, nil
}

// GetByID получает здание по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Building, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("buildings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var building domain.Building
	err = executor.QueryRowContext(ctx, query, args...).Scan(&building.ID, &building.Name, &building.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBuildingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan building: %w", ErrScanRow, err)
	}

	return &building, nil
}

// List возвращает все здания в порядке id
func (r *Repository) List(ctx context.Context) ([]*domain.Building, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("buildings").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	buildings := make([]*domain.Building, 0)
	for rows.Next() {
		var building domain.Building
		if err := rows.Scan(&building.ID, &building.Name, &building.Address); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		buildings = append(buildings, &building)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return buildings, nil
}

// Update полностью заменяет данные здания
func (r *Repository) Update(ctx context.Context, building *domain.Building) (*domain.Building, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("buildings").
		Set("name", building.Name).
		Set("address", building.Address).
		Where(squirrel.Eq{"id": building.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, ErrBuildingNotFound
	}

	return building, nil
}

// Delete удаляет здание вместе с этажами, комнатами и бронированиями (ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("buildings").
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
		return ErrBuildingNotFound
	}

	return nil
}
