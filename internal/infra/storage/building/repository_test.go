package building

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO buildings (name,address) VALUES ($1,$2) RETURNING id")).
		WithArgs("HQ", "Main st. 1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	building, err := repo.Create(context.Background(), &domain.Building{Name: "HQ", Address: "Main st. 1"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), building.ID)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, address FROM buildings WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, ErrBuildingNotFound)
}

func TestRepository_List_OrderedByID(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, address FROM buildings ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "HQ", "Main st. 1").
			AddRow(2, "Annex", "Main st. 3"))

	buildings, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, buildings, 2)
	assert.Equal(t, "Annex", buildings[1].Name)
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE buildings SET name = $1, address = $2 WHERE id = $3")).
		WithArgs("HQ2", "Main st. 2", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	building, err := repo.Update(context.Background(), &domain.Building{ID: 3, Name: "HQ2", Address: "Main st. 2"})
	require.NoError(t, err)
	assert.Equal(t, "HQ2", building.Name)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM buildings WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 3), ErrBuildingNotFound)
}
