package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStoreGormRepository_RecomputeAllRatings(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewStoreGormRepository(gdb)

	mock.ExpectExec(`UPDATE stores AS s SET\s+rating = COALESCE\(agg.avg_rating, 0\)`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.RecomputeAllRatings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGormRepository_SetOpenMissingStore(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewStoreGormRepository(gdb)

	mock.ExpectExec(`UPDATE "stores" SET "is_open"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetOpen(context.Background(), "nope", false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestServiceGormRepository_DeleteScopedToStore(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewServiceGormRepository(gdb)

	mock.ExpectExec(`DELETE FROM "services" WHERE id = \$1 AND store_id = \$2`).
		WithArgs("svc-1", "other-store").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "other-store", "svc-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGormRepository_TopReviewed(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewStoreGormRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "stores" ORDER BY reviews_count DESC,\s*rating DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "rating", "reviews_count"}).
			AddRow("s1", "Shine", 4.8, 40).
			AddRow("s2", "Wash & Go", 4.9, 12))

	stores, err := repo.TopReviewed(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "s1", stores[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
