package waitlist

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/akeren/waitlist-api/internal/models"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newPostgresMock(t *testing.T) (WaitlistRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError:       true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewWaitlistRepository(db), mock
}

func TestRepository_FindEntryByEmail_StoreUnavailable(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectQuery(`SELECT \* FROM "waitlist_entries" WHERE email = \$1`).
		WillReturnError(sql.ErrConnDone)

	entry, err := repo.FindEntryByEmail(context.Background(), "ada@example.com")

	assert.Nil(t, entry)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, apperrors.ErrorTypeDatabaseError, apperrors.GetErrorType(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindEntryByEmail_NotFound(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectQuery(`SELECT \* FROM "waitlist_entries" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	entry, err := repo.FindEntryByEmail(context.Background(), "ada@example.com")

	assert.Nil(t, entry)
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateEntry_UniqueViolation(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "waitlist_entries"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_waitlist_entries_email" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	entry, err := repo.CreateEntry(context.Background(), &models.WaitlistEntry{
		Email:     "ada@example.com",
		Status:    models.WaitlistStatusPending,
		CreatedAt: 1,
	})

	assert.Nil(t, entry)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, http.StatusConflict, apperrors.HTTPStatusCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateEntry_StoreUnavailable(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "waitlist_entries"`).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := repo.CreateEntry(context.Background(), &models.WaitlistEntry{Email: "ada@example.com", CreatedAt: 1})

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountEntriesByStatus_SingleStatement(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS total FROM "waitlist_entries" GROUP BY`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "total"}).
			AddRow("pending", 4).
			AddRow("approved", 2).
			AddRow("declined", 1))

	counts, err := repo.CountEntriesByStatus(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[models.WaitlistStatus]int64{
		models.WaitlistStatusPending:  4,
		models.WaitlistStatusApproved: 2,
		models.WaitlistStatusDeclined: 1,
	}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountEntriesCreatedBefore(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "waitlist_entries" WHERE`).
		WithArgs(int64(1000), int64(1000), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountEntriesCreatedBefore(context.Background(), &models.WaitlistEntry{ID: 7, CreatedAt: 1000})

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())

	_, err = repo.CountEntriesCreatedBefore(context.Background(), nil)
	assert.Error(t, err)
}

func TestRepository_UpdateEntryStatus_OnlyMovesPendingRows(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "waitlist_entries" SET "status"=\$1 WHERE id = \$2 AND status = \$3`).
		WithArgs("approved", int64(7), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateEntryStatus(context.Background(), 7, models.WaitlistStatusApproved))
	assert.NoError(t, mock.ExpectationsWereMet())
}
