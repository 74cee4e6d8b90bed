package postgres

import (
	"context"
	"testing"
	"time"

	"realty-service/internal/domain/admin"
	xerrors "realty-service/internal/pkg/errors"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestAdminRepository_CreateWithinLimit_CeilingReached(t *testing.T) {
	mock := newMock(t)
	repo := NewAdminRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("LOCK TABLE admins").WillReturnResult(pgxmock.NewResult("LOCK", 0))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectRollback()

	err := repo.CreateWithinLimit(context.Background(), &admin.Admin{Email: "new@example.com"}, 5)
	assert.ErrorIs(t, err, xerrors.ErrLimitReached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_CreateWithinLimit_DuplicateEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewAdminRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("LOCK TABLE admins").WillReturnResult(pgxmock.NewResult("LOCK", 0))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("dup@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := repo.CreateWithinLimit(context.Background(), &admin.Admin{Email: "dup@example.com"}, 5)
	assert.ErrorIs(t, err, xerrors.ErrAlreadyExists)
	assert.ErrorIs(t, err, xerrors.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_DeleteUnlessLast(t *testing.T) {
	t.Run("refuses last admin", func(t *testing.T) {
		mock := newMock(t)
		repo := NewAdminRepository(mock)

		mock.ExpectBegin()
		mock.ExpectExec("LOCK TABLE admins").WillReturnResult(pgxmock.NewResult("LOCK", 0))
		mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		err := repo.DeleteUnlessLast(context.Background(), 1)
		assert.ErrorIs(t, err, xerrors.ErrLastAdmin)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deletes when others remain", func(t *testing.T) {
		mock := newMock(t)
		repo := NewAdminRepository(mock)

		mock.ExpectBegin()
		mock.ExpectExec("LOCK TABLE admins").WillReturnResult(pgxmock.NewResult("LOCK", 0))
		mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectExec("DELETE FROM admins").WithArgs(int64(2)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		require.NoError(t, repo.DeleteUnlessLast(context.Background(), 2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		mock := newMock(t)
		repo := NewAdminRepository(mock)

		mock.ExpectBegin()
		mock.ExpectExec("LOCK TABLE admins").WillReturnResult(pgxmock.NewResult("LOCK", 0))
		mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectExec("DELETE FROM admins").WithArgs(int64(99)).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectRollback()

		err := repo.DeleteUnlessLast(context.Background(), 99)
		assert.ErrorIs(t, err, xerrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdminRepository_MarkVerified(t *testing.T) {
	mock := newMock(t)
	repo := NewAdminRepository(mock)

	mock.ExpectExec("UPDATE admins").WithArgs(int64(4), "123456").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE admins").WithArgs(int64(4), "000000").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ok, err := repo.MarkVerified(context.Background(), 4, "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkVerified(context.Background(), 4, "000000")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_Count(t *testing.T) {
	mock := newMock(t)
	repo := NewAdminRepository(mock)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewsletterRepository_Subscribe(t *testing.T) {
	mock := newMock(t)
	repo := NewNewsletterRepository(mock)

	mock.ExpectExec("INSERT INTO newsletter_subscriptions").WithArgs("a@example.com").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO newsletter_subscriptions").WithArgs("a@example.com").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	created, err := repo.Subscribe(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Subscribe(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.False(t, created)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepository_DeleteOlderThan(t *testing.T) {
	mock := newMock(t)
	repo := NewActivityRepository(mock)

	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM activity_logs").WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 12))

	n, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_Delete(t *testing.T) {
	mock := newMock(t)
	repo := NewPropertyRepository(mock)

	mock.ExpectExec("DELETE FROM properties").WithArgs(int64(8)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 8)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now`, escapeLike("50% off_now"))
	assert.Equal(t, "Nairobi", escapeLike("Nairobi"))
}
