package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressroom/newshub/internal/pkg/workflow"
)

func TestArticleRepository_PublishIfPending(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewArticleRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `articles` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.PublishIfPending(7, time.Now())

	assert.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_PublishIfPending_NotPending(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewArticleRepository(gdb)

	// Second approval of the same submission matches zero rows.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `articles` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.PublishIfPending(7, time.Now())

	assert.Error(t, err)
	assert.True(t, workflow.IsState(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_RejectIfPending_NotPending(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewArticleRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `articles` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.RejectIfPending(7, "needs sources")

	assert.Error(t, err)
	assert.True(t, workflow.IsState(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_CountIndependentByAuthor(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewArticleRepository(gdb)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `articles`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountIndependentByAuthor(5)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	require.NoError(t, mock.ExpectationsWereMet())
}
