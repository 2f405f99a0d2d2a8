package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressroom/newshub/internal/pkg/workflow"
)

func TestSubscriptionRepository_GetTargetsBySubscriber(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewSubscriptionRepository(gdb)

	pubID := uint(3)
	journoID := uint(9)
	rows := sqlmock.NewRows([]string{"id", "subscriber_id", "publication_id", "journalist_id"}).
		AddRow(1, 5, pubID, nil).
		AddRow(2, 5, nil, journoID)
	mock.ExpectQuery("SELECT \\* FROM `subscriptions`").
		WillReturnRows(rows)

	targets, err := repo.GetTargetsBySubscriber(5)

	assert.NoError(t, err)
	assert.Equal(t, []workflow.SubscriptionTarget{
		{PublicationID: pubID},
		{JournalistID: journoID},
	}, targets)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_DeleteByTarget_Publication(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewSubscriptionRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `subscriptions`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteByTarget(5, workflow.SubscriptionTarget{PublicationID: 3})

	assert.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_CountForJournalist(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewSubscriptionRepository(gdb)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `subscriptions`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.CountForJournalist(9)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), count)
	require.NoError(t, mock.ExpectationsWereMet())
}
