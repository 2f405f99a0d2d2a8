package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressroom/newshub/app/models"
)

func TestSubmit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		from    string
		wantErr bool
	}{
		{name: "from draft", from: models.STATUS_DRAFT},
		{name: "resubmit after rejection", from: models.STATUS_REJECTED},
		{name: "already pending", from: models.STATUS_PENDING_APPROVAL, wantErr: true},
		{name: "already published", from: models.STATUS_PUBLISHED, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &models.Article{Status: tt.from}
			err := Submit(a)
			if tt.wantErr {
				assert.True(t, IsState(err))
				assert.Equal(t, tt.from, a.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.STATUS_PENDING_APPROVAL, a.Status)
		})
	}
}

func TestSubmitKeepsFeedbackUntilNextDecision(t *testing.T) {
	t.Parallel()

	a := &models.Article{Status: models.STATUS_REJECTED, Feedback: "needs sources"}
	require.NoError(t, Submit(a))
	assert.Equal(t, "needs sources", a.Feedback)
}

func TestApprove(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := &models.Article{ID: 7, Status: models.STATUS_PENDING_APPROVAL, Feedback: "old note"}

	intents, err := Approve(a, now)
	require.NoError(t, err)

	assert.Equal(t, models.STATUS_PUBLISHED, a.Status)
	assert.Empty(t, a.Feedback)
	require.NotNil(t, a.PublishedAt)
	assert.Equal(t, now, *a.PublishedAt)

	require.Len(t, intents, 2)
	assert.Equal(t, IntentEmailBatch, intents[0].Kind)
	assert.Equal(t, IntentSocialPost, intents[1].Kind)
	assert.Equal(t, uint(7), intents[0].ArticleID)
	assert.Equal(t, uint(7), intents[1].ArticleID)
}

func TestApproveTwiceYieldsNoSecondDispatch(t *testing.T) {
	t.Parallel()

	a := &models.Article{ID: 7, Status: models.STATUS_PENDING_APPROVAL}

	first, err := Approve(a, time.Now())
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := Approve(a, time.Now())
	assert.True(t, IsState(err))
	assert.Nil(t, second)
}

func TestApproveFromDraftFails(t *testing.T) {
	t.Parallel()

	a := &models.Article{Status: models.STATUS_DRAFT}
	intents, err := Approve(a, time.Now())
	assert.True(t, IsState(err))
	assert.Nil(t, intents)
	assert.Equal(t, models.STATUS_DRAFT, a.Status)
}

func TestReject(t *testing.T) {
	t.Parallel()

	a := &models.Article{Status: models.STATUS_PENDING_APPROVAL}
	require.NoError(t, Reject(a, "too thin, expand the reporting"))
	assert.Equal(t, models.STATUS_REJECTED, a.Status)
	assert.Equal(t, "too thin, expand the reporting", a.Feedback)

	err := Reject(a, "again")
	assert.True(t, IsState(err))
}

func TestReturnToDraft(t *testing.T) {
	t.Parallel()

	a := &models.Article{Status: models.STATUS_REJECTED, Feedback: "fix the lede"}
	require.NoError(t, ReturnToDraft(a))
	assert.Equal(t, models.STATUS_DRAFT, a.Status)

	err := ReturnToDraft(&models.Article{Status: models.STATUS_PUBLISHED})
	assert.True(t, IsState(err))
}
