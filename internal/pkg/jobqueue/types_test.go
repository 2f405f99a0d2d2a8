package jobqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStateTransitions(t *testing.T) {
	t.Parallel()

	j := &Job{Status: JobStatusPending, MaxRetries: 3}

	j.MarkAsProcessing()
	assert.Equal(t, JobStatusProcessing, j.Status)
	assert.NotNil(t, j.ProcessedAt)

	j.MarkAsFailed("smtp down")
	assert.Equal(t, JobStatusFailed, j.Status)
	assert.Equal(t, "smtp down", j.ErrorMsg)
	assert.Equal(t, 1, j.RetryCount)
	assert.True(t, j.IsRetryable())

	j.MarkAsCompleted()
	assert.Equal(t, JobStatusCompleted, j.Status)
	assert.Empty(t, j.ErrorMsg)
	assert.NotNil(t, j.CompletedAt)
}

func TestJobIsRetryableExhaustsRetries(t *testing.T) {
	t.Parallel()

	j := &Job{Status: JobStatusPending, MaxRetries: 2}
	j.MarkAsFailed("one")
	assert.True(t, j.IsRetryable())
	j.MarkAsFailed("two")
	assert.False(t, j.IsRetryable())
}

func TestEmailNotifyPayloadRoundTrip(t *testing.T) {
	t.Parallel()

	in := EmailNotifyPayload{
		ArticleID: 7,
		Subject:   "New Newsletter: Weekly Digest",
		Messages: []EmailMessage{
			{To: "a@example.com", Body: "hello", UnsubscribeLink: "https://news.example.com/unsubscribe?token=a"},
			{To: "b@example.com", Body: "hello"},
		},
	}

	out, err := EmailNotifyPayloadFromMap(in.ToMap())
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}
