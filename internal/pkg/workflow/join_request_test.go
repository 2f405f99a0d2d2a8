package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressroom/newshub/app/models"
)

func TestCheckJoinRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckJoinRequest(false))

	err := CheckJoinRequest(true)
	assert.True(t, IsConflict(err))
	assert.Equal(t, ConflictDuplicateJoinRequest, ConflictReason(err))
}

func TestApproveJoinRequest(t *testing.T) {
	t.Parallel()

	now := time.Now()
	r := &models.JoinRequest{Status: models.JOIN_STATUS_PENDING}

	require.NoError(t, ApproveJoinRequest(r, "welcome aboard", now))
	assert.Equal(t, models.JOIN_STATUS_APPROVED, r.Status)
	assert.Equal(t, "welcome aboard", r.Feedback)
	require.NotNil(t, r.ReviewedAt)
	assert.Equal(t, now, *r.ReviewedAt)
}

func TestJoinRequestReviewedOnlyOnce(t *testing.T) {
	t.Parallel()

	r := &models.JoinRequest{Status: models.JOIN_STATUS_PENDING}
	require.NoError(t, RejectJoinRequest(r, "no open slots", time.Now()))
	assert.Equal(t, models.JOIN_STATUS_REJECTED, r.Status)

	assert.True(t, IsState(ApproveJoinRequest(r, "", time.Now())))
	assert.True(t, IsState(RejectJoinRequest(r, "", time.Now())))
}
