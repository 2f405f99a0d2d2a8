package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/internal/pkg/workflow"
)

func TestAllowAuthorContent(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Allow(Actor{ID: 1, Role: models.ROLE_JOURNALIST}, ActionAuthorContent, Resource{}))
	assert.NoError(t, Allow(Actor{ID: 1, Role: models.ROLE_EDITOR}, ActionAuthorContent, Resource{}))

	err := Allow(Actor{ID: 1, Role: models.ROLE_READER}, ActionAuthorContent, Resource{})
	assert.True(t, workflow.IsPermission(err))
}

func TestAllowEditContentOwnership(t *testing.T) {
	t.Parallel()

	res := Resource{OwnerID: 1, PublicationID: 2, EditorIDs: []uint{5}}

	assert.NoError(t, Allow(Actor{ID: 1, Role: models.ROLE_JOURNALIST}, ActionEditContent, res))
	assert.NoError(t, Allow(Actor{ID: 5, Role: models.ROLE_EDITOR}, ActionEditContent, res))

	err := Allow(Actor{ID: 3, Role: models.ROLE_JOURNALIST}, ActionEditContent, res)
	assert.True(t, workflow.IsPermission(err))
}

func TestAllowReviewContent(t *testing.T) {
	t.Parallel()

	owned := Resource{OwnerID: 1, PublicationID: 2, EditorIDs: []uint{5}}

	assert.NoError(t, Allow(Actor{ID: 5, Role: models.ROLE_EDITOR}, ActionReviewContent, owned))

	// editor of a different publication
	err := Allow(Actor{ID: 6, Role: models.ROLE_EDITOR}, ActionReviewContent, owned)
	assert.True(t, workflow.IsPermission(err))

	// journalists never review, not even their own work
	err = Allow(Actor{ID: 1, Role: models.ROLE_JOURNALIST}, ActionReviewContent, owned)
	assert.True(t, workflow.IsPermission(err))

	// independent content is reviewable by any editor
	independent := Resource{OwnerID: 1}
	assert.NoError(t, Allow(Actor{ID: 6, Role: models.ROLE_EDITOR}, ActionReviewContent, independent))
}

func TestAllowMembership(t *testing.T) {
	t.Parallel()

	res := Resource{PublicationID: 2, EditorIDs: []uint{5}}

	assert.NoError(t, Allow(Actor{ID: 1, Role: models.ROLE_JOURNALIST}, ActionRequestMembership, res))
	assert.True(t, workflow.IsPermission(Allow(Actor{ID: 1, Role: models.ROLE_READER}, ActionRequestMembership, res)))
	assert.True(t, workflow.IsPermission(Allow(Actor{ID: 5, Role: models.ROLE_EDITOR}, ActionRequestMembership, res)))

	assert.NoError(t, Allow(Actor{ID: 5, Role: models.ROLE_EDITOR}, ActionReviewMembership, res))
	assert.True(t, workflow.IsPermission(Allow(Actor{ID: 6, Role: models.ROLE_EDITOR}, ActionReviewMembership, res)))
	assert.True(t, workflow.IsPermission(Allow(Actor{ID: 1, Role: models.ROLE_JOURNALIST}, ActionReviewMembership, res)))
}

func TestAllowSubscribe(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Allow(Actor{ID: 1, Role: models.ROLE_READER}, ActionSubscribe, Resource{}))
	assert.True(t, workflow.IsPermission(Allow(Actor{ID: 1, Role: models.ROLE_JOURNALIST}, ActionSubscribe, Resource{})))
	assert.True(t, workflow.IsPermission(Allow(Actor{ID: 1, Role: models.ROLE_EDITOR}, ActionSubscribe, Resource{})))
}

func TestAllowCommentAndRate(t *testing.T) {
	t.Parallel()

	for _, role := range []string{models.ROLE_READER, models.ROLE_JOURNALIST, models.ROLE_EDITOR} {
		assert.NoError(t, Allow(Actor{ID: 1, Role: role}, ActionComment, Resource{}))
		assert.NoError(t, Allow(Actor{ID: 1, Role: role}, ActionRate, Resource{}))
	}

	assert.True(t, workflow.IsPermission(Allow(Actor{}, ActionComment, Resource{})))
	assert.True(t, workflow.IsPermission(Allow(Actor{}, ActionRate, Resource{})))
}
