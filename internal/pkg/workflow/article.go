package workflow

import (
	"time"

	"github.com/pressroom/newshub/app/models"
)

// IntentKind identifies an outbound side effect owed after a commit.
type IntentKind string

const (
	IntentEmailBatch IntentKind = "email_batch"
	IntentSocialPost IntentKind = "social_post"
)

// Intent is a dispatch obligation produced by a state transition. The
// caller executes intents after the transition has been committed, so a
// slow or failing channel can never leave content state inconsistent.
type Intent struct {
	Kind      IntentKind
	ArticleID uint
}

// Submit moves an article from draft or rejected into review. Rejected
// content keeps its editor feedback until the next decision replaces it.
func Submit(a *models.Article) error {
	switch a.Status {
	case models.STATUS_DRAFT, models.STATUS_REJECTED:
		a.Status = models.STATUS_PENDING_APPROVAL
		return nil
	default:
		return &StateError{Entity: "article", From: a.Status, To: models.STATUS_PENDING_APPROVAL}
	}
}

// Approve publishes an article that is pending approval. It stamps the
// publish time, clears feedback, and returns the dispatch intents owed
// for this edge: one email batch and one social post. Publishing from
// any other state is a StateError, which also makes a second approval
// of the same submission a no-op for dispatch purposes.
func Approve(a *models.Article, now time.Time) ([]Intent, error) {
	if a.Status != models.STATUS_PENDING_APPROVAL {
		return nil, &StateError{Entity: "article", From: a.Status, To: models.STATUS_PUBLISHED}
	}

	a.Status = models.STATUS_PUBLISHED
	a.Feedback = ""
	if a.PublishedAt == nil {
		a.PublishedAt = &now
	}

	return []Intent{
		{Kind: IntentEmailBatch, ArticleID: a.ID},
		{Kind: IntentSocialPost, ArticleID: a.ID},
	}, nil
}

// Reject turns down a pending submission, recording the editor's
// feedback for the author. No dispatch fires.
func Reject(a *models.Article, feedback string) error {
	if a.Status != models.STATUS_PENDING_APPROVAL {
		return &StateError{Entity: "article", From: a.Status, To: models.STATUS_REJECTED}
	}

	a.Status = models.STATUS_REJECTED
	a.Feedback = feedback
	return nil
}

// ReturnToDraft reopens rejected content for editing, starting a new
// submission cycle.
func ReturnToDraft(a *models.Article) error {
	if a.Status != models.STATUS_REJECTED {
		return &StateError{Entity: "article", From: a.Status, To: models.STATUS_DRAFT}
	}

	a.Status = models.STATUS_DRAFT
	return nil
}
