package workflow

import (
	"github.com/pressroom/newshub/app/models"
)

// SubscriptionTarget names exactly one follow target: a publication or
// a journalist.
type SubscriptionTarget struct {
	PublicationID uint
	JournalistID  uint
}

// Validate enforces the exclusive-or constraint on the target.
func (t SubscriptionTarget) Validate() error {
	if t.PublicationID == 0 && t.JournalistID == 0 {
		return &ValidationError{Msg: "specify either a publication or a journalist"}
	}
	if t.PublicationID != 0 && t.JournalistID != 0 {
		return &ValidationError{Msg: "subscribe to either a publication or a journalist, not both"}
	}
	return nil
}

// TargetOf extracts the target of a stored subscription.
func TargetOf(s *models.Subscription) SubscriptionTarget {
	return SubscriptionTarget{
		PublicationID: s.TargetPublicationID(),
		JournalistID:  s.TargetJournalistID(),
	}
}

// JournalistProfile carries the facts the exclusivity rule needs about a
// journalist target: which publications they write for and whether they
// publish independently.
type JournalistProfile struct {
	PublicationIDs      []uint
	IndependentArticles int64
}

// ExclusiveTo returns the single publication the journalist writes for,
// or 0 when the journalist is not an exclusive contributor. A journalist
// is exclusive when they belong to exactly one publication and have no
// independent articles.
func (p JournalistProfile) ExclusiveTo() uint {
	if len(p.PublicationIDs) == 1 && p.IndependentArticles == 0 {
		return p.PublicationIDs[0]
	}
	return 0
}

// CheckSubscribe decides whether a new subscription is permitted.
// existing holds the reader's current targets; journalist must be set
// when the target is a journalist. The rules:
//   - the target must name exactly one of publication/journalist,
//   - a subscription to the exact same target is a duplicate,
//   - a journalist who writes exclusively for a publication the reader
//     already follows would only duplicate that feed.
func CheckSubscribe(existing []SubscriptionTarget, target SubscriptionTarget, journalist *JournalistProfile) error {
	if err := target.Validate(); err != nil {
		return err
	}

	subscribedPublications := make(map[uint]bool, len(existing))
	for _, e := range existing {
		if e == target {
			return &ConflictError{Reason: ConflictDuplicate, Msg: "subscription already exists"}
		}
		if e.PublicationID != 0 {
			subscribedPublications[e.PublicationID] = true
		}
	}

	if target.JournalistID != 0 && journalist != nil {
		if pub := journalist.ExclusiveTo(); pub != 0 && subscribedPublications[pub] {
			return &ConflictError{
				Reason: ConflictExclusivity,
				Msg:    "journalist writes exclusively for a publication you already follow",
			}
		}
	}

	return nil
}
