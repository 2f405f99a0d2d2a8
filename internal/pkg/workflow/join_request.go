package workflow

import (
	"time"

	"github.com/pressroom/newshub/app/models"
)

// CheckJoinRequest guards creation of a join request: a journalist may
// hold at most one pending request per publication.
func CheckJoinRequest(hasPending bool) error {
	if hasPending {
		return &ConflictError{
			Reason: ConflictDuplicateJoinRequest,
			Msg:    "a pending join request for this publication already exists",
		}
	}
	return nil
}

// ApproveJoinRequest terminally approves a pending request, stamping the
// review time exactly once. The caller adds the requester to the
// publication's journalist set in the same transaction.
func ApproveJoinRequest(r *models.JoinRequest, feedback string, now time.Time) error {
	if r.Status != models.JOIN_STATUS_PENDING {
		return &StateError{Entity: "join_request", From: r.Status, To: models.JOIN_STATUS_APPROVED}
	}

	r.Status = models.JOIN_STATUS_APPROVED
	r.Feedback = feedback
	r.ReviewedAt = &now
	return nil
}

// RejectJoinRequest terminally rejects a pending request, recording
// feedback for the requester. No membership changes.
func RejectJoinRequest(r *models.JoinRequest, feedback string, now time.Time) error {
	if r.Status != models.JOIN_STATUS_PENDING {
		return &StateError{Entity: "join_request", From: r.Status, To: models.JOIN_STATUS_REJECTED}
	}

	r.Status = models.JOIN_STATUS_REJECTED
	r.Feedback = feedback
	r.ReviewedAt = &now
	return nil
}
