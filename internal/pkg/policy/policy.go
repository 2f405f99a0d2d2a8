// Package policy decides what a user may do as a pure function of the
// actor, the action and the resource. There is no runtime permission
// registry; role groups from the web framework world become explicit
// capability checks here.
package policy

import (
	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/internal/pkg/workflow"
)

type Action string

const (
	ActionAuthorContent     Action = "author_content"
	ActionEditContent       Action = "edit_content"
	ActionSubmitContent     Action = "submit_content"
	ActionReviewContent     Action = "review_content"
	ActionManagePublication Action = "manage_publication"
	ActionRequestMembership Action = "request_membership"
	ActionReviewMembership  Action = "review_membership"
	ActionSubscribe         Action = "subscribe"
	ActionComment           Action = "comment"
	ActionRate              Action = "rate"
)

// Actor is the acting user reduced to what the rules need.
type Actor struct {
	ID   uint
	Role string
}

// Resource describes the acted-upon object: its owner (author or
// requester), its owning publication if any, and that publication's
// editors.
type Resource struct {
	OwnerID       uint
	PublicationID uint
	EditorIDs     []uint
}

func (r Resource) hasEditor(id uint) bool {
	for _, e := range r.EditorIDs {
		if e == id {
			return true
		}
	}
	return false
}

// Allow returns nil when the actor may perform the action on the
// resource, or a PermissionError naming the failed guard.
func Allow(actor Actor, action Action, res Resource) error {
	switch action {
	case ActionAuthorContent:
		if actor.Role == models.ROLE_JOURNALIST || actor.Role == models.ROLE_EDITOR {
			return nil
		}
		return deny("only journalists and editors may author content")

	case ActionEditContent, ActionSubmitContent:
		if actor.Role != models.ROLE_JOURNALIST && actor.Role != models.ROLE_EDITOR {
			return deny("only journalists and editors may modify content")
		}
		if actor.ID != res.OwnerID && !res.hasEditor(actor.ID) {
			return deny("content belongs to another author")
		}
		return nil

	case ActionReviewContent:
		if actor.Role != models.ROLE_EDITOR {
			return deny("only editors may review content")
		}
		// Independent content has no owning publication; any editor acts
		// as the reviewer there.
		if res.PublicationID != 0 && !res.hasEditor(actor.ID) {
			return deny("not an editor of the owning publication")
		}
		return nil

	case ActionManagePublication:
		if actor.Role != models.ROLE_EDITOR {
			return deny("only editors may manage publications")
		}
		if res.PublicationID != 0 && !res.hasEditor(actor.ID) {
			return deny("not an editor of this publication")
		}
		return nil

	case ActionRequestMembership:
		if actor.Role != models.ROLE_JOURNALIST {
			return deny("only journalists may request publication membership")
		}
		return nil

	case ActionReviewMembership:
		if actor.Role != models.ROLE_EDITOR || !res.hasEditor(actor.ID) {
			return deny("only an editor of the publication may review join requests")
		}
		return nil

	case ActionSubscribe:
		if actor.Role != models.ROLE_READER {
			return deny("only readers may subscribe")
		}
		return nil

	case ActionComment, ActionRate:
		if actor.ID == 0 {
			return deny("login required")
		}
		return nil
	}

	return deny("unknown action")
}

func deny(msg string) error {
	return &workflow.PermissionError{Msg: msg}
}
