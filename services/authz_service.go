package services

import (
	"blog-platform-api/models"
)

type Action string

const (
	ActionCreatePost    Action = "createPost"
	ActionUpdatePost    Action = "updatePost"
	ActionDeletePost    Action = "deletePost"
	ActionCreateComment Action = "createComment"
	ActionDeleteComment Action = "deleteComment"
	ActionManageUsers   Action = "manageUsers"
)

// Guard is the single place authorization rules live. Handlers and the client
// UI may hide buttons, but only the guard's answer counts.
type Guard interface {
	Require(identity models.Identity, action Action, ownerID string) error
}

type guard struct{}

func NewGuard() Guard {
	return &guard{}
}

// Require returns nil when the action is allowed, ErrUnauthenticated when the
// action needs a logged-in caller, ErrForbidden otherwise. Pure and state-free.
func (g *guard) Require(identity models.Identity, action Action, ownerID string) error {
	if identity.Anonymous {
		return models.ErrUnauthenticated
	}

	switch action {
	case ActionCreatePost, ActionCreateComment:
		return nil
	case ActionUpdatePost, ActionDeletePost:
		if identity.Owns(ownerID) || identity.IsAdmin() {
			return nil
		}
		return models.ErrForbidden
	case ActionDeleteComment:
		// Comments are removable by their author only, admins included.
		if identity.Owns(ownerID) {
			return nil
		}
		return models.ErrForbidden
	case ActionManageUsers:
		if identity.IsAdmin() {
			return nil
		}
		return models.ErrForbidden
	}

	// Unknown actions fail closed.
	return models.ErrForbidden
}
