package comment

import (
	"errors"
	"net/url"

	"newspress/internal/domain/entity"
)

// Composer tracks which comment is being replied to and which is being edited.
// Each slot holds at most one comment id; starting either on a new comment
// replaces the previous one. The zero value is idle.
type Composer struct {
	ReplyTo string
	Editing string
}

// StartReply opens the reply form under parent.
// Anonymous viewers get ErrAuthRequired and a reply as parent gets
// ErrReplyToReply; either way the state is left untouched.
func (c *Composer) StartReply(viewer *entity.User, parent entity.Comment) error {
	if viewer == nil {
		return ErrAuthRequired
	}
	if parent.IsReply() {
		return ErrReplyToReply
	}
	c.ReplyTo = parent.ID
	return nil
}

// StartEdit opens the edit form for target when the viewer owns it or is an administrator.
func (c *Composer) StartEdit(viewer *entity.User, target entity.Comment) error {
	if viewer == nil {
		return ErrAuthRequired
	}
	if !target.EditableBy(viewer) {
		return ErrForbidden
	}
	c.Editing = target.ID
	return nil
}

// ReplySubmitted closes the reply form after a successful submit.
func (c *Composer) ReplySubmitted() { c.ReplyTo = "" }

// EditSubmitted closes the edit form after a successful submit.
func (c *Composer) EditSubmitted() { c.Editing = "" }

// Cancel closes both forms.
func (c *Composer) Cancel() { *c = Composer{} }

// IsReplying reports whether the reply form is open under id.
func (c Composer) IsReplying(id string) bool { return id != "" && c.ReplyTo == id }

// IsEditing reports whether the edit form is open for id.
func (c Composer) IsEditing(id string) bool { return id != "" && c.Editing == id }

// ComposerFromQuery restores the composer from the "reply" and "edit" query
// parameters, re-checking permissions against the current viewer and thread.
// Targets that are missing or not permitted are dropped, as is a reply
// target that is itself a reply.
func ComposerFromQuery(q url.Values, viewer *entity.User, thread Thread) (Composer, error) {
	var c Composer
	var firstErr error
	if id := q.Get("reply"); id != "" {
		if parent, ok := thread.Find(id); ok {
			if err := c.StartReply(viewer, parent); err != nil && !errors.Is(err, ErrReplyToReply) {
				firstErr = err
			}
		}
	}
	if id := q.Get("edit"); id != "" {
		if target, ok := thread.Find(id); ok {
			if err := c.StartEdit(viewer, target); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return c, firstErr
}
