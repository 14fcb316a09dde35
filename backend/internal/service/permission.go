package service

import (
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
)

// Lookup is the read access the permission predicates need. *mem.Tx
// implements it.
type Lookup interface {
	User(id domain.UserId) (*domain.User, bool)
	Thread(id domain.ThreadId) (*domain.Thread, bool)
	Comment(id domain.CommentId) (*domain.Comment, bool)
}

// Predicates. They never fail: an unknown actor simply has no rights.

func IsAdmin(l Lookup, actor domain.UserId) bool {
	u, ok := l.User(actor)
	return ok && u.Admin
}

func CanView(l Lookup, actor domain.UserId, t *domain.Thread) bool {
	return t.IsPublic || t.CreatorId == actor || IsAdmin(l, actor)
}

func CanEditThread(l Lookup, actor domain.UserId, t *domain.Thread) bool {
	return t.CreatorId == actor || IsAdmin(l, actor)
}

func CanLikeThread(l Lookup, actor domain.UserId, t *domain.Thread) bool {
	return CanView(l, actor, t)
}

func CanEditComment(l Lookup, actor domain.UserId, c *domain.Comment) bool {
	return c.CreatorId == actor || IsAdmin(l, actor)
}

// CanLikeComment defers to the parent thread. A comment whose thread is gone
// can only be liked by its creator or an admin.
func CanLikeComment(l Lookup, actor domain.UserId, c *domain.Comment) bool {
	t, ok := l.Thread(c.ThreadId)
	if !ok {
		return CanEditComment(l, actor, c)
	}
	return CanView(l, actor, t)
}

func IsUnlocked(t *domain.Thread) bool {
	return !t.Lock
}

// Assertions turn lookups and predicates into the errors operations return.
// Existence failures are InputErrors, permission failures AccessErrors.

func existingThread(l Lookup, id domain.ThreadId) (*domain.Thread, error) {
	t, ok := l.Thread(id)
	if !ok {
		return nil, errors.Input("Invalid thread ID %d", id)
	}
	return t, nil
}

func existingComment(l Lookup, id domain.CommentId) (*domain.Comment, error) {
	c, ok := l.Comment(id)
	if !ok {
		return nil, errors.Input("Invalid comment ID %d", id)
	}
	return c, nil
}

func existingUser(l Lookup, id domain.UserId) (*domain.User, error) {
	u, ok := l.User(id)
	if !ok {
		return nil, errors.Input("Invalid user ID %d", id)
	}
	return u, nil
}

func assertViewThread(l Lookup, actor domain.UserId, t *domain.Thread) error {
	if !CanView(l, actor, t) {
		return errors.Access("Authorised user %d is not permitted to view thread %d", actor, t.Id)
	}
	return nil
}

func assertEditThread(l Lookup, actor domain.UserId, t *domain.Thread) error {
	if !CanEditThread(l, actor, t) {
		return errors.Access("Authorised user %d is not the creator of this thread %d", actor, t.Id)
	}
	return nil
}

func assertEditComment(l Lookup, actor domain.UserId, c *domain.Comment) error {
	if !CanEditComment(l, actor, c) {
		return errors.Access("Authorised user %d is not permitted to edit comment %d", actor, c.Id)
	}
	return nil
}

func assertLikeComment(l Lookup, actor domain.UserId, c *domain.Comment) error {
	if !CanLikeComment(l, actor, c) {
		return errors.Access("Authorised user %d is not permitted to like comment %d", actor, c.Id)
	}
	return nil
}

func assertUnlocked(t *domain.Thread) error {
	if !IsUnlocked(t) {
		return errors.Input("This thread %d is locked", t.Id)
	}
	return nil
}

func assertAdmin(l Lookup, actor domain.UserId) error {
	if !IsAdmin(l, actor) {
		return errors.Access("Authorised user %d is not an admin", actor)
	}
	return nil
}
