package service

import (
	"context"
	"time"

	"github.com/itchan-dev/forum/backend/internal/storage/mem"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
)

type CommentService interface {
	List(actor domain.UserId, threadId *domain.ThreadId) ([]domain.Comment, error)
	Create(ctx context.Context, actor domain.UserId, data domain.CommentCreationData) (domain.CommentId, error)
	Update(ctx context.Context, actor domain.UserId, data domain.CommentUpdateData) error
	Delete(ctx context.Context, actor domain.UserId, id *domain.CommentId) error
	Like(ctx context.Context, actor domain.UserId, toggle domain.Toggle) error
}

type Comment struct {
	store Store
	now   func() time.Time
}

func NewComment(store Store) *Comment {
	return &Comment{
		store: store,
		now:   time.Now,
	}
}

// List returns every comment referencing threadId, including those of a
// deleted thread.
func (c *Comment) List(actor domain.UserId, threadId *domain.ThreadId) ([]domain.Comment, error) {
	if threadId == nil {
		return nil, errors.Input("Thread ID is missing")
	}
	var comments []domain.Comment
	err := c.store.View(func(tx *mem.Tx) error {
		stored := tx.CommentsOf(*threadId)
		comments = make([]domain.Comment, 0, len(stored))
		for _, cm := range stored {
			comments = append(comments, commentCopy(cm))
		}
		return nil
	})
	return comments, err
}

func (c *Comment) Create(ctx context.Context, actor domain.UserId, data domain.CommentCreationData) (domain.CommentId, error) {
	if data.ThreadId == nil || !data.HasParent || !nonEmpty(data.Content) {
		return 0, observe("comment_create", errors.Input("Please enter all relevant fields: threadId, parentCommentId and content"))
	}
	var id domain.CommentId
	err := c.store.Update(ctx, func(tx *mem.Tx) error {
		t, err := existingThread(tx, *data.ThreadId)
		if err != nil {
			return err
		}
		var parent *domain.CommentId
		if data.ParentCommentId != nil {
			p, err := existingComment(tx, *data.ParentCommentId)
			if err != nil {
				return err
			}
			parentId := p.Id
			parent = &parentId
		}
		if err := assertUnlocked(t); err != nil {
			return err
		}
		id = tx.AddComment(&domain.Comment{
			CreatorId:       actor,
			ThreadId:        t.Id,
			ParentCommentId: parent,
			Content:         *data.Content,
			CreatedAt:       c.now().UTC(),
			Likes:           domain.NewIdSet(),
		})
		return nil
	})
	if err != nil {
		return 0, observe("comment_create", err)
	}
	return id, observe("comment_create", nil)
}

// Update is refused while the parent thread is locked. Comments of a deleted
// thread stay editable.
func (c *Comment) Update(ctx context.Context, actor domain.UserId, data domain.CommentUpdateData) error {
	if data.Id == nil {
		return observe("comment_update", errors.Input("Comment ID is missing"))
	}
	err := c.store.Update(ctx, func(tx *mem.Tx) error {
		cm, err := existingComment(tx, *data.Id)
		if err != nil {
			return err
		}
		if err := assertEditComment(tx, actor, cm); err != nil {
			return err
		}
		if t, ok := tx.Thread(cm.ThreadId); ok {
			if err := assertUnlocked(t); err != nil {
				return err
			}
		}
		if nonEmpty(data.Content) {
			cm.Content = *data.Content
		}
		return nil
	})
	return observe("comment_update", err)
}

// Delete removes the comment. Replies keep pointing at it.
func (c *Comment) Delete(ctx context.Context, actor domain.UserId, id *domain.CommentId) error {
	if id == nil {
		return observe("comment_delete", errors.Input("Comment ID is missing"))
	}
	err := c.store.Update(ctx, func(tx *mem.Tx) error {
		cm, err := existingComment(tx, *id)
		if err != nil {
			return err
		}
		if err := assertEditComment(tx, actor, cm); err != nil {
			return err
		}
		tx.DeleteComment(cm.Id)
		return nil
	})
	return observe("comment_delete", err)
}

func (c *Comment) Like(ctx context.Context, actor domain.UserId, toggle domain.Toggle) error {
	if err := checkToggle(toggle, "Comment"); err != nil {
		return observe("comment_like", err)
	}
	err := c.store.Update(ctx, func(tx *mem.Tx) error {
		cm, err := existingComment(tx, *toggle.Id)
		if err != nil {
			return err
		}
		if err := assertLikeComment(tx, actor, cm); err != nil {
			return err
		}
		cm.Likes.Toggle(actor, *toggle.TurnOn)
		return nil
	})
	return observe("comment_like", err)
}
