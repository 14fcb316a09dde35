package service

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/itchan-dev/forum/backend/internal/storage/mem"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
)

type ThreadService interface {
	Create(ctx context.Context, actor domain.UserId, data domain.ThreadCreationData) (domain.ThreadId, error)
	Get(actor domain.UserId, id *domain.ThreadId) (domain.Thread, error)
	List(actor domain.UserId, start *int) ([]domain.ThreadId, error)
	Update(ctx context.Context, actor domain.UserId, data domain.ThreadUpdateData) error
	Delete(ctx context.Context, actor domain.UserId, id *domain.ThreadId) error
	Like(ctx context.Context, actor domain.UserId, toggle domain.Toggle) error
	Watch(ctx context.Context, actor domain.UserId, toggle domain.Toggle) error
}

type Thread struct {
	store    Store
	pageSize int
	now      func() time.Time
}

func NewThread(store Store, pageSize int) *Thread {
	return &Thread{
		store:    store,
		pageSize: pageSize,
		now:      time.Now,
	}
}

func (b *Thread) Create(ctx context.Context, actor domain.UserId, data domain.ThreadCreationData) (domain.ThreadId, error) {
	if data.Title == nil || data.Content == nil || data.IsPublic == nil {
		return 0, observe("thread_create", errors.Input("Please enter all relevant fields: title, content and isPublic"))
	}
	var id domain.ThreadId
	err := b.store.Update(ctx, func(tx *mem.Tx) error {
		id = tx.AddThread(&domain.Thread{
			CreatorId: actor,
			Title:     *data.Title,
			Content:   *data.Content,
			IsPublic:  *data.IsPublic,
			CreatedAt: b.now().UTC(),
			Likes:     domain.NewIdSet(),
			Watchees:  domain.NewIdSet(),
		})
		return nil
	})
	if err != nil {
		return 0, observe("thread_create", err)
	}
	return id, observe("thread_create", nil)
}

// Get returns the thread whatever its visibility. Listing is where private
// threads are hidden.
func (b *Thread) Get(actor domain.UserId, id *domain.ThreadId) (domain.Thread, error) {
	if id == nil {
		return domain.Thread{}, errors.Input("Thread ID is missing")
	}
	var thread domain.Thread
	err := b.store.View(func(tx *mem.Tx) error {
		t, err := existingThread(tx, *id)
		if err != nil {
			return err
		}
		thread = threadCopy(t)
		return nil
	})
	return thread, err
}

// List returns one page of visible thread ids, newest first, starting at
// offset start.
func (b *Thread) List(actor domain.UserId, start *int) ([]domain.ThreadId, error) {
	if start == nil {
		return nil, errors.Input("Start value is missing")
	}
	if *start < 0 {
		return nil, errors.Input("Start value of %d cannot be negative", *start)
	}
	var ids []domain.ThreadId
	err := b.store.View(func(tx *mem.Tx) error {
		var visible []*domain.Thread
		for _, t := range tx.Threads() {
			if CanView(tx, actor, t) {
				visible = append(visible, t)
			}
		}
		slices.SortFunc(visible, newestFirst)
		ids = make([]domain.ThreadId, 0, b.pageSize)
		for i := *start; i < len(visible) && i < *start+b.pageSize; i++ {
			ids = append(ids, visible[i].Id)
		}
		return nil
	})
	return ids, err
}

// newestFirst orders by creation time descending. Equal times put the later
// inserted thread first.
func newestFirst(a, b *domain.Thread) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.Seq, a.Seq)
}

// Update applies every present, non-empty field. A locked thread only accepts
// an update whose sole change is lock=false.
func (b *Thread) Update(ctx context.Context, actor domain.UserId, data domain.ThreadUpdateData) error {
	if data.Id == nil {
		return observe("thread_update", errors.Input("Thread ID is missing"))
	}
	err := b.store.Update(ctx, func(tx *mem.Tx) error {
		t, err := existingThread(tx, *data.Id)
		if err != nil {
			return err
		}
		if err := assertEditThread(tx, actor, t); err != nil {
			return err
		}
		if !IsUnlocked(t) && !onlyUnlocks(data) {
			return assertUnlocked(t)
		}
		if nonEmpty(data.Title) {
			t.Title = *data.Title
		}
		if nonEmpty(data.Content) {
			t.Content = *data.Content
		}
		if data.IsPublic != nil {
			t.IsPublic = *data.IsPublic
		}
		if data.Lock != nil {
			t.Lock = *data.Lock
		}
		return nil
	})
	return observe("thread_update", err)
}

func onlyUnlocks(data domain.ThreadUpdateData) bool {
	return data.Lock != nil && !*data.Lock &&
		!nonEmpty(data.Title) && !nonEmpty(data.Content) && data.IsPublic == nil
}

// Delete removes the thread. Its comments are kept.
func (b *Thread) Delete(ctx context.Context, actor domain.UserId, id *domain.ThreadId) error {
	if id == nil {
		return observe("thread_delete", errors.Input("Thread ID is missing"))
	}
	err := b.store.Update(ctx, func(tx *mem.Tx) error {
		t, err := existingThread(tx, *id)
		if err != nil {
			return err
		}
		if err := assertEditThread(tx, actor, t); err != nil {
			return err
		}
		tx.DeleteThread(t.Id)
		return nil
	})
	return observe("thread_delete", err)
}

func (b *Thread) Like(ctx context.Context, actor domain.UserId, toggle domain.Toggle) error {
	if err := checkToggle(toggle, "Thread"); err != nil {
		return observe("thread_like", err)
	}
	err := b.store.Update(ctx, func(tx *mem.Tx) error {
		t, err := existingThread(tx, *toggle.Id)
		if err != nil {
			return err
		}
		if err := assertViewThread(tx, actor, t); err != nil {
			return err
		}
		if err := assertUnlocked(t); err != nil {
			return err
		}
		t.Likes.Toggle(actor, *toggle.TurnOn)
		return nil
	})
	return observe("thread_like", err)
}

// Watch is allowed on locked threads.
func (b *Thread) Watch(ctx context.Context, actor domain.UserId, toggle domain.Toggle) error {
	if err := checkToggle(toggle, "Thread"); err != nil {
		return observe("thread_watch", err)
	}
	err := b.store.Update(ctx, func(tx *mem.Tx) error {
		t, err := existingThread(tx, *toggle.Id)
		if err != nil {
			return err
		}
		if err := assertViewThread(tx, actor, t); err != nil {
			return err
		}
		t.Watchees.Toggle(actor, *toggle.TurnOn)
		return nil
	})
	return observe("thread_watch", err)
}

func checkToggle(toggle domain.Toggle, entity string) error {
	if toggle.Id == nil {
		return errors.Input("%s ID is missing", entity)
	}
	if toggle.TurnOn == nil {
		return errors.Input("turnon property is missing")
	}
	return nil
}
