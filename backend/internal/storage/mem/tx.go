package mem

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/itchan-dev/forum/shared/domain"
)

const (
	maxUserId   = 99999
	maxEntityId = 999999
)

type data struct {
	users    map[domain.UserId]*domain.User
	threads  map[domain.ThreadId]*domain.Thread
	comments map[domain.CommentId]*domain.Comment
	seq      uint64 // last thread sequence number handed out
}

func newData() *data {
	return &data{
		users:    make(map[domain.UserId]*domain.User),
		threads:  make(map[domain.ThreadId]*domain.Thread),
		comments: make(map[domain.CommentId]*domain.Comment),
	}
}

// Tx is the view of the data handed to View and Update callbacks. Returned
// entities are live: changing them inside Update changes the store.
type Tx struct {
	d *data
}

// Users

func (tx *Tx) User(id domain.UserId) (*domain.User, bool) {
	u, ok := tx.d.users[id]
	return u, ok
}

// UserByEmail uses exact string comparison.
func (tx *Tx) UserByEmail(email domain.Email) (*domain.User, bool) {
	for _, u := range tx.d.users {
		if u.Email == email {
			return u, true
		}
	}
	return nil, false
}

func (tx *Tx) UserCount() int {
	return len(tx.d.users)
}

// Users returns all users ordered by id.
func (tx *Tx) Users() []*domain.User {
	users := make([]*domain.User, 0, len(tx.d.users))
	for _, u := range tx.d.users {
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b *domain.User) int { return cmp.Compare(a.Id, b.Id) })
	return users
}

// AddUser assigns a fresh id to u and stores it.
func (tx *Tx) AddUser(u *domain.User) domain.UserId {
	u.Id = newId(maxUserId, func(id int64) bool { _, ok := tx.d.users[id]; return ok })
	tx.d.users[u.Id] = u
	return u.Id
}

// Threads

func (tx *Tx) Thread(id domain.ThreadId) (*domain.Thread, bool) {
	t, ok := tx.d.threads[id]
	return t, ok
}

// Threads returns all threads in insertion order.
func (tx *Tx) Threads() []*domain.Thread {
	threads := make([]*domain.Thread, 0, len(tx.d.threads))
	for _, t := range tx.d.threads {
		threads = append(threads, t)
	}
	slices.SortFunc(threads, func(a, b *domain.Thread) int { return cmp.Compare(a.Seq, b.Seq) })
	return threads
}

// AddThread assigns a fresh id and sequence number to t and stores it.
func (tx *Tx) AddThread(t *domain.Thread) domain.ThreadId {
	t.Id = newId(maxEntityId, func(id int64) bool { _, ok := tx.d.threads[id]; return ok })
	tx.d.seq++
	t.Seq = tx.d.seq
	tx.d.threads[t.Id] = t
	return t.Id
}

// DeleteThread removes the thread only. Its comments stay.
func (tx *Tx) DeleteThread(id domain.ThreadId) {
	delete(tx.d.threads, id)
}

// Comments

func (tx *Tx) Comment(id domain.CommentId) (*domain.Comment, bool) {
	c, ok := tx.d.comments[id]
	return c, ok
}

// CommentsOf returns the comments referencing threadId ordered by id, whether
// the thread still exists or not.
func (tx *Tx) CommentsOf(threadId domain.ThreadId) []*domain.Comment {
	var comments []*domain.Comment
	for _, c := range tx.d.comments {
		if c.ThreadId == threadId {
			comments = append(comments, c)
		}
	}
	slices.SortFunc(comments, func(a, b *domain.Comment) int { return cmp.Compare(a.Id, b.Id) })
	return comments
}

func (tx *Tx) AddComment(c *domain.Comment) domain.CommentId {
	c.Id = newId(maxEntityId, func(id int64) bool { _, ok := tx.d.comments[id]; return ok })
	tx.d.comments[c.Id] = c
	return c.Id
}

// DeleteComment removes the comment only. Replies to it stay.
func (tx *Tx) DeleteComment(id domain.CommentId) {
	delete(tx.d.comments, id)
}

// newId draws from [max/10, max] until it finds an id that is not taken.
func newId(max int64, taken func(int64) bool) int64 {
	low := max / 10
	for {
		id := low + rand.Int64N(max-low+1)
		if !taken(id) {
			return id
		}
	}
}
