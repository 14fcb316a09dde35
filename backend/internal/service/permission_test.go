package service

import (
	"testing"

	"github.com/itchan-dev/forum/shared/domain"
	"github.com/stretchr/testify/assert"
)

type fakeLookup struct {
	users    map[domain.UserId]*domain.User
	threads  map[domain.ThreadId]*domain.Thread
	comments map[domain.CommentId]*domain.Comment
}

func (f *fakeLookup) User(id domain.UserId) (*domain.User, bool) {
	u, ok := f.users[id]
	return u, ok
}

func (f *fakeLookup) Thread(id domain.ThreadId) (*domain.Thread, bool) {
	t, ok := f.threads[id]
	return t, ok
}

func (f *fakeLookup) Comment(id domain.CommentId) (*domain.Comment, bool) {
	c, ok := f.comments[id]
	return c, ok
}

const (
	adminId   domain.UserId = 10001
	creatorId domain.UserId = 10002
	otherId   domain.UserId = 10003
)

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		users: map[domain.UserId]*domain.User{
			adminId:   {Id: adminId, Admin: true},
			creatorId: {Id: creatorId},
			otherId:   {Id: otherId},
		},
		threads: map[domain.ThreadId]*domain.Thread{
			100001: {Id: 100001, CreatorId: creatorId, IsPublic: true},
			100002: {Id: 100002, CreatorId: creatorId, IsPublic: false},
		},
		comments: map[domain.CommentId]*domain.Comment{
			200001: {Id: 200001, CreatorId: creatorId, ThreadId: 100001},
			200002: {Id: 200002, CreatorId: creatorId, ThreadId: 100002},
			200003: {Id: 200003, CreatorId: creatorId, ThreadId: 100003}, // orphan
		},
	}
}

func TestCanView(t *testing.T) {
	l := newFakeLookup()
	public, private := l.threads[100001], l.threads[100002]

	for _, actor := range []domain.UserId{adminId, creatorId, otherId, 1} {
		assert.True(t, CanView(l, actor, public))
		assert.True(t, CanLikeThread(l, actor, public))
	}
	assert.True(t, CanView(l, adminId, private))
	assert.True(t, CanView(l, creatorId, private))
	assert.False(t, CanView(l, otherId, private))
	assert.False(t, CanLikeThread(l, otherId, private))
	assert.False(t, CanView(l, 1, private))
}

func TestCanEdit(t *testing.T) {
	l := newFakeLookup()
	thread, comment := l.threads[100001], l.comments[200001]

	assert.True(t, CanEditThread(l, creatorId, thread))
	assert.True(t, CanEditThread(l, adminId, thread))
	assert.False(t, CanEditThread(l, otherId, thread))

	assert.True(t, CanEditComment(l, creatorId, comment))
	assert.True(t, CanEditComment(l, adminId, comment))
	assert.False(t, CanEditComment(l, otherId, comment))
}

func TestCanLikeComment(t *testing.T) {
	l := newFakeLookup()

	assert.True(t, CanLikeComment(l, otherId, l.comments[200001]))
	assert.False(t, CanLikeComment(l, otherId, l.comments[200002]))
	assert.True(t, CanLikeComment(l, adminId, l.comments[200002]))

	orphan := l.comments[200003]
	assert.False(t, CanLikeComment(l, otherId, orphan))
	assert.True(t, CanLikeComment(l, creatorId, orphan))
	assert.True(t, CanLikeComment(l, adminId, orphan))
}

func TestIsAdminAndUnlocked(t *testing.T) {
	l := newFakeLookup()
	assert.True(t, IsAdmin(l, adminId))
	assert.False(t, IsAdmin(l, otherId))
	assert.False(t, IsAdmin(l, 1))

	assert.True(t, IsUnlocked(&domain.Thread{}))
	assert.False(t, IsUnlocked(&domain.Thread{Lock: true}))
}

func TestAssertions(t *testing.T) {
	l := newFakeLookup()

	_, err := existingThread(l, 1)
	assertInputError(t, err)
	_, err = existingComment(l, 1)
	assertInputError(t, err)
	_, err = existingUser(l, 1)
	assertInputError(t, err)

	assertAccessError(t, assertViewThread(l, otherId, l.threads[100002]))
	assertAccessError(t, assertEditThread(l, otherId, l.threads[100001]))
	assertAccessError(t, assertEditComment(l, otherId, l.comments[200001]))
	assertAccessError(t, assertLikeComment(l, otherId, l.comments[200003]))
	assertAccessError(t, assertAdmin(l, creatorId))
	assertInputError(t, assertUnlocked(&domain.Thread{Lock: true}))

	assert.NoError(t, assertAdmin(l, adminId))
	assert.NoError(t, assertUnlocked(&domain.Thread{}))
}
