package service

import (
	"context"
	"testing"
	"time"

	"github.com/itchan-dev/forum/backend/internal/storage/blob"
	"github.com/itchan-dev/forum/backend/internal/storage/mem"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
	"github.com/itchan-dev/forum/shared/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// env wires every service to one store kept in a memory blob.
type env struct {
	store    *mem.Storage
	blob     *blob.Memory
	auth     *Auth
	threads  *Thread
	comments *Comment
	users    *User
	clock    time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()
	b := blob.NewMemory()
	store, err := mem.Open(context.Background(), b)
	require.NoError(t, err)

	e := &env{
		store:    store,
		blob:     b,
		auth:     NewAuth(store, jwt.New("test-secret", 0), PlainPasswords{}),
		threads:  NewThread(store, 5),
		comments: NewComment(store),
		users:    NewUser(store, PlainPasswords{}),
		clock:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	// Each created entity is one second newer than the previous one.
	tick := func() time.Time {
		e.clock = e.clock.Add(time.Second)
		return e.clock
	}
	e.threads.now = tick
	e.comments.now = tick
	return e
}

func (e *env) register(t *testing.T, name string) domain.UserId {
	t.Helper()
	s, err := e.auth.Register(context.Background(), domain.Registration{
		Credentials: domain.Credentials{Email: name + "@example.com", Password: "pw-" + name},
		Name:        name,
	})
	require.NoError(t, err)
	return s.UserId
}

func (e *env) newThread(t *testing.T, actor domain.UserId, public bool) domain.ThreadId {
	t.Helper()
	id, err := e.threads.Create(context.Background(), actor, domain.ThreadCreationData{
		Title:    ptr("title"),
		Content:  ptr("content"),
		IsPublic: ptr(public),
	})
	require.NoError(t, err)
	return id
}

func (e *env) newComment(t *testing.T, actor domain.UserId, threadId domain.ThreadId, parent *domain.CommentId) domain.CommentId {
	t.Helper()
	id, err := e.comments.Create(context.Background(), actor, domain.CommentCreationData{
		ThreadId:        &threadId,
		HasParent:       true,
		ParentCommentId: parent,
		Content:         ptr("a comment"),
	})
	require.NoError(t, err)
	return id
}

func (e *env) thread(t *testing.T, id domain.ThreadId) domain.Thread {
	t.Helper()
	th, err := e.threads.Get(0, &id)
	require.NoError(t, err)
	return th
}

func (e *env) lock(t *testing.T, actor domain.UserId, id domain.ThreadId) {
	t.Helper()
	require.NoError(t, e.threads.Update(context.Background(), actor, domain.ThreadUpdateData{Id: &id, Lock: ptr(true)}))
}

func ptr[T any](v T) *T {
	return &v
}

func toggle(id int64, on bool) domain.Toggle {
	return domain.Toggle{Id: &id, TurnOn: &on}
}

func assertInputError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.IsInput(err), "expected InputError, got %T: %v", err, err)
}

func assertAccessError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.IsAccess(err), "expected AccessError, got %T: %v", err, err)
}

// unchanged asserts that fn fails and leaves the persisted snapshot alone.
func (e *env) unchanged(t *testing.T, fn func() error) error {
	t.Helper()
	before, err := e.blob.Load(context.Background())
	require.NoError(t, err)
	saves := e.blob.Saves()

	opErr := fn()
	require.Error(t, opErr)

	after, err := e.blob.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saves, e.blob.Saves())
	assert.JSONEq(t, string(before), string(after))
	return opErr
}

func TestScenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("public thread liked by second user", func(t *testing.T) {
		e := newEnv(t)
		a := e.register(t, "a")
		b := e.register(t, "b")

		userA, err := e.users.Get(b, &a)
		require.NoError(t, err)
		assert.True(t, userA.Admin)
		userB, err := e.users.Get(a, &b)
		require.NoError(t, err)
		assert.False(t, userB.Admin)

		tid := e.newThread(t, a, true)
		ids, err := e.threads.List(b, ptr(0))
		require.NoError(t, err)
		assert.Equal(t, []domain.ThreadId{tid}, ids)

		require.NoError(t, e.threads.Like(ctx, b, toggle(tid, true)))
		assert.Equal(t, []domain.UserId{b}, e.thread(t, tid).Likes.Sorted())
	})

	t.Run("private thread readable but not likeable by others", func(t *testing.T) {
		e := newEnv(t)
		a := e.register(t, "a")
		pid := e.newThread(t, a, false)
		c := e.register(t, "c")

		_, err := e.threads.Get(c, &pid)
		require.NoError(t, err)

		err = e.unchanged(t, func() error { return e.threads.Like(ctx, c, toggle(pid, true)) })
		assertAccessError(t, err)
	})

	t.Run("locked thread rejects creator edits", func(t *testing.T) {
		e := newEnv(t)
		a := e.register(t, "a")
		b := e.register(t, "b")
		tid := e.newThread(t, b, true)
		e.lock(t, a, tid)

		err := e.unchanged(t, func() error {
			return e.threads.Update(ctx, b, domain.ThreadUpdateData{Id: &tid, Content: ptr("x")})
		})
		assertInputError(t, err)

		th, err := e.threads.Get(b, &tid)
		require.NoError(t, err)
		assert.Equal(t, "content", th.Content)
		assert.True(t, th.Lock)
	})
}
