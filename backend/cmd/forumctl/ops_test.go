package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/itchan-dev/forum/backend/internal/storage/blob"
	"github.com/itchan-dev/forum/backend/internal/storage/mem"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) (*mem.Storage, domain.UserId, domain.ThreadId) {
	t.Helper()
	store, err := mem.Open(context.Background(), blob.NewMemory())
	require.NoError(t, err)

	var userId domain.UserId
	var threadId domain.ThreadId
	require.NoError(t, store.Update(context.Background(), func(tx *mem.Tx) error {
		userId = tx.AddUser(&domain.User{Email: "a@example.com", Name: "alice"})
		threadId = tx.AddThread(&domain.Thread{
			CreatorId: userId,
			Title:     "locked one",
			Lock:      true,
			CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			Likes:     domain.NewIdSet(userId),
			Watchees:  domain.NewIdSet(),
		})
		return nil
	}))
	return store, userId, threadId
}

func TestListUsers(t *testing.T) {
	store, userId, _ := seededStore(t)
	var out bytes.Buffer
	require.NoError(t, listUsers(&out, store))
	assert.Contains(t, out.String(), "EMAIL")
	assert.Contains(t, out.String(), "a@example.com")
	assert.Contains(t, out.String(), "alice")
	assert.Contains(t, out.String(), domainId(userId))
}

func TestListThreads(t *testing.T) {
	store, _, threadId := seededStore(t)
	var out bytes.Buffer
	require.NoError(t, listThreads(&out, store))
	assert.Contains(t, out.String(), domainId(threadId))
	assert.Contains(t, out.String(), "2024-01-02 03:04:05")
	assert.Contains(t, out.String(), "locked one")
}

func TestSetAdminAndUnlock(t *testing.T) {
	ctx := context.Background()
	store, userId, threadId := seededStore(t)

	require.NoError(t, setAdmin(ctx, store, userId, true))
	require.NoError(t, unlockThread(ctx, store, threadId))
	require.NoError(t, store.View(func(tx *mem.Tx) error {
		u, _ := tx.User(userId)
		assert.True(t, u.Admin)
		th, _ := tx.Thread(threadId)
		assert.False(t, th.Lock)
		return nil
	}))

	assert.Error(t, setAdmin(ctx, store, 1, true))
	assert.Error(t, unlockThread(ctx, store, 1))
}

func TestExportSnapshot(t *testing.T) {
	ctx := context.Background()
	store, _, _ := seededStore(t)

	dst, err := blob.NewFile(filepath.Join(t.TempDir(), "out", "export.json"))
	require.NoError(t, err)
	require.NoError(t, exportSnapshot(ctx, store, dst))

	exported, err := mem.Open(ctx, dst)
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, listUsers(&out, exported))
	assert.Contains(t, out.String(), "a@example.com")
}

func TestSnapshotResetNeedsConfirmation(t *testing.T) {
	rootCmd.SetArgs([]string{"snapshot", "reset"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

func domainId(id int64) string {
	return strconv.FormatInt(id, 10)
}
