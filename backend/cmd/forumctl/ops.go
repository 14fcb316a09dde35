package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/itchan-dev/forum/backend/internal/storage/blob"
	"github.com/itchan-dev/forum/backend/internal/storage/mem"
	"github.com/itchan-dev/forum/shared/domain"
)

func listUsers(w io.Writer, store *mem.Storage) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tADMIN")
	err := store.View(func(tx *mem.Tx) error {
		for _, u := range tx.Users() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%t\n", u.Id, u.Email, u.Name, u.Admin)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return tw.Flush()
}

func listThreads(w io.Writer, store *mem.Storage) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATOR\tCREATED\tPUBLIC\tLOCKED\tLIKES\tCOMMENTS\tTITLE")
	err := store.View(func(tx *mem.Tx) error {
		threads := tx.Threads()
		slices.SortFunc(threads, func(a, b *domain.Thread) int {
			if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
				return c
			}
			return cmp.Compare(b.Seq, a.Seq)
		})
		for _, t := range threads {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%t\t%t\t%d\t%d\t%s\n",
				t.Id, t.CreatorId, t.CreatedAt.Format("2006-01-02 15:04:05"),
				t.IsPublic, t.Lock, len(t.Likes), len(tx.CommentsOf(t.Id)), t.Title)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return tw.Flush()
}

func setAdmin(ctx context.Context, store *mem.Storage, userId domain.UserId, on bool) error {
	return store.Update(ctx, func(tx *mem.Tx) error {
		u, ok := tx.User(userId)
		if !ok {
			return fmt.Errorf("user %d does not exist", userId)
		}
		u.Admin = on
		return nil
	})
}

func unlockThread(ctx context.Context, store *mem.Storage, threadId domain.ThreadId) error {
	return store.Update(ctx, func(tx *mem.Tx) error {
		t, ok := tx.Thread(threadId)
		if !ok {
			return fmt.Errorf("thread %d does not exist", threadId)
		}
		t.Lock = false
		return nil
	})
}

func exportSnapshot(ctx context.Context, store *mem.Storage, dst blob.Store) error {
	raw, err := store.Snapshot()
	if err != nil {
		return err
	}
	return dst.Save(ctx, raw)
}
