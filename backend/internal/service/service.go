package service

import (
	"context"

	"github.com/itchan-dev/forum/backend/internal/storage/mem"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store is the entity store as the services see it. *mem.Storage implements it.
type Store interface {
	View(fn func(tx *mem.Tx) error) error
	Update(ctx context.Context, fn func(tx *mem.Tx) error) error
}

var operationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "forum_operations_total",
		Help: "Forum core operations by outcome",
	},
	[]string{"op", "result"},
)

// observe counts the outcome of op and passes err through.
func observe(op string, err error) error {
	result := "ok"
	switch {
	case err == nil:
	case errors.IsInput(err):
		result = "input_error"
	case errors.IsAccess(err):
		result = "access_error"
	default:
		result = "internal_error"
	}
	operationsTotal.WithLabelValues(op, result).Inc()
	return err
}

// The copies below are what leaves the data lock. Sets are cloned so callers
// can not reach live store data.

func threadCopy(t *domain.Thread) domain.Thread {
	c := *t
	c.Likes = t.Likes.Clone()
	c.Watchees = t.Watchees.Clone()
	return c
}

func commentCopy(c *domain.Comment) domain.Comment {
	cp := *c
	cp.Likes = c.Likes.Clone()
	if c.ParentCommentId != nil {
		parent := *c.ParentCommentId
		cp.ParentCommentId = &parent
	}
	return cp
}

func userCopy(u *domain.User) domain.User {
	c := *u
	c.Password = ""
	if u.Image != nil {
		image := *u.Image
		c.Image = &image
	}
	return c
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
