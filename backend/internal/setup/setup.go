package setup

import (
	"context"
	"fmt"

	"github.com/itchan-dev/forum/backend/internal/handler"
	"github.com/itchan-dev/forum/backend/internal/service"
	"github.com/itchan-dev/forum/backend/internal/storage/blob"
	"github.com/itchan-dev/forum/backend/internal/storage/mem"
	"github.com/itchan-dev/forum/shared/config"
	"github.com/itchan-dev/forum/shared/jwt"
	"github.com/itchan-dev/forum/shared/markdown"
	mw "github.com/itchan-dev/forum/shared/middleware"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Store          *mem.Storage
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
}

// SetupDependencies opens the snapshot backend, loads the store from it and
// wires the services on top.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	b, err := blob.NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("snapshot backend: %w", err)
	}
	store, err := mem.Open(ctx, b)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("load store: %w", err)
	}
	return New(cfg, store), nil
}

// New wires services and handlers around an already opened store.
func New(cfg *config.Config, store *mem.Storage) *Dependencies {
	passwords := service.NewPasswords(cfg.Public.PasswordStorage)
	auth := service.NewAuth(store, jwt.New(cfg.JwtKey(), cfg.JwtTTL()), passwords)
	thread := service.NewThread(store, cfg.Public.ThreadsPageSize)
	comment := service.NewComment(store)
	user := service.NewUser(store, passwords)

	h := handler.New(auth, thread, comment, user, store, markdown.New())

	return &Dependencies{
		Config:         cfg,
		Store:          store,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(auth),
	}
}
