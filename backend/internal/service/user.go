package service

import (
	"context"

	"github.com/itchan-dev/forum/backend/internal/storage/mem"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
	"github.com/itchan-dev/forum/shared/logger"
)

type UserService interface {
	Get(actor domain.UserId, id *domain.UserId) (domain.User, error)
	Update(ctx context.Context, actor domain.UserId, data domain.UserUpdateData) error
	SetAdmin(ctx context.Context, actor domain.UserId, toggle domain.Toggle) error
}

type User struct {
	store     Store
	passwords Passwords
}

func NewUser(store Store, passwords Passwords) *User {
	return &User{
		store:     store,
		passwords: passwords,
	}
}

// Get returns the profile without its password.
func (u *User) Get(actor domain.UserId, id *domain.UserId) (domain.User, error) {
	if id == nil {
		return domain.User{}, errors.Input("User ID is missing")
	}
	var user domain.User
	err := u.store.View(func(tx *mem.Tx) error {
		found, err := existingUser(tx, *id)
		if err != nil {
			return err
		}
		user = userCopy(found)
		return nil
	})
	return user, err
}

// Update changes the actor's own profile. Empty fields are left alone.
func (u *User) Update(ctx context.Context, actor domain.UserId, data domain.UserUpdateData) error {
	var passHash domain.Password
	if nonEmpty(data.Password) {
		var err error
		if passHash, err = u.passwords.Hash(*data.Password); err != nil {
			logger.Log.Error("failed to hash password", "error", err)
			return observe("user_update", err)
		}
	}
	err := u.store.Update(ctx, func(tx *mem.Tx) error {
		user, err := existingUser(tx, actor)
		if err != nil {
			return err
		}
		if nonEmpty(data.Email) {
			if other, ok := tx.UserByEmail(*data.Email); ok && other.Id != actor {
				return errors.Input("Email address %s already registered", *data.Email)
			}
		}
		if nonEmpty(data.Email) {
			user.Email = *data.Email
		}
		if passHash != "" {
			user.Password = passHash
		}
		if nonEmpty(data.Name) {
			user.Name = *data.Name
		}
		if nonEmpty(data.Image) {
			image := *data.Image
			user.Image = &image
		}
		return nil
	})
	return observe("user_update", err)
}

// SetAdmin grants or revokes admin rights of toggle.Id. Only admins may do it,
// including on themselves.
func (u *User) SetAdmin(ctx context.Context, actor domain.UserId, toggle domain.Toggle) error {
	if err := checkToggle(toggle, "User"); err != nil {
		return observe("user_admin", err)
	}
	err := u.store.Update(ctx, func(tx *mem.Tx) error {
		target, err := existingUser(tx, *toggle.Id)
		if err != nil {
			return err
		}
		if err := assertAdmin(tx, actor); err != nil {
			return err
		}
		target.Admin = *toggle.TurnOn
		return nil
	})
	return observe("user_admin", err)
}
