package service

import (
	"context"
	"crypto/subtle"

	"github.com/itchan-dev/forum/backend/internal/storage/mem"
	"github.com/itchan-dev/forum/shared/config"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
	"github.com/itchan-dev/forum/shared/logger"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, reg domain.Registration) (domain.Session, error)
	Login(creds domain.Credentials) (domain.Session, error)
	Resolve(token string) (domain.UserId, error)
}

type Auth struct {
	store     Store
	jwt       Jwt
	passwords Passwords
}

type Jwt interface {
	NewToken(userId domain.UserId) (string, error)
	DecodeToken(jwtStr string) (domain.UserId, error)
}

func NewAuth(store Store, jwt Jwt, passwords Passwords) *Auth {
	return &Auth{
		store:     store,
		jwt:       jwt,
		passwords: passwords,
	}
}

// Register creates the user and logs them in. The first user ever created is
// an admin.
func (a *Auth) Register(ctx context.Context, reg domain.Registration) (domain.Session, error) {
	if reg.Email == "" || reg.Password == "" || reg.Name == "" {
		return domain.Session{}, observe("register", errors.Input("Please enter all relevant fields"))
	}
	passHash, err := a.passwords.Hash(reg.Password)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.Session{}, observe("register", err)
	}

	var userId domain.UserId
	err = a.store.Update(ctx, func(tx *mem.Tx) error {
		if _, ok := tx.UserByEmail(reg.Email); ok {
			return errors.Input("Email address %s already registered", reg.Email)
		}
		userId = tx.AddUser(&domain.User{
			Email:    reg.Email,
			Name:     reg.Name,
			Password: passHash,
			Admin:    tx.UserCount() == 0,
		})
		return nil
	})
	if err != nil {
		return domain.Session{}, observe("register", err)
	}
	return a.session(userId, "register")
}

func (a *Auth) Login(creds domain.Credentials) (domain.Session, error) {
	var (
		userId domain.UserId
		stored domain.Password
		found  bool
	)
	err := a.store.View(func(tx *mem.Tx) error {
		u, ok := tx.UserByEmail(creds.Email)
		if ok {
			userId, stored, found = u.Id, u.Password, true
		}
		return nil
	})
	if err != nil {
		return domain.Session{}, observe("login", err)
	}
	// Hash comparison runs outside the data lock, bcrypt is slow.
	if !found || !a.passwords.Compare(stored, creds.Password) {
		return domain.Session{}, observe("login", errors.Input("Invalid email %s or password", creds.Email))
	}
	return a.session(userId, "login")
}

// Resolve maps a bearer token to an existing user.
func (a *Auth) Resolve(token string) (domain.UserId, error) {
	userId, err := a.jwt.DecodeToken(token)
	if err != nil {
		return 0, err
	}
	err = a.store.View(func(tx *mem.Tx) error {
		if _, ok := tx.User(userId); !ok {
			return errors.Access("Invalid token: user %d does not exist", userId)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return userId, nil
}

func (a *Auth) session(userId domain.UserId, op string) (domain.Session, error) {
	token, err := a.jwt.NewToken(userId)
	if err != nil {
		logger.Log.Error("failed to sign token", "user_id", userId, "error", err)
		return domain.Session{}, observe(op, err)
	}
	observe(op, nil)
	return domain.Session{Token: token, UserId: userId}, nil
}

// Passwords decides how passwords are kept in the snapshot.
type Passwords interface {
	Hash(password domain.Password) (domain.Password, error)
	Compare(stored, given domain.Password) bool
}

// PlainPasswords keeps passwords as given, the historical snapshot format.
type PlainPasswords struct{}

func (PlainPasswords) Hash(password domain.Password) (domain.Password, error) {
	return password, nil
}

func (PlainPasswords) Compare(stored, given domain.Password) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Hash(password domain.Password) (domain.Password, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptPasswords) Compare(stored, given domain.Password) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
}

// NewPasswords picks the implementation for a config.Public.PasswordStorage value.
func NewPasswords(storage string) Passwords {
	if storage == config.PasswordBcrypt {
		return BcryptPasswords{}
	}
	return PlainPasswords{}
}
