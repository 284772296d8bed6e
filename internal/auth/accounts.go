package auth

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/lostfound/internal/model"
)

// ErrInvalidCredentials is returned for an unknown user or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyHash is compared against when the user does not exist, so both
// failure paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("lostfound"), bcrypt.DefaultCost)
	return hash
})

// Accounts holds the configured dashboard users keyed by username.
type Accounts struct {
	users map[string]model.User
}

// NewAccounts validates users and indexes them by username.
func NewAccounts(users []model.User) (*Accounts, error) {
	a := &Accounts{users: make(map[string]model.User, len(users))}
	for _, u := range users {
		if u.Username == "" {
			return nil, fmt.Errorf("account without username")
		}
		if u.Role != model.RoleAdmin && u.Role != model.RoleStaff {
			return nil, fmt.Errorf("account %q: unknown role %q", u.Username, u.Role)
		}
		if _, err := bcrypt.Cost([]byte(u.PasswordHash)); err != nil {
			return nil, fmt.Errorf("account %q: invalid password hash: %w", u.Username, err)
		}
		if _, dup := a.users[u.Username]; dup {
			return nil, fmt.Errorf("duplicate account %q", u.Username)
		}
		a.users[u.Username] = u
	}
	return a, nil
}

// Len returns the number of accounts.
func (a *Accounts) Len() int { return len(a.users) }

// Authenticate checks password against the stored bcrypt hash.
func (a *Accounts) Authenticate(username, password string) (*model.User, error) {
	u, ok := a.users[username]
	if !ok {
		bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// HashPassword validates and hashes a password for the accounts file.
func HashPassword(password string) (string, error) {
	if err := model.ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
