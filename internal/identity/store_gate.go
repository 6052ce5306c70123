package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/fixture-tickets/internal/model"
	"github.com/iliyamo/fixture-tickets/internal/utils"
)

// UserStore is the credential collaborator behind StoreGate.  GetByEmail
// returns sql.ErrNoRows for unknown emails; Create returns ErrEmailExists
// on duplicates.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, name, email, password, role string) (model.User, error)
}

// StoreGate checks bcrypt hashes held by a UserStore.
type StoreGate struct {
	Users UserStore
}

func NewStoreGate(users UserStore) *StoreGate { return &StoreGate{Users: users} }

func (g *StoreGate) Authenticate(ctx context.Context, email, password string) (model.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return model.Identity{}, ErrInvalidCredentials
	}
	u, err := g.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Identity{}, ErrInvalidCredentials
		}
		return model.Identity{}, fmt.Errorf("load user: %w", err)
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, password) {
		return model.Identity{}, ErrInvalidCredentials
	}
	return u.Identity(), nil
}

func (g *StoreGate) Register(ctx context.Context, name, email, password string) (model.Identity, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || !longEnough(password) {
		return model.Identity{}, ErrInvalidRegistration
	}
	u, err := g.Users.Create(ctx, name, email, password, model.RolePatron)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return model.Identity{}, ErrEmailExists
		}
		return model.Identity{}, fmt.Errorf("create user: %w", err)
	}
	return u.Identity(), nil
}
