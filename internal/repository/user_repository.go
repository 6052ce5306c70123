package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/fixture-tickets/internal/identity"
	"github.com/iliyamo/fixture-tickets/internal/model"
	"github.com/iliyamo/fixture-tickets/internal/utils"
)

// UserRepo is the credential store behind identity.StoreGate.
type UserRepo struct {
	DB   *sql.DB
	Cost int // bcrypt cost for new hashes
}

var _ identity.UserStore = (*UserRepo)(nil)

func NewUserRepo(db *sql.DB, cost int) *UserRepo { return &UserRepo{DB: db, Cost: cost} }

// Create hashes password and inserts a new active user with a fresh id.
func (r *UserRepo) Create(ctx context.Context, name, email, password, role string) (model.User, error) {
	hash, err := utils.HashPassword(password, r.Cost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	u := model.User{
		ID:           "user_" + uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, role, is_active, created_at) VALUES (?,?,?,?,?,?,?)",
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.IsActive, u.CreatedAt)
	if err != nil {
		if isDuplicate(err) {
			return model.User{}, identity.ErrEmailExists
		}
		return model.User{}, err
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.  Unknown emails yield
// sql.ErrNoRows.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,role,is_active,created_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt)
	return u, err
}

// EnsureAdmin creates the administrator account unless the email is
// already registered.  It reports whether a row was inserted.
func (r *UserRepo) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	if _, err := r.Create(ctx, name, email, password, model.RoleAdmin); err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
