// Package identity maps credentials to a session identity.  The booking
// core depends only on the Gate contract: an identity on success, an
// error and no identity on failure.
package identity

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/iliyamo/fixture-tickets/internal/model"
)

// MinPasswordLen is the shortest password either gate accepts.
const MinPasswordLen = 6

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRegistration = errors.New("name, email and a password of at least 6 characters are required")
	ErrEmailExists         = errors.New("email already registered")
)

// Gate authenticates and registers identities.
type Gate interface {
	Authenticate(ctx context.Context, email, password string) (model.Identity, error)
	Register(ctx context.Context, name, email, password string) (model.Identity, error)
}

// Reserved demo administrator.
const (
	AdminEmail    = "admin@tickets.com"
	AdminPassword = "admin123"
	AdminID       = "admin"
	AdminName     = "Admin User"
)

// DemoGate performs no real credential check.  The reserved admin pair
// yields an admin identity; any other non-empty email with a long enough
// password yields a patron.
type DemoGate struct{}

func NewDemoGate() DemoGate { return DemoGate{} }

func (DemoGate) Authenticate(ctx context.Context, email, password string) (model.Identity, error) {
	email = strings.TrimSpace(email)
	if email == AdminEmail && password == AdminPassword {
		return model.Identity{ID: AdminID, DisplayName: AdminName, Email: email, Role: model.RoleAdmin}, nil
	}
	if email == "" || !longEnough(password) {
		return model.Identity{}, ErrInvalidCredentials
	}
	return model.Identity{
		ID:          PatronID(email),
		DisplayName: localPart(email),
		Email:       email,
		Role:        model.RolePatron,
	}, nil
}

func (DemoGate) Register(ctx context.Context, name, email, password string) (model.Identity, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || !longEnough(password) {
		return model.Identity{}, ErrInvalidRegistration
	}
	return model.Identity{
		ID:          "user_" + uuid.NewString(),
		DisplayName: name,
		Email:       email,
		Role:        model.RolePatron,
	}, nil
}

// PatronID derives a stable patron id from an email so repeated demo logins
// map to the same ledger owner.
func PatronID(email string) string {
	norm := strings.ToLower(strings.TrimSpace(email))
	return "user_" + uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+norm)).String()
}

func longEnough(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLen
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
