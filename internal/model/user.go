package model

import "time"

// Role names accepted by the identity gate and carried in access tokens.
const (
    RolePatron = "PATRON"
    RoleAdmin  = "ADMIN"
)

// Identity is the authenticated caller of a session.  It is produced by
// the identity gate on login or registration and lives until logout.
// Identities are never persisted by the booking core.
//
// Fields:
//  ID          – stable identifier used as the booking owner id.
//  DisplayName – human readable name shown on bookings and tickets.
//  Email       – contact address copied onto bookings.
//  Role        – PATRON or ADMIN.
type Identity struct {
    ID          string `json:"id"`
    DisplayName string `json:"name"`
    Email       string `json:"email"`
    Role        string `json:"role"`
}

// IsAdmin reports whether the identity may verify payments.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// IsPatron reports whether the identity may submit bookings.
func (i Identity) IsPatron() bool { return i.Role == RolePatron }

// User represents a credential record as stored in the `users` table
// when the credential-store identity gate is enabled.
//
// Fields:
//  ID           – primary key identifier of the user (uuid string).
//  Name         – display name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – PATRON or ADMIN.
//  IsActive     – whether the account may log in.
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           string    // users.id
    Name         string    // users.name
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
}

// Identity projects the stored user onto the session identity.
func (u User) Identity() Identity {
    return Identity{ID: u.ID, DisplayName: u.Name, Email: u.Email, Role: u.Role}
}
