// Package models defines the persisted user record, its external view, and
// the typed partial-update shape used by the repository layer.
package models

import "time"

// Roles a record may carry. The set is closed and enforced at write time.
const (
	RoleCaregiver = "caregiver"
	RolePatient   = "patient"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleCaregiver || role == RolePatient
}

// User is the persisted entity. PasswordHash is the only credential form
// ever stored; optional fields are nil when absent.
type User struct {
	ID           int64
	Role         string
	Email        string
	PasswordHash string
	NationalID   *string
	Phone        *string
	State        *string
	City         *string
	CreatedAt    time.Time
}

// UserView is the externally visible projection of a User. It carries every
// field except the password hash and is what every API response returns.
type UserView struct {
	ID         int64     `json:"id"`
	Role       string    `json:"role"`
	Email      string    `json:"email"`
	NationalID *string   `json:"nationalId,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	State      *string   `json:"state,omitempty"`
	City       *string   `json:"city,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// View projects the record into its external representation.
func (u *User) View() *UserView {
	return &UserView{
		ID:         u.ID,
		Role:       u.Role,
		Email:      u.Email,
		NationalID: u.NationalID,
		Phone:      u.Phone,
		State:      u.State,
		City:       u.City,
		CreatedAt:  u.CreatedAt,
	}
}

// UserPatch enumerates exactly the mutable columns for a partial update.
// A nil field is left untouched; a non-nil field overwrites the stored
// value. PasswordHash must already be hashed by the caller — the
// repository never hashes.
type UserPatch struct {
	Role         *string
	Email        *string
	PasswordHash *string
	NationalID   *string
	Phone        *string
	State        *string
	City         *string
}

// Empty reports whether the patch carries no fields at all. An empty patch
// is a legal no-op for the repository.
func (p *UserPatch) Empty() bool {
	return p.Role == nil && p.Email == nil && p.PasswordHash == nil &&
		p.NationalID == nil && p.Phone == nil && p.State == nil && p.City == nil
}
