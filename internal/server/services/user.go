// Package services contains server-side business logic. This file implements
// UserService, the record lifecycle orchestrator: it sequences validation,
// uniqueness checks, and password hashing before handing mutations to the
// repository, and only ever returns the external user view.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cuidarmais/registry/internal/common"
	"github.com/cuidarmais/registry/internal/cryptox"
	"github.com/cuidarmais/registry/internal/server/models"
	"github.com/cuidarmais/registry/internal/server/repositories/users"
	"github.com/cuidarmais/registry/internal/validation"
)

// MinPasswordLength is the shortest accepted plaintext password.
const MinPasswordLength = 6

// CreateUserParams is the field set for creating a record. The password is
// plaintext here; it is hashed before anything is persisted.
type CreateUserParams struct {
	Role       string
	Email      string
	Password   string
	NationalID *string
	Phone      *string
	State      *string
	City       *string
}

// UpdateUserParams is the field set for a partial update. A nil field is
// not touched. A supplied password is plaintext and gets hashed before it
// reaches the repository.
type UpdateUserParams struct {
	Role       *string
	Email      *string
	Password   *string
	NationalID *string
	Phone      *string
	State      *string
	City       *string
}

// UserService owns the user record lifecycle.
type UserService struct {
	repo   users.Repository
	hasher cryptox.PasswordHasher
}

// NewUserService constructs a UserService with an injected repository and
// password hasher.
func NewUserService(repo users.Repository, hasher cryptox.PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

// List returns the views of all records in insertion order.
func (s *UserService) List(ctx context.Context) ([]*models.UserView, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*models.UserView, 0, len(records))
	for _, u := range records {
		views = append(views, u.View())
	}
	return views, nil
}

// Get returns the view of a single record.
func (s *UserService) Get(ctx context.Context, id int64) (*models.UserView, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.View(), nil
}

// Create validates the field set, checks email and national-ID uniqueness,
// hashes the password, and persists the record. Any failure short-circuits
// before the repository is touched.
func (s *UserService) Create(ctx context.Context, p CreateUserParams) (*models.UserView, error) {

	if !models.ValidRole(p.Role) {
		return nil, fmt.Errorf("%w: role must be %q or %q", common.ErrorValidation, models.RoleCaregiver, models.RolePatient)
	}
	if !validation.IsValidEmail(p.Email) {
		return nil, fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(p.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, MinPasswordLength)
	}

	// A supplied-but-empty national ID counts as absent.
	nationalID := p.NationalID
	if nationalID != nil && *nationalID == "" {
		nationalID = nil
	}
	if nationalID != nil && !validation.IsValidNationalID(*nationalID) {
		return nil, fmt.Errorf("%w: invalid national id", common.ErrorValidation)
	}

	if err := s.checkEmailFree(ctx, p.Email); err != nil {
		return nil, err
	}
	if nationalID != nil {
		if err := s.checkNationalIDFree(ctx, *nationalID); err != nil {
			return nil, err
		}
	}

	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user := &models.User{
		Role:         p.Role,
		Email:        p.Email,
		PasswordHash: hash,
		NationalID:   nationalID,
		Phone:        p.Phone,
		State:        p.State,
		City:         p.City,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			// The storage-level unique constraint caught a concurrent
			// create that slipped past the checks above.
			return nil, fmt.Errorf("%w: email or national id already registered", common.ErrorConflict)
		}
		return nil, err
	}

	return created.View(), nil
}

// Update applies a partial update. Supplied fields are validated by the
// same rules as create; fields left nil are not checked. National-ID
// uniqueness is only verified when the email is not also changing — the
// two checks are deliberately sequenced as alternatives, matching the
// system's long-standing observable behavior.
func (s *UserService) Update(ctx context.Context, id int64, p UpdateUserParams) (*models.UserView, error) {

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Role != nil && !models.ValidRole(*p.Role) {
		return nil, fmt.Errorf("%w: role must be %q or %q", common.ErrorValidation, models.RoleCaregiver, models.RolePatient)
	}
	if p.Email != nil && !validation.IsValidEmail(*p.Email) {
		return nil, fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if p.Password != nil && len(*p.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, MinPasswordLength)
	}
	if p.NationalID != nil && !validation.IsValidNationalID(*p.NationalID) {
		return nil, fmt.Errorf("%w: invalid national id", common.ErrorValidation)
	}

	if p.Email != nil && *p.Email != existing.Email {
		if err := s.checkEmailFree(ctx, *p.Email); err != nil {
			return nil, err
		}
	} else if p.NationalID != nil && *p.NationalID != "" && !sameNationalID(existing.NationalID, *p.NationalID) {
		if err := s.checkNationalIDFree(ctx, *p.NationalID); err != nil {
			return nil, err
		}
	}

	patch := &models.UserPatch{
		Role:       p.Role,
		Email:      p.Email,
		NationalID: p.NationalID,
		Phone:      p.Phone,
		State:      p.State,
		City:       p.City,
	}

	if p.Password != nil {
		hash, err := s.hasher.Hash(*p.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		patch.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, fmt.Errorf("%w: email or national id already registered", common.ErrorConflict)
		}
		return nil, err
	}

	return updated.View(), nil
}

// Delete removes the record permanently. A missing id is reported as
// not-found, never as success.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return common.ErrorNotFound
	}
	return nil
}

func (s *UserService) checkEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return fmt.Errorf("%w: email already registered", common.ErrorConflict)
	}
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return err
}

func (s *UserService) checkNationalIDFree(ctx context.Context, nationalID string) error {
	_, err := s.repo.GetByNationalID(ctx, nationalID)
	if err == nil {
		return fmt.Errorf("%w: national id already registered", common.ErrorConflict)
	}
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return err
}

func sameNationalID(current *string, candidate string) bool {
	return current != nil && *current == candidate
}
