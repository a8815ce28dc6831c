package auth

import (
	"context"
	"errors"
	"fmt"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/models"
)

// UserFinder loads a user by email. A missing user is (nil, nil).
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authorizer gates admin routes on the role stored in the user record,
// not on anything carried by the token.
type Authorizer struct {
	users UserFinder
}

func NewAuthorizer(users UserFinder) *Authorizer {
	return &Authorizer{users: users}
}

// Authorize returns the caller's role when it is admin or demo-admin and
// ErrForbidden otherwise.
func (a *Authorizer) Authorize(ctx context.Context, email string) (models.Role, error) {
	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return models.RoleNone, fmt.Errorf("load user: %w", err)
	}
	if user == nil || !user.Role.IsAdmin() {
		return models.RoleNone, apperr.ErrForbidden
	}
	return user.Role, nil
}

func (a *Authorizer) IsAdmin(ctx context.Context, email string) (bool, error) {
	_, err := a.Authorize(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperr.ErrForbidden):
		return false, nil
	default:
		return false, err
	}
}
