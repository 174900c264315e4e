package services

import (
	"context"

	"github.com/finken/finken_backend/internal/core/domain"
)

// IdentitySvc resolves users and answers role checks for the other services.
type IdentitySvc interface {
	// GetUserByID retrieves an active user by their ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// AuthorizeRole returns apperrors.ErrForbidden unless the user is active
	// and holds one of the given roles.
	AuthorizeRole(ctx context.Context, userID string, roles ...domain.RoleName) error
}
