package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finken/finken_backend/internal/apperrors"
	"github.com/finken/finken_backend/internal/core/domain"
	portsrepo "github.com/finken/finken_backend/internal/core/ports/repositories"
	portssvc "github.com/finken/finken_backend/internal/core/ports/services"
	"github.com/finken/finken_backend/internal/platform/logging"
)

// identityService resolves users and answers role checks. Authentication
// happens upstream; this only consumes stored profiles.
type identityService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewIdentityService creates a new identity service.
func NewIdentityService(userRepo portsrepo.UserRepositoryFacade) portssvc.IdentitySvc {
	return &identityService{userRepo: userRepo}
}

// Ensure identityService implements the portssvc.IdentitySvc interface
var _ portssvc.IdentitySvc = (*identityService)(nil)

// GetUserByID retrieves an active user by their ID.
// Implements portssvc.IdentitySvc
func (s *identityService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	logger := logging.FromContext(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find user by ID", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return nil, err
	}
	if !user.IsActive || user.DeletedAt != nil {
		return nil, fmt.Errorf("%w: user %s is inactive", apperrors.ErrForbidden, userID)
	}
	return user, nil
}

// AuthorizeRole returns apperrors.ErrForbidden unless the user is active and
// holds one of the given roles.
// Implements portssvc.IdentitySvc
func (s *identityService) AuthorizeRole(ctx context.Context, userID string, roles ...domain.RoleName) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// An unknown actor gets the same answer as an unauthorized one.
			return fmt.Errorf("%w: user %s", apperrors.ErrForbidden, userID)
		}
		return err
	}
	if !user.HasRole(roles...) {
		return fmt.Errorf("%w: user %s lacks required role", apperrors.ErrForbidden, userID)
	}
	return nil
}
