package repositories

import (
	"context"

	"github.com/finken/finken_backend/internal/core/domain"
)

// UserReader defines read operations for user profile data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID, with their role resolved.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
}
