package mapping

import (
	"github.com/finken/finken_backend/internal/core/domain"
	"github.com/finken/finken_backend/internal/models"
)

// ToDomainUser converts a model User to a domain User.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:      m.UserID,
		Username:    m.Username,
		Role:        domain.RoleName(m.RoleName),
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}
}
