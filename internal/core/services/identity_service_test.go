package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finken/finken_backend/internal/apperrors"
	"github.com/finken/finken_backend/internal/core/domain"
	portsrepo "github.com/finken/finken_backend/internal/core/ports/repositories"
	portssvc "github.com/finken/finken_backend/internal/core/ports/services"
	"github.com/finken/finken_backend/internal/core/services"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type IdentityServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.IdentitySvc
}

func (suite *IdentityServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewIdentityService(suite.mockUserRepo)
}

func activeUser(role domain.RoleName) *domain.User {
	return &domain.User{
		UserID:   uuid.NewString(),
		Username: "jdoe",
		Role:     role,
		IsActive: true,
	}
}

func (suite *IdentityServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	user := activeUser(domain.RoleAccountant)

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	got, err := suite.service.GetUserByID(ctx, user.UserID)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *IdentityServiceTestSuite) TestGetUserByID_InactiveForbidden() {
	ctx := context.Background()
	user := activeUser(domain.RoleAccountant)
	user.IsActive = false

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	_, err := suite.service.GetUserByID(ctx, user.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *IdentityServiceTestSuite) TestGetUserByID_SoftDeletedForbidden() {
	ctx := context.Background()
	user := activeUser(domain.RoleManager)
	deletedAt := time.Now().UTC()
	user.DeletedAt = &deletedAt

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	_, err := suite.service.GetUserByID(ctx, user.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *IdentityServiceTestSuite) TestAuthorizeRole_ManagerMayApprove() {
	ctx := context.Background()
	user := activeUser(domain.RoleManager)

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	err := suite.service.AuthorizeRole(ctx, user.UserID, domain.ApproverRoles...)

	suite.Require().NoError(err)
}

func (suite *IdentityServiceTestSuite) TestAuthorizeRole_AccountantMayNotApprove() {
	ctx := context.Background()
	user := activeUser(domain.RoleAccountant)

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	err := suite.service.AuthorizeRole(ctx, user.UserID, domain.ApproverRoles...)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *IdentityServiceTestSuite) TestAuthorizeRole_UnknownUserForbidden() {
	ctx := context.Background()
	userID := uuid.NewString()

	// An unknown actor gets the same answer as an unauthorized one.
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AuthorizeRole(ctx, userID, domain.RoleAdministrator)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func TestIdentityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IdentityServiceTestSuite))
}
