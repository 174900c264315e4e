package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finken/finken_backend/internal/apperrors"
	"github.com/finken/finken_backend/internal/core/domain"
	portssvc "github.com/finken/finken_backend/internal/core/ports/services"
	"github.com/finken/finken_backend/internal/core/services"
	"github.com/finken/finken_backend/internal/dto"
)

// --- Test Suite Setup ---

type JournalEntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockJournalEntryRepository
	mockAccountRepo *MockAccountRepository
	mockIdentity    *MockIdentityService
	mockAudit       *MockAuditRecorder
	mockNotifier    *MockNotifier
	service         portssvc.JournalEntrySvcFacade
	cashAccount     domain.Account
	revenueAccount  domain.Account
	creatorID       string
	managerID       string
}

func (suite *JournalEntryServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockJournalEntryRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockIdentity = new(MockIdentityService)
	suite.mockAudit = new(MockAuditRecorder)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewJournalEntryService(suite.mockEntryRepo, suite.mockAccountRepo, suite.mockIdentity, suite.mockAudit, suite.mockNotifier)

	suite.creatorID = uuid.NewString()
	suite.managerID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:  uuid.NewString(),
		NormalSide: domain.Debit,
		Category:   domain.Asset,
		IsActive:   true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:  uuid.NewString(),
		NormalSide: domain.Credit,
		Category:   domain.Revenue,
		IsActive:   true,
	}
}

func (suite *JournalEntryServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
}

func (suite *JournalEntryServiceTestSuite) balancedRequest(amount decimal.Decimal) dto.SubmitEntryRequest {
	return dto.SubmitEntryRequest{
		EntryDate:   time.Now().UTC(),
		Description: "Cash sale",
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Side: "DEBIT", Amount: amount},
			{AccountID: suite.revenueAccount.AccountID, Side: "CREDIT", Amount: amount},
		},
	}
}

func (suite *JournalEntryServiceTestSuite) pendingEntry() *domain.JournalEntry {
	now := time.Now().UTC().Add(-time.Hour)
	return &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryDate:   now,
		Description: "Cash sale",
		Status:      domain.Pending,
		AuditFields: domain.NewAuditFields(now, suite.creatorID),
	}
}

func (suite *JournalEntryServiceTestSuite) pendingLines(entryID string, amount decimal.Decimal) []domain.JournalEntryLine {
	return []domain.JournalEntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, Side: domain.Debit, Amount: amount},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.revenueAccount.AccountID, Side: domain.Credit, Amount: amount},
	}
}

func strPtr(s string) *string { return &s }

// --- SubmitEntry ---

func (suite *JournalEntryServiceTestSuite) TestSubmitEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(100))

	suite.mockIdentity.On("GetUserByID", ctx, suite.creatorID).Return(&domain.User{UserID: suite.creatorID, Role: domain.RoleAccountant, IsActive: true}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.cashAccount.AccountID, suite.revenueAccount.AccountID}).Return(suite.accountsMap(), nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, mock.AnythingOfType("domain.AuditEvent")).Return(nil).Once()

	var notice domain.PendingEntryNotice
	suite.mockNotifier.On("NotifyEntrySubmitted", ctx, mock.AnythingOfType("domain.PendingEntryNotice")).
		Run(func(args mock.Arguments) { notice = args.Get(1).(domain.PendingEntryNotice) }).
		Return(nil).Once()

	entry, err := suite.service.SubmitEntry(ctx, req, suite.creatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.Pending, entry.Status)
	suite.Equal(suite.creatorID, entry.CreatedBy)
	suite.Len(entry.Lines, 2)
	suite.True(notice.TotalAmount.Equal(decimal.NewFromInt(100)))
	suite.Equal(entry.EntryID, notice.EntryID)

	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestSubmitEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.SubmitEntryRequest{
		EntryDate: time.Now().UTC(),
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Side: "DEBIT", Amount: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Side: "CREDIT", Amount: decimal.NewFromInt(70)},
		},
	}

	suite.mockIdentity.On("GetUserByID", ctx, suite.creatorID).Return(&domain.User{UserID: suite.creatorID, IsActive: true}, nil).Once()

	_, err := suite.service.SubmitEntry(ctx, req, suite.creatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	// Both sides of the imbalance are named in the error.
	suite.Contains(err.Error(), "100")
	suite.Contains(err.Error(), "70")
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestSubmitEntry_SingleLine() {
	ctx := context.Background()
	req := dto.SubmitEntryRequest{
		EntryDate: time.Now().UTC(),
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Side: "DEBIT", Amount: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.SubmitEntry(ctx, req, suite.creatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestSubmitEntry_AccountNotFound() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	req := dto.SubmitEntryRequest{
		EntryDate: time.Now().UTC(),
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Side: "DEBIT", Amount: decimal.NewFromInt(50)},
			{AccountID: unknownID, Side: "CREDIT", Amount: decimal.NewFromInt(50)},
		},
	}

	suite.mockIdentity.On("GetUserByID", ctx, suite.creatorID).Return(&domain.User{UserID: suite.creatorID, IsActive: true}, nil).Once()
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		// unknownID is missing
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.SubmitEntry(ctx, req, suite.creatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Contains(err.Error(), unknownID)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestSubmitEntry_AccountInactive() {
	ctx := context.Background()
	inactive := domain.Account{
		AccountID:  uuid.NewString(),
		NormalSide: domain.Credit,
		Category:   domain.Revenue,
		IsActive:   false,
	}
	req := dto.SubmitEntryRequest{
		EntryDate: time.Now().UTC(),
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Side: "DEBIT", Amount: decimal.NewFromInt(50)},
			{AccountID: inactive.AccountID, Side: "CREDIT", Amount: decimal.NewFromInt(50)},
		},
	}

	suite.mockIdentity.On("GetUserByID", ctx, suite.creatorID).Return(&domain.User{UserID: suite.creatorID, IsActive: true}, nil).Once()
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		inactive.AccountID:          inactive,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.SubmitEntry(ctx, req, suite.creatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestSubmitEntry_NotifierFailureDoesNotFailSubmit() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(25))

	suite.mockIdentity.On("GetUserByID", ctx, suite.creatorID).Return(&domain.User{UserID: suite.creatorID, IsActive: true}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, mock.AnythingOfType("domain.AuditEvent")).Return(nil).Once()
	suite.mockNotifier.On("NotifyEntrySubmitted", ctx, mock.AnythingOfType("domain.PendingEntryNotice")).Return(assert.AnError).Once()

	entry, err := suite.service.SubmitEntry(ctx, req, suite.creatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.mockNotifier.AssertExpectations(suite.T())
}

// --- ApproveEntry ---

func (suite *JournalEntryServiceTestSuite) TestApproveEntry_Success() {
	ctx := context.Background()
	entry := suite.pendingEntry()
	amount := decimal.NewFromInt(50)
	lines := suite.pendingLines(entry.EntryID, amount)

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockIdentity.On("AuthorizeRole", ctx, suite.managerID, domain.ApproverRoles).Return(nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accountsMap(), nil).Once()

	var postings []domain.LedgerPosting
	var balanceChanges map[string]decimal.Decimal
	suite.mockEntryRepo.On("ApproveAndPost", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.LedgerPosting"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			postings = args.Get(2).([]domain.LedgerPosting)
			balanceChanges = args.Get(3).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()
	suite.mockAudit.On("Record", ctx, mock.AnythingOfType("domain.AuditEvent")).Return(nil).Once()

	approved, err := suite.service.ApproveEntry(ctx, entry.EntryID, suite.managerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(approved)
	suite.Equal(domain.Approved, approved.Status)
	suite.Require().NotNil(approved.ApprovedBy)
	suite.Equal(suite.managerID, *approved.ApprovedBy)
	suite.NotNil(approved.ApprovedAt)

	// One posting per line, each carrying exactly one side.
	suite.Require().Len(postings, 2)
	suite.True(postings[0].Debit.Equal(amount))
	suite.True(postings[0].Credit.IsZero())
	suite.True(postings[1].Credit.Equal(amount))
	suite.True(postings[1].Debit.IsZero())
	suite.Equal(entry.EntryID, postings[0].EntryID)

	// Debit grows the debit-normal cash account, credit grows the
	// credit-normal revenue account.
	suite.True(balanceChanges[suite.cashAccount.AccountID].Equal(amount))
	suite.True(balanceChanges[suite.revenueAccount.AccountID].Equal(amount))

	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockIdentity.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestApproveEntry_DebitToCreditNormalShrinksBalance() {
	ctx := context.Background()
	entry := suite.pendingEntry()
	amount := decimal.NewFromInt(30)
	// Refund: debit revenue, credit cash.
	lines := []domain.JournalEntryLine{
		{LineID: uuid.NewString(), EntryID: entry.EntryID, AccountID: suite.revenueAccount.AccountID, Side: domain.Debit, Amount: amount},
		{LineID: uuid.NewString(), EntryID: entry.EntryID, AccountID: suite.cashAccount.AccountID, Side: domain.Credit, Amount: amount},
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockIdentity.On("AuthorizeRole", ctx, suite.managerID, domain.ApproverRoles).Return(nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accountsMap(), nil).Once()

	var balanceChanges map[string]decimal.Decimal
	suite.mockEntryRepo.On("ApproveAndPost", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			balanceChanges = args.Get(3).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()
	suite.mockAudit.On("Record", ctx, mock.AnythingOfType("domain.AuditEvent")).Return(nil).Once()

	_, err := suite.service.ApproveEntry(ctx, entry.EntryID, suite.managerID)

	suite.Require().NoError(err)
	suite.True(balanceChanges[suite.revenueAccount.AccountID].Equal(amount.Neg()))
	suite.True(balanceChanges[suite.cashAccount.AccountID].Equal(amount.Neg()))
}

func (suite *JournalEntryServiceTestSuite) TestApproveEntry_AlreadyApproved() {
	ctx := context.Background()
	entry := suite.pendingEntry()
	entry.Status = domain.Approved

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.ApproveEntry(ctx, entry.EntryID, suite.managerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockIdentity.AssertNotCalled(suite.T(), "AuthorizeRole", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestApproveEntry_LostRace() {
	ctx := context.Background()
	entry := suite.pendingEntry()
	lines := suite.pendingLines(entry.EntryID, decimal.NewFromInt(10))

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockIdentity.On("AuthorizeRole", ctx, suite.managerID, domain.ApproverRoles).Return(nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accountsMap(), nil).Once()
	// A concurrent reviewer got there first: the conditional update matched no rows.
	suite.mockEntryRepo.On("ApproveAndPost", ctx, mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrInvalidState).Once()

	_, err := suite.service.ApproveEntry(ctx, entry.EntryID, suite.managerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestApproveEntry_NotAnApprover() {
	ctx := context.Background()
	entry := suite.pendingEntry()

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockIdentity.On("AuthorizeRole", ctx, suite.creatorID, domain.ApproverRoles).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.ApproveEntry(ctx, entry.EntryID, suite.creatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ApproveAndPost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- RejectEntry ---

func (suite *JournalEntryServiceTestSuite) TestRejectEntry_Success() {
	ctx := context.Background()
	entry := suite.pendingEntry()
	req := dto.RejectEntryRequest{Reason: "insufficient documentation"}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockIdentity.On("AuthorizeRole", ctx, suite.managerID, domain.ApproverRoles).Return(nil).Once()
	suite.mockEntryRepo.On("RejectEntry", ctx, entry.EntryID, suite.managerID, "insufficient documentation", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, mock.AnythingOfType("domain.AuditEvent")).Return(nil).Once()

	rejected, err := suite.service.RejectEntry(ctx, entry.EntryID, req, suite.managerID)

	suite.Require().NoError(err)
	suite.Equal(domain.Rejected, rejected.Status)
	suite.Require().NotNil(rejected.RejectionReason)
	suite.Equal("insufficient documentation", *rejected.RejectionReason)
	// No postings are ever written on rejection.
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ApproveAndPost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestRejectEntry_ReasonTooShort() {
	ctx := context.Background()
	req := dto.RejectEntryRequest{Reason: "ok"}

	_, err := suite.service.RejectEntry(ctx, uuid.NewString(), req, suite.managerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "FindEntryByID", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestRejectEntry_ReasonPaddedWithWhitespace() {
	ctx := context.Background()
	// Whitespace does not count towards the minimum length.
	req := dto.RejectEntryRequest{Reason: "   ab   "}

	_, err := suite.service.RejectEntry(ctx, uuid.NewString(), req, suite.managerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalEntryServiceTestSuite) TestRejectEntry_AlreadyRejected() {
	ctx := context.Background()
	entry := suite.pendingEntry()
	entry.Status = domain.Rejected
	req := dto.RejectEntryRequest{Reason: "duplicate of an earlier entry"}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.RejectEntry(ctx, entry.EntryID, req, suite.managerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

// --- UpdateEntry ---

func (suite *JournalEntryServiceTestSuite) TestUpdateEntry_SuccessByCreator() {
	ctx := context.Background()
	entry := suite.pendingEntry()
	lines := suite.pendingLines(entry.EntryID, decimal.NewFromInt(40))
	req := dto.UpdateEntryRequest{Description: strPtr("Corrected narration")}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockEntryRepo.On("ReplaceEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, mock.AnythingOfType("domain.AuditEvent")).Return(nil).Once()

	updated, err := suite.service.UpdateEntry(ctx, entry.EntryID, req, suite.creatorID)

	suite.Require().NoError(err)
	suite.Equal("Corrected narration", updated.Description)
	suite.Equal(suite.creatorID, updated.LastUpdatedBy)
	// Creator edits their own pending entry without a role check.
	suite.mockIdentity.AssertNotCalled(suite.T(), "AuthorizeRole", mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestUpdateEntry_ReplacedLinesMustBalance() {
	ctx := context.Background()
	entry := suite.pendingEntry()
	newLines := []dto.EntryLineRequest{
		{AccountID: suite.cashAccount.AccountID, Side: "DEBIT", Amount: decimal.NewFromInt(90)},
		{AccountID: suite.revenueAccount.AccountID, Side: "CREDIT", Amount: decimal.NewFromInt(60)},
	}
	req := dto.UpdateEntryRequest{Lines: &newLines}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(suite.pendingLines(entry.EntryID, decimal.NewFromInt(40)), nil).Once()

	_, err := suite.service.UpdateEntry(ctx, entry.EntryID, req, suite.creatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ReplaceEntry", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestUpdateEntry_ApprovedEntryIsImmutable() {
	ctx := context.Background()
	entry := suite.pendingEntry()
	entry.Status = domain.Approved
	req := dto.UpdateEntryRequest{Description: strPtr("too late")}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.UpdateEntry(ctx, entry.EntryID, req, suite.creatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	// State is reported before permission, so even the creator sees the same failure.
	suite.mockIdentity.AssertNotCalled(suite.T(), "AuthorizeRole", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestUpdateEntry_StrangerForbidden() {
	ctx := context.Background()
	entry := suite.pendingEntry()
	strangerID := uuid.NewString()
	req := dto.UpdateEntryRequest{Description: strPtr("not mine")}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockIdentity.On("AuthorizeRole", ctx, strangerID, []domain.RoleName{domain.RoleAdministrator}).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.UpdateEntry(ctx, entry.EntryID, req, strangerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ReplaceEntry", mock.Anything, mock.Anything)
}

// --- DeleteEntry ---

func (suite *JournalEntryServiceTestSuite) TestDeleteEntry_SuccessByCreator() {
	ctx := context.Background()
	entry := suite.pendingEntry()

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockEntryRepo.On("DeleteEntry", ctx, entry.EntryID).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, mock.AnythingOfType("domain.AuditEvent")).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, entry.EntryID, suite.creatorID)

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestDeleteEntry_AdminMayDeleteOthersPending() {
	ctx := context.Background()
	entry := suite.pendingEntry()
	adminID := uuid.NewString()

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockIdentity.On("AuthorizeRole", ctx, adminID, []domain.RoleName{domain.RoleAdministrator}).Return(nil).Once()
	suite.mockEntryRepo.On("DeleteEntry", ctx, entry.EntryID).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, mock.AnythingOfType("domain.AuditEvent")).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, entry.EntryID, adminID)

	suite.Require().NoError(err)
	suite.mockIdentity.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestDeleteEntry_ApprovedEntryIsImmutable() {
	ctx := context.Background()
	entry := suite.pendingEntry()
	entry.Status = domain.Approved

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	err := suite.service.DeleteEntry(ctx, entry.EntryID, suite.creatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

// --- GetEntryByID / ListEntries ---

func (suite *JournalEntryServiceTestSuite) TestGetEntryByID_Success() {
	ctx := context.Background()
	entry := suite.pendingEntry()
	lines := suite.pendingLines(entry.EntryID, decimal.NewFromInt(15))

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()

	got, err := suite.service.GetEntryByID(ctx, entry.EntryID)

	suite.Require().NoError(err)
	suite.Len(got.Lines, 2)
}

func (suite *JournalEntryServiceTestSuite) TestGetEntryByID_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetEntryByID(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalEntryServiceTestSuite) TestListEntries_DefaultsLimit() {
	ctx := context.Background()
	entry := suite.pendingEntry()
	token := "next-page"

	suite.mockEntryRepo.On("ListEntries", ctx, mock.MatchedBy(func(p dto.ListEntriesParams) bool {
		return p.Limit == 20
	})).Return([]domain.JournalEntry{*entry}, token, nil).Once()

	resp, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
}

func TestJournalEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalEntryServiceTestSuite))
}
