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

	"github.com/keiri-app/keiri-backend/internal/apperrors"
	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
	"github.com/keiri-app/keiri-backend/internal/core/services"
)

// --- Mock JournalRepository (based on JournalService usage) ---
type MockJournalRepository struct {
	mock.Mock
	FindEntryByIDFn        func(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntriesByTenantFn  func(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
	FindEntryByVoucherIDFn func(ctx context.Context, voucherID string) (*domain.JournalEntry, error)
	SaveEntryForVoucherFn  func(ctx context.Context, entry domain.JournalEntry, voucherID string) error
	SaveEntryFn            func(ctx context.Context, entry domain.JournalEntry) error
	UpdateEntryFn          func(ctx context.Context, entry domain.JournalEntry) error
	DeleteEntryFn          func(ctx context.Context, entryID string) error
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	if m.FindEntryByIDFn != nil {
		return m.FindEntryByIDFn(ctx, entryID)
	}
	args := m.Called(ctx, entryID)
	var entry *domain.JournalEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.JournalEntry)
	}
	return entry, args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if m.ListEntriesByTenantFn != nil {
		return m.ListEntriesByTenantFn(ctx, tenantID, limit, nextToken)
	}
	args := m.Called(ctx, tenantID, limit, nextToken)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockJournalRepository) FindEntryByVoucherID(ctx context.Context, voucherID string) (*domain.JournalEntry, error) {
	if m.FindEntryByVoucherIDFn != nil {
		return m.FindEntryByVoucherIDFn(ctx, voucherID)
	}
	args := m.Called(ctx, voucherID)
	var entry *domain.JournalEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.JournalEntry)
	}
	return entry, args.Error(1)
}

func (m *MockJournalRepository) SaveEntryForVoucher(ctx context.Context, entry domain.JournalEntry, voucherID string) error {
	if m.SaveEntryForVoucherFn != nil {
		return m.SaveEntryForVoucherFn(ctx, entry, voucherID)
	}
	args := m.Called(ctx, entry, voucherID)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	if m.SaveEntryFn != nil {
		return m.SaveEntryFn(ctx, entry)
	}
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	if m.UpdateEntryFn != nil {
		return m.UpdateEntryFn(ctx, entry)
	}
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	if m.DeleteEntryFn != nil {
		return m.DeleteEntryFn(ctx, entryID)
	}
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Test Suite ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockVoucherRepo *MockVoucherRepository
	mockCompanyRepo *MockCompanyRepository
	service         portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockVoucherRepo, suite.mockCompanyRepo)
}

func pendingVoucher(tenantID string) domain.Voucher {
	return domain.Voucher{
		VoucherID:   uuid.NewString(),
		TenantID:    tenantID,
		Amount:      decimal.NewFromInt(3000),
		Date:        time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Description: "タクシー代",
		Status:      domain.VoucherPending,
	}
}

func balancedEntry(tenantID string) domain.JournalEntry {
	return domain.JournalEntry{
		TenantID:      tenantID,
		Date:          time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		DebitSubject:  "旅費交通費",
		DebitAmount:   decimal.NewFromInt(3000),
		CreditSubject: "現金",
		CreditAmount:  decimal.NewFromInt(3000),
		Description:   "タクシー代",
	}
}

// --- GenerateFromVouchers Tests ---

func (suite *JournalServiceTestSuite) TestGenerateFromVouchers_MixedBatch() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: tenantID}

	good := pendingVoucher(tenantID)
	bad := pendingVoucher(tenantID)
	bad.Amount = decimal.Zero // fails validation, must stay pending

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, good.VoucherID).Return(&good, nil).Once()
	suite.mockVoucherRepo.On("FindVoucherByID", ctx, bad.VoucherID).Return(&bad, nil).Once()
	suite.mockJournalRepo.On("SaveEntryForVoucher", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.AutoGenerated && !e.Confirmed &&
			e.DebitSubject == "旅費交通費" &&
			e.CreditSubject == "現金" &&
			e.DebitAmount.Equal(e.CreditAmount) &&
			e.EntryID != ""
	}), good.VoucherID).Return(nil).Once()

	result, err := suite.service.GenerateFromVouchers(ctx, actor, tenantID, []string{good.VoucherID, bad.VoucherID})

	suite.Require().NoError(err)
	suite.Equal(1, result.Generated)
	suite.Require().Contains(result.Skipped, bad.VoucherID)
	suite.NotEmpty(result.Skipped[bad.VoucherID])
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGenerateFromVouchers_DefaultsToAllPending() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierStore, TenantID: tenantID}
	voucher := pendingVoucher(tenantID)

	suite.mockVoucherRepo.On("ListVouchersByTenant", ctx, tenantID, mock.MatchedBy(func(s *domain.VoucherStatus) bool {
		return s != nil && *s == domain.VoucherPending
	})).Return([]domain.Voucher{voucher}, nil).Once()
	suite.mockJournalRepo.On("SaveEntryForVoucher", ctx, mock.AnythingOfType("domain.JournalEntry"), voucher.VoucherID).Return(nil).Once()

	result, err := suite.service.GenerateFromVouchers(ctx, actor, tenantID, nil)

	suite.Require().NoError(err)
	suite.Equal(1, result.Generated)
	suite.Empty(result.Skipped)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGenerateFromVouchers_Employee_Forbidden() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierEmployee, TenantID: tenantID}

	result, err := suite.service.GenerateFromVouchers(ctx, actor, tenantID, nil)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *JournalServiceTestSuite) TestGenerateFromVouchers_NotPending_Conflict() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: tenantID}
	journalized := pendingVoucher(tenantID)
	journalized.Status = domain.VoucherProcessing

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, journalized.VoucherID).Return(&journalized, nil).Once()

	result, err := suite.service.GenerateFromVouchers(ctx, actor, tenantID, []string{journalized.VoucherID})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGenerateFromVouchers_ForeignVoucher_Forbidden() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: tenantID}
	foreign := pendingVoucher(uuid.NewString())

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, foreign.VoucherID).Return(&foreign, nil).Once()

	result, err := suite.service.GenerateFromVouchers(ctx, actor, tenantID, []string{foreign.VoucherID})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGenerateFromVouchers_PersistFailureSkipsVoucher() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: tenantID}
	voucher := pendingVoucher(tenantID)

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucher.VoucherID).Return(&voucher, nil).Once()
	suite.mockJournalRepo.On("SaveEntryForVoucher", ctx, mock.AnythingOfType("domain.JournalEntry"), voucher.VoucherID).Return(assert.AnError).Once()

	result, err := suite.service.GenerateFromVouchers(ctx, actor, tenantID, []string{voucher.VoucherID})

	suite.Require().NoError(err)
	suite.Equal(0, result.Generated)
	suite.Contains(result.Skipped, voucher.VoucherID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGenerateFromVouchers_UsesCompanyNameAsSubSubject() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: tenantID}
	companyID := uuid.NewString()
	voucher := pendingVoucher(tenantID)
	voucher.CompanyID = &companyID

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucher.VoucherID).Return(&voucher, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).Return(&domain.Company{
		CompanyID: companyID, TenantID: tenantID, Name: "株式会社テスト",
	}, nil).Once()
	suite.mockJournalRepo.On("SaveEntryForVoucher", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.DebitSubSubject == "株式会社テスト" && e.CompanyID != nil && *e.CompanyID == companyID
	}), voucher.VoucherID).Return(nil).Once()

	result, err := suite.service.GenerateFromVouchers(ctx, actor, tenantID, []string{voucher.VoucherID})

	suite.Require().NoError(err)
	suite.Equal(1, result.Generated)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

// --- CreateEntry Tests ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: tenantID}
	entry := balancedEntry(tenantID)

	suite.mockJournalRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.EntryID != "" && !e.AutoGenerated && !e.Confirmed && e.CreatedBy == actor.ID
	})).Return(nil).Once()

	created, err := suite.service.CreateEntry(ctx, actor, entry)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.EntryID)
	suite.False(created.AutoGenerated)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced_Validation() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: tenantID}
	entry := balancedEntry(tenantID)
	entry.CreditAmount = decimal.NewFromInt(2500)

	created, err := suite.service.CreateEntry(ctx, actor, entry)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Employee_Forbidden() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierEmployee, TenantID: tenantID}

	created, err := suite.service.CreateEntry(ctx, actor, balancedEntry(tenantID))

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- UpdateEntry Tests ---

func (suite *JournalServiceTestSuite) TestUpdateEntry_Confirmed_Conflict() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: tenantID}
	existing := balancedEntry(tenantID)
	existing.EntryID = uuid.NewString()
	existing.Confirmed = true

	suite.mockJournalRepo.On("FindEntryByID", ctx, existing.EntryID).Return(&existing, nil).Once()

	updated, err := suite.service.UpdateEntry(ctx, actor, existing)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntry", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_Success() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: tenantID}
	existing := balancedEntry(tenantID)
	existing.EntryID = uuid.NewString()

	incoming := existing
	incoming.Description = "修正済みの摘要"

	suite.mockJournalRepo.On("FindEntryByID", ctx, existing.EntryID).Return(&existing, nil).Once()
	suite.mockJournalRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Description == "修正済みの摘要" && e.LastUpdatedBy == actor.ID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateEntry(ctx, actor, incoming)

	suite.Require().NoError(err)
	suite.Equal("修正済みの摘要", updated.Description)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- ConfirmEntry Tests ---

func (suite *JournalServiceTestSuite) TestConfirmEntry_Success() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: tenantID}
	entry := balancedEntry(tenantID)
	entry.EntryID = uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockJournalRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Confirmed && e.LastUpdatedBy == actor.ID
	})).Return(nil).Once()

	confirmed, err := suite.service.ConfirmEntry(ctx, actor, entry.EntryID)

	suite.Require().NoError(err)
	suite.True(confirmed.Confirmed)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestConfirmEntry_Idempotent() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: tenantID}
	entry := balancedEntry(tenantID)
	entry.EntryID = uuid.NewString()
	entry.Confirmed = true

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	confirmed, err := suite.service.ConfirmEntry(ctx, actor, entry.EntryID)

	suite.Require().NoError(err)
	suite.True(confirmed.Confirmed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntry", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestConfirmEntry_InvalidEntry_Validation() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: tenantID}
	entry := balancedEntry(tenantID)
	entry.EntryID = uuid.NewString()
	entry.CreditAmount = decimal.NewFromInt(1)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	confirmed, err := suite.service.ConfirmEntry(ctx, actor, entry.EntryID)

	suite.Require().Error(err)
	suite.Nil(confirmed)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- DeleteEntry Tests ---

func (suite *JournalServiceTestSuite) TestDeleteEntry_ResetsVoucherToPending() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: tenantID}
	voucherID := uuid.NewString()
	entry := balancedEntry(tenantID)
	entry.EntryID = uuid.NewString()
	entry.VoucherID = &voucherID
	voucher := pendingVoucher(tenantID)
	voucher.VoucherID = voucherID
	voucher.Status = domain.VoucherProcessing

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockJournalRepo.On("DeleteEntry", ctx, entry.EntryID).Return(nil).Once()
	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(&voucher, nil).Once()
	suite.mockVoucherRepo.On("UpdateVoucher", ctx, mock.MatchedBy(func(v domain.Voucher) bool {
		return v.VoucherID == voucherID && v.Status == domain.VoucherPending
	})).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, actor, entry.EntryID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_Confirmed_Conflict() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: tenantID}
	entry := balancedEntry(tenantID)
	entry.EntryID = uuid.NewString()
	entry.Confirmed = true

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	err := suite.service.DeleteEntry(ctx, actor, entry.EntryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- GetEntry / ListEntries Tests ---

func (suite *JournalServiceTestSuite) TestGetEntry_NotFound() {
	ctx := context.Background()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: uuid.NewString()}
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.GetEntry(ctx, actor, entryID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetEntry_ForeignTenant_Forbidden() {
	ctx := context.Background()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierEmployee, TenantID: uuid.NewString()}
	entry := balancedEntry(uuid.NewString())
	entry.EntryID = uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	found, err := suite.service.GetEntry(ctx, actor, entry.EntryID)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListEntries_ClampsLimit() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	// Employees may read the journal of their own tenant.
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierEmployee, TenantID: tenantID}
	expected := []domain.JournalEntry{balancedEntry(tenantID)}
	token := "next-page"

	suite.mockJournalRepo.On("ListEntriesByTenant", ctx, tenantID, 50, (*string)(nil)).Return(expected, &token, nil).Once()

	entries, nextToken, err := suite.service.ListEntries(ctx, actor, tenantID, 0, nil)

	suite.Require().NoError(err)
	suite.Len(entries, 1)
	suite.Require().NotNil(nextToken)
	suite.Equal(token, *nextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListEntries_ForeignTenant_Forbidden() {
	ctx := context.Background()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierTenant, TenantID: uuid.NewString()}

	entries, nextToken, err := suite.service.ListEntries(ctx, actor, uuid.NewString(), 10, nil)

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.Nil(nextToken)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- ListSubjects Tests ---

func (suite *JournalServiceTestSuite) TestListSubjects_All() {
	ctx := context.Background()

	subjects, err := suite.service.ListSubjects(ctx, nil)

	suite.Require().NoError(err)
	suite.Contains(subjects, "現金")
	suite.Contains(subjects, "旅費交通費")
}

func (suite *JournalServiceTestSuite) TestListSubjects_FilterByType() {
	ctx := context.Background()
	subjectType := "資産"

	subjects, err := suite.service.ListSubjects(ctx, &subjectType)

	suite.Require().NoError(err)
	suite.Contains(subjects, "現金")
	suite.NotContains(subjects, "旅費交通費")
}

func (suite *JournalServiceTestSuite) TestListSubjects_UnknownType_Validation() {
	ctx := context.Background()
	subjectType := "架空"

	subjects, err := suite.service.ListSubjects(ctx, &subjectType)

	suite.Require().Error(err)
	suite.Nil(subjects)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
