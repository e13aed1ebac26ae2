package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/keiri-app/keiri-backend/internal/apperrors"
	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
	"github.com/keiri-app/keiri-backend/internal/core/services"
	"github.com/keiri-app/keiri-backend/internal/utils"
)

// --- Mock AdminRepository (based on AdminService usage) ---
type MockAdminRepository struct {
	mock.Mock
	FindAdminByIDFn      func(ctx context.Context, adminID string) (*domain.Administrator, error)
	FindAdminByLoginIDFn func(ctx context.Context, tier domain.Tier, loginID string) (*domain.Administrator, error)
	SaveAdminFn          func(ctx context.Context, admin domain.Administrator) error
	UpdateAdminFn        func(ctx context.Context, admin domain.Administrator) error
	DeleteAdminFn        func(ctx context.Context, adminID string) error
	SaveGrantFn          func(ctx context.Context, grant domain.AdminGrant) error
	FindGrantFn          func(ctx context.Context, adminID string, scope domain.Scope) (*domain.AdminGrant, error)
	ListGrantsByScopeFn  func(ctx context.Context, scope domain.Scope) ([]domain.AdminGrant, error)
	ListGrantsByAdminFn  func(ctx context.Context, adminID string) ([]domain.AdminGrant, error)
	UpdateGrantFn        func(ctx context.Context, grant domain.AdminGrant) error
	DeleteGrantFn        func(ctx context.Context, adminID string, scope domain.Scope) error
	FindOwnerFn          func(ctx context.Context, scope domain.Scope) (*domain.AdminGrant, error)
	ClearOwnershipFn     func(ctx context.Context, scope domain.Scope) error
	CountGrantsByAdminFn func(ctx context.Context, adminID string) (int, error)
}

func (m *MockAdminRepository) FindAdminByID(ctx context.Context, adminID string) (*domain.Administrator, error) {
	if m.FindAdminByIDFn != nil {
		return m.FindAdminByIDFn(ctx, adminID)
	}
	args := m.Called(ctx, adminID)
	var admin *domain.Administrator
	if args.Get(0) != nil {
		admin = args.Get(0).(*domain.Administrator)
	}
	return admin, args.Error(1)
}

func (m *MockAdminRepository) FindAdminByLoginID(ctx context.Context, tier domain.Tier, loginID string) (*domain.Administrator, error) {
	if m.FindAdminByLoginIDFn != nil {
		return m.FindAdminByLoginIDFn(ctx, tier, loginID)
	}
	args := m.Called(ctx, tier, loginID)
	var admin *domain.Administrator
	if args.Get(0) != nil {
		admin = args.Get(0).(*domain.Administrator)
	}
	return admin, args.Error(1)
}

func (m *MockAdminRepository) SaveAdmin(ctx context.Context, admin domain.Administrator) error {
	if m.SaveAdminFn != nil {
		return m.SaveAdminFn(ctx, admin)
	}
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) UpdateAdmin(ctx context.Context, admin domain.Administrator) error {
	if m.UpdateAdminFn != nil {
		return m.UpdateAdminFn(ctx, admin)
	}
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) DeleteAdmin(ctx context.Context, adminID string) error {
	if m.DeleteAdminFn != nil {
		return m.DeleteAdminFn(ctx, adminID)
	}
	args := m.Called(ctx, adminID)
	return args.Error(0)
}

func (m *MockAdminRepository) SaveGrant(ctx context.Context, grant domain.AdminGrant) error {
	if m.SaveGrantFn != nil {
		return m.SaveGrantFn(ctx, grant)
	}
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *MockAdminRepository) FindGrant(ctx context.Context, adminID string, scope domain.Scope) (*domain.AdminGrant, error) {
	if m.FindGrantFn != nil {
		return m.FindGrantFn(ctx, adminID, scope)
	}
	args := m.Called(ctx, adminID, scope)
	var grant *domain.AdminGrant
	if args.Get(0) != nil {
		grant = args.Get(0).(*domain.AdminGrant)
	}
	return grant, args.Error(1)
}

func (m *MockAdminRepository) ListGrantsByScope(ctx context.Context, scope domain.Scope) ([]domain.AdminGrant, error) {
	if m.ListGrantsByScopeFn != nil {
		return m.ListGrantsByScopeFn(ctx, scope)
	}
	args := m.Called(ctx, scope)
	var grants []domain.AdminGrant
	if args.Get(0) != nil {
		grants = args.Get(0).([]domain.AdminGrant)
	}
	return grants, args.Error(1)
}

func (m *MockAdminRepository) ListGrantsByAdmin(ctx context.Context, adminID string) ([]domain.AdminGrant, error) {
	if m.ListGrantsByAdminFn != nil {
		return m.ListGrantsByAdminFn(ctx, adminID)
	}
	args := m.Called(ctx, adminID)
	var grants []domain.AdminGrant
	if args.Get(0) != nil {
		grants = args.Get(0).([]domain.AdminGrant)
	}
	return grants, args.Error(1)
}

func (m *MockAdminRepository) UpdateGrant(ctx context.Context, grant domain.AdminGrant) error {
	if m.UpdateGrantFn != nil {
		return m.UpdateGrantFn(ctx, grant)
	}
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *MockAdminRepository) DeleteGrant(ctx context.Context, adminID string, scope domain.Scope) error {
	if m.DeleteGrantFn != nil {
		return m.DeleteGrantFn(ctx, adminID, scope)
	}
	args := m.Called(ctx, adminID, scope)
	return args.Error(0)
}

func (m *MockAdminRepository) FindOwner(ctx context.Context, scope domain.Scope) (*domain.AdminGrant, error) {
	if m.FindOwnerFn != nil {
		return m.FindOwnerFn(ctx, scope)
	}
	args := m.Called(ctx, scope)
	var grant *domain.AdminGrant
	if args.Get(0) != nil {
		grant = args.Get(0).(*domain.AdminGrant)
	}
	return grant, args.Error(1)
}

func (m *MockAdminRepository) ClearOwnership(ctx context.Context, scope domain.Scope) error {
	if m.ClearOwnershipFn != nil {
		return m.ClearOwnershipFn(ctx, scope)
	}
	args := m.Called(ctx, scope)
	return args.Error(0)
}

func (m *MockAdminRepository) CountGrantsByAdmin(ctx context.Context, adminID string) (int, error) {
	if m.CountGrantsByAdminFn != nil {
		return m.CountGrantsByAdminFn(ctx, adminID)
	}
	args := m.Called(ctx, adminID)
	return args.Int(0), args.Error(1)
}

// InScopeTx just runs the callback; transactional semantics are the real
// repository's concern, not the service's.
func (m *MockAdminRepository) InScopeTx(ctx context.Context, scope domain.Scope, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- Test Suite ---
type AdminServiceTestSuite struct {
	suite.Suite
	mockAdminRepo *MockAdminRepository
	service       portssvc.AdminSvcFacade
}

func (suite *AdminServiceTestSuite) SetupTest() {
	suite.mockAdminRepo = new(MockAdminRepository)
	suite.service = services.NewAdminService(suite.mockAdminRepo)
}

func managerActor(tenantID string) domain.Actor {
	return domain.Actor{
		ID:       uuid.NewString(),
		Name:     "Manager",
		Tier:     domain.TierTenant,
		TenantID: tenantID,
	}
}

// --- CreateAdmin Tests ---

func (suite *AdminServiceTestSuite) TestCreateAdmin_FirstAdminBecomesOwner() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)
	loginID := "new-admin"
	password := "password123"

	actorGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, CanManageAdmins: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(actorGrant, nil).Once()
	suite.mockAdminRepo.On("FindAdminByLoginID", ctx, domain.TierTenant, loginID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAdminRepo.On("SaveAdmin", ctx, mock.MatchedBy(func(a domain.Administrator) bool {
		return a.LoginID == loginID &&
			a.Tier == domain.TierTenant &&
			a.IsActive &&
			a.PasswordHash != password &&
			utils.CheckPasswordHash(password, a.PasswordHash)
	})).Return(nil).Once()
	suite.mockAdminRepo.On("FindOwner", ctx, scope).Return(nil, apperrors.ErrNotFound).Once()
	// The bootstrap grant forces the manage flag even though the caller
	// passed canManageAdmins=false.
	suite.mockAdminRepo.On("SaveGrant", ctx, mock.MatchedBy(func(g domain.AdminGrant) bool {
		return g.Scope == scope && g.IsOwner && g.CanManageAdmins
	})).Return(nil).Once()

	created, err := suite.service.CreateAdmin(ctx, actor, scope, loginID, "New Admin", "new@example.com", password, false)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(loginID, created.LoginID)
	suite.NotEmpty(created.AdminID)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestCreateAdmin_SecondAdminIsNotOwner() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)
	loginID := "second-admin"

	actorGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, IsOwner: true}
	ownerGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, IsOwner: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(actorGrant, nil).Once()
	suite.mockAdminRepo.On("FindAdminByLoginID", ctx, domain.TierTenant, loginID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAdminRepo.On("SaveAdmin", ctx, mock.AnythingOfType("domain.Administrator")).Return(nil).Once()
	suite.mockAdminRepo.On("FindOwner", ctx, scope).Return(ownerGrant, nil).Once()
	suite.mockAdminRepo.On("SaveGrant", ctx, mock.MatchedBy(func(g domain.AdminGrant) bool {
		return !g.IsOwner && g.CanManageAdmins
	})).Return(nil).Once()

	created, err := suite.service.CreateAdmin(ctx, actor, scope, loginID, "Second Admin", "", "password123", true)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestCreateAdmin_ExistingLoginGetsNewGrant() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)
	existing := &domain.Administrator{
		AdminID: uuid.NewString(),
		LoginID: "shared-admin",
		Tier:    domain.TierTenant,
	}

	actorGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, CanManageAdmins: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(actorGrant, nil).Once()
	suite.mockAdminRepo.On("FindAdminByLoginID", ctx, domain.TierTenant, existing.LoginID).Return(existing, nil).Once()
	suite.mockAdminRepo.On("FindGrant", ctx, existing.AdminID, scope).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAdminRepo.On("FindOwner", ctx, scope).Return(&domain.AdminGrant{IsOwner: true}, nil).Once()
	suite.mockAdminRepo.On("SaveGrant", ctx, mock.MatchedBy(func(g domain.AdminGrant) bool {
		return g.AdminID == existing.AdminID && !g.IsOwner
	})).Return(nil).Once()

	created, err := suite.service.CreateAdmin(ctx, actor, scope, existing.LoginID, "ignored", "", "password123", false)

	suite.Require().NoError(err)
	suite.Equal(existing.AdminID, created.AdminID)
	// The account must not be recreated.
	suite.mockAdminRepo.AssertNotCalled(suite.T(), "SaveAdmin", mock.Anything, mock.Anything)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestCreateAdmin_AlreadyInScope_Conflict() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)
	existing := &domain.Administrator{AdminID: uuid.NewString(), LoginID: "dup-admin", Tier: domain.TierTenant}

	actorGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, CanManageAdmins: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(actorGrant, nil).Once()
	suite.mockAdminRepo.On("FindAdminByLoginID", ctx, domain.TierTenant, existing.LoginID).Return(existing, nil).Once()
	suite.mockAdminRepo.On("FindGrant", ctx, existing.AdminID, scope).Return(&domain.AdminGrant{AdminID: existing.AdminID, Scope: scope}, nil).Once()

	created, err := suite.service.CreateAdmin(ctx, actor, scope, existing.LoginID, "", "", "password123", false)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestCreateAdmin_WithoutManagePermission_Forbidden() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)

	plainGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, IsOwner: false, CanManageAdmins: false}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(plainGrant, nil).Once()

	created, err := suite.service.CreateAdmin(ctx, actor, scope, "someone", "", "", "password123", false)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestCreateAdmin_SystemActorManagesTenantScope() {
	ctx := context.Background()
	scope := domain.TenantScope(uuid.NewString())
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierSystem}
	loginID := "tenant-owner"

	systemGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: domain.SystemScope(), IsOwner: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, domain.SystemScope()).Return(systemGrant, nil).Once()
	suite.mockAdminRepo.On("FindAdminByLoginID", ctx, domain.TierTenant, loginID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAdminRepo.On("SaveAdmin", ctx, mock.AnythingOfType("domain.Administrator")).Return(nil).Once()
	suite.mockAdminRepo.On("FindOwner", ctx, scope).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAdminRepo.On("SaveGrant", ctx, mock.MatchedBy(func(g domain.AdminGrant) bool {
		return g.IsOwner
	})).Return(nil).Once()

	created, err := suite.service.CreateAdmin(ctx, actor, scope, loginID, "Tenant Owner", "", "password123", false)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestCreateAdmin_InvalidScope_Validation() {
	ctx := context.Background()
	actor := managerActor(uuid.NewString())
	badScope := domain.Scope{Tier: domain.TierTenant} // missing tenant ID

	created, err := suite.service.CreateAdmin(ctx, actor, badScope, "x", "", "", "password123", false)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ListAdmins Tests ---

func (suite *AdminServiceTestSuite) TestListAdmins_MembershipSuffices() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)

	// A plain member without manage permission may still list the scope.
	memberGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope}
	expected := []domain.AdminGrant{
		{AdminID: uuid.NewString(), Scope: scope, IsOwner: true},
		{AdminID: actor.ID, Scope: scope},
	}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(memberGrant, nil).Once()
	suite.mockAdminRepo.On("ListGrantsByScope", ctx, scope).Return(expected, nil).Once()

	grants, err := suite.service.ListAdmins(ctx, actor, scope)

	suite.Require().NoError(err)
	suite.Equal(expected, grants)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestListAdmins_NonMember_Forbidden() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)

	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(nil, apperrors.ErrNotFound).Once()

	grants, err := suite.service.ListAdmins(ctx, actor, scope)

	suite.Require().Error(err)
	suite.Nil(grants)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestListAdmins_EmptyScopeReturnsEmptySlice() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)

	memberGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(memberGrant, nil).Once()
	suite.mockAdminRepo.On("ListGrantsByScope", ctx, scope).Return(nil, nil).Once()

	grants, err := suite.service.ListAdmins(ctx, actor, scope)

	suite.Require().NoError(err)
	suite.Require().NotNil(grants)
	suite.Empty(grants)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

// --- GetAdmin Tests ---

func (suite *AdminServiceTestSuite) TestGetAdmin_EmployeeForbidden() {
	ctx := context.Background()
	actor := domain.Actor{ID: uuid.NewString(), Tier: domain.TierEmployee}

	admin, err := suite.service.GetAdmin(ctx, actor, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(admin)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- ToggleActive Tests ---

func (suite *AdminServiceTestSuite) TestToggleActive_Success() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)
	targetID := uuid.NewString()

	actorGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, CanManageAdmins: true}
	targetGrant := &domain.AdminGrant{AdminID: targetID, Scope: scope}
	target := &domain.Administrator{AdminID: targetID, IsActive: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(actorGrant, nil).Once()
	suite.mockAdminRepo.On("FindGrant", ctx, targetID, scope).Return(targetGrant, nil).Once()
	suite.mockAdminRepo.On("FindAdminByID", ctx, targetID).Return(target, nil).Once()
	suite.mockAdminRepo.On("ListGrantsByAdmin", ctx, targetID).Return([]domain.AdminGrant{*targetGrant}, nil).Once()
	suite.mockAdminRepo.On("UpdateAdmin", ctx, mock.MatchedBy(func(a domain.Administrator) bool {
		return a.AdminID == targetID && !a.IsActive && a.LastUpdatedBy == actor.ID
	})).Return(nil).Once()

	grant, err := suite.service.ToggleActive(ctx, actor, scope, targetID)

	suite.Require().NoError(err)
	suite.Equal(targetGrant, grant)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestToggleActive_Self_Forbidden() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)

	actorGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, IsOwner: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(actorGrant, nil).Once()

	grant, err := suite.service.ToggleActive(ctx, actor, scope, actor.ID)

	suite.Require().Error(err)
	suite.Nil(grant)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Contains(err.Error(), "yourself")
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestToggleActive_OwnerTarget_Forbidden() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)
	ownerID := uuid.NewString()

	actorGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, CanManageAdmins: true}
	ownerGrant := &domain.AdminGrant{AdminID: ownerID, Scope: scope, IsOwner: true}
	owner := &domain.Administrator{AdminID: ownerID, IsActive: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(actorGrant, nil).Once()
	suite.mockAdminRepo.On("FindGrant", ctx, ownerID, scope).Return(ownerGrant, nil).Once()
	suite.mockAdminRepo.On("FindAdminByID", ctx, ownerID).Return(owner, nil).Once()
	suite.mockAdminRepo.On("ListGrantsByAdmin", ctx, ownerID).Return([]domain.AdminGrant{*ownerGrant}, nil).Once()

	grant, err := suite.service.ToggleActive(ctx, actor, scope, ownerID)

	suite.Require().Error(err)
	suite.Nil(grant)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAdminRepo.AssertNotCalled(suite.T(), "UpdateAdmin", mock.Anything, mock.Anything)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestToggleActive_OwnerOfAnotherScope_Forbidden() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)
	targetID := uuid.NewString()

	// Plain member here, but owner of a different tenant. Deactivation hits
	// the whole account, so it must be refused.
	actorGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, CanManageAdmins: true}
	targetGrant := &domain.AdminGrant{AdminID: targetID, Scope: scope}
	owningElsewhere := domain.AdminGrant{AdminID: targetID, Scope: domain.TenantScope(uuid.NewString()), IsOwner: true}
	target := &domain.Administrator{AdminID: targetID, IsActive: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(actorGrant, nil).Once()
	suite.mockAdminRepo.On("FindGrant", ctx, targetID, scope).Return(targetGrant, nil).Once()
	suite.mockAdminRepo.On("FindAdminByID", ctx, targetID).Return(target, nil).Once()
	suite.mockAdminRepo.On("ListGrantsByAdmin", ctx, targetID).Return([]domain.AdminGrant{*targetGrant, owningElsewhere}, nil).Once()

	grant, err := suite.service.ToggleActive(ctx, actor, scope, targetID)

	suite.Require().Error(err)
	suite.Nil(grant)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAdminRepo.AssertNotCalled(suite.T(), "UpdateAdmin", mock.Anything, mock.Anything)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

// --- SetManagePermission Tests ---

func (suite *AdminServiceTestSuite) TestSetManagePermission_Success() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)
	targetID := uuid.NewString()

	ownerGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, IsOwner: true}
	targetGrant := &domain.AdminGrant{AdminID: targetID, Scope: scope}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(ownerGrant, nil).Once()
	suite.mockAdminRepo.On("FindGrant", ctx, targetID, scope).Return(targetGrant, nil).Once()
	suite.mockAdminRepo.On("UpdateGrant", ctx, mock.MatchedBy(func(g domain.AdminGrant) bool {
		return g.AdminID == targetID && g.CanManageAdmins
	})).Return(nil).Once()

	grant, err := suite.service.SetManagePermission(ctx, actor, scope, targetID, true)

	suite.Require().NoError(err)
	suite.Require().NotNil(grant)
	suite.True(grant.CanManageAdmins)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestSetManagePermission_NonOwner_Forbidden() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)

	// Manage permission alone is not enough; permission changes are owner-only.
	managerGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, CanManageAdmins: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(managerGrant, nil).Once()

	grant, err := suite.service.SetManagePermission(ctx, actor, scope, uuid.NewString(), true)

	suite.Require().Error(err)
	suite.Nil(grant)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Contains(err.Error(), "owner")
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestSetManagePermission_OwnerTarget_Forbidden() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)
	otherOwnerID := uuid.NewString()

	ownerGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, IsOwner: true}
	targetGrant := &domain.AdminGrant{AdminID: otherOwnerID, Scope: scope, IsOwner: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(ownerGrant, nil).Once()
	suite.mockAdminRepo.On("FindGrant", ctx, otherOwnerID, scope).Return(targetGrant, nil).Once()

	grant, err := suite.service.SetManagePermission(ctx, actor, scope, otherOwnerID, false)

	suite.Require().Error(err)
	suite.Nil(grant)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAdminRepo.AssertNotCalled(suite.T(), "UpdateGrant", mock.Anything, mock.Anything)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestSetManagePermission_Self_Forbidden() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)

	ownerGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, IsOwner: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(ownerGrant, nil).Once()

	grant, err := suite.service.SetManagePermission(ctx, actor, scope, actor.ID, false)

	suite.Require().Error(err)
	suite.Nil(grant)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

// --- TransferOwnership Tests ---

func (suite *AdminServiceTestSuite) TestTransferOwnership_Success() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)
	newOwnerID := uuid.NewString()

	ownerGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, IsOwner: true}
	targetGrant := &domain.AdminGrant{AdminID: newOwnerID, Scope: scope}
	newOwner := &domain.Administrator{AdminID: newOwnerID, IsActive: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(ownerGrant, nil).Once()
	suite.mockAdminRepo.On("FindGrant", ctx, newOwnerID, scope).Return(targetGrant, nil).Once()
	suite.mockAdminRepo.On("FindAdminByID", ctx, newOwnerID).Return(newOwner, nil).Once()
	suite.mockAdminRepo.On("ClearOwnership", ctx, scope).Return(nil).Once()
	// The promoted grant carries the manage flag even though it was granted
	// without one.
	suite.mockAdminRepo.On("UpdateGrant", ctx, mock.MatchedBy(func(g domain.AdminGrant) bool {
		return g.AdminID == newOwnerID && g.IsOwner && g.CanManageAdmins
	})).Return(nil).Once()

	err := suite.service.TransferOwnership(ctx, actor, scope, newOwnerID)

	suite.Require().NoError(err)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestTransferOwnership_ToSelf_Validation() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)

	ownerGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, IsOwner: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(ownerGrant, nil).Once()

	err := suite.service.TransferOwnership(ctx, actor, scope, actor.ID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "already the owner")
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestTransferOwnership_TargetOutsideScope_Validation() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)
	strangerID := uuid.NewString()

	ownerGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, IsOwner: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(ownerGrant, nil).Once()
	suite.mockAdminRepo.On("FindGrant", ctx, strangerID, scope).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.TransferOwnership(ctx, actor, scope, strangerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "belong to this scope")
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestTransferOwnership_InactiveTarget_Validation() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)
	newOwnerID := uuid.NewString()

	ownerGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, IsOwner: true}
	targetGrant := &domain.AdminGrant{AdminID: newOwnerID, Scope: scope}
	inactive := &domain.Administrator{AdminID: newOwnerID, IsActive: false}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(ownerGrant, nil).Once()
	suite.mockAdminRepo.On("FindGrant", ctx, newOwnerID, scope).Return(targetGrant, nil).Once()
	suite.mockAdminRepo.On("FindAdminByID", ctx, newOwnerID).Return(inactive, nil).Once()

	err := suite.service.TransferOwnership(ctx, actor, scope, newOwnerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAdminRepo.AssertNotCalled(suite.T(), "ClearOwnership", mock.Anything, mock.Anything)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

// --- DeleteAdmin Tests ---

func (suite *AdminServiceTestSuite) TestDeleteAdmin_LastGrantRemovesAccount() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)
	targetID := uuid.NewString()

	actorGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, CanManageAdmins: true}
	targetGrant := &domain.AdminGrant{AdminID: targetID, Scope: scope}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(actorGrant, nil).Once()
	suite.mockAdminRepo.On("FindGrant", ctx, targetID, scope).Return(targetGrant, nil).Once()
	suite.mockAdminRepo.On("DeleteGrant", ctx, targetID, scope).Return(nil).Once()
	suite.mockAdminRepo.On("CountGrantsByAdmin", ctx, targetID).Return(0, nil).Once()
	suite.mockAdminRepo.On("DeleteAdmin", ctx, targetID).Return(nil).Once()

	err := suite.service.DeleteAdmin(ctx, actor, scope, targetID)

	suite.Require().NoError(err)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestDeleteAdmin_KeepsAccountWithRemainingGrants() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)
	targetID := uuid.NewString()

	actorGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, CanManageAdmins: true}
	targetGrant := &domain.AdminGrant{AdminID: targetID, Scope: scope}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(actorGrant, nil).Once()
	suite.mockAdminRepo.On("FindGrant", ctx, targetID, scope).Return(targetGrant, nil).Once()
	suite.mockAdminRepo.On("DeleteGrant", ctx, targetID, scope).Return(nil).Once()
	suite.mockAdminRepo.On("CountGrantsByAdmin", ctx, targetID).Return(2, nil).Once()

	err := suite.service.DeleteAdmin(ctx, actor, scope, targetID)

	suite.Require().NoError(err)
	suite.mockAdminRepo.AssertNotCalled(suite.T(), "DeleteAdmin", mock.Anything, mock.Anything)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestDeleteAdmin_OwnerTarget_Forbidden() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)
	ownerID := uuid.NewString()

	actorGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, CanManageAdmins: true}
	ownerGrant := &domain.AdminGrant{AdminID: ownerID, Scope: scope, IsOwner: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(actorGrant, nil).Once()
	suite.mockAdminRepo.On("FindGrant", ctx, ownerID, scope).Return(ownerGrant, nil).Once()

	err := suite.service.DeleteAdmin(ctx, actor, scope, ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Contains(err.Error(), "transfer ownership")
	suite.mockAdminRepo.AssertNotCalled(suite.T(), "DeleteGrant", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestDeleteAdmin_Self_Forbidden() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	scope := domain.TenantScope(tenantID)
	actor := managerActor(tenantID)

	actorGrant := &domain.AdminGrant{AdminID: actor.ID, Scope: scope, IsOwner: true}
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, scope).Return(actorGrant, nil).Once()

	err := suite.service.DeleteAdmin(ctx, actor, scope, actor.ID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

// --- UpdateAdmin Tests ---

func (suite *AdminServiceTestSuite) TestUpdateAdmin_SelfEditAllowed() {
	ctx := context.Background()
	actor := managerActor(uuid.NewString())
	existing := &domain.Administrator{AdminID: actor.ID, Name: "Old Name", Email: "old@example.com"}

	suite.mockAdminRepo.On("FindAdminByID", ctx, actor.ID).Return(existing, nil).Once()
	suite.mockAdminRepo.On("UpdateAdmin", ctx, mock.MatchedBy(func(a domain.Administrator) bool {
		return a.Name == "New Name" && a.Email == "old@example.com"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAdmin(ctx, actor, actor.ID, "New Name", "")

	suite.Require().NoError(err)
	suite.Equal("New Name", updated.Name)
	suite.Equal("old@example.com", updated.Email)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestUpdateAdmin_NoSharedScope_Forbidden() {
	ctx := context.Background()
	actor := managerActor(uuid.NewString())
	targetID := uuid.NewString()
	otherScope := domain.TenantScope(uuid.NewString())
	existing := &domain.Administrator{AdminID: targetID}

	suite.mockAdminRepo.On("FindAdminByID", ctx, targetID).Return(existing, nil).Once()
	suite.mockAdminRepo.On("ListGrantsByAdmin", ctx, targetID).Return([]domain.AdminGrant{
		{AdminID: targetID, Scope: otherScope},
	}, nil).Once()
	suite.mockAdminRepo.On("FindGrant", ctx, actor.ID, otherScope).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateAdmin(ctx, actor, targetID, "X", "")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestUpdateAdmin_RepoError() {
	ctx := context.Background()
	actor := managerActor(uuid.NewString())
	expectedErr := assert.AnError

	suite.mockAdminRepo.On("FindAdminByID", ctx, actor.ID).Return(nil, expectedErr).Once()

	updated, err := suite.service.UpdateAdmin(ctx, actor, actor.ID, "X", "")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, expectedErr)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func TestAdminServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}
