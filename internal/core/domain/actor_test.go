package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keiri-app/keiri-backend/internal/apperrors"
	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

func TestAuthorize_AllowsListedTier(t *testing.T) {
	actor := domain.Actor{ID: "a-1", Tier: domain.TierTenant}

	assert.NoError(t, actor.Authorize(domain.TierSystem, domain.TierTenant))
}

func TestAuthorize_DeniesUnlistedTier(t *testing.T) {
	actor := domain.Actor{ID: "a-1", Tier: domain.TierEmployee}

	err := actor.Authorize(domain.TierSystem, domain.TierTenant, domain.TierStore)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAuthorize_SystemTierGetsNoImplicitPass(t *testing.T) {
	actor := domain.Actor{ID: "a-1", Tier: domain.TierSystem}

	err := actor.Authorize(domain.TierTenant)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestOutranks(t *testing.T) {
	assert.True(t, domain.TierSystem.Outranks(domain.TierTenant))
	assert.True(t, domain.TierTenant.Outranks(domain.TierStore))
	assert.True(t, domain.TierStore.Outranks(domain.TierEmployee))
	assert.False(t, domain.TierTenant.Outranks(domain.TierTenant))
	assert.False(t, domain.TierEmployee.Outranks(domain.TierEmployee))
}

func TestScopeValidate(t *testing.T) {
	assert.NoError(t, domain.SystemScope().Validate())
	assert.NoError(t, domain.TenantScope("t-1").Validate())
	assert.NoError(t, domain.StoreScope("t-1", "s-1").Validate())

	assert.Error(t, domain.Scope{Tier: domain.TierSystem, TenantID: "t-1"}.Validate())
	assert.Error(t, domain.Scope{Tier: domain.TierTenant}.Validate())
	assert.Error(t, domain.Scope{Tier: domain.TierStore, TenantID: "t-1"}.Validate())
	assert.Error(t, domain.Scope{Tier: domain.TierEmployee, TenantID: "t-1"}.Validate())
}

func TestGrantCanManage(t *testing.T) {
	assert.True(t, domain.AdminGrant{IsOwner: true}.CanManage())
	assert.True(t, domain.AdminGrant{CanManageAdmins: true}.CanManage())
	assert.False(t, domain.AdminGrant{}.CanManage())
}

func TestIsSelf(t *testing.T) {
	actor := domain.Actor{ID: "a-1"}

	assert.True(t, actor.IsSelf("a-1"))
	assert.False(t, actor.IsSelf("a-2"))
	assert.False(t, domain.Actor{}.IsSelf(""))
}
