package domain

import (
	"fmt"
	"time"
)

// Tier identifies the level of the administrative hierarchy an account acts at.
type Tier string

const (
	TierSystem   Tier = "system_admin" // cross-tenant, highest authority
	TierTenant   Tier = "tenant_admin"
	TierStore    Tier = "store_admin"
	TierEmployee Tier = "employee" // non-administrative staff, gate use only
)

// rank orders the administrative tiers; a larger rank outranks a smaller one.
// Employees carry no administrative rank.
func (t Tier) rank() int {
	switch t {
	case TierSystem:
		return 3
	case TierTenant:
		return 2
	case TierStore:
		return 1
	}
	return 0
}

// Outranks reports whether t is a strictly higher administrative tier than other.
func (t Tier) Outranks(other Tier) bool {
	return t.rank() > other.rank() && t.rank() > 0
}

// Scope pins an administrator grant to a concrete place in the hierarchy:
// the whole system, one tenant, or one store.
type Scope struct {
	Tier     Tier   `json:"tier"`
	TenantID string `json:"tenantID,omitempty"`
	StoreID  string `json:"storeID,omitempty"`
}

// SystemScope is the single scope shared by all system administrators.
func SystemScope() Scope { return Scope{Tier: TierSystem} }

// TenantScope addresses the administrators of one tenant.
func TenantScope(tenantID string) Scope {
	return Scope{Tier: TierTenant, TenantID: tenantID}
}

// StoreScope addresses the administrators of one store.
func StoreScope(tenantID, storeID string) Scope {
	return Scope{Tier: TierStore, TenantID: tenantID, StoreID: storeID}
}

// Validate rejects scopes whose tier and identifiers do not line up.
func (s Scope) Validate() error {
	switch s.Tier {
	case TierSystem:
		if s.TenantID != "" || s.StoreID != "" {
			return fmt.Errorf("system scope must not reference a tenant or store")
		}
	case TierTenant:
		if s.TenantID == "" {
			return fmt.Errorf("tenant scope requires a tenant ID")
		}
		if s.StoreID != "" {
			return fmt.Errorf("tenant scope must not reference a store")
		}
	case TierStore:
		if s.TenantID == "" || s.StoreID == "" {
			return fmt.Errorf("store scope requires tenant and store IDs")
		}
	default:
		return fmt.Errorf("tier %q cannot hold administrator grants", s.Tier)
	}
	return nil
}

// Key returns a stable identifier for the scope, used for locking and logging.
func (s Scope) Key() string {
	switch s.Tier {
	case TierSystem:
		return "system"
	case TierTenant:
		return "tenant:" + s.TenantID
	default:
		return "store:" + s.StoreID
	}
}

// Administrator is a person with administrative capability at exactly one tier.
// Ownership and management permission are NOT stored here: they live on the
// per-scope AdminGrant relation, the single source of truth.
type Administrator struct {
	AdminID      string `json:"adminID"`
	LoginID      string `json:"loginID"` // unique login handle
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Tier         Tier   `json:"tier"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// AdminGrant is the membership of an Administrator in one scope, carrying the
// scope-local permission flags. An administrator may hold grants in several
// tenants or stores at once, each with independent flags.
type AdminGrant struct {
	AdminID         string    `json:"adminID"`
	AdminName       string    `json:"adminName,omitempty"`
	Scope           Scope     `json:"scope"`
	IsOwner         bool      `json:"isOwner"`
	CanManageAdmins bool      `json:"canManageAdmins"`
	GrantedAt       time.Time `json:"grantedAt"`
}

// CanManage reports the effective management permission for the grant's scope.
// Owners always manage, whatever the stored flag says.
func (g AdminGrant) CanManage() bool {
	return g.IsOwner || g.CanManageAdmins
}
