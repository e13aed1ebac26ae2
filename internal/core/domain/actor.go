package domain

import (
	"fmt"

	"github.com/keiri-app/keiri-backend/internal/apperrors"
)

// Actor is the request-scoped identity every authorization and data-access
// call receives explicitly. It replaces ambient session state: "who is acting,
// on whose behalf" travels with the request context.
type Actor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Tier     Tier   `json:"tier"`
	TenantID string `json:"tenantID,omitempty"` // selected tenant, if any
	StoreID  string `json:"storeID,omitempty"`  // selected store, if any
}

// Authorize allows the actor iff its tier is a member of the given set.
// The system tier gets no implicit pass: callers that want the cross-tier
// override must list TierSystem among the allowed tiers.
func (a Actor) Authorize(allowed ...Tier) error {
	for _, t := range allowed {
		if a.Tier == t {
			return nil
		}
	}
	return fmt.Errorf("%w: tier %s may not perform this action", apperrors.ErrForbidden, a.Tier)
}

// IsSelf reports whether the actor is operating on their own account.
func (a Actor) IsSelf(adminID string) bool {
	return a.ID != "" && a.ID == adminID
}
