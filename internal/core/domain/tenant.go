package domain

// Tenant is a top-level organizational unit owning stores, staff and books.
type Tenant struct {
	TenantID string `json:"tenantID"`
	Name     string `json:"name"`
	Slug     string `json:"slug"` // unique, URL-safe identifier
	IsActive bool   `json:"isActive"`
	AISettings
	AuditFields
}

// AISettings holds the per-tenant text-completion configuration. All fields
// are optional; an unconfigured tenant simply skips AI-assisted steps.
type AISettings struct {
	AIModel         string `json:"aiModel,omitempty"` // e.g. "gpt-4o-mini"
	OpenAIAPIKey    string `json:"-"`
	GoogleAPIKey    string `json:"-"`
	AnthropicAPIKey string `json:"-"`
}

// Configured reports whether the tenant can call a text-completion model.
func (s AISettings) Configured() bool {
	return s.AIModel != "" && (s.OpenAIAPIKey != "" || s.GoogleAPIKey != "" || s.AnthropicAPIKey != "")
}

// Store is a location scoped to exactly one tenant.
type Store struct {
	StoreID  string `json:"storeID"`
	TenantID string `json:"tenantID"`
	Name     string `json:"name"`
	Slug     string `json:"slug"` // unique within the tenant
	IsActive bool   `json:"isActive"`
	AuditFields
}

// Employee is a non-administrative staff account scoped to a tenant and
// associated with zero or more stores. No ownership semantics.
type Employee struct {
	EmployeeID   string   `json:"employeeID"`
	TenantID     string   `json:"tenantID"`
	LoginID      string   `json:"loginID"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	StoreIDs     []string `json:"storeIDs,omitempty"`
	AuditFields
}
