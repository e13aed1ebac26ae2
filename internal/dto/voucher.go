package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// UpdateVoucherRequest corrects extracted fields on a pending voucher.
// Pointers distinguish omitted fields from zero values.
type UpdateVoucherRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Date        *time.Time       `json:"date"`
	Description *string          `json:"description"`
	Phone       *string          `json:"phone"`
	Address     *string          `json:"address"`
	PostalCode  *string          `json:"postalCode"`
	CompanyID   *string          `json:"companyID"`
}

// Apply overlays the provided fields onto the voucher.
func (r UpdateVoucherRequest) Apply(v *domain.Voucher) {
	if r.Amount != nil {
		v.Amount = *r.Amount
	}
	if r.Date != nil {
		v.Date = *r.Date
	}
	if r.Description != nil {
		v.Description = *r.Description
	}
	if r.Phone != nil {
		v.Phone = *r.Phone
	}
	if r.Address != nil {
		v.Address = *r.Address
	}
	if r.PostalCode != nil {
		v.PostalCode = *r.PostalCode
	}
	if r.CompanyID != nil {
		v.CompanyID = r.CompanyID
	}
}

// ListVouchersParams defines query parameters for listing vouchers.
type ListVouchersParams struct {
	Status string `form:"status"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID   string          `json:"voucherID"`
	TenantID    string          `json:"tenantID"`
	UploadedBy  string          `json:"uploadedBy"`
	ImagePath   string          `json:"imagePath"`
	RawText     string          `json:"rawText"`
	Amount      decimal.Decimal `json:"amount"`
	Date        *time.Time      `json:"date,omitempty"`
	Description string          `json:"description"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	PostalCode  string          `json:"postalCode,omitempty"`
	CompanyID   *string         `json:"companyID,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToVoucherResponse converts a domain.Voucher to VoucherResponse DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	resp := VoucherResponse{
		VoucherID:   v.VoucherID,
		TenantID:    v.TenantID,
		UploadedBy:  v.UploadedBy,
		ImagePath:   v.ImagePath,
		RawText:     v.RawText,
		Amount:      v.Amount,
		Description: v.Description,
		Phone:       v.Phone,
		Address:     v.Address,
		PostalCode:  v.PostalCode,
		CompanyID:   v.CompanyID,
		Status:      string(v.Status),
		CreatedAt:   v.CreatedAt,
	}
	if !v.Date.IsZero() {
		d := v.Date
		resp.Date = &d
	}
	return resp
}

// ListVouchersResponse wraps the list of vouchers.
type ListVouchersResponse struct {
	Vouchers []VoucherResponse `json:"vouchers"`
}

// ToListVouchersResponse converts a slice of domain.Voucher to ListVouchersResponse DTO.
func ToListVouchersResponse(vouchers []domain.Voucher) ListVouchersResponse {
	responses := make([]VoucherResponse, len(vouchers))
	for i, v := range vouchers {
		responses[i] = ToVoucherResponse(&v)
	}
	return ListVouchersResponse{Vouchers: responses}
}

// CreateCompanyRequest registers a counter-party for the tenant.
type CreateCompanyRequest struct {
	Name            string `json:"name" binding:"required"`
	CorporateNumber string `json:"corporateNumber"`
	PostalCode      string `json:"postalCode"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
}

// UpdateCompanyRequest defines the fields allowed for updating a company.
type UpdateCompanyRequest struct {
	Name            string `json:"name" binding:"required"`
	CorporateNumber string `json:"corporateNumber"`
	PostalCode      string `json:"postalCode"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID       string    `json:"companyID"`
	TenantID        string    `json:"tenantID"`
	Name            string    `json:"name"`
	CorporateNumber string    `json:"corporateNumber,omitempty"`
	PostalCode      string    `json:"postalCode,omitempty"`
	Address         string    `json:"address,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:       c.CompanyID,
		TenantID:        c.TenantID,
		Name:            c.Name,
		CorporateNumber: c.CorporateNumber,
		PostalCode:      c.PostalCode,
		Address:         c.Address,
		Phone:           c.Phone,
		CreatedAt:       c.CreatedAt,
	}
}

// ListCompaniesResponse wraps the list of companies.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToListCompaniesResponse converts a slice of domain.Company to ListCompaniesResponse DTO.
func ToListCompaniesResponse(companies []domain.Company) ListCompaniesResponse {
	responses := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		responses[i] = ToCompanyResponse(&c)
	}
	return ListCompaniesResponse{Companies: responses}
}
