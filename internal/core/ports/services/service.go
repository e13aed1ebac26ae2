package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Auth     AuthSvcFacade
	Admin    AdminSvcFacade
	Tenant   TenantSvcFacade
	Store    StoreSvcFacade
	Employee EmployeeSvcFacade
	Voucher  VoucherSvcFacade
	Company  CompanySvcFacade
	Journal  JournalSvcFacade
}
