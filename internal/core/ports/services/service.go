package services

// ServiceContainer holds instances of all the application services.
// It is the handlers' and the CLI's single entry point into the core.
type ServiceContainer struct {
	Organization OrganizationSvcFacade
	Account      AccountSvcFacade
	Journal      JournalSvcFacade
	Treasury     TreasurySvcFacade
	Check        CheckSvcFacade
}
