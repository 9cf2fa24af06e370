package services

// ServiceContainer holds instances of all the application services.
// It is built once at startup and shared by the HTTP handlers and the CLI.
type ServiceContainer struct {
	Transaction TransactionSvcFacade
	Reporting   ReportingService
}
