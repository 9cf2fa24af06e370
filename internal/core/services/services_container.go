package services

import (
	portsrepo "github.com/Gabriel4210/DRE/internal/core/ports/repositories"
	portssvc "github.com/Gabriel4210/DRE/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Transaction: NewTransactionService(repos.TransactionRepo),
		Reporting:   NewReportingService(repos.TransactionRepo),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.ReportingService     = (*reportingService)(nil)
)
