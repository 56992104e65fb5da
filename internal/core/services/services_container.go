package services

import (
	portsrepo "github.com/SscSPs/amortization_manager/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/amortization_manager/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Integration options (ledger, publisher, metrics, limits) are passed through to the amortization service.
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...AmortizationOption) *portssvc.ServiceContainer {
	amortizationOptions := make([]AmortizationOption, 0, len(options)+1)
	if repos.EntityRepo != nil {
		amortizationOptions = append(amortizationOptions, WithEntityRepository(repos.EntityRepo))
	}
	amortizationOptions = append(amortizationOptions, options...)

	container := &portssvc.ServiceContainer{
		Amortization: NewAmortizationService(repos.AmortizationRepo, amortizationOptions...),
	}
	if repos.EntityRepo != nil {
		container.Company = NewCompanyService(repos.EntityRepo)
	}
	return container
}
