package services

import (
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
)

// ServiceOption configures the shared BaseService of a service.
type ServiceOption func(*BaseService)

// WithEventPublisher sets where committed domain events are sent.
func WithEventPublisher(publisher portssvc.EventPublisher) ServiceOption {
	return func(s *BaseService) {
		s.Publisher = publisher
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	repos portsrepo.RepositoryProvider,
	policy *domain.ApprovalPolicy,
	notifications portssvc.NotificationSvc,
	options ...ServiceOption,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Transaction:   NewTransactionService(repos, policy, options...),
		Account:       NewAccountService(repos, options...),
		Reporting:     NewReportingService(repos, options...),
		Financials:    NewFinancialsService(repos.FinancialsRepo, options...),
		Notifications: notifications,
	}
}
