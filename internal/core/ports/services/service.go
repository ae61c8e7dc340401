package services

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Transaction   TransactionSvcFacade
	Account       AccountSvcFacade
	Reporting     ReportingService
	Financials    FinancialsSvc
	Notifications NotificationSvc
}

// EventPublisher delivers committed domain events to interested listeners.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event)
}

// NotificationSvc exposes the notifications addressed to the calling user.
type NotificationSvc interface {
	ListNotifications(ctx context.Context, actor domain.Actor, limit int) ([]domain.Notification, error)
}
