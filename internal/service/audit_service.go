package service

import (
	"context"

	"carenote-be/internal/pkg/logger"
	"carenote-be/pkg/events"
	pktNats "carenote-be/pkg/nats"
)

// IAuditService tails the domain event stream and writes each event to the
// structured log, giving operators a queryable audit trail without touching
// the hot path.
type IAuditService interface {
	Start() error
}

type auditService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewAuditService(subscriber *pktNats.Subscriber, sysLogger logger.ILogger) IAuditService {
	return &auditService{
		subscriber: subscriber,
		logger:     sysLogger,
	}
}

func (s *auditService) Start() error {
	if s.subscriber == nil {
		return nil // NATS unavailable, audit trail off
	}
	return s.subscriber.Subscribe("care.>", "care-audit-worker", s.handleEvent)
}

func (s *auditService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("audit", event.EventType(), event.Payload())
	return nil
}
