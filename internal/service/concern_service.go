package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carenote-be/internal/apperr"
	"carenote-be/internal/dto"
	"carenote-be/internal/entity"
	"carenote-be/internal/pkg/logger"
	"carenote-be/internal/repository/specification"
	"carenote-be/internal/repository/unitofwork"
	"carenote-be/pkg/events"
	"carenote-be/pkg/fuzzy"
	pktNats "carenote-be/pkg/nats"

	"github.com/google/uuid"
)

type IConcernService interface {
	// GetOrCreateConcern resolves a topic title against the user's open
	// concerns; an unmatched title creates a fresh active concern.
	GetOrCreateConcern(ctx context.Context, userId uuid.UUID, title string) (*entity.Concern, error)
	// UpdateConcernSummary replaces a concern's summary, snapshotting the
	// new content. A content-identical update is a no-op.
	UpdateConcernSummary(ctx context.Context, userId uuid.UUID, concernId uuid.UUID, content string, reason entity.SnapshotReason) error
	// AppendNote adds one line to the most recently updated open concern,
	// or directly to the aggregate when the user has no open concern.
	AppendNote(ctx context.Context, userId uuid.UUID, note string) error
	GetOpenConcerns(ctx context.Context, userId uuid.UUID) ([]*entity.Concern, error)
	UpdateStatus(ctx context.Context, userId uuid.UUID, req *dto.UpdateConcernStatusRequest) error
	GetSnapshots(ctx context.Context, concernId uuid.UUID) ([]*entity.ConcernSnapshot, error)
	GetAggregate(ctx context.Context, userId uuid.UUID) (*dto.AggregateResponse, error)
	// RecomputeAggregate rebuilds the legacy per-user summary blob from the
	// current open concern set.
	RecomputeAggregate(ctx context.Context, userId uuid.UUID) error
}

type concernService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	now            func() time.Time
}

func NewConcernService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IConcernService {
	return &concernService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
		now:            time.Now,
	}
}

func (s *concernService) GetOpenConcerns(ctx context.Context, userId uuid.UUID) ([]*entity.Concern, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ConcernRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.ByStatuses{Statuses: []string{string(entity.ConcernActive), string(entity.ConcernImproving)}},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
}

func (s *concernService) GetOrCreateConcern(ctx context.Context, userId uuid.UUID, title string) (*entity.Concern, error) {
	concerns, err := s.GetOpenConcerns(ctx, userId)
	if err != nil {
		return nil, err
	}

	// Candidates arrive most recently updated first, so an ambiguous title
	// lands on the concern the user touched last.
	titles := make([]string, len(concerns))
	for i, c := range concerns {
		titles[i] = c.Title
	}
	if matched, ok := fuzzy.Match(title, titles); ok {
		for _, c := range concerns {
			if c.Title == matched {
				return c, nil
			}
		}
	}

	concern := entity.Concern{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		Status:    entity.ConcernActive,
		CreatedAt: s.now(),
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ConcernRepository().Create(ctx, &concern); err != nil {
		return nil, err
	}

	s.publish(ctx, events.ConcernCreated(userId, concern.Id, concern.Title))
	return &concern, nil
}

func (s *concernService) UpdateConcernSummary(ctx context.Context, userId uuid.UUID, concernId uuid.UUID, content string, reason entity.SnapshotReason) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	concern, err := uow.ConcernRepository().FindOne(ctx,
		specification.ByID{ID: concernId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if concern == nil {
		return apperr.ErrNotFound
	}

	if concern.SummaryContent != nil &&
		fuzzy.Normalize(*concern.SummaryContent) == fuzzy.Normalize(content) {
		// Nothing meaningful changed; skip the snapshot and the write.
		return nil
	}

	now := s.now()
	concern.SummaryContent = &content
	concern.UpdatedAt = &now

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ConcernRepository().Update(ctx, concern); err != nil {
		return err
	}
	snapshot := entity.ConcernSnapshot{
		Id:        uuid.New(),
		ConcernId: concern.Id,
		Content:   content,
		Reason:    reason,
		CreatedAt: now,
	}
	if err := uow.ConcernSnapshotRepository().Create(ctx, &snapshot); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if err := s.RecomputeAggregate(ctx, userId); err != nil {
		// The aggregate is a derived view; a failed rebuild must not undo
		// the concern update.
		s.logger.Warn("concern_service", "aggregate recompute failed", map[string]interface{}{
			"user_id": userId, "error": err.Error(),
		})
	}

	s.publish(ctx, events.ConcernUpdated(userId, concern.Id, concern.Title, string(reason)))
	return nil
}

func (s *concernService) AppendNote(ctx context.Context, userId uuid.UUID, note string) error {
	concerns, err := s.GetOpenConcerns(ctx, userId)
	if err != nil {
		return err
	}

	if len(concerns) > 0 {
		target := concerns[0] // most recently updated
		content := note
		if target.SummaryContent != nil && *target.SummaryContent != "" {
			content = *target.SummaryContent + "\n" + note
		}
		return s.UpdateConcernSummary(ctx, userId, target.Id, content, entity.SnapshotAutoUpdate)
	}

	// No open concern to carry the note; write it straight into the
	// aggregate so it is not lost.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.CareSummaryRepository().FindByUserId(ctx, userId)
	if err != nil {
		return err
	}
	content := note
	if existing != nil && existing.Content != "" {
		content = existing.Content + "\n" + note
	}
	return uow.CareSummaryRepository().Upsert(ctx, &entity.CareSummary{
		UserId:    userId,
		Content:   content,
		UpdatedAt: s.now(),
	})
}

func (s *concernService) UpdateStatus(ctx context.Context, userId uuid.UUID, req *dto.UpdateConcernStatusRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	concern, err := uow.ConcernRepository().FindOne(ctx,
		specification.ByID{ID: req.ConcernId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if concern == nil {
		return apperr.ErrNotFound
	}

	next := entity.ConcernStatus(req.Status)
	if !concern.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, concern.Status, next)
	}

	now := s.now()
	concern.Status = next
	concern.UpdatedAt = &now
	if err := uow.ConcernRepository().Update(ctx, concern); err != nil {
		return err
	}

	if err := s.RecomputeAggregate(ctx, userId); err != nil {
		s.logger.Warn("concern_service", "aggregate recompute failed", map[string]interface{}{
			"user_id": userId, "error": err.Error(),
		})
	}

	s.publish(ctx, events.ConcernUpdated(userId, concern.Id, concern.Title, "status_change"))
	return nil
}

func (s *concernService) GetSnapshots(ctx context.Context, concernId uuid.UUID) ([]*entity.ConcernSnapshot, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ConcernSnapshotRepository().FindAll(ctx,
		specification.ByConcernID{ConcernID: concernId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func (s *concernService) GetAggregate(ctx context.Context, userId uuid.UUID) (*dto.AggregateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	summary, err := uow.CareSummaryRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, nil
	}
	return &dto.AggregateResponse{
		UserId:    summary.UserId,
		Content:   summary.Content,
		UpdatedAt: summary.UpdatedAt,
	}, nil
}

func (s *concernService) RecomputeAggregate(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	concerns, err := uow.ConcernRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.ByStatuses{Statuses: []string{string(entity.ConcernActive), string(entity.ConcernImproving)}},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return err
	}

	sections := make([]string, 0, len(concerns))
	for _, c := range concerns {
		if c.SummaryContent == nil || strings.TrimSpace(*c.SummaryContent) == "" {
			continue
		}
		sections = append(sections, fmt.Sprintf("--- %s ---\n%s", c.Title, *c.SummaryContent))
	}

	return uow.CareSummaryRepository().Upsert(ctx, &entity.CareSummary{
		UserId:    userId,
		Content:   strings.Join(sections, "\n\n"),
		UpdatedAt: s.now(),
	})
}

// publish sends a domain event; event delivery is auxiliary and never fails
// the calling operation.
func (s *concernService) publish(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("concern_service", "failed to publish event", map[string]interface{}{
			"event": evt.EventType(), "error": err.Error(),
		})
	}
}
