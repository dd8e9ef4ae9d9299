package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carenote-be/internal/apperr"
	"carenote-be/internal/constant"
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

// ICommandService executes the user-issued concern commands. Every target
// name is free text and resolved by fuzzy matching; resolution is
// fail-fast, so a command with one unresolvable name changes nothing.
type ICommandService interface {
	Merge(ctx context.Context, req *dto.MergeConcernsRequest) (*dto.CommandResponse, error)
	Delete(ctx context.Context, req *dto.DeleteConcernRequest) (*dto.CommandResponse, error)
	Rename(ctx context.Context, req *dto.RenameConcernRequest) (*dto.CommandResponse, error)
}

type commandService struct {
	uowFactory     unitofwork.RepositoryFactory
	concernService IConcernService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	now            func() time.Time
}

func NewCommandService(
	uowFactory unitofwork.RepositoryFactory,
	concernService IConcernService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) ICommandService {
	return &commandService{
		uowFactory:     uowFactory,
		concernService: concernService,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
		now:            time.Now,
	}
}

// resolve matches one free-text name to an open concern, most recently
// updated first.
func resolve(target string, concerns []*entity.Concern) (*entity.Concern, error) {
	titles := make([]string, len(concerns))
	for i, c := range concerns {
		titles[i] = c.Title
	}
	matched, ok := fuzzy.Match(target, titles)
	if !ok {
		return nil, apperr.NoMatch(target)
	}
	for _, c := range concerns {
		if c.Title == matched {
			return c, nil
		}
	}
	return nil, apperr.NoMatch(target)
}

func (s *commandService) Merge(ctx context.Context, req *dto.MergeConcernsRequest) (*dto.CommandResponse, error) {
	concerns, err := s.concernService.GetOpenConcerns(ctx, req.UserId)
	if err != nil {
		return nil, err
	}

	// Resolve every name before touching anything. Input order is
	// preserved: the first resolved concern becomes the primary.
	resolved := make([]*entity.Concern, 0, len(req.TargetNames))
	seen := make(map[uuid.UUID]bool)
	for _, name := range req.TargetNames {
		c, err := resolve(name, concerns)
		if err != nil {
			return nil, err
		}
		if seen[c.Id] {
			continue
		}
		seen[c.Id] = true
		resolved = append(resolved, c)
	}

	lang, _ := s.userLanguage(ctx, req.UserId)
	messages := constant.GetMessages(lang)

	primary := resolved[0]
	if len(resolved) < 2 {
		// Both names landed on the same concern; nothing to merge.
		return &dto.CommandResponse{
			MatchedTitles: []string{primary.Title},
			Message:       fmt.Sprintf(messages.MergeConfirm, quoteJoin(nil), primary.Title),
		}, nil
	}

	parts := make([]string, 0, len(resolved))
	mergedTitles := make([]string, 0, len(resolved)-1)
	for _, c := range resolved {
		if c.SummaryContent != nil && strings.TrimSpace(*c.SummaryContent) != "" {
			parts = append(parts, *c.SummaryContent)
		}
		if c.Id != primary.Id {
			mergedTitles = append(mergedTitles, c.Title)
		}
	}
	mergedContent := strings.Join(parts, "\n\n")
	now := s.now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	primary.SummaryContent = &mergedContent
	primary.UpdatedAt = &now
	if err := uow.ConcernRepository().Update(ctx, primary); err != nil {
		return nil, err
	}
	snapshot := entity.ConcernSnapshot{
		Id:        uuid.New(),
		ConcernId: primary.Id,
		Content:   mergedContent,
		Reason:    entity.SnapshotUserEdit,
		CreatedAt: now,
	}
	if err := uow.ConcernSnapshotRepository().Create(ctx, &snapshot); err != nil {
		return nil, err
	}
	for _, c := range resolved[1:] {
		if err := uow.ConcernRepository().Delete(ctx, c.Id); err != nil {
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.recompute(ctx, req.UserId)
	s.publish(ctx, events.ConcernMerged(req.UserId, primary.Id, mergedTitles))

	matched := make([]string, len(resolved))
	for i, c := range resolved {
		matched[i] = c.Title
	}
	return &dto.CommandResponse{
		MatchedTitles: matched,
		Message:       fmt.Sprintf(messages.MergeConfirm, quoteJoin(mergedTitles), primary.Title),
	}, nil
}

func (s *commandService) Delete(ctx context.Context, req *dto.DeleteConcernRequest) (*dto.CommandResponse, error) {
	concerns, err := s.concernService.GetOpenConcerns(ctx, req.UserId)
	if err != nil {
		return nil, err
	}
	target, err := resolve(req.TargetName, concerns)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	// Snapshots survive the delete; only the concern row goes.
	if err := uow.ConcernRepository().Delete(ctx, target.Id); err != nil {
		return nil, err
	}

	s.recompute(ctx, req.UserId)
	s.publish(ctx, events.ConcernDeleted(req.UserId, target.Id, target.Title))

	lang, _ := s.userLanguage(ctx, req.UserId)
	return &dto.CommandResponse{
		MatchedTitles: []string{target.Title},
		Message:       fmt.Sprintf(constant.GetMessages(lang).DeleteConfirm, target.Title),
	}, nil
}

func (s *commandService) Rename(ctx context.Context, req *dto.RenameConcernRequest) (*dto.CommandResponse, error) {
	concerns, err := s.concernService.GetOpenConcerns(ctx, req.UserId)
	if err != nil {
		return nil, err
	}
	target, err := resolve(req.TargetName, concerns)
	if err != nil {
		return nil, err
	}

	// The new name must not collide with any other open concern, otherwise
	// two concerns would answer to the same title.
	for _, c := range concerns {
		if c.Id == target.Id {
			continue
		}
		if _, ok := fuzzy.Match(req.NewName, []string{c.Title}); ok {
			return nil, fmt.Errorf("%w: %q", apperr.ErrTitleConflict, c.Title)
		}
	}

	oldTitle := target.Title
	now := s.now()
	target.Title = req.NewName
	target.UpdatedAt = &now

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ConcernRepository().Update(ctx, target); err != nil {
		return nil, err
	}

	// Titles head the aggregate sections, so a rename changes the blob.
	s.recompute(ctx, req.UserId)
	s.publish(ctx, events.ConcernUpdated(req.UserId, target.Id, target.Title, "rename"))

	lang, _ := s.userLanguage(ctx, req.UserId)
	return &dto.CommandResponse{
		MatchedTitles: []string{oldTitle, req.NewName},
		Message:       fmt.Sprintf(constant.GetMessages(lang).RenameConfirm, oldTitle, req.NewName),
	}, nil
}

func (s *commandService) userLanguage(ctx context.Context, userId uuid.UUID) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	patient, err := uow.PatientRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || patient == nil {
		return "en", err
	}
	return patient.Language, nil
}

func (s *commandService) recompute(ctx context.Context, userId uuid.UUID) {
	if err := s.concernService.RecomputeAggregate(ctx, userId); err != nil {
		s.logger.Warn("command_service", "aggregate recompute failed", map[string]interface{}{
			"user_id": userId, "error": err.Error(),
		})
	}
}

func (s *commandService) publish(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("command_service", "failed to publish event", map[string]interface{}{
			"event": evt.EventType(), "error": err.Error(),
		})
	}
}

func quoteJoin(titles []string) string {
	if len(titles) == 0 {
		return ""
	}
	quoted := make([]string, len(titles))
	for i, t := range titles {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(quoted, ", ")
}
