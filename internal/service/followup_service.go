package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"carenote-be/internal/config"
	"carenote-be/internal/constant"
	"carenote-be/internal/dto"
	"carenote-be/internal/entity"
	"carenote-be/internal/pkg/logger"
	"carenote-be/internal/repository/specification"
	"carenote-be/internal/repository/unitofwork"
	"carenote-be/pkg/checkin"
	"carenote-be/pkg/events"
	"carenote-be/pkg/messaging"
	pktNats "carenote-be/pkg/nats"
	"carenote-be/pkg/queue"

	"github.com/google/uuid"
)

const sendTimeout = 20 * time.Second

type IFollowUpService interface {
	// ScheduleCheckin arms the single delayed check-in for a user,
	// superseding any check-in already pending.
	ScheduleCheckin(ctx context.Context, userId uuid.UUID, conversationRef string, caseLabel string) error
	// CancelCheckin tears down a pending check-in. Idempotent: cancelling
	// when nothing is scheduled is a no-op.
	CancelCheckin(ctx context.Context, userId uuid.UUID) error
	// ExecuteCheckin is the delayed-queue handler. It re-validates against
	// current state before sending; stale jobs are dropped silently.
	ExecuteCheckin(ctx context.Context, payload []byte) error
	// HandleCheckinResponse consumes a user message as the answer to an
	// outstanding check-in. Returns handled=false when no check-in is
	// awaiting a reply, in which case the message belongs to the normal
	// conversation flow.
	HandleCheckinResponse(ctx context.Context, userId uuid.UUID, text string) (bool, string, error)
	RecordUserMessage(ctx context.Context, userId uuid.UUID, body string, payload map[string]interface{}) error
	RecordBotMessage(ctx context.Context, userId uuid.UUID, body string) error
	GetState(ctx context.Context, userId uuid.UUID) (*dto.FollowUpStateResponse, error)
}

type followUpService struct {
	uowFactory     unitofwork.RepositoryFactory
	concernService IConcernService
	delayedQueue   queue.DelayedQueue
	messenger      messaging.Client
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	cfg            config.FollowUpConfig
	now            func() time.Time
}

func NewFollowUpService(
	uowFactory unitofwork.RepositoryFactory,
	concernService IConcernService,
	delayedQueue queue.DelayedQueue,
	messenger messaging.Client,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
	cfg config.FollowUpConfig,
) IFollowUpService {
	return &followUpService{
		uowFactory:     uowFactory,
		concernService: concernService,
		delayedQueue:   delayedQueue,
		messenger:      messenger,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
		cfg:            cfg,
		now:            time.Now,
	}
}

// jobKey derives the deterministic queue key. One key per user means a new
// schedule always supersedes the old one at the queue level too.
func jobKey(userId uuid.UUID) string {
	return "checkin:" + userId.String()
}

func (s *followUpService) ScheduleCheckin(ctx context.Context, userId uuid.UUID, conversationRef string, caseLabel string) error {
	if err := s.CancelCheckin(ctx, userId); err != nil {
		return err
	}

	now := s.now()
	fireAt := now.Add(s.cfg.Delay)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	state, err := uow.FollowUpStateRepository().FindByUserId(ctx, userId)
	if err != nil {
		return err
	}
	if state == nil {
		state = &entity.FollowUpState{
			UserId:    userId,
			CreatedAt: now,
		}
	}
	state.Status = entity.FollowUpScheduled
	state.ConversationRef = conversationRef
	state.ScheduledFor = &fireAt
	state.LastSummaryCreatedAt = &now
	state.UpdatedAt = &now
	if caseLabel != "" {
		state.CaseLabel = &caseLabel
	}
	if err := uow.FollowUpStateRepository().Upsert(ctx, state); err != nil {
		return err
	}

	payload, err := json.Marshal(dto.CheckinJobPayload{
		UserId:          userId,
		ConversationRef: conversationRef,
	})
	if err != nil {
		return err
	}
	if err := s.delayedQueue.Enqueue(ctx, jobKey(userId), payload, s.cfg.Delay); err != nil {
		return fmt.Errorf("failed to enqueue check-in: %w", err)
	}

	s.logger.Info("followup_service", "check-in scheduled", map[string]interface{}{
		"user_id": userId, "fire_at": fireAt,
	})
	return nil
}

func (s *followUpService) CancelCheckin(ctx context.Context, userId uuid.UUID) error {
	// Queue removal is best effort; the status flip below is what actually
	// stops a job that already slipped past the queue.
	if _, err := s.delayedQueue.Cancel(ctx, jobKey(userId)); err != nil {
		s.logger.Warn("followup_service", "queue cancel failed", map[string]interface{}{
			"user_id": userId, "error": err.Error(),
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	state, err := uow.FollowUpStateRepository().FindByUserId(ctx, userId)
	if err != nil {
		return err
	}
	if state == nil || state.Status != entity.FollowUpScheduled {
		return nil
	}

	now := s.now()
	state.Status = entity.FollowUpCanceled
	state.UpdatedAt = &now
	return uow.FollowUpStateRepository().Upsert(ctx, state)
}

func (s *followUpService) ExecuteCheckin(ctx context.Context, payload []byte) error {
	var job dto.CheckinJobPayload
	if err := json.Unmarshal(payload, &job); err != nil {
		// Malformed payloads can never succeed; drop without retry.
		s.logger.Error("followup_service", "bad check-in payload", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	state, err := uow.FollowUpStateRepository().FindByUserId(ctx, job.UserId)
	if err != nil {
		return fmt.Errorf("failed to load follow-up state: %w", err)
	}

	// Re-validation happens in a fixed order so each skip reason is
	// observable and tested independently.

	// 1. The status column decides whether this job is still wanted.
	if state == nil || state.Status != entity.FollowUpScheduled {
		s.logger.Info("followup_service", "check-in skipped: not scheduled", map[string]interface{}{
			"user_id": job.UserId,
		})
		return nil
	}

	// 2. The user already re-engaged after the summary that armed this job;
	// a check-in now would answer a conversation that moved on.
	if state.LastUserMessageAt != nil && state.LastSummaryCreatedAt != nil &&
		state.LastUserMessageAt.After(*state.LastSummaryCreatedAt) {
		return s.markCanceled(ctx, state, "user re-engaged after summary")
	}

	// 3. A conversation is already live; a scripted check-in would barge in.
	// Suppression needs both directions recent, a lone user ping or a lone
	// bot notification does not count as a conversation.
	now := s.now()
	if s.withinActivityWindow(state.LastUserMessageAt, now) &&
		s.withinActivityWindow(state.LastBotMessageAt, now) {
		return s.markCanceled(ctx, state, "recent conversation activity")
	}

	// 4. Nothing left to check in about.
	concerns, err := s.concernService.GetOpenConcerns(ctx, job.UserId)
	if err != nil {
		return fmt.Errorf("failed to load concerns: %w", err)
	}
	if len(concerns) == 0 {
		return s.markCanceled(ctx, state, "no open concerns")
	}

	// 5. Send. A transport failure leaves status untouched so the queue's
	// retry policy can try again.
	patient, err := uow.PatientRepository().FindOne(ctx, specification.ByID{ID: job.UserId})
	if err != nil {
		return fmt.Errorf("failed to load patient: %w", err)
	}
	greeting := s.buildGreeting(patient, state)

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := s.messenger.Send(sendCtx, state.ConversationRef, greeting); err != nil {
		return fmt.Errorf("failed to send check-in: %w", err)
	}

	state.Status = entity.FollowUpSent
	state.LastBotMessageAt = &now
	state.UpdatedAt = &now
	if err := uow.FollowUpStateRepository().Upsert(ctx, state); err != nil {
		return fmt.Errorf("failed to mark check-in sent: %w", err)
	}

	s.appendMessageLog(ctx, job.UserId, entity.MessageOutbound, greeting, nil)
	s.publish(ctx, events.CheckinSent(job.UserId, state.ConversationRef))
	return nil
}

func (s *followUpService) HandleCheckinResponse(ctx context.Context, userId uuid.UUID, text string) (bool, string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	state, err := uow.FollowUpStateRepository().FindByUserId(ctx, userId)
	if err != nil {
		return false, "", err
	}
	if state == nil || state.Status != entity.FollowUpSent {
		return false, "", nil
	}

	class := checkin.Classify(text)

	if err := s.concernService.AppendNote(ctx, userId, constant.FollowUpNote(class)); err != nil {
		return false, "", err
	}

	now := s.now()
	state.Status = entity.FollowUpCompleted
	state.UpdatedAt = &now
	if err := uow.FollowUpStateRepository().Upsert(ctx, state); err != nil {
		return false, "", err
	}

	lang, _ := s.userLanguage(ctx, userId)
	reply := constant.GetMessages(lang).Ack(class)

	s.publish(ctx, events.CheckinCompleted(userId, string(class)))
	return true, reply, nil
}

func (s *followUpService) RecordUserMessage(ctx context.Context, userId uuid.UUID, body string, payload map[string]interface{}) error {
	now := s.now()
	uow := s.uowFactory.NewUnitOfWork(ctx)
	state, err := uow.FollowUpStateRepository().FindByUserId(ctx, userId)
	if err != nil {
		return err
	}
	if state != nil {
		state.LastUserMessageAt = &now
		state.UpdatedAt = &now
		if err := uow.FollowUpStateRepository().Upsert(ctx, state); err != nil {
			return err
		}
	}
	s.appendMessageLog(ctx, userId, entity.MessageInbound, body, payload)
	return nil
}

func (s *followUpService) RecordBotMessage(ctx context.Context, userId uuid.UUID, body string) error {
	now := s.now()
	uow := s.uowFactory.NewUnitOfWork(ctx)
	state, err := uow.FollowUpStateRepository().FindByUserId(ctx, userId)
	if err != nil {
		return err
	}
	if state != nil {
		state.LastBotMessageAt = &now
		state.UpdatedAt = &now
		if err := uow.FollowUpStateRepository().Upsert(ctx, state); err != nil {
			return err
		}
	}
	s.appendMessageLog(ctx, userId, entity.MessageOutbound, body, nil)
	return nil
}

func (s *followUpService) GetState(ctx context.Context, userId uuid.UUID) (*dto.FollowUpStateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	state, err := uow.FollowUpStateRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return &dto.FollowUpStateResponse{
			UserId: userId,
			Status: string(entity.FollowUpNotScheduled),
		}, nil
	}
	return &dto.FollowUpStateResponse{
		UserId:               state.UserId,
		Status:               string(state.Status),
		ScheduledFor:         state.ScheduledFor,
		LastSummaryCreatedAt: state.LastSummaryCreatedAt,
		LastUserMessageAt:    state.LastUserMessageAt,
		LastBotMessageAt:     state.LastBotMessageAt,
		CaseLabel:            state.CaseLabel,
	}, nil
}

func (s *followUpService) withinActivityWindow(t *time.Time, now time.Time) bool {
	return t != nil && now.Sub(*t) < s.cfg.ActivityWindow
}

func (s *followUpService) markCanceled(ctx context.Context, state *entity.FollowUpState, reason string) error {
	now := s.now()
	state.Status = entity.FollowUpCanceled
	state.UpdatedAt = &now
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FollowUpStateRepository().Upsert(ctx, state); err != nil {
		return err
	}
	s.logger.Info("followup_service", "check-in skipped: "+reason, map[string]interface{}{
		"user_id": state.UserId,
	})
	return nil
}

func (s *followUpService) buildGreeting(patient *entity.Patient, state *entity.FollowUpState) string {
	name := "there"
	lang := "en"
	if patient != nil {
		if patient.FullName != "" {
			name = patient.FullName
		}
		lang = patient.Language
	}
	messages := constant.GetMessages(lang)
	if state.CaseLabel != nil && *state.CaseLabel != "" {
		return fmt.Sprintf(messages.CheckinGreeting, name, *state.CaseLabel)
	}
	return fmt.Sprintf(messages.CheckinGreetingNoLabel, name)
}

func (s *followUpService) userLanguage(ctx context.Context, userId uuid.UUID) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	patient, err := uow.PatientRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || patient == nil {
		return "en", err
	}
	return patient.Language, nil
}

func (s *followUpService) appendMessageLog(ctx context.Context, userId uuid.UUID, direction entity.MessageDirection, body string, payload map[string]interface{}) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	log := entity.MessageLog{
		Id:        uuid.New(),
		UserId:    userId,
		Direction: direction,
		Body:      body,
		Payload:   payload,
		CreatedAt: s.now(),
	}
	if err := uow.MessageLogRepository().Create(ctx, &log); err != nil {
		// The log is observability data, not business state.
		s.logger.Warn("followup_service", "failed to append message log", map[string]interface{}{
			"user_id": userId, "error": err.Error(),
		})
	}
}

func (s *followUpService) publish(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("followup_service", "failed to publish event", map[string]interface{}{
			"event": evt.EventType(), "error": err.Error(),
		})
	}
}
