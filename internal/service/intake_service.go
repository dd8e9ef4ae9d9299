package service

import (
	"context"
	"encoding/json"
	"time"

	"carenote-be/internal/apperr"
	"carenote-be/internal/dto"
	"carenote-be/internal/entity"
	"carenote-be/internal/pkg/logger"
	"carenote-be/internal/repository/specification"
	"carenote-be/internal/repository/unitofwork"
	"carenote-be/pkg/classifier"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IIntakeService consumes conversation summaries off the bus and turns each
// one into a concern update plus a re-armed check-in.
type IIntakeService interface {
	Consume(ctx context.Context) error
	// ProcessSummary is the per-message pipeline, exposed for synchronous
	// callers and tests. A returned transient error means retry.
	ProcessSummary(ctx context.Context, msg *dto.ProcessSummaryMessage) error
}

type intakeService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	uowFactory      unitofwork.RepositoryFactory
	concernService  IConcernService
	followUpService IFollowUpService
	topicClassifier classifier.TopicClassifier
	logger          logger.ILogger
}

func NewIntakeService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	concernService IConcernService,
	followUpService IFollowUpService,
	topicClassifier classifier.TopicClassifier,
	sysLogger logger.ILogger,
) IIntakeService {
	return &intakeService{
		pubSub:          pubSub,
		topicName:       topicName,
		uowFactory:      uowFactory,
		concernService:  concernService,
		followUpService: followUpService,
		topicClassifier: topicClassifier,
		logger:          sysLogger,
	}
}

func (s *intakeService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *intakeService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ProcessSummaryMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("intake_service", "failed to unmarshal summary message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads never become valid on retry
		return
	}

	if err := s.ProcessSummary(ctx, &payload); err != nil {
		if apperr.IsTransient(err) {
			s.logger.Warn("intake_service", "transient failure, message will retry", map[string]interface{}{
				"user_id": payload.UserId, "error": err.Error(),
			})
			msg.Nack()
			return
		}
		s.logger.Error("intake_service", "summary processing failed", map[string]interface{}{
			"user_id": payload.UserId, "error": err.Error(),
		})
	}
	msg.Ack()
}

func (s *intakeService) ProcessSummary(ctx context.Context, msg *dto.ProcessSummaryMessage) error {
	if err := s.ensurePatient(ctx, msg.UserId, msg.ConversationRef); err != nil {
		return apperr.Transient(err)
	}

	concerns, err := s.concernService.GetOpenConcerns(ctx, msg.UserId)
	if err != nil {
		return apperr.Transient(err)
	}
	titles := make([]string, len(concerns))
	for i, c := range concerns {
		titles[i] = c.Title
	}

	topic, err := s.topicClassifier.DetectTopic(ctx, msg.Excerpt, titles)
	if err != nil {
		return apperr.Transient(err)
	}

	concern, err := s.concernService.GetOrCreateConcern(ctx, msg.UserId, topic)
	if err != nil {
		return apperr.Transient(err)
	}

	if err := s.concernService.UpdateConcernSummary(ctx, msg.UserId, concern.Id, msg.Summary, entity.SnapshotAutoUpdate); err != nil {
		return apperr.Transient(err)
	}

	caseLabel := msg.CaseLabel
	if caseLabel == "" {
		caseLabel = concern.Title
	}
	if err := s.followUpService.ScheduleCheckin(ctx, msg.UserId, msg.ConversationRef, caseLabel); err != nil {
		return apperr.Transient(err)
	}

	s.logger.Info("intake_service", "summary processed", map[string]interface{}{
		"user_id": msg.UserId, "concern": concern.Title,
	})
	return nil
}

// ensurePatient creates a minimal profile row on first contact so later
// personalization lookups never miss.
func (s *intakeService) ensurePatient(ctx context.Context, userId uuid.UUID, conversationRef string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	patient, err := uow.PatientRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if patient != nil {
		return nil
	}
	return uow.PatientRepository().Create(ctx, &entity.Patient{
		Id:              userId,
		Language:        "en",
		ConversationRef: conversationRef,
		CreatedAt:       time.Now(),
	})
}
