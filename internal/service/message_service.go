package service

import (
	"context"

	"carenote-be/internal/dto"
	"carenote-be/internal/pkg/logger"
	"carenote-be/internal/repository/memory"
	"carenote-be/internal/repository/specification"
	"carenote-be/internal/repository/unitofwork"
	"carenote-be/pkg/messaging"
)

// IMessageService is the inbound edge: every user message lands here first.
// A message is either consumed as a check-in answer or passed back to the
// caller unhandled.
type IMessageService interface {
	HandleInbound(ctx context.Context, req *dto.InboundMessageRequest) (*dto.InboundMessageResponse, error)
}

type messageService struct {
	uowFactory       unitofwork.RepositoryFactory
	followUpService  IFollowUpService
	conversationRepo *memory.ConversationRepository
	messenger        messaging.Client
	logger           logger.ILogger
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	followUpService IFollowUpService,
	conversationRepo *memory.ConversationRepository,
	messenger messaging.Client,
	sysLogger logger.ILogger,
) IMessageService {
	return &messageService{
		uowFactory:       uowFactory,
		followUpService:  followUpService,
		conversationRepo: conversationRepo,
		messenger:        messenger,
		logger:           sysLogger,
	}
}

func (s *messageService) HandleInbound(ctx context.Context, req *dto.InboundMessageRequest) (*dto.InboundMessageResponse, error) {
	s.warmConversation(ctx, req)

	if err := s.followUpService.RecordUserMessage(ctx, req.UserId, req.Text, req.RawPayload); err != nil {
		return nil, err
	}

	handled, reply, err := s.followUpService.HandleCheckinResponse(ctx, req.UserId, req.Text)
	if err != nil {
		return nil, err
	}
	if !handled {
		return &dto.InboundMessageResponse{Handled: false}, nil
	}

	// The acknowledgment goes out on the chat channel too, not only in the
	// webhook response, so the conversation transcript stays complete.
	if err := s.messenger.Send(ctx, req.ConversationRef, reply); err != nil {
		s.logger.Warn("message_service", "failed to send acknowledgment", map[string]interface{}{
			"user_id": req.UserId, "error": err.Error(),
		})
	} else if err := s.followUpService.RecordBotMessage(ctx, req.UserId, reply); err != nil {
		s.logger.Warn("message_service", "failed to record acknowledgment", map[string]interface{}{
			"user_id": req.UserId, "error": err.Error(),
		})
	}

	return &dto.InboundMessageResponse{Handled: true, Reply: reply}, nil
}

// warmConversation keeps a short-lived profile next to the webhook so a
// burst of messages in one exchange costs a single patient lookup.
func (s *messageService) warmConversation(ctx context.Context, req *dto.InboundMessageRequest) {
	if _, found := s.conversationRepo.Get(req.ConversationRef); found {
		return
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	patient, err := uow.PatientRepository().FindOne(ctx, specification.ByID{ID: req.UserId})
	if err != nil || patient == nil {
		return
	}
	s.conversationRepo.Save(&memory.ConversationState{
		UserID:          patient.Id.String(),
		ConversationRef: req.ConversationRef,
		Language:        patient.Language,
		FullName:        patient.FullName,
	})
}
