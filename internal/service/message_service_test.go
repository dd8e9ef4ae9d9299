package service

import (
	"context"
	"testing"

	"carenote-be/internal/dto"
	"carenote-be/internal/entity"
	"carenote-be/internal/repository/memory"
	"carenote-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleInboundPassesThroughWithoutCheckin(t *testing.T) {
	f := newFollowUpFixture(t)
	msgSvc := NewMessageService(f.factory, f.svc, memory.NewConversationRepository(), f.messenger, nopLogger{})
	userId := uuid.New()
	require.NoError(t, f.svc.ScheduleCheckin(context.Background(), userId, "conv-1", ""))

	resp, err := msgSvc.HandleInbound(context.Background(), &dto.InboundMessageRequest{
		UserId:          userId,
		ConversationRef: "conv-1",
		Text:            "unrelated question",
	})
	require.NoError(t, err)
	assert.False(t, resp.Handled)
	assert.Empty(t, resp.Reply)

	// The message still counts as conversation activity.
	uow := f.factory.NewUnitOfWork(context.Background())
	state, _ := uow.FollowUpStateRepository().FindByUserId(context.Background(), userId)
	assert.NotNil(t, state.LastUserMessageAt)
}

func TestHandleInboundConsumesCheckinReply(t *testing.T) {
	f := newFollowUpFixture(t)
	msgSvc := NewMessageService(f.factory, f.svc, memory.NewConversationRepository(), f.messenger, nopLogger{})
	userId := uuid.New()
	payload := scheduleAndSeed(t, f, userId)
	require.NoError(t, f.svc.ExecuteCheckin(context.Background(), payload))

	resp, err := msgSvc.HandleInbound(context.Background(), &dto.InboundMessageRequest{
		UserId:          userId,
		ConversationRef: "conv-1",
		Text:            "feeling much better thanks",
	})
	require.NoError(t, err)
	assert.True(t, resp.Handled)
	assert.Equal(t, "That's great to hear! I've noted the improvement.", resp.Reply)

	// Greeting plus acknowledgment went out on the channel.
	assert.Len(t, f.messenger.sent, 2)
	assert.Equal(t, resp.Reply, f.messenger.sent[1].text)

	uow := f.factory.NewUnitOfWork(context.Background())
	logs, _ := uow.MessageLogRepository().FindAll(context.Background(), specification.ByUserID{UserID: userId})
	// Outbound greeting, inbound reply, outbound acknowledgment.
	assert.Len(t, logs, 3)

	state, _ := uow.FollowUpStateRepository().FindByUserId(context.Background(), userId)
	assert.Equal(t, entity.FollowUpCompleted, state.Status)
}
