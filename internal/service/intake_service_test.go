package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"carenote-be/internal/dto"
	"carenote-be/internal/entity"
	"carenote-be/internal/repository/specification"
	"carenote-be/pkg/classifier"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intakeFixture struct {
	factory   *fakeFactory
	queue     *fakeQueue
	messenger *fakeMessenger
	svc       IIntakeService
	pubSub    *gochannel.GoChannel
}

func newIntakeFixture(t *testing.T) *intakeFixture {
	t.Helper()
	factory := newFakeFactory()
	q := newFakeQueue()
	m := &fakeMessenger{}
	concernSvc := NewConcernService(factory, nil, nopLogger{})
	followUpSvc := NewFollowUpService(factory, concernSvc, q, m, nil, nopLogger{}, testFollowUpCfg)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	svc := NewIntakeService(
		pubSub,
		"PROCESS_CARE_SUMMARY",
		factory,
		concernSvc,
		followUpSvc,
		classifier.NewKeywordClassifier(),
		nopLogger{},
	)
	return &intakeFixture{factory: factory, queue: q, messenger: m, svc: svc, pubSub: pubSub}
}

func TestProcessSummaryCreatesConcernAndSchedulesCheckin(t *testing.T) {
	f := newIntakeFixture(t)
	userId := uuid.New()

	err := f.svc.ProcessSummary(context.Background(), &dto.ProcessSummaryMessage{
		UserId:          userId,
		ConversationRef: "conv-1",
		Excerpt:         "my back hurts when I sit too long",
		Summary:         "Reports back pain after prolonged sitting.",
	})
	require.NoError(t, err)

	uow := f.factory.NewUnitOfWork(context.Background())

	concerns, err := uow.ConcernRepository().FindAll(context.Background(), specification.ByUserID{UserID: userId})
	require.NoError(t, err)
	require.Len(t, concerns, 1)
	assert.Equal(t, "Back Pain", concerns[0].Title)
	assert.Equal(t, "Reports back pain after prolonged sitting.", *concerns[0].SummaryContent)

	// First contact creates the minimal profile row.
	patient, err := uow.PatientRepository().FindOne(context.Background(), specification.ByID{ID: userId})
	require.NoError(t, err)
	require.NotNil(t, patient)
	assert.Equal(t, "conv-1", patient.ConversationRef)

	// One check-in armed.
	require.Len(t, f.queue.enqueues, 1)
	assert.Equal(t, "checkin:"+userId.String(), f.queue.enqueues[0].key)

	state, err := uow.FollowUpStateRepository().FindByUserId(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, entity.FollowUpScheduled, state.Status)
	assert.Equal(t, "Back Pain", *state.CaseLabel)
}

func TestProcessSummaryRoutesToExistingConcern(t *testing.T) {
	f := newIntakeFixture(t)
	userId := uuid.New()

	existing := seedConcern(t, f.factory, userId, "Back Pain", entity.ConcernActive, "first summary", time.Now())

	err := f.svc.ProcessSummary(context.Background(), &dto.ProcessSummaryMessage{
		UserId:          userId,
		ConversationRef: "conv-1",
		Excerpt:         "back still aching",
		Summary:         "Back pain persists, worse in the morning.",
	})
	require.NoError(t, err)

	uow := f.factory.NewUnitOfWork(context.Background())
	concerns, _ := uow.ConcernRepository().FindAll(context.Background(), specification.ByUserID{UserID: userId})
	require.Len(t, concerns, 1, "summary folded into the existing concern")
	assert.Equal(t, existing.Id, concerns[0].Id)
	assert.Equal(t, "Back pain persists, worse in the morning.", *concerns[0].SummaryContent)

	// The replaced summary is preserved as a snapshot.
	snaps, _ := uow.ConcernSnapshotRepository().FindAll(context.Background(),
		specification.ByConcernID{ConcernID: existing.Id})
	require.Len(t, snaps, 1)
	assert.Equal(t, entity.SnapshotAutoUpdate, snaps[0].Reason)
}

func TestProcessSummaryReschedulesOnEachSummary(t *testing.T) {
	f := newIntakeFixture(t)
	userId := uuid.New()

	msg := &dto.ProcessSummaryMessage{
		UserId:          userId,
		ConversationRef: "conv-1",
		Excerpt:         "knee pain after running",
		Summary:         "Knee pain after a run.",
	}
	require.NoError(t, f.svc.ProcessSummary(context.Background(), msg))

	msg.Summary = "Knee pain subsiding with rest."
	require.NoError(t, f.svc.ProcessSummary(context.Background(), msg))

	// Two enqueues on the same key: the second supersedes the first, so at
	// most one check-in is ever pending.
	require.Len(t, f.queue.enqueues, 2)
	assert.Equal(t, f.queue.enqueues[0].key, f.queue.enqueues[1].key)
	assert.Len(t, f.queue.pending, 1)
}

func TestConsumeProcessesPublishedSummaries(t *testing.T) {
	f := newIntakeFixture(t)
	userId := uuid.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, f.svc.Consume(ctx))

	publisher := NewPublisherService(f.pubSub, "PROCESS_CARE_SUMMARY")
	payload, err := json.Marshal(dto.ProcessSummaryMessage{
		UserId:          userId,
		ConversationRef: "conv-9",
		Excerpt:         "trouble sleeping lately",
		Summary:         "Reports insomnia for the past week.",
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, payload))

	assert.Eventually(t, func() bool {
		uow := f.factory.NewUnitOfWork(context.Background())
		concerns, err := uow.ConcernRepository().FindAll(context.Background(), specification.ByUserID{UserID: userId})
		return err == nil && len(concerns) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
