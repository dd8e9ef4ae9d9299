package service

import (
	"context"
	"testing"
	"time"

	"carenote-be/internal/dto"
	"carenote-be/internal/entity"
	"carenote-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConcernServiceForTest(factory *fakeFactory) *concernService {
	return NewConcernService(factory, nil, nopLogger{}).(*concernService)
}

func seedConcern(t *testing.T, factory *fakeFactory, userId uuid.UUID, title string, status entity.ConcernStatus, summary string, updatedAt time.Time) *entity.Concern {
	t.Helper()
	c := &entity.Concern{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		Status:    status,
		CreatedAt: updatedAt.Add(-time.Hour),
		UpdatedAt: &updatedAt,
	}
	if summary != "" {
		c.SummaryContent = &summary
	}
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.ConcernRepository().Create(context.Background(), c))
	return c
}

func TestGetOrCreateConcernReusesFuzzyMatch(t *testing.T) {
	factory := newFakeFactory()
	svc := newConcernServiceForTest(factory)
	userId := uuid.New()

	existing := seedConcern(t, factory, userId, "Back Pain", entity.ConcernActive, "hurts", time.Now())

	got, err := svc.GetOrCreateConcern(context.Background(), userId, "back pain")
	require.NoError(t, err)
	assert.Equal(t, existing.Id, got.Id)

	count, _ := factory.NewUnitOfWork(context.Background()).ConcernRepository().Count(context.Background())
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateConcernCreatesWhenUnmatched(t *testing.T) {
	factory := newFakeFactory()
	svc := newConcernServiceForTest(factory)
	userId := uuid.New()

	seedConcern(t, factory, userId, "Back Pain", entity.ConcernActive, "", time.Now())

	got, err := svc.GetOrCreateConcern(context.Background(), userId, "Knee Injury")
	require.NoError(t, err)
	assert.Equal(t, "Knee Injury", got.Title)
	assert.Equal(t, entity.ConcernActive, got.Status)
	assert.Nil(t, got.SummaryContent)

	count, _ := factory.NewUnitOfWork(context.Background()).ConcernRepository().Count(context.Background())
	assert.Equal(t, int64(2), count)
}

func TestGetOrCreateConcernIgnoresResolved(t *testing.T) {
	factory := newFakeFactory()
	svc := newConcernServiceForTest(factory)
	userId := uuid.New()

	// A resolved concern never soaks up new mentions of the topic.
	seedConcern(t, factory, userId, "Back Pain", entity.ConcernResolved, "was bad", time.Now())

	got, err := svc.GetOrCreateConcern(context.Background(), userId, "back pain")
	require.NoError(t, err)
	assert.Equal(t, entity.ConcernActive, got.Status)

	count, _ := factory.NewUnitOfWork(context.Background()).ConcernRepository().Count(context.Background())
	assert.Equal(t, int64(2), count)
}

func TestUpdateConcernSummarySnapshotsAndRecomputes(t *testing.T) {
	factory := newFakeFactory()
	svc := newConcernServiceForTest(factory)
	userId := uuid.New()
	c := seedConcern(t, factory, userId, "Back Pain", entity.ConcernActive, "old content", time.Now())

	err := svc.UpdateConcernSummary(context.Background(), userId, c.Id, "new content", entity.SnapshotAutoUpdate)
	require.NoError(t, err)

	uow := factory.NewUnitOfWork(context.Background())
	snaps, err := uow.ConcernSnapshotRepository().FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "new content", snaps[0].Content)
	assert.Equal(t, entity.SnapshotAutoUpdate, snaps[0].Reason)

	agg, err := uow.CareSummaryRepository().FindByUserId(context.Background(), userId)
	require.NoError(t, err)
	require.NotNil(t, agg)
	assert.Equal(t, "--- Back Pain ---\nnew content", agg.Content)
}

func TestUpdateConcernSummaryNoOpOnSameContent(t *testing.T) {
	factory := newFakeFactory()
	svc := newConcernServiceForTest(factory)
	userId := uuid.New()
	c := seedConcern(t, factory, userId, "Back Pain", entity.ConcernActive, "Same Content", time.Now())

	// Differs only in case and surrounding whitespace, so nothing
	// meaningful changed.
	err := svc.UpdateConcernSummary(context.Background(), userId, c.Id, "  same content ", entity.SnapshotAutoUpdate)
	require.NoError(t, err)

	snaps, _ := factory.NewUnitOfWork(context.Background()).ConcernSnapshotRepository().FindAll(context.Background())
	assert.Empty(t, snaps)
}

func TestRecomputeAggregateOrdersByCreation(t *testing.T) {
	factory := newFakeFactory()
	svc := newConcernServiceForTest(factory)
	userId := uuid.New()

	now := time.Now()
	older := seedConcern(t, factory, userId, "Back Pain", entity.ConcernActive, "back notes", now.Add(-2*time.Hour))
	newer := seedConcern(t, factory, userId, "Knee Injury", entity.ConcernImproving, "knee notes", now)
	seedConcern(t, factory, userId, "Headache", entity.ConcernResolved, "gone", now)
	seedConcern(t, factory, userId, "Rash", entity.ConcernActive, "", now) // empty summary, skipped
	_ = older
	_ = newer

	require.NoError(t, svc.RecomputeAggregate(context.Background(), userId))

	agg, err := factory.NewUnitOfWork(context.Background()).CareSummaryRepository().FindByUserId(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, "--- Back Pain ---\nback notes\n\n--- Knee Injury ---\nknee notes", agg.Content)
}

func TestAppendNoteGoesToMostRecentlyUpdatedConcern(t *testing.T) {
	factory := newFakeFactory()
	svc := newConcernServiceForTest(factory)
	userId := uuid.New()

	now := time.Now()
	seedConcern(t, factory, userId, "Back Pain", entity.ConcernActive, "back notes", now.Add(-time.Hour))
	recent := seedConcern(t, factory, userId, "Knee Injury", entity.ConcernActive, "knee notes", now)

	require.NoError(t, svc.AppendNote(context.Background(), userId, "Follow-up: No significant changes"))

	uow := factory.NewUnitOfWork(context.Background())
	updated, err := uow.ConcernRepository().FindOne(context.Background(),
		specification.ByID{ID: recent.Id})
	require.NoError(t, err)
	require.NotNil(t, updated.SummaryContent)
	assert.Equal(t, "knee notes\nFollow-up: No significant changes", *updated.SummaryContent)
}

func TestAppendNoteFallsBackToAggregate(t *testing.T) {
	factory := newFakeFactory()
	svc := newConcernServiceForTest(factory)
	userId := uuid.New()

	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.CareSummaryRepository().Upsert(context.Background(), &entity.CareSummary{
		UserId:    userId,
		Content:   "existing notes",
		UpdatedAt: time.Now(),
	}))

	require.NoError(t, svc.AppendNote(context.Background(), userId, "Follow-up: Patient responded"))

	agg, err := uow.CareSummaryRepository().FindByUserId(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, "existing notes\nFollow-up: Patient responded", agg.Content)
}

func TestUpdateStatusTransitions(t *testing.T) {
	factory := newFakeFactory()
	svc := newConcernServiceForTest(factory)
	userId := uuid.New()
	c := seedConcern(t, factory, userId, "Back Pain", entity.ConcernActive, "notes", time.Now())

	err := svc.UpdateStatus(context.Background(), userId, &dto.UpdateConcernStatusRequest{
		ConcernId: c.Id,
		Status:    string(entity.ConcernImproving),
	})
	require.NoError(t, err)

	err = svc.UpdateStatus(context.Background(), userId, &dto.UpdateConcernStatusRequest{
		ConcernId: c.Id,
		Status:    string(entity.ConcernResolved),
	})
	require.NoError(t, err)

	// Resolved is terminal.
	err = svc.UpdateStatus(context.Background(), userId, &dto.UpdateConcernStatusRequest{
		ConcernId: c.Id,
		Status:    string(entity.ConcernActive),
	})
	assert.Error(t, err)
}
