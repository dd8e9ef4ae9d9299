package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"carenote-be/internal/apperr"
	"carenote-be/internal/dto"
	"carenote-be/internal/entity"
	"carenote-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommandServiceForTest(factory *fakeFactory) ICommandService {
	concernSvc := NewConcernService(factory, nil, nopLogger{})
	return NewCommandService(factory, concernSvc, nil, nopLogger{})
}

func TestMergeCombinesContentAndDeletesSecondaries(t *testing.T) {
	factory := newFakeFactory()
	svc := newCommandServiceForTest(factory)
	userId := uuid.New()

	now := time.Now()
	primary := seedConcern(t, factory, userId, "Back Pain", entity.ConcernActive, "back notes", now)
	secondary := seedConcern(t, factory, userId, "Spine Ache", entity.ConcernActive, "spine notes", now.Add(-time.Minute))

	resp, err := svc.Merge(context.Background(), &dto.MergeConcernsRequest{
		UserId:      userId,
		TargetNames: []string{"back pain", "spine ache"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Back Pain", "Spine Ache"}, resp.MatchedTitles)

	uow := factory.NewUnitOfWork(context.Background())
	kept, err := uow.ConcernRepository().FindOne(context.Background(), specification.ByID{ID: primary.Id})
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, "back notes\n\nspine notes", *kept.SummaryContent)

	gone, err := uow.ConcernRepository().FindOne(context.Background(), specification.ByID{ID: secondary.Id})
	require.NoError(t, err)
	assert.Nil(t, gone)

	// The merge is a user edit and gets a snapshot on the surviving concern.
	snaps, _ := uow.ConcernSnapshotRepository().FindAll(context.Background(),
		specification.ByConcernID{ConcernID: primary.Id})
	require.Len(t, snaps, 1)
	assert.Equal(t, entity.SnapshotUserEdit, snaps[0].Reason)
}

func TestMergeFailsFastOnUnresolvableName(t *testing.T) {
	factory := newFakeFactory()
	svc := newCommandServiceForTest(factory)
	userId := uuid.New()

	seedConcern(t, factory, userId, "Back Pain", entity.ConcernActive, "back notes", time.Now())

	_, err := svc.Merge(context.Background(), &dto.MergeConcernsRequest{
		UserId:      userId,
		TargetNames: []string{"back pain", "xyz"},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNoMatch(err))

	var nm *apperr.NoMatchError
	require.True(t, errors.As(err, &nm))
	assert.Equal(t, "xyz", nm.Target)

	// Nothing changed.
	count, _ := factory.NewUnitOfWork(context.Background()).ConcernRepository().Count(context.Background())
	assert.Equal(t, int64(1), count)
}

func TestDeleteRemovesConcernButKeepsSnapshots(t *testing.T) {
	factory := newFakeFactory()
	concernSvc := NewConcernService(factory, nil, nopLogger{})
	svc := NewCommandService(factory, concernSvc, nil, nopLogger{})
	userId := uuid.New()

	c := seedConcern(t, factory, userId, "Knee Injury", entity.ConcernActive, "first", time.Now())
	require.NoError(t, concernSvc.UpdateConcernSummary(context.Background(), userId, c.Id, "second", entity.SnapshotAutoUpdate))

	resp, err := svc.Delete(context.Background(), &dto.DeleteConcernRequest{
		UserId:     userId,
		TargetName: "knee injury",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Knee Injury"}, resp.MatchedTitles)

	uow := factory.NewUnitOfWork(context.Background())
	gone, _ := uow.ConcernRepository().FindOne(context.Background(), specification.ByID{ID: c.Id})
	assert.Nil(t, gone)

	snaps, _ := uow.ConcernSnapshotRepository().FindAll(context.Background(),
		specification.ByConcernID{ConcernID: c.Id})
	assert.NotEmpty(t, snaps, "snapshots survive the delete")

	// The aggregate no longer mentions the deleted concern.
	agg, _ := uow.CareSummaryRepository().FindByUserId(context.Background(), userId)
	require.NotNil(t, agg)
	assert.Empty(t, agg.Content)
}

func TestDeleteNoMatch(t *testing.T) {
	factory := newFakeFactory()
	svc := newCommandServiceForTest(factory)

	_, err := svc.Delete(context.Background(), &dto.DeleteConcernRequest{
		UserId:     uuid.New(),
		TargetName: "anything",
	})
	assert.True(t, apperr.IsNoMatch(err))
}

func TestRenameUpdatesTitleAndAggregate(t *testing.T) {
	factory := newFakeFactory()
	svc := newCommandServiceForTest(factory)
	userId := uuid.New()

	c := seedConcern(t, factory, userId, "Back Pain", entity.ConcernActive, "back notes", time.Now())

	resp, err := svc.Rename(context.Background(), &dto.RenameConcernRequest{
		UserId:     userId,
		TargetName: "back pain",
		NewName:    "Lower Back Pain",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Back Pain", "Lower Back Pain"}, resp.MatchedTitles)

	uow := factory.NewUnitOfWork(context.Background())
	renamed, _ := uow.ConcernRepository().FindOne(context.Background(), specification.ByID{ID: c.Id})
	assert.Equal(t, "Lower Back Pain", renamed.Title)

	agg, _ := uow.CareSummaryRepository().FindByUserId(context.Background(), userId)
	require.NotNil(t, agg)
	assert.Equal(t, "--- Lower Back Pain ---\nback notes", agg.Content)
}

func TestRenameRejectsCollidingName(t *testing.T) {
	factory := newFakeFactory()
	svc := newCommandServiceForTest(factory)
	userId := uuid.New()

	seedConcern(t, factory, userId, "Back Pain", entity.ConcernActive, "", time.Now())
	seedConcern(t, factory, userId, "Knee Injury", entity.ConcernActive, "", time.Now())

	_, err := svc.Rename(context.Background(), &dto.RenameConcernRequest{
		UserId:     userId,
		TargetName: "back pain",
		NewName:    "knee injury",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrTitleConflict))
}

func TestCommandResolutionPrefersMostRecentlyUpdated(t *testing.T) {
	factory := newFakeFactory()
	svc := newCommandServiceForTest(factory)
	userId := uuid.New()

	now := time.Now()
	seedConcern(t, factory, userId, "Leg Pain", entity.ConcernActive, "", now.Add(-time.Hour))
	recent := seedConcern(t, factory, userId, "Arm Pain", entity.ConcernActive, "", now)

	// "pain" overlaps both titles equally; the tie goes to the concern the
	// user touched last.
	resp, err := svc.Delete(context.Background(), &dto.DeleteConcernRequest{
		UserId:     userId,
		TargetName: "pain",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{recent.Title}, resp.MatchedTitles)
}
