package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"carenote-be/internal/entity"
	"carenote-be/internal/repository/contract"
	"carenote-be/internal/repository/specification"
	"carenote-be/internal/repository/unitofwork"
	"carenote-be/pkg/queue"

	"github.com/google/uuid"
)

// In-memory doubles for the persistence and transport edges. The repo fakes
// interpret the same specification values the gorm implementations do, so
// service code runs unmodified against them.

type fakeStore struct {
	mu        sync.Mutex
	concerns  map[uuid.UUID]*entity.Concern
	snapshots []*entity.ConcernSnapshot
	summaries map[uuid.UUID]*entity.CareSummary
	followups map[uuid.UUID]*entity.FollowUpState
	patients  map[uuid.UUID]*entity.Patient
	messages  []*entity.MessageLog
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		concerns:  make(map[uuid.UUID]*entity.Concern),
		summaries: make(map[uuid.UUID]*entity.CareSummary),
		followups: make(map[uuid.UUID]*entity.FollowUpState),
		patients:  make(map[uuid.UUID]*entity.Patient),
	}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) ConcernRepository() contract.ConcernRepository {
	return &fakeConcernRepo{store: u.store}
}
func (u *fakeUow) ConcernSnapshotRepository() contract.ConcernSnapshotRepository {
	return &fakeSnapshotRepo{store: u.store}
}
func (u *fakeUow) CareSummaryRepository() contract.CareSummaryRepository {
	return &fakeCareSummaryRepo{store: u.store}
}
func (u *fakeUow) FollowUpStateRepository() contract.FollowUpStateRepository {
	return &fakeFollowUpRepo{store: u.store}
}
func (u *fakeUow) PatientRepository() contract.PatientRepository {
	return &fakePatientRepo{store: u.store}
}
func (u *fakeUow) MessageLogRepository() contract.MessageLogRepository {
	return &fakeMessageLogRepo{store: u.store}
}

type fakeFactory struct {
	store *fakeStore
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{store: newFakeStore()}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

// Concerns

type fakeConcernRepo struct {
	store *fakeStore
}

func cloneConcern(c *entity.Concern) *entity.Concern {
	cp := *c
	if c.SummaryContent != nil {
		s := *c.SummaryContent
		cp.SummaryContent = &s
	}
	if c.UpdatedAt != nil {
		t := *c.UpdatedAt
		cp.UpdatedAt = &t
	}
	return &cp
}

func (r *fakeConcernRepo) Create(ctx context.Context, concern *entity.Concern) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.concerns[concern.Id] = cloneConcern(concern)
	return nil
}

func (r *fakeConcernRepo) Update(ctx context.Context, concern *entity.Concern) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.concerns[concern.Id] = cloneConcern(concern)
	return nil
}

func (r *fakeConcernRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.concerns, id)
	return nil
}

func concernMatches(c *entity.Concern, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		case specification.ByIDs:
			found := false
			for _, id := range s.IDs {
				if c.Id == id {
					found = true
				}
			}
			if !found {
				return false
			}
		case specification.ByUserID:
			if c.UserId != s.UserID {
				return false
			}
		case specification.ByStatuses:
			found := false
			for _, st := range s.Statuses {
				if string(c.Status) == st {
					found = true
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func concernSortTime(c *entity.Concern, field string) time.Time {
	if field == "updated_at" && c.UpdatedAt != nil {
		return *c.UpdatedAt
	}
	return c.CreatedAt
}

func (r *fakeConcernRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Concern, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Concern
	for _, c := range r.store.concerns {
		if concernMatches(c, specs) {
			out = append(out, cloneConcern(c))
		}
	}
	for _, spec := range specs {
		if ob, ok := spec.(specification.OrderBy); ok {
			sort.Slice(out, func(i, j int) bool {
				ti := concernSortTime(out[i], ob.Field)
				tj := concernSortTime(out[j], ob.Field)
				if ob.Desc {
					return ti.After(tj)
				}
				return ti.Before(tj)
			})
		}
	}
	return out, nil
}

func (r *fakeConcernRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Concern, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeConcernRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// Snapshots

type fakeSnapshotRepo struct {
	store *fakeStore
}

func (r *fakeSnapshotRepo) Create(ctx context.Context, snapshot *entity.ConcernSnapshot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *snapshot
	r.store.snapshots = append(r.store.snapshots, &cp)
	return nil
}

func (r *fakeSnapshotRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConcernSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.ConcernSnapshot
	for _, snap := range r.store.snapshots {
		keep := true
		for _, spec := range specs {
			if s, ok := spec.(specification.ByConcernID); ok && snap.ConcernId != s.ConcernID {
				keep = false
			}
		}
		if keep {
			cp := *snap
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSnapshotRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// Care summaries

type fakeCareSummaryRepo struct {
	store *fakeStore
}

func (r *fakeCareSummaryRepo) Upsert(ctx context.Context, summary *entity.CareSummary) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *summary
	r.store.summaries[summary.UserId] = &cp
	return nil
}

func (r *fakeCareSummaryRepo) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.CareSummary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if s, ok := r.store.summaries[userId]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// Follow-up states

type fakeFollowUpRepo struct {
	store *fakeStore
}

func cloneFollowUp(s *entity.FollowUpState) *entity.FollowUpState {
	cp := *s
	copyTime := func(t *time.Time) *time.Time {
		if t == nil {
			return nil
		}
		v := *t
		return &v
	}
	cp.ScheduledFor = copyTime(s.ScheduledFor)
	cp.LastSummaryCreatedAt = copyTime(s.LastSummaryCreatedAt)
	cp.LastUserMessageAt = copyTime(s.LastUserMessageAt)
	cp.LastBotMessageAt = copyTime(s.LastBotMessageAt)
	cp.UpdatedAt = copyTime(s.UpdatedAt)
	if s.CaseLabel != nil {
		v := *s.CaseLabel
		cp.CaseLabel = &v
	}
	return &cp
}

func (r *fakeFollowUpRepo) Upsert(ctx context.Context, state *entity.FollowUpState) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.followups[state.UserId] = cloneFollowUp(state)
	return nil
}

func (r *fakeFollowUpRepo) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.FollowUpState, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if s, ok := r.store.followups[userId]; ok {
		return cloneFollowUp(s), nil
	}
	return nil, nil
}

// Patients

type fakePatientRepo struct {
	store *fakeStore
}

func (r *fakePatientRepo) Create(ctx context.Context, patient *entity.Patient) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *patient
	r.store.patients[patient.Id] = &cp
	return nil
}

func (r *fakePatientRepo) Update(ctx context.Context, patient *entity.Patient) error {
	return r.Create(ctx, patient)
}

func (r *fakePatientRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Patient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.patients {
		match := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.ByID:
				if p.Id != s.ID {
					match = false
				}
			case specification.ByConversationRef:
				if p.ConversationRef != s.ConversationRef {
					match = false
				}
			}
		}
		if match {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Patient, error) {
	p, err := r.FindOne(ctx, specs...)
	if err != nil || p == nil {
		return nil, err
	}
	return []*entity.Patient{p}, nil
}

// Message logs

type fakeMessageLogRepo struct {
	store *fakeStore
}

func (r *fakeMessageLogRepo) Create(ctx context.Context, log *entity.MessageLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *log
	r.store.messages = append(r.store.messages, &cp)
	return nil
}

func (r *fakeMessageLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MessageLog, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.MessageLog
	for _, m := range r.store.messages {
		keep := true
		for _, spec := range specs {
			if s, ok := spec.(specification.ByUserID); ok && m.UserId != s.UserID {
				keep = false
			}
		}
		if keep {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Delayed queue

type enqueuedJob struct {
	key     string
	payload []byte
	delay   time.Duration
}

type fakeQueue struct {
	mu       sync.Mutex
	enqueues []enqueuedJob
	cancels  []string
	pending  map[string][]byte
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{pending: make(map[string][]byte)}
}

var _ queue.DelayedQueue = &fakeQueue{}

func (q *fakeQueue) Enqueue(ctx context.Context, key string, payload []byte, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.enqueues = append(q.enqueues, enqueuedJob{key: key, payload: payload, delay: delay})
	q.pending[key] = payload
	return nil
}

func (q *fakeQueue) Cancel(ctx context.Context, key string) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cancels = append(q.cancels, key)
	_, existed := q.pending[key]
	delete(q.pending, key)
	return existed, nil
}

// Messaging

type sentMessage struct {
	conversationRef string
	text            string
}

type fakeMessenger struct {
	mu      sync.Mutex
	sent    []sentMessage
	failErr error
}

func (m *fakeMessenger) Send(ctx context.Context, conversationRef, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.sent = append(m.sent, sentMessage{conversationRef: conversationRef, text: text})
	return nil
}

// Logger

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
