package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"carenote-be/internal/config"
	"carenote-be/internal/dto"
	"carenote-be/internal/pkg/logger"
	"carenote-be/internal/repository/unitofwork"
	"carenote-be/internal/service"
	"carenote-be/pkg/classifier"
	"carenote-be/pkg/database"

	"github.com/google/uuid"
)

// Runs the full summary -> concern -> check-in -> reply loop against a real
// database, with the chat channel and the delayed queue replaced by local
// stand-ins so the scenario finishes in seconds.

type consoleMessenger struct{}

func (consoleMessenger) Send(ctx context.Context, conversationRef, text string) error {
	fmt.Printf(">> [to %s] %s\n", conversationRef, text)
	return nil
}

// memQueue holds jobs until the scenario fires them explicitly.
type memQueue struct {
	mu   sync.Mutex
	jobs map[string][]byte
}

func (q *memQueue) Enqueue(ctx context.Context, key string, payload []byte, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs[key] = payload
	return nil
}

func (q *memQueue) Cancel(ctx context.Context, key string) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.jobs[key]
	delete(q.jobs, key)
	return ok, nil
}

func (q *memQueue) drain() [][]byte {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out [][]byte
	for k, p := range q.jobs {
		out = append(out, p)
		delete(q.jobs, k)
	}
	return out
}

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)
	q := &memQueue{jobs: make(map[string][]byte)}
	messenger := consoleMessenger{}

	concernSvc := service.NewConcernService(uowFactory, nil, sysLogger)
	followUpSvc := service.NewFollowUpService(uowFactory, concernSvc, q, messenger, nil, sysLogger, cfg.FollowUp)
	intakeSvc := service.NewIntakeService(nil, "", uowFactory, concernSvc, followUpSvc, classifier.NewKeywordClassifier(), sysLogger)

	ctx := context.Background()
	userId := uuid.New()

	fmt.Println("== 1. First summary arrives ==")
	must(intakeSvc.ProcessSummary(ctx, &dto.ProcessSummaryMessage{
		UserId:          userId,
		ConversationRef: "sim-conversation",
		Excerpt:         "my back hurts after sitting all day",
		Summary:         "Reports back pain after prolonged sitting.",
	}))

	fmt.Println("== 2. Second summary supersedes the pending check-in ==")
	must(intakeSvc.ProcessSummary(ctx, &dto.ProcessSummaryMessage{
		UserId:          userId,
		ConversationRef: "sim-conversation",
		Excerpt:         "the back pain is spreading to my leg",
		Summary:         "Back pain now radiating to the left leg.",
	}))

	fmt.Println("== 3. Delay elapses, check-in fires ==")
	for _, payload := range q.drain() {
		must(followUpSvc.ExecuteCheckin(ctx, payload))
	}

	fmt.Println("== 4. Patient replies ==")
	handled, reply, err := followUpSvc.HandleCheckinResponse(ctx, userId, "a bit better today, thanks")
	must(err)
	fmt.Printf("handled=%v reply=%q\n", handled, reply)

	fmt.Println("== 5. Final aggregate ==")
	agg, err := concernSvc.GetAggregate(ctx, userId)
	must(err)
	if agg != nil {
		fmt.Println(agg.Content)
	}
}

func must(err error) {
	if err != nil {
		log.Fatalf("simulation failed: %v", err)
	}
}
