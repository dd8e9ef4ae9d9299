package main

import (
	"context"
	"log"
	"os"
	"time"

	"carenote-be/internal/entity"
	"carenote-be/internal/repository/unitofwork"
	"carenote-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds a demo patient with two open concerns for local development.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	db, err := database.NewGormDBFromDSN(os.Getenv("DB_CONNECTION_STRING"))
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	userId := uuid.New()
	now := time.Now()

	if err := uow.PatientRepository().Create(ctx, &entity.Patient{
		Id:              userId,
		FullName:        "Maria Lopez",
		Language:        "en",
		ConversationRef: "demo-conversation",
		CreatedAt:       now,
	}); err != nil {
		log.Fatalf("Error: Failed to seed patient: %v", err)
	}

	backNotes := "Reports lower back pain after long workdays. Advised stretching."
	kneeNotes := "Knee discomfort when climbing stairs, started last week."
	concerns := []*entity.Concern{
		{Id: uuid.New(), UserId: userId, Title: "Back Pain", Status: entity.ConcernActive, SummaryContent: &backNotes, CreatedAt: now.Add(-48 * time.Hour)},
		{Id: uuid.New(), UserId: userId, Title: "Knee Injury", Status: entity.ConcernImproving, SummaryContent: &kneeNotes, CreatedAt: now.Add(-24 * time.Hour)},
	}
	for _, c := range concerns {
		if err := uow.ConcernRepository().Create(ctx, c); err != nil {
			log.Fatalf("Error: Failed to seed concern %q: %v", c.Title, err)
		}
	}

	log.Printf("Seeded patient %s with %d concerns", userId, len(concerns))
}
