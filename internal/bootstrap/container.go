package bootstrap

import (
	"log"

	"carenote-be/internal/config"
	"carenote-be/internal/controller"
	"carenote-be/internal/pkg/logger"
	"carenote-be/internal/repository/memory"
	"carenote-be/internal/repository/unitofwork"
	"carenote-be/internal/service"
	"carenote-be/pkg/classifier"
	"carenote-be/pkg/messaging"
	pktNats "carenote-be/pkg/nats"
	"carenote-be/pkg/queue"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConcernController  controller.IConcernController
	FollowUpController controller.IFollowUpController
	WebhookController  controller.IWebhookController
	SummaryController  controller.ISummaryController

	// Background services (exposed for main.go to run)
	IntakeService   service.IIntakeService
	AuditService    service.IAuditService
	FollowUpService service.IFollowUpService
	CheckinQueue    *queue.RedisQueue

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus (in-process pipeline)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// Redis backs the delayed check-in queue.
	redisOpts, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Fatalf("[FATAL] Invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	checkinQueue := queue.NewRedisQueue(rdb, "carenote",
		queue.WithPollInterval(cfg.FollowUp.PollInterval),
		queue.WithRetryPolicy(cfg.FollowUp.MaxAttempts, cfg.FollowUp.RetryBackoff),
	)

	// NATS is auxiliary: the app degrades to no event stream when it is down.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	// 4. Providers
	var topicClassifier classifier.TopicClassifier
	if cfg.Ai.ClassifierProvider == "ollama" {
		topicClassifier = classifier.NewOllamaClassifier(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
		log.Printf("[INFO] Using Topic Classifier: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		topicClassifier = classifier.NewKeywordClassifier()
		log.Printf("[INFO] Using Topic Classifier: KEYWORD")
	}

	var messenger messaging.Client
	if cfg.Messaging.Channel == "email" {
		messenger = messaging.NewEmailClient(
			cfg.Messaging.SMTPHost,
			cfg.Messaging.SMTPPort,
			cfg.Messaging.SMTPEmail,
			cfg.Messaging.SMTPPassword,
			cfg.Messaging.SMTPEmail,
			cfg.Messaging.SenderName,
		)
		log.Printf("[INFO] Using Messaging Channel: EMAIL")
	} else {
		messenger = messaging.NewChatClient(cfg.Messaging.ProviderURL, cfg.Messaging.ProviderToken)
		log.Printf("[INFO] Using Messaging Channel: CHAT (%s)", cfg.Messaging.ProviderURL)
	}

	conversationRepo := memory.NewConversationRepository()

	// 5. Services
	concernService := service.NewConcernService(uowFactory, natsPub, sysLogger)
	commandService := service.NewCommandService(uowFactory, concernService, natsPub, sysLogger)
	followUpService := service.NewFollowUpService(uowFactory, concernService, checkinQueue, messenger, natsPub, sysLogger, cfg.FollowUp)
	messageService := service.NewMessageService(uowFactory, followUpService, conversationRepo, messenger, sysLogger)
	publisherService := service.NewPublisherService(pubSub, cfg.Topics.ProcessSummary)
	intakeService := service.NewIntakeService(pubSub, cfg.Topics.ProcessSummary, uowFactory, concernService, followUpService, topicClassifier, sysLogger)
	auditService := service.NewAuditService(natsSub, sysLogger)

	// 6. Controllers
	return &Container{
		ConcernController:  controller.NewConcernController(concernService, commandService),
		FollowUpController: controller.NewFollowUpController(followUpService),
		WebhookController:  controller.NewWebhookController(messageService, cfg.Messaging.WebhookToken),
		SummaryController:  controller.NewSummaryController(publisherService),

		IntakeService:   intakeService,
		AuditService:    auditService,
		FollowUpService: followUpService,
		CheckinQueue:    checkinQueue,

		Logger: sysLogger,
	}
}
