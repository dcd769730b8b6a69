package bootstrap

import (
	"log"

	"pharmachain-portal/internal/config"
	"pharmachain-portal/internal/controller"
	"pharmachain-portal/internal/pkg/logger"
	"pharmachain-portal/internal/pkg/mailer"
	"pharmachain-portal/internal/repository/memory"
	"pharmachain-portal/internal/service"
	"pharmachain-portal/internal/watchdog"
	"pharmachain-portal/internal/websocket"
	"pharmachain-portal/pkg/backend"
	portalnats "pharmachain-portal/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	ManufacturerController controller.IManufacturerController
	PharmacyController     controller.IPharmacyController
	WatchdogController     controller.IWatchdogController
	MedicineController     controller.IMedicineController
	QRController           controller.IQRController
	AssistantController    controller.IAssistantController
	SystemController       controller.ISystemController

	// Background services, run by main.go
	NotificationService service.INotificationService
	WebSocketHub        *websocket.Hub
	Poller              *watchdog.Poller

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	client := backend.New(cfg.Backend.BaseURL)

	// 2. In-memory repositories
	sessionRepo := memory.NewScanSessionRepository()
	identityRepo := memory.NewIdentityRepository()

	// 3. Messaging. The gochannel pubsub carries snapshots in-process; NATS
	// carries audit events and is optional at runtime.
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	var natsPublisher *portalnats.Publisher
	var natsSubscriber *portalnats.Subscriber
	if cfg.App.NatsURL != "" {
		var err error
		natsPublisher, err = portalnats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("Warn: NATS publisher unavailable, audit events disabled: %v", err)
			natsPublisher = nil
		}
		natsSubscriber, err = portalnats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("Warn: NATS subscriber unavailable, audit fan-out disabled: %v", err)
			natsSubscriber = nil
		}
	}

	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("Warn: invalid REDIS_URL, hub runs single-instance: %v", err)
		} else {
			rdb = redis.NewClient(opts)
		}
	}

	hub := websocket.NewHub(rdb, appLogger)

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Email, cfg.SMTP.Password, cfg.SMTP.Email)
	}

	// 4. Watchdog poller
	poller := watchdog.NewPoller(client.Watchdog, cfg.Watchdog.PollInterval, pubSub, appLogger)

	// 5. Services
	authService := service.NewAuthService(identityRepo, client, cfg.App.JWTSecret, appLogger)
	batchService := service.NewBatchService(client, natsPublisher, appLogger)
	verificationService := service.NewVerificationService(sessionRepo, client, natsPublisher, emailService, cfg.Watchdog.RegulatorEmail, appLogger)
	watchdogService := service.NewWatchdogService(client, poller, natsPublisher, appLogger)
	notificationService := service.NewNotificationService(pubSub, natsSubscriber, hub, appLogger)
	medicineService := service.NewMedicineService(client)
	qrService := service.NewQRService(client)
	assistantService := service.NewAssistantService(client)
	systemService := service.NewSystemService(client, appLogger)

	// 6. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(authService),
		ManufacturerController: controller.NewManufacturerController(batchService),
		PharmacyController:     controller.NewPharmacyController(verificationService),
		WatchdogController:     controller.NewWatchdogController(watchdogService, hub),
		MedicineController:     controller.NewMedicineController(medicineService),
		QRController:           controller.NewQRController(qrService),
		AssistantController:    controller.NewAssistantController(assistantService),
		SystemController:       controller.NewSystemController(systemService),

		NotificationService: notificationService,
		WebSocketHub:        hub,
		Poller:              poller,
		Logger:              appLogger,
	}
}
