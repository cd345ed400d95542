package bootstrap

import (
	"context"
	"log"

	"ai-market-analysis-be/internal/config"
	"ai-market-analysis-be/internal/controller"
	"ai-market-analysis-be/internal/pkg/logger"
	"ai-market-analysis-be/internal/pkg/mailer"
	"ai-market-analysis-be/internal/repository/unitofwork"
	"ai-market-analysis-be/internal/service"
	"ai-market-analysis-be/internal/websocket"
	"ai-market-analysis-be/pkg/ai"
	"ai-market-analysis-be/pkg/llm"
	"ai-market-analysis-be/pkg/llm/gemini"
	"ai-market-analysis-be/pkg/llm/groq"
	"ai-market-analysis-be/pkg/llm/ollama"
	pktNats "ai-market-analysis-be/pkg/nats"
	"ai-market-analysis-be/pkg/pipeline"
	"ai-market-analysis-be/pkg/progress"
	"ai-market-analysis-be/pkg/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AnalysisController   controller.IAnalysisController
	ExportController     controller.IExportController
	UploadController     controller.IUploadController
	UserController       controller.IUserController
	MonitoringController controller.IMonitoringController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub

	// Exposed for graceful shutdown
	Logger        logger.ILogger
	NatsPublisher *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
		)
	}

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. AI provider chain, in fallback priority order
	providers := make([]llm.LLMProvider, 0, 3)
	if cfg.Keys.GoogleGemini != "" {
		providers = append(providers, gemini.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.GeminiModel))
		log.Printf("[INFO] AI provider enabled: gemini (%s)", cfg.Ai.GeminiModel)
	}
	if cfg.Keys.Groq != "" {
		providers = append(providers, groq.NewGroqProvider(cfg.Keys.Groq, cfg.Ai.GroqModel))
		log.Printf("[INFO] AI provider enabled: groq (%s)", cfg.Ai.GroqModel)
	}
	if cfg.Ai.OllamaBaseURL != "" {
		providers = append(providers, ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel))
		log.Printf("[INFO] AI provider enabled: ollama (%s)", cfg.Ai.OllamaModel)
	}
	if len(providers) == 0 {
		log.Fatal("[FATAL] No AI provider configured")
	}
	aiManager := ai.NewManager(sysLogger, providers...)

	// 4. Search engine chain; DuckDuckGo needs no key and closes the chain
	engines := make([]search.SearchProvider, 0, 3)
	if cfg.Keys.Serper != "" {
		engines = append(engines, search.NewSerperProvider(cfg.Keys.Serper))
	}
	if cfg.Keys.GoogleCSE != "" && cfg.Keys.GoogleCSECX != "" {
		engines = append(engines, search.NewGoogleCSEProvider(cfg.Keys.GoogleCSE, cfg.Keys.GoogleCSECX))
	}
	engines = append(engines, search.NewDuckDuckGoProvider())
	searchManager := search.NewManager(sysLogger, engines...)

	searchOpts := search.Options{
		MaxResults:  cfg.Search.MaxResults,
		CountryCode: cfg.Search.CountryCode,
		Language:    cfg.Search.Language,
	}

	// 5. Pipeline and progress
	analysisPipeline := pipeline.New(aiManager, searchManager, searchOpts, sysLogger)
	registry := progress.NewRegistry()

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.StepTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.StepTopic,
		uowFactory,
		sysLogger,
	)

	exportService := service.NewExportService(uowFactory, emailService, sysLogger)
	analysisService := service.NewAnalysisService(
		uowFactory,
		analysisPipeline,
		registry,
		publisherService,
		natsPub,
		wsHub,
		exportService,
		sysLogger,
		cfg.Search.DefaultQueryTpl,
		cfg.Export.ReportEmail,
	)
	uploadService := service.NewUploadService(uowFactory, cfg.App.UploadDir, cfg.App.BaseURL, sysLogger)
	userService := service.NewUserService(uowFactory)
	monitoringService := service.NewMonitoringService(db, aiManager, searchManager, sysLogger)

	// 7. Controllers
	return &Container{
		AnalysisController:   controller.NewAnalysisController(analysisService),
		ExportController:     controller.NewExportController(exportService),
		UploadController:     controller.NewUploadController(uploadService),
		UserController:       controller.NewUserController(userService),
		MonitoringController: controller.NewMonitoringController(monitoringService),

		ConsumerService: consumerService,

		WebSocketHub: wsHub,

		Logger:        sysLogger,
		NatsPublisher: natsPub,
	}
}
