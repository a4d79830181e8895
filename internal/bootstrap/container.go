package bootstrap

import (
	"context"
	"log"

	"nexter-ai-be/internal/config"
	"nexter-ai-be/internal/controller"
	"nexter-ai-be/internal/pkg/logger"
	"nexter-ai-be/internal/repository/contract"
	"nexter-ai-be/internal/repository/implementation"
	"nexter-ai-be/internal/repository/memory"
	"nexter-ai-be/internal/service"
	"nexter-ai-be/pkg/document"
	"nexter-ai-be/pkg/llm/factory"
	"nexter-ai-be/pkg/oracle"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	ArchiverService service.IArchiverService

	// Shared Facades
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider based on Config
	apiKey := ""
	baseURL := cfg.Ai.LLMBaseURL
	switch cfg.Ai.LLMProvider {
	case "openai":
		apiKey = cfg.Ai.OpenAIKey
	case "gemini":
		apiKey = cfg.Ai.GeminiKey
	case "ollama":
		if baseURL == "" {
			baseURL = cfg.Ai.OllamaBaseURL
		}
	}

	llmProvider, err := factory.NewLLMProvider(
		context.Background(),
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		baseURL,
		apiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	oracleAdapter := oracle.New(llmProvider, sysLogger)

	// 4. Session Storage
	var sessionRepo contract.SessionRepository
	if cfg.Assistant.SessionStore == "redis" {
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
		}
		sessionRepo = implementation.NewRedisSessionRepository(rdb, cfg.Assistant.SessionTTL)
		log.Println("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository(cfg.Assistant.SessionTTL)
		log.Println("[INFO] Using Session Store: MEMORY")
	}

	// 5. Document Rendering
	renderer := document.NewWordRenderer(cfg.App.ResumeFilesDir, cfg.App.BaseURL)

	// 6. Services
	refineService := service.NewRefineService(oracleAdapter, sessionRepo, cfg.Assistant, sysLogger)
	coverLetterService := service.NewCoverLetterService(oracleAdapter, sessionRepo, renderer, pubSub, cfg.Assistant, sysLogger)
	analysisService := service.NewAnalysisService(oracleAdapter, sysLogger)
	archiverService := service.NewArchiverService(pubSub, service.TopicCoverLetterCompleted, cfg.App.ResumeFilesDir, sysLogger)

	// 7. Controllers
	assistantController := controller.NewAssistantController(refineService, coverLetterService, analysisService)

	return &Container{
		AssistantController: assistantController,
		ArchiverService:     archiverService,
		Logger:              sysLogger,
	}
}
