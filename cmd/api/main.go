package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/config"
	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/handlers"
	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/repositories"
	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/resilience"
	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/services"
	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/pkg/logger"
)

func main() {
	cfg := config.Load()

	zapLogger, err := logger.New("info", cfg.Server.Env == "development")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		zapLogger.Fatal("failed to initialize database", zap.Error(err))
	}
	if err := config.SeedDefaultCriteria(db); err != nil {
		zapLogger.Fatal("failed to seed default criteria", zap.Error(err))
	}

	// Repositories
	criterionRepo := repositories.NewCriterionRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	docRepo := repositories.NewDocumentRepository(db)

	// No usable completion backend is the one startup error that must be
	// fatal: nothing downstream can degrade around it.
	backend, err := services.NewLLMService(
		cfg.LLM.Provider,
		cfg.LLM.GeminiAPIKey,
		cfg.LLM.GeminiModel,
		cfg.LLM.OpenAIAPIKey,
		cfg.LLM.OpenAIModel,
	)
	if err != nil {
		zapLogger.Fatal("failed to initialize LLM provider", zap.Error(err))
	}
	zapLogger.Info("LLM provider ready", zap.String("provider", cfg.LLM.Provider))

	executor := resilience.NewExecutor(resilience.Config{
		MaxAttempts:    cfg.Pipeline.RetryMaxAttempts,
		InitialBackoff: cfg.Pipeline.RetryInitialDelay,
		MaxBackoff:     cfg.Pipeline.RetryMaxDelay,
	}, zapLogger)
	llm := services.NewResilientLLM(backend, executor, cfg.LLM.CallTimeout)

	// Pipeline services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zapLogger.Fatal("failed to create upload directory", zap.Error(err))
	}

	rasterizer := services.NewRasterizerService(cfg.Pipeline.RasterDPI)
	transcriptService := services.NewTranscriptService(llm, cfg.Pipeline.PageConcurrency, zapLogger)
	scorer := services.NewScorerService(llm, zapLogger)
	analyzer := services.NewAnalyzerService(
		rasterizer,
		transcriptService,
		scorer,
		cfg.Pipeline.BatchGroupSize,
		zapLogger,
	)
	reportService := services.NewReportService()

	// Handlers
	criteriaHandler := handlers.NewCriteriaHandler(criterionRepo)
	analyzeHandler := handlers.NewAnalyzeHandler(
		analyzer,
		storageService,
		criterionRepo,
		analysisRepo,
		docRepo,
		cfg.Storage.MaxFileSize,
		zapLogger,
	)
	resultHandler := handlers.NewResultHandler(analysisRepo)
	reportHandler := handlers.NewReportHandler(reportService)

	app := fiber.New(fiber.Config{
		AppName:      "CeveAI CV Ranking API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 10,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	app.Get("/criteria", criteriaHandler.HandleList)
	app.Post("/criteria", criteriaHandler.HandleCreate)
	app.Delete("/criteria/:id", criteriaHandler.HandleDelete)
	app.Get("/job-analyses", resultHandler.HandleListJobAnalyses)
	app.Post("/analyze-cvs", analyzeHandler.HandleAnalyzeCVs)
	app.Get("/results/:id", resultHandler.HandleGetResults)
	app.Post("/generate-pdf", reportHandler.HandleGeneratePDF)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		zapLogger.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zapLogger.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zapLogger.Info("server starting", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
