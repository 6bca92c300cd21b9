package main

import (
	"fmt"
	"os"

	"github.com/kikitori/kikitori-backend/internal/config"
	"github.com/kikitori/kikitori-backend/internal/data/db"
	"github.com/kikitori/kikitori-backend/internal/data/repos"
	httpx "github.com/kikitori/kikitori-backend/internal/http"
	httpH "github.com/kikitori/kikitori-backend/internal/http/handlers"
	httpMW "github.com/kikitori/kikitori-backend/internal/http/middleware"
	"github.com/kikitori/kikitori-backend/internal/platform/envutil"
	"github.com/kikitori/kikitori-backend/internal/platform/gcp"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
	"github.com/kikitori/kikitori-backend/internal/services"
)

func main() {
	// Logger
	logMode := envutil.String("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	cfg, err := config.Load(envutil.String("CONFIG_PATH", ""))
	if err != nil {
		log.Fatal("Could not load config", "error", err)
	}

	// Database
	driver := envutil.String("DB_DRIVER", "postgres")
	dbService, err := db.NewFromEnv(log)
	if err != nil {
		log.Fatal("Database init failed", "driver", driver, "error", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Auto migration failed", "driver", driver, "error", err)
	}
	theDB := dbService.DB()

	// Repos
	log.Info("Setting up repos...")
	videoRepo := repos.NewVideoRepo(theDB, log)
	segmentRepo := repos.NewSegmentRepo(theDB, log)
	phraseRepo := repos.NewPhraseAnalysisRepo(theDB, log)
	kanjiEntryRepo := repos.NewKanjiEntryRepo(theDB, log)

	// Bucket
	bucketService, err := gcp.NewBucketService(log, cfg.Storage)
	if err != nil {
		log.Fatal("Could not init BucketService", "error", err)
	}

	// Services
	log.Info("Setting up services...")
	videoService := services.NewVideoService(theDB, log, videoRepo, bucketService)
	annotationService := services.NewAnnotationService(theDB, log, segmentRepo, phraseRepo)
	kanjiService := services.NewKanjiService(theDB, log, phraseRepo, kanjiEntryRepo)

	// Handlers
	routerCfg := httpx.RouterConfig{
		Log:         log,
		CORSOrigins: cfg.Server.CORSOrigins,
		ServiceTokenMiddleware: httpMW.NewServiceTokenMiddleware(
			log, envutil.String("SERVICE_API_TOKEN", "")),
		HealthHandler:     httpH.NewHealthHandler(),
		VideoHandler:      httpH.NewVideoHandler(log, videoService),
		AnnotationHandler: httpH.NewAnnotationHandler(log, annotationService),
		KanjiHandler:      httpH.NewKanjiHandler(log, kanjiService),
		AudioHandler:      httpH.NewAudioHandler(log, videoService, bucketService),
	}

	// The word/kanji lexicon only exists on the embedded engine.
	if driver == "sqlite" {
		wordRepo := repos.NewWordRepo(theDB, log)
		kanjiRepo := repos.NewKanjiRepo(theDB, log)
		phraseKanjiRepo := repos.NewPhraseKanjiRepo(theDB, log)
		lexiconService := services.NewLexiconService(theDB, log, wordRepo, kanjiRepo, phraseKanjiRepo)
		routerCfg.LexiconHandler = httpH.NewLexiconHandler(log, lexiconService)
	}

	server := httpx.NewServer(routerCfg)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting server", "addr", addr, "driver", driver)
	if err := server.Run(addr); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
