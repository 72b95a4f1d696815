package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/hablalab/speech-coach/pkg/validator"

	"github.com/hablalab/speech-coach/internal/adapter/handler"
	extspeech "github.com/hablalab/speech-coach/internal/infrastructure/external/speech"
	"github.com/hablalab/speech-coach/internal/infrastructure/external/tts"
	"github.com/hablalab/speech-coach/internal/infrastructure/storage"
	"github.com/hablalab/speech-coach/internal/lexicon"
	"github.com/hablalab/speech-coach/internal/usecase/assess"
	speechuse "github.com/hablalab/speech-coach/internal/usecase/speech"
	pkgai "github.com/hablalab/speech-coach/pkg/ai"
	"github.com/hablalab/speech-coach/pkg/config"
)

// @title           Speech Coach API
// @version         1.0
// @description     Spanish spoken-proficiency assessment: transcription, rubric scoring, grammar correction, and coaching audio

// @host      localhost:8080
// @BasePath  /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.BodyLimit("20M"))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("🔧 Initializing dependencies...")

	// Object storage is optional; the lexicon falls back to built-in data
	// and recordings are simply not archived without it.
	var minioClient *storage.MinIOClient
	if cfg.Storage.Disabled {
		log.Println("📦 Object storage disabled; recordings will not be archived")
	} else {
		log.Println("📦 Connecting to object storage...")
		minioClient, err = storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Printf("⚠️  Object storage unavailable: %v", err)
			minioClient = nil
		}
	}

	log.Println("📚 Loading lexicon resources...")
	var fetcher lexicon.ObjectFetcher
	if minioClient != nil {
		fetcher = minioClient
	}
	lex := lexicon.Load(ctx, cfg.Assess, fetcher, logger)
	log.Printf("📚 Dictionary loaded: %d words", lex.DictionarySize())

	engine := assess.NewEngine(cfg.Assess, lex, logger)

	log.Printf("🎙️  Initializing speech recognizer (%s)...", cfg.Speech.Provider)
	var recognizer speechuse.Recognizer
	var recognizerCloser interface{ Close() error }
	switch cfg.Speech.Provider {
	case "assemblyai":
		r := extspeech.NewAssemblyAIRecognizer(cfg.Speech, logger)
		recognizer, recognizerCloser = r, r
	case "mock":
		log.Println("⚠️  Speech recognizer running in MOCK mode")
		recognizer = extspeech.NewMockRecognizer()
	default:
		r, err := extspeech.NewGoogleRecognizer(ctx, cfg.Speech, logger)
		if err != nil {
			log.Fatalf("Failed to initialize speech recognizer: %v", err)
		}
		recognizer, recognizerCloser = r, r
	}
	if recognizerCloser != nil {
		defer recognizerCloser.Close()
	}

	log.Println("🔊 Initializing speech synthesizer...")
	var synthesizer speechuse.Synthesizer
	var synthCloser interface{ Close() error }
	if cfg.Speech.Provider == "mock" {
		synthesizer = nil
	} else {
		s, err := tts.NewGoogleSynthesizer(ctx, cfg.TTS, logger)
		if err != nil {
			log.Printf("⚠️  Synthesizer unavailable, responses will omit coaching audio: %v", err)
		} else {
			synthesizer, synthCloser = s, s
		}
	}
	if synthCloser != nil {
		defer synthCloser.Close()
	}

	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	if !groqClient.Configured() {
		log.Println("⚠️  GROQ_API_KEY not set; transcripts will be returned uncorrected")
	}

	ttsStore, err := storage.NewTTSFileStore(cfg.TTS, logger)
	if err != nil {
		log.Fatalf("Failed to initialize tts file store: %v", err)
	}
	go ttsStore.Sweep(ctx)

	var archiver speechuse.Archiver
	if minioClient != nil {
		archiver = minioClient
	}
	service := speechuse.NewService(recognizer, engine, groqClient, synthesizer, ttsStore, archiver, cfg.TTS, logger)

	var bucketReporter handler.BucketReporter
	if minioClient != nil {
		bucketReporter = minioClient
	}
	assessHandler := handler.NewAssess(cfg, service, lex, bucketReporter, ttsStore, logger)

	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, assessHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}
	ttsStore.Purge()

	log.Println("✅ Server stopped gracefully")
}
