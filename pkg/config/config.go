package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Speech  SpeechConfig
	Groq    GroqConfig
	TTS     TTSConfig
	Assess  AssessConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
	MaxUploadBytes  int64
}

// StorageConfig holds MinIO object store configuration. The bucket is the
// fallback source for lexicon files and the destination for synthesized audio.
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	Disabled        bool
}

// SpeechConfig holds speech-to-text provider configuration
type SpeechConfig struct {
	Provider         string // "google" (default), "assemblyai" or "mock"
	LanguageCode     string
	AltLanguageCodes []string
	// Payloads below SyncThresholdBytes use the low-latency synchronous call;
	// larger ones go through long-running recognition with a bounded wait.
	SyncThresholdBytes int64
	// After an async failure, one synchronous retry is attempted as long as
	// the payload is below RetryCapBytes.
	RetryCapBytes   int64
	RequestTimeout  time.Duration
	LongRunningWait time.Duration
	AssemblyAIKey   string
}

// GroqConfig holds the grammar-correction LLM configuration
type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// TTSConfig holds text-to-speech configuration
type TTSConfig struct {
	LanguageCode string
	// Learners scoring below SlowScoreCutoff get audio at SlowRate instead of 1.0.
	SlowScoreCutoff float64
	SlowRate        float64
	RequestTimeout  time.Duration
	Dir             string
	FileTTL         time.Duration
	SweepInterval   time.Duration
}

// AssessConfig holds scoring engine tunables
type AssessConfig struct {
	// Criterion weights; must sum to 1.
	WeightClarity   float64
	WeightFunction  float64
	WeightDiscourse float64
	WeightLexicon   float64
	// FeedbackSeed pins the improvement-phrasing RNG; 0 means time-seeded.
	FeedbackSeed int64
	// Lexicon file locations, resolved under DataDir first, bucket second.
	DataDir        string
	DictionaryFile string
	ReferencesFile string
	BandsFile      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
			MaxUploadBytes:  getEnvAsInt64("MAX_UPLOAD_BYTES", 20*1024*1024),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "speech-coach"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			Disabled:        getEnvAsBool("STORAGE_DISABLED", false),
		},
		Speech: SpeechConfig{
			Provider:           getEnv("SPEECH_PROVIDER", "google"),
			LanguageCode:       getEnv("SPEECH_LANGUAGE", "es-ES"),
			AltLanguageCodes:   strings.Split(getEnv("SPEECH_ALT_LANGUAGES", "es-MX,es-US"), ","),
			SyncThresholdBytes: getEnvAsInt64("SPEECH_SYNC_THRESHOLD_BYTES", 960*1024),
			RetryCapBytes:      getEnvAsInt64("SPEECH_RETRY_CAP_BYTES", 8*1024*1024),
			RequestTimeout:     getEnvAsDuration("SPEECH_REQUEST_TIMEOUT", "30s"),
			LongRunningWait:    getEnvAsDuration("SPEECH_LONG_RUNNING_WAIT", "120s"),
			AssemblyAIKey:      getEnv("ASSEMBLYAI_API_KEY", ""),
		},
		Groq: GroqConfig{
			APIKey:  getEnv("GROQ_API_KEY", ""),
			BaseURL: getEnv("GROQ_API_URL", "https://api.groq.com"),
			Model:   getEnv("GROQ_MODEL", "llama-3.1-70b-versatile"),
			Timeout: getEnvAsDuration("GROQ_TIMEOUT", "15s"),
		},
		TTS: TTSConfig{
			LanguageCode:    getEnv("TTS_LANGUAGE", "es-ES"),
			SlowScoreCutoff: getEnvAsFloat("TTS_SLOW_SCORE_CUTOFF", 65),
			SlowRate:        getEnvAsFloat("TTS_SLOW_RATE", 0.8),
			RequestTimeout:  getEnvAsDuration("TTS_REQUEST_TIMEOUT", "20s"),
			Dir:             getEnv("TTS_DIR", "tts-audio"),
			FileTTL:         getEnvAsDuration("TTS_FILE_TTL", "2h"),
			SweepInterval:   getEnvAsDuration("TTS_SWEEP_INTERVAL", "10m"),
		},
		Assess: AssessConfig{
			WeightClarity:   getEnvAsFloat("ASSESS_WEIGHT_CLARITY", 0.25),
			WeightFunction:  getEnvAsFloat("ASSESS_WEIGHT_FUNCTION", 0.30),
			WeightDiscourse: getEnvAsFloat("ASSESS_WEIGHT_DISCOURSE", 0.20),
			WeightLexicon:   getEnvAsFloat("ASSESS_WEIGHT_LEXICON", 0.25),
			FeedbackSeed:    getEnvAsInt64("ASSESS_FEEDBACK_SEED", 0),
			DataDir:         getEnv("ASSESS_DATA_DIR", "data"),
			DictionaryFile:  getEnv("ASSESS_DICTIONARY_FILE", "es_50k.txt"),
			ReferencesFile:  getEnv("ASSESS_REFERENCES_FILE", "references.json"),
			BandsFile:       getEnv("ASSESS_BANDS_FILE", "bands.json"),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Speech.Provider {
	case "google", "assemblyai", "mock":
	default:
		return fmt.Errorf("SPEECH_PROVIDER must be google, assemblyai or mock, got %q", c.Speech.Provider)
	}
	if c.Speech.Provider == "assemblyai" && c.Speech.AssemblyAIKey == "" {
		return fmt.Errorf("ASSEMBLYAI_API_KEY is required when SPEECH_PROVIDER=assemblyai")
	}
	sum := c.Assess.WeightClarity + c.Assess.WeightFunction + c.Assess.WeightDiscourse + c.Assess.WeightLexicon
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("criterion weights must sum to 1, got %.3f", sum)
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
