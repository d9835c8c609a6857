package envvars

import (
	"log"
	"os"
	"strconv"
	"time"
)

const (
	ProjectID       = "GCP_PROJECT_ID"
	Environment     = "ENVIRONMENT"
	Port            = "PORT"
	OperatorSecret  = "OPERATOR_SECRET"
	StoreBackend    = "STORE_BACKEND"
	MaxJoinedGroups = "MAX_JOINED_GROUPS"
	InactivityAfter = "INACTIVITY_WINDOW"
	GhostWindow     = "GHOST_WINDOW"
	SweepBatchSize  = "SWEEP_BATCH_SIZE"
	GeminiAPIKey    = "GEMINI_API_KEY"
	GeminiModel     = "GEMINI_MODEL"
	FCMEnabled      = "FCM_ENABLED"
	PromptBucket    = "PROMPT_BUCKET"
	LogLevel        = "LOG_LEVEL"
)

const (
	ProductionEnv = "production"
	DevEnv        = "dev"

	FirestoreBackend = "firestore"
	MemoryBackend    = "memory"
)

type Env struct {
	ProjectID        string
	Environment      string
	Port             string
	OperatorSecret   string
	StoreBackend     string
	MaxJoinedGroups  int
	InactivityWindow time.Duration
	GhostWindow      time.Duration
	SweepBatchSize   int
	GeminiAPIKey     string
	GeminiModel      string
	FCMEnabled       bool
	PromptBucket     string
	LogLevel         string
}

func GetEnv() Env {
	operatorSecret, ok := os.LookupEnv(OperatorSecret)
	if !ok || operatorSecret == "" {
		log.Fatalf("%s required", OperatorSecret)
	}
	environment := lookup(Environment, DevEnv)
	backend := lookup(StoreBackend, FirestoreBackend)
	projectID := os.Getenv(ProjectID)
	if backend == FirestoreBackend && projectID == "" {
		log.Fatalf("%s required for the %s backend", ProjectID, FirestoreBackend)
	}

	batch := lookupInt(SweepBatchSize, 300)
	if batch < 1 {
		batch = 1
	}
	if batch > 500 {
		batch = 500
	}

	return Env{
		ProjectID:        projectID,
		Environment:      environment,
		Port:             lookup(Port, "8080"),
		OperatorSecret:   operatorSecret,
		StoreBackend:     backend,
		MaxJoinedGroups:  lookupInt(MaxJoinedGroups, 7),
		InactivityWindow: lookupDuration(InactivityAfter, 72*time.Hour),
		GhostWindow:      lookupDuration(GhostWindow, 2*time.Hour),
		SweepBatchSize:   batch,
		GeminiAPIKey:     os.Getenv(GeminiAPIKey),
		GeminiModel:      lookup(GeminiModel, "gemini-1.5-flash"),
		FCMEnabled:       lookupBool(FCMEnabled, environment == ProductionEnv),
		PromptBucket:     os.Getenv(PromptBucket),
		LogLevel:         lookup(LogLevel, "info"),
	}
}

func IsProd(env Env) bool {
	return env.Environment == ProductionEnv
}

func IsDev(env Env) bool {
	return env.Environment == DevEnv
}

func lookup(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func lookupInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("ignoring invalid %s=%q", key, v)
		return fallback
	}
	return n
}

func lookupDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("ignoring invalid %s=%q", key, v)
		return fallback
	}
	return d
}

func lookupBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("ignoring invalid %s=%q", key, v)
		return fallback
	}
	return b
}
