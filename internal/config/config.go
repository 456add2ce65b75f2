package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port string

	// Google Cloud
	UploadBucket    string
	OutputBucket    string
	CredentialsFile string

	// Limits
	MaxUploadBytes int64

	// Concurrency
	MaxConcurrentRequests int64

	// Server timeouts
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// Request timeouts
	ProcessTimeout time.Duration
	AnalyzeTimeout time.Duration
	StorageTimeout time.Duration

	// rate limiting (per IP)
	RateLimitEvery time.Duration
	RateLimitBurst int

	// housekeeping
	CleanupInterval time.Duration

	// health
	HealthDegradeRatio float64

	// http
	MaxHeaderBytes int
	AllowedOrigin  string
}

func Load() Config {
	return Config{
		Port: envStr("PORT", "8080"),

		UploadBucket:    envStr("UPLOAD_BUCKET", "resume-uploads-2024"),
		OutputBucket:    envStr("OUTPUT_BUCKET", "resume-outputs-2024"),
		CredentialsFile: envStr("GOOGLE_APPLICATION_CREDENTIALS", ""),

		MaxUploadBytes: int64(envInt("MAX_UPLOAD_BYTES", int(32<<20))),

		MaxConcurrentRequests: int64(envInt("MAX_CONCURRENT_REQUESTS", 15)),

		ReadHeaderTimeout: envDur("READ_HEADER_TIMEOUT", 10*time.Second),
		ReadTimeout:       envDur("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:      envDur("WRITE_TIMEOUT", 120*time.Second),
		IdleTimeout:       envDur("IDLE_TIMEOUT", 60*time.Second),

		ProcessTimeout: envDur("PROCESS_TIMEOUT", 90*time.Second),
		AnalyzeTimeout: envDur("ANALYZE_TIMEOUT", 30*time.Second),
		StorageTimeout: envDur("STORAGE_TIMEOUT", 30*time.Second),

		RateLimitEvery: envDur("RATE_LIMIT_EVERY", 600*time.Millisecond),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 20),

		CleanupInterval: envDur("CLEANUP_INTERVAL", 5*time.Minute),

		HealthDegradeRatio: envFloat("HEALTH_DEGRADE_RATIO", 0.9),

		MaxHeaderBytes: envInt("MAX_HEADER_BYTES", 1<<20),
		AllowedOrigin:  envStr("ALLOWED_ORIGIN", "*"),
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.UploadBucket) == "" {
		return fmt.Errorf("UPLOAD_BUCKET must not be empty")
	}
	if strings.TrimSpace(c.OutputBucket) == "" {
		return fmt.Errorf("OUTPUT_BUCKET must not be empty")
	}
	return nil
}

func envStr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func envDur(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
