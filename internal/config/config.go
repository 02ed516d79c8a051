package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/doc2xhtml/internal/convert"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool

	// Conversion defaults
	ExtractAnnotationText            bool
	EnableAutoSpace                  bool
	SuppressDuplicateOverlappingText bool
	SortByPosition                   bool
	ExtractAcroForm                  bool
	MaxAcroFormDepth                 int
}

func Load() Config {
	defaults := convert.DefaultOptions()
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("DOC2XHTML_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		ExtractAnnotationText:            envBool("EXTRACT_ANNOTATION_TEXT", defaults.ExtractAnnotationText),
		EnableAutoSpace:                  envBool("ENABLE_AUTO_SPACE", defaults.EnableAutoSpace),
		SuppressDuplicateOverlappingText: envBool("SUPPRESS_DUPLICATE_OVERLAPPING_TEXT", defaults.SuppressDuplicateOverlappingText),
		SortByPosition:                   envBool("SORT_BY_POSITION", defaults.SortByPosition),
		ExtractAcroForm:                  envBool("EXTRACT_ACROFORM", defaults.ExtractAcroForm),
		MaxAcroFormDepth:                 envInt("MAX_ACROFORM_DEPTH", convert.DefaultMaxFormDepth),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.MaxAcroFormDepth <= 0 {
		cfg.MaxAcroFormDepth = convert.DefaultMaxFormDepth
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOC2XHTML_API_KEY is required")
	}
	return nil
}

// ConvertOptions returns the server-wide conversion defaults. Requests may
// override individual flags.
func (c Config) ConvertOptions() convert.Options {
	return convert.Options{
		ExtractAnnotationText:            c.ExtractAnnotationText,
		EnableAutoSpace:                  c.EnableAutoSpace,
		SuppressDuplicateOverlappingText: c.SuppressDuplicateOverlappingText,
		SortByPosition:                   c.SortByPosition,
		ExtractAcroForm:                  c.ExtractAcroForm,
		MaxFormDepth:                     c.MaxAcroFormDepth,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
