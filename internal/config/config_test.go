package config

import (
	"testing"
	"time"

	"github.com/dgallion1/doc2xhtml/internal/convert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "DOC2XHTML_API_KEY", "WORKER_COUNT", "MAX_QUEUE_SIZE", "MAX_UPLOAD_BYTES",
		"JOB_TTL", "PDF_FALLBACK_PDFTOTEXT", "EXTRACT_ANNOTATION_TEXT", "ENABLE_AUTO_SPACE",
		"SUPPRESS_DUPLICATE_OVERLAPPING_TEXT", "SORT_BY_POSITION", "EXTRACT_ACROFORM",
		"MAX_ACROFORM_DEPTH",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port %q, got %q", "8090", cfg.Port)
	}
	if cfg.WorkerCount != 4 || cfg.MaxQueueSize != 100 {
		t.Errorf("unexpected pool defaults: %d workers, %d queue", cfg.WorkerCount, cfg.MaxQueueSize)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected 1h TTL, got %v", cfg.JobTTL)
	}
	if got, want := cfg.ConvertOptions(), convert.DefaultOptions(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without API key")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DOC2XHTML_API_KEY", "secret")
	t.Setenv("WORKER_COUNT", "-1")
	t.Setenv("JOB_TTL", "5m")
	t.Setenv("SORT_BY_POSITION", "true")
	t.Setenv("EXTRACT_ACROFORM", "false")
	t.Setenv("MAX_ACROFORM_DEPTH", "3")
	t.Setenv("ENABLE_AUTO_SPACE", "not-a-bool")

	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected non-positive worker count to fall back to 4, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != 5*time.Minute {
		t.Errorf("expected 5m TTL, got %v", cfg.JobTTL)
	}

	opts := cfg.ConvertOptions()
	if !opts.SortByPosition || opts.ExtractAcroForm {
		t.Errorf("expected sort on and acroform off, got %+v", opts)
	}
	if opts.MaxFormDepth != 3 {
		t.Errorf("expected depth 3, got %d", opts.MaxFormDepth)
	}
	if !opts.EnableAutoSpace {
		t.Error("expected unparsable bool to keep the default")
	}
}
