package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/doc2xhtml/internal/config"
	"github.com/dgallion1/doc2xhtml/internal/convert"
)

var discardLog = slog.New(slog.DiscardHandler)

func waitForJob(t *testing.T, job *Job) JobSnapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		snap := job.Snapshot()
		if snap.Status == StatusCompleted || snap.Status == StatusFailed {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s did not finish", job.ID)
	return JobSnapshot{}
}

func TestOrchestrator_ProcessesJobs(t *testing.T) {
	cfg := config.Config{WorkerCount: 2, MaxQueueSize: 10, JobTTL: time.Hour}
	o := NewOrchestrator(cfg, discardLog)
	o.Start(context.Background())
	defer o.Stop()

	ok := NewJob("a.txt", FormatText, convert.DefaultOptions(), []byte("hello world"))
	bad := NewJob("a.png", FormatText, convert.DefaultOptions(), []byte("\x89PNG"))
	for _, j := range []*Job{ok, bad} {
		if err := o.Submit(j); err != nil {
			t.Fatalf("unexpected submit error: %v", err)
		}
	}

	if snap := waitForJob(t, ok); snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (%v)", snap.Status, snap.Progress.Errors)
	}
	if !strings.Contains(string(ok.Result().Body), "hello world") {
		t.Errorf("unexpected body %q", ok.Result().Body)
	}

	snap := waitForJob(t, bad)
	if snap.Status != StatusFailed || snap.Phase != "parsing" {
		t.Errorf("expected failure while parsing, got %q/%q", snap.Status, snap.Phase)
	}
	if len(snap.Progress.Errors) == 0 {
		t.Error("expected recorded error")
	}
	if o.GetJob(ok.ID) != ok {
		t.Error("expected job to be tracked")
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 1, JobTTL: time.Hour}
	o := NewOrchestrator(cfg, discardLog)
	// Workers are not started, so the queue never drains.
	defer o.Stop()

	first := NewJob("a.txt", FormatText, convert.DefaultOptions(), []byte("a"))
	second := NewJob("b.txt", FormatText, convert.DefaultOptions(), []byte("b"))
	if err := o.Submit(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := o.Submit(second); err == nil {
		t.Fatal("expected queue full error")
	}
	if second.Snapshot().Status != StatusFailed {
		t.Errorf("expected rejected job to be failed, got %q", second.Snapshot().Status)
	}
	if o.QueueDepth() != 1 || o.TrackedJobs() != 2 {
		t.Errorf("expected depth 1 and 2 tracked jobs, got %d and %d", o.QueueDepth(), o.TrackedJobs())
	}
}
