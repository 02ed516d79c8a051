package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Worker processes a single conversion job. Each job gets its own walker
// and renderer, so one Worker may run jobs back to back.
type Worker struct {
	log         *slog.Logger
	stats       *Stats
	pdfFallback bool
}

func NewWorker(log *slog.Logger, stats *Stats, pdfFallback bool) *Worker {
	return &Worker{log: log, stats: stats, pdfFallback: pdfFallback}
}

// Process runs parse, convert and render for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	opts := job.options
	opts.Logger = log
	c := Converter{Options: opts, PDFFallback: w.pdfFallback}
	start := time.Now()

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	doc, err := c.Parse(job.FileData(), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		w.stats.Record(time.Since(start), nil)
		return
	}

	// Phase 2: Convert and render
	job.SetStatus(StatusConverting, "converting")
	res, err := c.Render(ctx, doc, job.Format)
	if err != nil {
		log.Error("conversion failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "converting")
		w.stats.Record(time.Since(start), nil)
		return
	}

	job.Complete(res)
	w.stats.Record(time.Since(start), res)
	log.Info("conversion complete", "kind", res.Kind, "pages", res.Pages, "bytes", len(res.Body))
}
