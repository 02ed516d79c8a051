package api

import (
	"encoding/json"
	"net/http"

	"github.com/dustin/go-humanize"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"workers":          s.cfg.WorkerCount,
		"queue_depth":      s.orchestrator.QueueDepth(),
		"queue_capacity":   s.cfg.MaxQueueSize,
		"tracked_jobs":     s.orchestrator.TrackedJobs(),
		"job_ttl":          s.cfg.JobTTL.String(),
		"max_upload":       humanize.Bytes(uint64(s.cfg.MaxUploadBytes)),
		"max_upload_bytes": s.cfg.MaxUploadBytes,
		"conversions":      s.orchestrator.Stats().Snapshot(),
	})
}
