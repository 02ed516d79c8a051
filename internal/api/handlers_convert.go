package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/doc2xhtml/internal/convert"
	"github.com/dgallion1/doc2xhtml/internal/parser"
	"github.com/dgallion1/doc2xhtml/internal/pipeline"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
)

// upload is a validated conversion request.
type upload struct {
	filename string
	data     []byte
	format   pipeline.Format
	options  convert.Options
}

// requestError carries the HTTP status for a rejected upload.
type requestError struct {
	code int
	msg  string
}

func (e *requestError) Error() string { return e.msg }

func reject(code int, format string, args ...any) error {
	return &requestError{code: code, msg: fmt.Sprintf(format, args...)}
}

// optionFields maps form fields to the conversion flags they override.
var optionFields = []struct {
	name string
	set  func(*convert.Options, bool)
}{
	{"annotations", func(o *convert.Options, v bool) { o.ExtractAnnotationText = v }},
	{"autospace", func(o *convert.Options, v bool) { o.EnableAutoSpace = v }},
	{"dedupe", func(o *convert.Options, v bool) { o.SuppressDuplicateOverlappingText = v }},
	{"sort", func(o *convert.Options, v bool) { o.SortByPosition = v }},
	{"acroform", func(o *convert.Options, v bool) { o.ExtractAcroForm = v }},
}

// parseOptions applies per-request overrides to the server defaults.
func (s *Server) parseOptions(r *http.Request) (pipeline.Format, convert.Options, error) {
	format, err := pipeline.ParseFormat(r.FormValue("format"))
	if err != nil {
		return "", convert.Options{}, reject(http.StatusBadRequest, "%s", err)
	}

	opts := s.cfg.ConvertOptions()
	for _, f := range optionFields {
		v := r.FormValue(f.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return "", convert.Options{}, reject(http.StatusBadRequest, "invalid %s: %q", f.name, v)
		}
		f.set(&opts, b)
	}
	if v := r.FormValue("max_form_depth"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return "", convert.Options{}, reject(http.StatusBadRequest, "invalid max_form_depth: %q", v)
		}
		opts.MaxFormDepth = n
	}
	return format, opts, nil
}

// readFile reads and validates one uploaded file.
func (s *Server) readFile(fh *multipart.FileHeader) (string, []byte, error) {
	filename := sanitizeFilename(fh.Filename)

	f, err := fh.Open()
	if err != nil {
		return filename, nil, reject(http.StatusBadRequest, "failed to open file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return filename, nil, reject(http.StatusInternalServerError, "failed to read file")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return filename, nil, reject(http.StatusRequestEntityTooLarge,
			"file exceeds max size (%s)", humanize.Bytes(uint64(s.cfg.MaxUploadBytes)))
	}
	if _, err := parser.Detect(filename, data[:min(len(data), 8)]); err != nil {
		return filename, nil, reject(http.StatusUnsupportedMediaType,
			"unsupported file type: %s", filepath.Ext(filename))
	}
	return filename, data, nil
}

// readUpload parses a single-file multipart request.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*upload, error) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, reject(http.StatusRequestEntityTooLarge,
				"request exceeds max size (%s)", humanize.Bytes(uint64(tooLarge.Limit)))
		}
		return nil, reject(http.StatusBadRequest, "invalid multipart form: %s", err)
	}

	format, opts, err := s.parseOptions(r)
	if err != nil {
		return nil, err
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		return nil, reject(http.StatusBadRequest, "file is required")
	}
	filename, data, err := s.readFile(files[0])
	if err != nil {
		return nil, err
	}
	return &upload{filename: filename, data: data, format: format, options: opts}, nil
}

// handleConvert converts an upload synchronously and returns the rendered
// document.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		writeRequestError(w, err)
		return
	}

	opts := up.options
	opts.Logger = s.log.With("filename", up.filename)
	c := pipeline.Converter{Options: opts, PDFFallback: s.cfg.PDFFallbackPdftotext}
	start := time.Now()
	res, err := c.Convert(r.Context(), up.data, up.filename, up.format)
	s.orchestrator.Stats().Record(time.Since(start), res)
	if err != nil {
		s.log.Warn("conversion failed", "filename", up.filename, "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeResult(w, res)
}

// handleSubmitJob queues an upload for asynchronous conversion.
func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		writeRequestError(w, err)
		return
	}

	job := pipeline.NewJob(up.filename, up.format, up.options, up.data)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(jobAccepted(job))
}

// handleBatchJobs queues every file in the "files" field with shared options.
func (s *Server) handleBatchJobs(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	format, opts, err := s.parseOptions(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	var results []map[string]any
	for _, fh := range files {
		filename, data, err := s.readFile(fh)
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		job := pipeline.NewJob(filename, format, opts, data)
		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}
		results = append(results, jobAccepted(job))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"jobs": results})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleJobResult(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	res := job.Result()
	if res == nil {
		snap := job.Snapshot()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error":  "job has no result",
			"status": snap.Status,
			"errors": snap.Progress.Errors,
		})
		return
	}
	writeResult(w, res)
}

func jobAccepted(job *pipeline.Job) map[string]any {
	return map[string]any{
		"filename":   job.Filename,
		"job_id":     job.ID,
		"status":     job.Snapshot().Status,
		"poll_url":   fmt.Sprintf("/api/jobs/%s", job.ID),
		"result_url": fmt.Sprintf("/api/jobs/%s/result", job.ID),
	}
}

func writeResult(w http.ResponseWriter, res *pipeline.Result) {
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("X-Document-Kind", res.Kind.String())
	w.Header().Set("X-Page-Count", strconv.Itoa(res.Pages))
	w.Write(res.Body)
}

func writeRequestError(w http.ResponseWriter, err error) {
	var re *requestError
	if errors.As(err, &re) {
		jsonError(w, re.msg, re.code)
		return
	}
	jsonError(w, err.Error(), http.StatusBadRequest)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
