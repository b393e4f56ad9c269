package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appanalysis "github.com/gramseva/aidoctor/internal/application/analysis"
	"github.com/gramseva/aidoctor/internal/domain/triage"
	"github.com/gramseva/aidoctor/internal/middleware"
)

// UploadArchive port (optional long-term copy of uploaded images before
// local cleanup).
type UploadArchive interface {
	ArchiveAndRemove(ctx context.Context, localPath, key, contentType string) (string, error)
}

type Router struct {
	svc       *appanalysis.Service
	uploadDir string
	maxUpload int64
	archive   UploadArchive
}

func NewRouter(svc *appanalysis.Service, uploadDir string, maxUpload int64, archive UploadArchive) http.Handler {
	rt := &Router{svc: svc, uploadDir: uploadDir, maxUpload: maxUpload, archive: archive}
	mux := chi.NewRouter()

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"uploads": &middleware.UploadDirChecker{Dir: uploadDir},
	}))
	mux.Get("/healthz", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Post("/api/analyze-medical", rt.wrap(rt.handleAnalyzeMedical))
	mux.Post("/api/analyze", rt.wrap(rt.handleAnalyzeText))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// clientError marks a validation failure that maps to a 400 response;
// the engine is never invoked for these.
type clientError struct {
	msg string
}

func (e *clientError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &clientError{msg: fmt.Sprintf(format, args...)}
}

func (rt *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var cerr *clientError
			switch {
			case errors.Is(err, triage.ErrNoInput):
				writeError(w, http.StatusBadRequest, "Please provide either text symptoms or upload a medical image")
			case errors.As(err, &cerr):
				writeError(w, http.StatusBadRequest, cerr.msg)
			default:
				writeError(w, http.StatusInternalServerError, "Medical analysis failed: "+err.Error())
			}
		}
	}
}

// POST /api/analyze-medical
// Multipart form: optional "text", optional "userId", optional file
// "medical_image". At least one of text/image is required.
func (rt *Router) handleAnalyzeMedical(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, rt.maxUpload)
	if err := req.ParseMultipartForm(rt.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return badRequest("file size too large, maximum %d MB allowed", rt.maxUpload>>20)
		}
		return badRequest("invalid multipart form: %v", err)
	}

	text := middleware.SanitizeText(req.FormValue("text"))
	if err := middleware.ValidateSymptomText(text); err != nil {
		return badRequest("%v", err)
	}
	userID := strings.TrimSpace(req.FormValue("userId"))
	if err := middleware.ValidateUserID(userID); err != nil {
		return badRequest("%v", err)
	}

	cmd := appanalysis.Command{Text: text, UserID: userID}

	file, header, err := req.FormFile("medical_image")
	switch {
	case err == nil:
		defer file.Close()
		if err := middleware.ValidateUploadExtension(header.Filename); err != nil {
			middleware.IncrementUploadsRejected()
			return badRequest("%v", err)
		}
		upload, cleanup, err := rt.persistUpload(req.Context(), file, header.Filename, header.Header.Get("Content-Type"))
		if err != nil {
			return err
		}
		defer cleanup()
		cmd.Image = upload
	case errors.Is(err, http.ErrMissingFile):
		// text-only request
	default:
		return badRequest("invalid medical_image upload: %v", err)
	}

	result, err := rt.svc.Analyze(req.Context(), cmd)
	if err != nil {
		return err
	}
	countResult(result)

	return writeJSON(w, http.StatusOK, envelope{Success: true, Result: toPayload(result)})
}

// POST /api/analyze
// Legacy text-only endpoint with the narrower payload.
func (rt *Router) handleAnalyzeText(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text   string `json:"text"`
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("invalid request body: %v", err)
	}

	text := middleware.SanitizeText(body.Text)
	if err := middleware.ValidateSymptomText(text); err != nil {
		return badRequest("%v", err)
	}
	userID := strings.TrimSpace(body.UserID)
	if err := middleware.ValidateUserID(userID); err != nil {
		return badRequest("%v", err)
	}

	result, err := rt.svc.Analyze(req.Context(), appanalysis.Command{Text: text, UserID: userID})
	if err != nil {
		return err
	}
	countResult(result)

	p := toPayload(result)
	return writeJSON(w, http.StatusOK, legacyPayload{
		Analysis:   p.Analysis,
		Type:       p.Type,
		Confidence: p.Confidence,
		Source:     p.Source,
	})
}

// persistUpload copies the upload into the temp dir under a uuid name
// and returns a cleanup that removes it — or archives it first when an
// archive is configured. Cleanup runs on success and failure paths.
func (rt *Router) persistUpload(ctx context.Context, file io.Reader, filename, mime string) (*appanalysis.ImageUpload, func(), error) {
	safe := middleware.SecureFilename(filename)
	localPath := filepath.Join(rt.uploadDir, uuid.New().String()+"_"+safe)

	dst, err := os.Create(localPath)
	if err != nil {
		return nil, nil, fmt.Errorf("persist upload: %w", err)
	}
	size, err := io.Copy(dst, file)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(localPath)
		return nil, nil, fmt.Errorf("persist upload: %w", err)
	}

	cleanup := func() {
		if rt.archive != nil {
			key := fmt.Sprintf("uploads/%s/%s", time.Now().UTC().Format("2006/01"), safe)
			if _, err := rt.archive.ArchiveAndRemove(ctx, localPath, key, mime); err != nil {
				fmt.Printf("upload archive error for %s: %v\n", safe, err)
			}
			return
		}
		os.Remove(localPath)
	}

	return &appanalysis.ImageUpload{
		Filename: filename,
		Size:     size,
		MIME:     mime,
		Path:     localPath,
	}, cleanup, nil
}

func countResult(result *triage.Result) {
	middleware.IncrementAnalyses()
	if result.Kind == triage.KindGemini {
		middleware.IncrementGenerative()
	} else {
		middleware.IncrementFallbacks()
	}
}

type envelope struct {
	Success bool          `json:"success"`
	Result  resultPayload `json:"result"`
}

type resultPayload struct {
	Analysis            string   `json:"analysis"`
	Type                string   `json:"type"`
	Confidence          string   `json:"confidence"`
	Source              string   `json:"source"`
	Timestamp           string   `json:"timestamp"`
	Urgency             string   `json:"urgency,omitempty"`
	SymptomsFound       []string `json:"symptoms_found,omitempty"`
	ComponentsProcessed int      `json:"components_processed,omitempty"`
	Processed           bool     `json:"processed,omitempty"`
}

type legacyPayload struct {
	Analysis   string `json:"analysis"`
	Type       string `json:"type"`
	Confidence string `json:"confidence"`
	Source     string `json:"source"`
}

// toPayload renders the structured result into the wire envelope; this
// is the only place report sections become narrative text.
func toPayload(r *triage.Result) resultPayload {
	p := resultPayload{
		Analysis:            r.Narrative(),
		Type:                string(r.Kind),
		Confidence:          fmt.Sprintf("%d%%", r.Confidence),
		Source:              r.Source,
		Timestamp:           r.Timestamp.Format(time.RFC3339),
		Urgency:             string(r.Urgency),
		ComponentsProcessed: r.ComponentsProcessed,
		Processed:           r.Processed,
	}
	if len(r.SymptomsFound) > 0 {
		p.SymptomsFound = r.SymptomsFound
	}
	return p
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   msg,
	})
}
