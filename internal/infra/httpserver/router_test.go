package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalysis "github.com/gramseva/aidoctor/internal/application/analysis"
	"github.com/gramseva/aidoctor/internal/domain/triage"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type stubGenerator struct {
	narrative string
	err       error
}

func (g *stubGenerator) Generate(ctx context.Context, gc triage.GenerateContext) (string, error) {
	return g.narrative, g.err
}

func newTestRouter(t *testing.T, gen triage.Generator) (http.Handler, string) {
	t.Helper()
	dir := t.TempDir()
	svc := &appanalysis.Service{
		Generator: gen,
		Text:      triage.NewTextAnalyzer(triage.DefaultLexicon()),
		Imaging:   triage.NewImageSimulator(triage.HashPolicy{}),
		Clock:     fixedClock{time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)},
	}
	return NewRouter(svc, dir, 10<<20, nil), dir
}

func failingGenerator() triage.Generator {
	return &stubGenerator{err: &triage.ProviderError{Reason: "network", Err: errors.New("connection refused")}}
}

func multipartBody(t *testing.T, fields map[string]string, filename string, fileContent []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("medical_image", filename)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doRequest(h http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAnalyzeMedicalNoInput(t *testing.T) {
	h, _ := newTestRouter(t, failingGenerator())

	body, ct := multipartBody(t, nil, "", nil)
	rec := doRequest(h, http.MethodPost, "/api/analyze-medical", body, ct)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	out := decodeEnvelope(t, rec)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "text symptoms")
}

func TestAnalyzeMedicalImageFallback(t *testing.T) {
	h, dir := newTestRouter(t, failingGenerator())

	body, ct := multipartBody(t, nil, "scan.png", bytes.Repeat([]byte{0x89}, 1024))
	rec := doRequest(h, http.MethodPost, "/api/analyze-medical", body, ct)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decodeEnvelope(t, rec)
	assert.Equal(t, true, out["success"])

	result := out["result"].(map[string]any)
	assert.Equal(t, "medical_imaging", result["type"])
	assert.Equal(t, "82%", result["confidence"])
	assert.Equal(t, true, result["processed"])
	assert.Contains(t, result["analysis"], "Format: PNG")
	assert.Contains(t, result["analysis"], "scan.png")

	// ISO-8601 timestamp
	_, err := time.Parse(time.RFC3339, result["timestamp"].(string))
	assert.NoError(t, err)

	// temp upload removed after the request
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "upload must be cleaned up")
}

func TestAnalyzeMedicalComprehensiveFallback(t *testing.T) {
	h, _ := newTestRouter(t, failingGenerator())

	body, ct := multipartBody(t, map[string]string{"text": "sore throat"}, "scan.png", []byte("imagedata"))
	rec := doRequest(h, http.MethodPost, "/api/analyze-medical", body, ct)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decodeEnvelope(t, rec)["result"].(map[string]any)

	assert.Equal(t, "comprehensive_medical", result["type"])
	assert.Equal(t, float64(2), result["components_processed"])
	assert.Equal(t, "78%", result["confidence"]) // floor((75+82)/2)
	assert.Equal(t, "low", result["urgency"])
}

func TestAnalyzeMedicalGenerativeSuccess(t *testing.T) {
	h, _ := newTestRouter(t, &stubGenerator{narrative: "📋 Vishleshan: aaram karein."})

	body, ct := multipartBody(t, map[string]string{"text": "I have a fever", "userId": "user-1"}, "", nil)
	rec := doRequest(h, http.MethodPost, "/api/analyze-medical", body, ct)

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeEnvelope(t, rec)["result"].(map[string]any)

	assert.Equal(t, "gemini_medical", result["type"])
	assert.Equal(t, "90%", result["confidence"])
	assert.Equal(t, "Generative LLM", result["source"])
	assert.Equal(t, "📋 Vishleshan: aaram karein.", result["analysis"])
	_, hasUrgency := result["urgency"]
	assert.False(t, hasUrgency, "generative results carry no urgency")
}

func TestAnalyzeMedicalUnsupportedExtension(t *testing.T) {
	h, _ := newTestRouter(t, failingGenerator())

	body, ct := multipartBody(t, nil, "notes.txt", []byte("not an image"))
	rec := doRequest(h, http.MethodPost, "/api/analyze-medical", body, ct)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	out := decodeEnvelope(t, rec)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "not allowed")
}

func TestAnalyzeMedicalConfidenceRoundTrip(t *testing.T) {
	h, _ := newTestRouter(t, failingGenerator())

	body, ct := multipartBody(t, map[string]string{"text": "I have a headache and fever"}, "", nil)
	rec := doRequest(h, http.MethodPost, "/api/analyze-medical", body, ct)

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeEnvelope(t, rec)["result"].(map[string]any)

	conf := result["confidence"].(string)
	n, err := strconv.Atoi(strings.TrimSuffix(conf, "%"))
	require.NoError(t, err)
	assert.Equal(t, 85, n)
	assert.Equal(t, "moderate", result["urgency"])

	symptoms := result["symptoms_found"].([]any)
	assert.ElementsMatch(t, []any{"Headache", "Fever"}, symptoms)
}

func TestLegacyAnalyzeTextOnly(t *testing.T) {
	h, _ := newTestRouter(t, failingGenerator())

	payload := `{"text": "I have a headache"}`
	rec := doRequest(h, http.MethodPost, "/api/analyze", strings.NewReader(payload), "application/json")

	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeEnvelope(t, rec)

	assert.Equal(t, "symptom_analysis", out["type"])
	assert.Equal(t, "75%", out["confidence"])
	assert.Equal(t, "Fallback Medical AI", out["source"])
	assert.NotEmpty(t, out["analysis"])

	// narrow payload: no timestamp, no success wrapper
	_, hasTimestamp := out["timestamp"]
	assert.False(t, hasTimestamp)
	_, hasSuccess := out["success"]
	assert.False(t, hasSuccess)
}

func TestLegacyAnalyzeNoText(t *testing.T) {
	h, _ := newTestRouter(t, failingGenerator())

	rec := doRequest(h, http.MethodPost, "/api/analyze", strings.NewReader(`{"text": ""}`), "application/json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, failingGenerator())

	rec := doRequest(h, http.MethodGet, "/health", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeEnvelope(t, rec)
	assert.Equal(t, "Backend server running", out["status"])
	checks := out["checks"].(map[string]any)
	assert.Contains(t, checks, "uploads")
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, failingGenerator())

	rec := doRequest(h, http.MethodGet, "/metrics", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeEnvelope(t, rec)
	assert.Contains(t, out, "analyses_total")
	assert.Contains(t, out, "fallbacks_total")
}
