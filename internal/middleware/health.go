package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// HealthChecker defines interface for health checking.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// UploadDirChecker verifies the upload directory is writable.
type UploadDirChecker struct {
	Dir string
}

func (u *UploadDirChecker) Check(ctx context.Context) error {
	probe := filepath.Join(u.Dir, ".healthcheck")
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		return fmt.Errorf("upload dir not writable: %w", err)
	}
	return os.Remove(probe)
}

// HealthStatus represents the overall status.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks,omitempty"`
}

// CheckStatus represents an individual check.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthHandler runs all checks and reports process status without
// touching the analysis engine.
func HealthHandler(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := HealthStatus{
			Status:    "Backend server running",
			Timestamp: time.Now(),
			Checks:    make(map[string]CheckStatus),
		}

		code := http.StatusOK
		for name, checker := range checkers {
			if err := checker.Check(ctx); err != nil {
				health.Status = "unhealthy"
				health.Checks[name] = CheckStatus{Status: "unhealthy", Message: err.Error()}
				code = http.StatusServiceUnavailable
			} else {
				health.Checks[name] = CheckStatus{Status: "healthy"}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(health)
	}
}

// LivenessHandler is the simplest possible probe.
func LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
