package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics stores analysis service counters.
type Metrics struct {
	RequestsTotal   uint64
	RequestsFailed  uint64
	AnalysesTotal   uint64
	GenerativeTotal uint64
	FallbacksTotal  uint64
	UploadsRejected uint64
	StartTime       time.Time
}

var globalMetrics = &Metrics{
	StartTime: time.Now(),
}

// IncrementRequests counts an incoming HTTP request.
func IncrementRequests() {
	atomic.AddUint64(&globalMetrics.RequestsTotal, 1)
}

// IncrementFailed counts a request answered with a 4xx/5xx.
func IncrementFailed() {
	atomic.AddUint64(&globalMetrics.RequestsFailed, 1)
}

// IncrementAnalyses counts a completed analysis of any kind.
func IncrementAnalyses() {
	atomic.AddUint64(&globalMetrics.AnalysesTotal, 1)
}

// IncrementGenerative counts an analysis answered by the provider.
func IncrementGenerative() {
	atomic.AddUint64(&globalMetrics.GenerativeTotal, 1)
}

// IncrementFallbacks counts an analysis that degraded to the rule engine.
func IncrementFallbacks() {
	atomic.AddUint64(&globalMetrics.FallbacksTotal, 1)
}

// IncrementUploadsRejected counts an upload refused by the allow-list.
func IncrementUploadsRejected() {
	atomic.AddUint64(&globalMetrics.UploadsRejected, 1)
}

// MetricsHandler serves current counters plus runtime stats.
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	snapshot := map[string]any{
		"requests_total":   atomic.LoadUint64(&globalMetrics.RequestsTotal),
		"requests_failed":  atomic.LoadUint64(&globalMetrics.RequestsFailed),
		"analyses_total":   atomic.LoadUint64(&globalMetrics.AnalysesTotal),
		"generative_total": atomic.LoadUint64(&globalMetrics.GenerativeTotal),
		"fallbacks_total":  atomic.LoadUint64(&globalMetrics.FallbacksTotal),
		"uploads_rejected": atomic.LoadUint64(&globalMetrics.UploadsRejected),
		"uptime_seconds":   int64(time.Since(globalMetrics.StartTime).Seconds()),
		"goroutines":       runtime.NumGoroutine(),
		"heap_alloc_bytes": mem.HeapAlloc,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

// MetricsMiddleware counts requests and failures.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		IncrementRequests()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		if wrapped.statusCode >= http.StatusBadRequest {
			IncrementFailed()
		}
	})
}
