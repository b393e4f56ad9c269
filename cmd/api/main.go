package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/gramseva/aidoctor/internal/application"
	appanalysis "github.com/gramseva/aidoctor/internal/application/analysis"
	"github.com/gramseva/aidoctor/internal/config"
	"github.com/gramseva/aidoctor/internal/domain/triage"
	"github.com/gramseva/aidoctor/internal/infra/ai/gemini"
	openaic "github.com/gramseva/aidoctor/internal/infra/ai/openai"
	"github.com/gramseva/aidoctor/internal/infra/httpserver"
	minioStore "github.com/gramseva/aidoctor/internal/infra/storage"
	"github.com/gramseva/aidoctor/internal/middleware"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("config load error: %v", err)
		}
		log.Printf("no config file at %s, using defaults", path)
		cfg = config.Default()
	}

	ctx := context.Background()

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		log.Fatalf("upload dir error: %v", err)
	}

	// generative provider binding; a missing credential disables the
	// provider for the whole process lifetime and every request degrades
	// through the same fallback path
	generator := buildGenerator(ctx, cfg)

	// image finding selection policy
	var policy triage.SelectionPolicy = triage.HashPolicy{}
	if cfg.Imaging.Selection == "random" {
		policy = triage.NewRandomPolicy(time.Now().UnixNano())
	}

	svc := &appanalysis.Service{
		Generator: generator,
		Text:      triage.NewTextAnalyzer(triage.DefaultLexicon()),
		Imaging:   triage.NewImageSimulator(policy),
		Clock:     application.SystemClock{},
		Timeout:   cfg.ProviderTimeout(),
	}

	// optional upload archive
	var archive httpserver.UploadArchive
	if cfg.Archive.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.BucketName,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.UseSSL,
		)
		if err != nil {
			log.Fatalf("archive init error: %v", err)
		}
		archive = store
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate)
	limiter.TrustProxy = cfg.RateLimit.TrustProxy

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(limiter.Middleware)
	mux.Mount("/", httpserver.NewRouter(svc, cfg.Uploads.Dir, cfg.MaxUploadBytes(), archive))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// buildGenerator binds the configured provider, failing closed to the
// standing disabled generator when no credential is present.
func buildGenerator(ctx context.Context, cfg *config.Config) triage.Generator {
	apiKey := cfg.ProviderAPIKey()
	if apiKey == "" {
		log.Printf("provider %s has no API key, fallback analysis only", cfg.Provider.Name)
		return appanalysis.NotConfigured{}
	}

	switch cfg.Provider.Name {
	case "openai":
		return openaic.NewClient(apiKey, cfg.Provider.Model)
	default:
		client, err := gemini.NewClient(ctx, apiKey, cfg.Provider.Model)
		if err != nil {
			log.Printf("gemini init error, fallback analysis only: %v", err)
			return appanalysis.NotConfigured{}
		}
		return client
	}
}
