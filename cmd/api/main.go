package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mahim2022/websiteAuditTool/internal/auditor"
	"github.com/mahim2022/websiteAuditTool/internal/pageaudit"
	"github.com/mahim2022/websiteAuditTool/internal/platform/config"
	"github.com/mahim2022/websiteAuditTool/internal/platform/logger"
	"github.com/mahim2022/websiteAuditTool/internal/platform/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("audit service starting",
		"port", cfg.Port,
		"link_sample_limit", cfg.LinkSampleLimit,
		"probe_concurrency", cfg.ProbeConcurrency,
	)

	engine := pageaudit.NewEngine(
		pageaudit.NewHTTPClient(),
		pageaudit.NewLinkProber(cfg.LinkSampleLimit, cfg.ProbeConcurrency),
		pageaudit.NewRedirectChecker(),
		pageaudit.NewResourceChecker(),
		log,
	)
	service := auditor.NewService(engine, log)
	transport := auditor.NewTransport(service, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	transport.RegisterRoutes(r, middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight audits a bounded window to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("http server forced shutdown", "error", err)
	} else {
		log.Info("http server drained")
	}
}
