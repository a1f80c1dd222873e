package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"automan.solutions/console/internal/adminapi"
	"automan.solutions/console/internal/config"
	"automan.solutions/console/internal/obs"
	"automan.solutions/console/internal/session"
	"automan.solutions/console/internal/telemetry"
	"automan.solutions/console/internal/web"
)

var (
	version = "1.3.0"
	commit  = "none" // set via -ldflags at build time
)

func main() {
	cfg := config.Load()

	obs.Init()
	obs.InitBuildInfo(version, commit)
	logger := obs.Logger()
	defer func() { _ = logger.Sync() }()

	shutdownTracing := telemetry.Setup("admin-console")

	store, err := session.NewCookieStore(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		logger.Fatal("session store", zap.Error(err))
	}

	api, err := adminapi.New(cfg.APIBaseURL)
	if err != nil {
		logger.Fatal("admin api client", zap.Error(err))
	}

	handler, err := web.NewHandler(store, api, version)
	if err != nil {
		logger.Fatal("handler", zap.Error(err))
	}

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handler.Routes(web.Options{
			LoginRatePerMin: cfg.LoginRatePerMin,
			LoginRateBurst:  cfg.LoginRateBurst,
			MaxBodyBytes:    cfg.MaxUploadBytes,
		}),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("starting admin-console",
		zap.String("version", version),
		zap.String("addr", srv.Addr),
		zap.String("api_base", cfg.APIBaseURL),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = shutdownTracing(ctx)
	logger.Info("stopped")
}
