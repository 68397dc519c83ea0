package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transit_dashboard/internal/config"
	"transit_dashboard/internal/handlers"
	"transit_dashboard/internal/logger"
	"transit_dashboard/internal/metrics"
	"transit_dashboard/internal/repository"
	"transit_dashboard/internal/repository/db"
	"transit_dashboard/internal/server"
	"transit_dashboard/internal/service"
	"transit_dashboard/internal/wienerlinien"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load configs/config.yml + TRANSIT_* env
	cfg, err := config.Load("configs", ".")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	// open DB
	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DBPath)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	// wire dependencies
	upstream := wienerlinien.NewClient(&http.Client{Timeout: cfg.UpstreamTimeout}, cfg.UpstreamURL, log, collector)
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, upstream, service.SessionConfig{
		Secret: cfg.SessionSecret,
		TTL:    cfg.SessionTTL,
	})
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithMetrics(collector, metrics.Handler(reg)),
		handlers.WithCookie(handlers.CookieConfig{Secure: cfg.SessionSecure, TTL: cfg.SessionTTL}),
	)

	// start HTTP server
	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	runHTTPServer(srv, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening database", "path", cfg.DBPath)
	return db.InitDB(cfg.DBPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		log.Infow("server listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
