package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	database "github.com/sebuszqo/BillPlatform/db"
	"github.com/sebuszqo/BillPlatform/internal/auth"
	"github.com/sebuszqo/BillPlatform/internal/config"
	"github.com/sebuszqo/BillPlatform/internal/events"
	"github.com/sebuszqo/BillPlatform/internal/finance/application"
	"github.com/sebuszqo/BillPlatform/internal/finance/infrastructure"
	"github.com/sebuszqo/BillPlatform/internal/gateway"
	"github.com/sebuszqo/BillPlatform/internal/logging"
	"github.com/sebuszqo/BillPlatform/internal/region"
	"github.com/sebuszqo/BillPlatform/internal/user"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	router  *http.ServeMux
	gateway *gateway.Handler
	db      *database.DBService
	metrics http.Handler
}

func NewServer(gatewayHandler *gateway.Handler, dbService *database.DBService, metrics http.Handler) *Server {
	return &Server{
		router:  http.NewServeMux(),
		gateway: gatewayHandler,
		db:      dbService,
		metrics: metrics,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	gateway.WriteEnvelope(w, gateway.Envelope{Code: http.StatusNotFound, Msg: "Path not found"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	health := s.db.Health(r.Context())
	if health["status"] != "up" {
		slog.Warn("Readiness check failed", "error", health["error"])
		gateway.WriteEnvelope(w, gateway.Envelope{Code: http.StatusServiceUnavailable, Msg: "not ready", Data: health})
		return
	}
	gateway.WriteEnvelope(w, gateway.Envelope{Code: http.StatusOK, Msg: "ready", Data: health})
}

func (s *Server) RegisterRoutes() {
	s.gateway.RegisterRoutes(s.router)
	s.router.Handle("GET /ready", http.HandlerFunc(s.handleReady))
	s.router.Handle("GET /metrics", s.metrics)
	s.router.Handle("/", http.HandlerFunc(notFoundHandler))
}

// Handler wraps the router with access logging, the request deadline and
// bearer token decoding, outermost first.
func (s *Server) Handler(cfg *config.Config, jwtManager auth.JWTManagerInterface) http.Handler {
	var h http.Handler = s.router
	h = auth.JWTAccessTokenMiddleware(jwtManager)(h)
	h = gateway.Deadline(cfg.RequestTimeout)(h)
	return logging.Middleware(slog.Default())(h)
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("Missing configuration, update to start server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config) error {
	dbService, err := database.NewDBService(ctx, cfg.DBConnectionString)
	if err != nil {
		return err
	}
	defer dbService.Close()

	if cfg.MigrateOnStart {
		if err := database.RunMigrations(dbService.DB); err != nil {
			return err
		}
	}

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)
	limitService := user.NewLimitService(userRepo)

	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	categoryService := application.NewCategoryService(categoryRepo, userService)
	var publisher application.BillEventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return err
		}
		defer amqpClient.Close()
		publisher = amqpClient
		slog.Info("Publishing bill events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		slog.Warn("AMQP_URL not set, bill events are disabled")
	}
	billService := application.NewBillService(infrastructure.NewBillRepository(dbService.DB), publisher)

	regionService := region.NewRegionService(region.NewRegionRepository(dbService.DB))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	gatewayHandler := gateway.NewHandler(gateway.Services{
		Users:      userService,
		Limits:     limitService,
		Categories: categoryService,
		Bills:      billService,
		Regions:    regionService,
	}, gateway.Options{
		VerifyBillReferences: cfg.BillReferenceCheck,
		Metrics:              gateway.NewMetrics(registry),
		Logger:               slog.Default(),
	})

	server := NewServer(gatewayHandler, dbService, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server.RegisterRoutes()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.Handler(cfg, jwtManager),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server starting", "addr", httpServer.Addr, "bill_reference_check", cfg.BillReferenceCheck)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
