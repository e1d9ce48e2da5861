// Package server sets up the HTTP server with all routes
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/triagehq/paymentops/internal/config"
	"github.com/triagehq/paymentops/internal/health"
	"github.com/triagehq/paymentops/internal/idgen"
	"github.com/triagehq/paymentops/internal/logging"
	"github.com/triagehq/paymentops/internal/metrics"
	"github.com/triagehq/paymentops/internal/payments"
	"github.com/triagehq/paymentops/internal/realtime"
	"github.com/triagehq/paymentops/internal/risk"
	"github.com/triagehq/paymentops/internal/traces"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	cfg          *config.Config
	store        *payments.Store
	hub          *realtime.Hub
	healthReg    *health.Registry
	db           *sql.DB // nil if archiving is disabled
	router       *gin.Engine
	httpSrv      *http.Server
	logger       *slog.Logger
	shutdownOtel func(context.Context) error
	cancelRunCtx context.CancelFunc // cancels background goroutines started in Run

	// Health state
	ready   atomic.Bool
	healthy atomic.Bool
}

// Option configures the server
type Option func(*Server)

// WithLogger sets a custom logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStore sets a pre-built payment store (for testing)
func WithStore(store *payments.Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// New creates a new server instance
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:       cfg,
		logger:    logging.New(cfg.LogLevel, "json"),
		healthReg: health.NewRegistry(),
	}

	// Apply options first (may set store/logger)
	for _, opt := range opts {
		opt(s)
	}

	ctx := context.Background()

	// Tracing (no-op without an OTLP endpoint)
	shutdownOtel, err := traces.Init(ctx, cfg.OTLPEndpoint, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init tracing: %w", err)
	}
	s.shutdownOtel = shutdownOtel

	// Realtime hub for WebSocket streaming
	s.hub = realtime.NewHub(s.logger)

	// Optional durable archive for the action log
	var archive payments.Archive
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.Ping(); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = db

		pa := payments.NewPostgresArchive(db)
		if err := pa.Migrate(ctx); err != nil {
			s.logger.Warn("failed to migrate action archive", "error", err)
		}
		archive = pa
		s.logger.Info("action log archiving enabled", "url", maskDSN(cfg.DatabaseURL))
	} else {
		s.logger.Info("action log archiving disabled (in-memory only)")
	}

	// Payment store seeded with the demo dataset, unless injected
	if s.store == nil {
		storeOpts := []payments.Option{
			payments.WithRetryOutcome(payments.ProbabilityOutcome(cfg.RetrySuccessRate)),
			payments.WithNotifyOutcome(payments.ProbabilityOutcome(cfg.NotifySuccessRate)),
			payments.WithSink(s.hub.BroadcastAction),
		}
		if archive != nil {
			storeOpts = append(storeOpts, payments.WithArchive(archive))
		}
		s.store = payments.NewStore(storeOpts...)
	}

	s.healthReg.Register("store", func(ctx context.Context) health.Status {
		n := s.store.CountPending(ctx)
		return health.Status{Name: "store", Healthy: true, Detail: fmt.Sprintf("%d pending payments", n)}
	})
	if s.db != nil {
		s.healthReg.Register("archive", func(ctx context.Context) health.Status {
			if err := s.db.PingContext(ctx); err != nil {
				return health.Status{Name: "archive", Healthy: false, Detail: err.Error()}
			}
			return health.Status{Name: "archive", Healthy: true}
		})
	}

	// Configure gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()
	s.setupMiddleware()
	s.setupRoutes()

	s.healthy.Store(true)

	return s, nil
}

// Store exposes the payment store (used by cmd wiring and tests).
func (s *Server) Store() *payments.Store {
	return s.store
}

// Router exposes the gin engine for httptest servers.
func (s *Server) Router() http.Handler {
	return s.router
}

// maskDSN hides password in connection string for logging
func maskDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "***"
	}
	if u.User != nil {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}

func (s *Server) setupMiddleware() {
	// Recovery with logging
	s.router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logging.L(c.Request.Context()).Error("panic recovered",
			"error", recovered,
			"path", c.Request.URL.Path,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "An unexpected error occurred",
		})
	}))

	// Prometheus metrics
	s.router.Use(metrics.Middleware())

	// Request ID
	s.router.Use(s.requestIDMiddleware())

	// Logging
	s.router.Use(s.loggingMiddleware())
}

func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check for existing request ID (from load balancer, etc.)
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = idgen.WithPrefix("req_")
		}

		ctx := logging.WithRequestID(c.Request.Context(), requestID)
		ctx = logging.WithLogger(ctx, s.logger)
		c.Request = c.Request.WithContext(ctx)

		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		logger := logging.L(c.Request.Context())
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		switch {
		case status >= 500:
			logger.Error("request completed", attrs...)
		case status >= 400:
			logger.Warn("request completed", attrs...)
		default:
			logger.Info("request completed", attrs...)
		}
	}
}

func (s *Server) setupRoutes() {
	paymentsHandler := payments.NewHandler(s.store, s.logger)
	paymentsHandler.OnReset(s.hub.BroadcastReset)
	riskHandler := risk.NewHandler(s.store, s.logger)

	v1 := s.router.Group("/v1")
	paymentsHandler.RegisterRoutes(v1)
	paymentsHandler.RegisterAdminRoutes(v1)
	riskHandler.RegisterRoutes(v1)

	v1.GET("/stream", func(c *gin.Context) {
		s.hub.HandleWebSocket(c.Writer, c.Request)
	})
	v1.GET("/stream/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.hub.Stats())
	})

	s.router.GET("/health", s.healthHandler)
	s.router.GET("/healthz/live", s.livenessHandler)
	s.router.GET("/healthz/ready", s.readinessHandler)
	s.router.GET("/metrics", metrics.Handler())
}

func (s *Server) healthHandler(c *gin.Context) {
	healthy, statuses := s.healthReg.CheckAll(c.Request.Context())
	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"healthy":    healthy,
		"subsystems": statuses,
	})
}

func (s *Server) livenessHandler(c *gin.Context) {
	if !s.healthy.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	if !s.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	// Cancellable context for background goroutines so Shutdown() can stop them.
	runCtx, cancel := context.WithCancel(ctx)
	s.cancelRunCtx = cancel

	s.httpSrv = &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("starting server", "port", s.cfg.Port)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	go s.hub.Run(runCtx)

	// Mark as ready after brief delay for startup
	go func() {
		time.Sleep(100 * time.Millisecond)
		s.ready.Store(true)
		s.logger.Info("server ready")
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		s.logger.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		s.logger.Info("context cancelled")
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server and its background goroutines.
func (s *Server) Shutdown() error {
	s.ready.Store(false)

	if s.cancelRunCtx != nil {
		s.cancelRunCtx()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var firstErr error
	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if s.shutdownOtel != nil {
		if err := s.shutdownOtel(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	s.logger.Info("server stopped")
	return firstErr
}
