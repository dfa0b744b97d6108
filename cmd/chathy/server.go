package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chathy-app/chathy/api/handlers"
	"github.com/chathy-app/chathy/config"
	"github.com/chathy-app/chathy/group"
	"github.com/chathy-app/chathy/internal/database"
	"github.com/chathy-app/chathy/internal/metrics"
	"github.com/chathy-app/chathy/internal/server"
	"github.com/chathy-app/chathy/internal/telemetry"
	"github.com/chathy-app/chathy/llm"
	"github.com/chathy-app/chathy/llm/tokenizer"
	"github.com/chathy-app/chathy/persistence"
	"github.com/chathy-app/chathy/providers"
	"github.com/chathy-app/chathy/providers/mistral"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// contextTokens is the context window assumed for prompt budget logging.
const contextTokens = 32768

// Server wires the registry, conversation log, orchestrator and HTTP
// surface together and manages their lifecycle.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger

	httpManager    *server.Manager
	metricsManager *server.Manager

	healthHandler *handlers.HealthHandler
	groupHandler  *handlers.GroupHandler
	agentHandler  *handlers.AgentHandler

	metricsCollector *metrics.Collector
	otelProviders    *telemetry.Providers

	pool     *database.PoolManager
	registry *persistence.Registry
	convLog  persistence.ConversationLog

	rateLimiterCancel context.CancelFunc
}

// NewServer creates a server instance; Start performs all initialization.
func NewServer(cfg *config.Config, logger *zap.Logger, otelProviders *telemetry.Providers) *Server {
	return &Server{
		cfg:           cfg,
		logger:        logger,
		otelProviders: otelProviders,
	}
}

// Start initializes all components and brings up the API and metrics
// listeners.
func (s *Server) Start() error {
	s.metricsCollector = metrics.NewCollector("chathy", s.logger)

	if err := s.initStorage(); err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	if err := s.initHandlers(); err != nil {
		return fmt.Errorf("failed to init handlers: %w", err)
	}
	if err := s.startHTTPServer(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	if err := s.startMetricsServer(); err != nil {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}

	s.logger.Info("all servers started",
		zap.Int("http_port", s.cfg.Server.HTTPPort),
		zap.Int("metrics_port", s.cfg.Server.MetricsPort),
		zap.String("store", s.cfg.Store.Type),
	)
	return nil
}

// initStorage opens the registry database and the conversation log backend.
func (s *Server) initStorage() error {
	pool, err := database.Open(database.PoolConfig{
		Path:            s.cfg.Database.Path,
		MaxOpenConns:    s.cfg.Database.MaxOpenConns,
		MaxIdleConns:    s.cfg.Database.MaxIdleConns,
		ConnMaxLifetime: s.cfg.Database.ConnMaxLifetime,
	}, s.logger)
	if err != nil {
		return fmt.Errorf("open registry database: %w", err)
	}
	s.pool = pool

	registry, err := persistence.NewRegistry(pool.DB(), s.logger)
	if err != nil {
		return fmt.Errorf("create registry: %w", err)
	}
	s.registry = registry

	if s.cfg.Database.SeedDefaults {
		if err := registry.Seed(context.Background()); err != nil {
			return fmt.Errorf("seed registry: %w", err)
		}
	}

	convLog, err := persistence.NewConversationLog(persistence.StoreConfig{
		Type: persistence.StoreType(s.cfg.Store.Type),
		Redis: persistence.RedisConfig{
			Addr:      s.cfg.Store.Redis.Addr,
			Password:  s.cfg.Store.Redis.Password,
			DB:        s.cfg.Store.Redis.DB,
			PoolSize:  s.cfg.Store.Redis.PoolSize,
			KeyPrefix: s.cfg.Store.Redis.KeyPrefix,
		},
	})
	if err != nil {
		return fmt.Errorf("create conversation log: %w", err)
	}
	s.convLog = convLog

	return nil
}

// initHandlers builds the orchestration pipeline and the HTTP handlers.
func (s *Server) initHandlers() error {
	raw, err := s.newProvider()
	if err != nil {
		return err
	}
	provider := instrumentProvider(raw, s.metricsCollector, s.cfg.LLM.Model)
	convLog := instrumentLog(s.convLog, s.metricsCollector)

	counter := tokenizer.ForModel(s.cfg.LLM.Model, contextTokens)
	composer := group.NewComposer(counter, s.logger)
	selector := group.NewSelector(provider, composer, s.logger)

	limits := group.Limits{
		MaxMessageLength:      s.cfg.Conversation.MaxMessageLength,
		MaxAgentMessageLength: s.cfg.Conversation.MaxAgentMessageLength,
		MaxHistoryLength:      s.cfg.Conversation.MaxHistoryLength,
	}

	orchestrator := group.NewOrchestrator(provider, composer, selector, limits, convLog, s.metricsCollector, s.logger)

	s.groupHandler = handlers.NewGroupHandler(s.registry, convLog, orchestrator, limits.MaxHistoryLength, s.logger)
	s.agentHandler = handlers.NewAgentHandler(s.registry, s.logger)

	s.healthHandler = handlers.NewHealthHandler(s.logger)
	s.healthHandler.RegisterCheck(handlers.NewPingHealthCheck("registry_database", s.pool.Ping))
	s.healthHandler.RegisterCheck(handlers.NewPingHealthCheck("conversation_log", s.convLog.Ping))

	s.logger.Info("handlers initialized", zap.String("provider", provider.Name()))
	return nil
}

// newProvider builds the configured completion provider.
func (s *Server) newProvider() (llm.Provider, error) {
	switch s.cfg.LLM.Provider {
	case "mistral", "":
		return mistral.NewMistralProvider(providers.MistralConfig{
			APIKey:  s.cfg.LLM.APIKey,
			BaseURL: s.cfg.LLM.BaseURL,
			Model:   s.cfg.LLM.Model,
			Timeout: s.cfg.LLM.Timeout,
		}, s.logger), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.cfg.LLM.Provider)
	}
}

// startHTTPServer registers the routes and starts the API listener.
func (s *Server) startHTTPServer() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler.HandleHealth)
	mux.HandleFunc("GET /healthz", s.healthHandler.HandleHealthz)
	mux.HandleFunc("GET /ready", s.healthHandler.HandleReady)
	mux.HandleFunc("GET /readyz", s.healthHandler.HandleReady)
	mux.HandleFunc("GET /version", s.healthHandler.HandleVersion(Version, BuildTime, GitCommit))

	mux.HandleFunc("GET /api/v1/groups", s.groupHandler.HandleListGroups)
	mux.HandleFunc("GET /api/v1/groups/{id}", s.groupHandler.HandleGetGroup)
	mux.HandleFunc("POST /api/v1/groups/{id}/messages", s.groupHandler.HandleSendMessage)
	mux.HandleFunc("GET /api/v1/groups/{id}/messages", s.groupHandler.HandleHistory)
	mux.HandleFunc("DELETE /api/v1/groups/{id}/messages", s.groupHandler.HandleClearHistory)

	mux.HandleFunc("GET /api/v1/agents", s.agentHandler.HandleListAgents)
	mux.HandleFunc("GET /api/v1/agents/{id}", s.agentHandler.HandleGetAgent)

	rateLimiterCtx, rateLimiterCancel := context.WithCancel(context.Background())
	s.rateLimiterCancel = rateLimiterCancel
	handler := Chain(mux,
		Recovery(s.logger),
		RequestID(),
		SecurityHeaders(),
		RequestLogger(s.logger),
		OTelTracing(),
		MetricsMiddleware(s.metricsCollector),
		RateLimiter(rateLimiterCtx, s.cfg.Server.RateLimitRPS, s.cfg.Server.RateLimitBurst, s.logger),
	)

	serverConfig := server.Config{
		Addr:            fmt.Sprintf(":%d", s.cfg.Server.HTTPPort),
		ReadTimeout:     s.cfg.Server.ReadTimeout,
		WriteTimeout:    s.cfg.Server.WriteTimeout,
		IdleTimeout:     2 * s.cfg.Server.ReadTimeout,
		MaxHeaderBytes:  1 << 20,
		ShutdownTimeout: s.cfg.Server.ShutdownTimeout,
	}

	s.httpManager = server.NewManager(handler, serverConfig, s.logger)
	if err := s.httpManager.Start(); err != nil {
		return err
	}

	s.logger.Info("HTTP server started", zap.Int("port", s.cfg.Server.HTTPPort))
	return nil
}

// startMetricsServer starts the Prometheus scrape listener.
func (s *Server) startMetricsServer() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	serverConfig := server.Config{
		Addr:            fmt.Sprintf(":%d", s.cfg.Server.MetricsPort),
		ReadTimeout:     s.cfg.Server.ReadTimeout,
		WriteTimeout:    s.cfg.Server.WriteTimeout,
		ShutdownTimeout: s.cfg.Server.ShutdownTimeout,
	}

	s.metricsManager = server.NewManager(mux, serverConfig, s.logger)
	if err := s.metricsManager.Start(); err != nil {
		return err
	}

	s.logger.Info("metrics server started", zap.Int("port", s.cfg.Server.MetricsPort))
	return nil
}

// WaitForShutdown blocks until a termination signal, then shuts down.
func (s *Server) WaitForShutdown() {
	if s.httpManager != nil {
		s.httpManager.WaitForShutdown()
	}
	s.Shutdown()
}

// Shutdown stops the listeners and closes storage, in dependency order.
func (s *Server) Shutdown() {
	s.logger.Info("starting graceful shutdown")

	ctx := context.Background()

	if s.rateLimiterCancel != nil {
		s.rateLimiterCancel()
	}

	if s.httpManager != nil {
		if err := s.httpManager.Shutdown(ctx); err != nil {
			s.logger.Error("HTTP server shutdown error", zap.Error(err))
		}
	}
	if s.metricsManager != nil {
		if err := s.metricsManager.Shutdown(ctx); err != nil {
			s.logger.Error("metrics server shutdown error", zap.Error(err))
		}
	}

	if s.convLog != nil {
		if err := s.convLog.Close(); err != nil {
			s.logger.Error("conversation log close error", zap.Error(err))
		}
	}
	if s.pool != nil {
		if err := s.pool.Close(); err != nil {
			s.logger.Error("registry database close error", zap.Error(err))
		}
	}

	if s.otelProviders != nil {
		if err := s.otelProviders.Shutdown(ctx); err != nil {
			s.logger.Error("telemetry shutdown error", zap.Error(err))
		}
	}

	s.logger.Info("shutdown complete")
}
