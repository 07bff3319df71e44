// Package server defines the core Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - redis client
//   - background job worker server (asynq)
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/go-catalog/internal/config"
	"github.com/deppfellow/go-catalog/internal/database"
	"github.com/deppfellow/go-catalog/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/go-catalog/internal/logger"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself; that one is built by SetupHTTPServer.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client
	Job           *job.JobService

	httpServer *http.Server
}

// RedisPingTimeout bounds the startup Redis check.
const RedisPingTimeout = 5 * time.Second

// New connects the database, redis and the job queue.
//
// A database failure aborts startup. An unreachable Redis only logs: the
// product cache then misses and product events fail to enqueue until
// Redis comes back.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         newRedis(cfg.Redis, logger, loggerService),
		Job:           job.NewJobService(logger, cfg),
	}

	if err := s.Job.Start(); err != nil {
		db.Close()
		s.Redis.Close()
		return nil, err
	}
	return s, nil
}

func newRedis(cfg config.RedisConfig, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: cfg.Address})

	if loggerService.GetApplication() != nil {
		client.AddHook(nrredis.NewHook(client.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), RedisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Str("address", cfg.Address).Msg("redis unreachable, cache and product events degraded")
	}
	return client
}

// SetupHTTPServer wraps handler in an http.Server using the configured
// port and timeouts (seconds).
func (s *Server) SetupHTTPServer(handler http.Handler) {
	seconds := func(n int) time.Duration { return time.Duration(n) * time.Second }

	s.httpServer = &http.Server{
		Addr:              ":" + s.Config.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: seconds(s.Config.Server.ReadTimeout),
		ReadTimeout:       seconds(s.Config.Server.ReadTimeout),
		WriteTimeout:      seconds(s.Config.Server.WriteTimeout),
		IdleTimeout:       seconds(s.Config.Server.IdleTimeout),
	}
}

// Start serves HTTP until Shutdown is called, which is not an error.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests first, then stops the job workers
// and closes redis, the database pool and the New Relic agent. Every
// step runs even if an earlier one failed.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown HTTP server: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	s.LoggerService.Shutdown()
	return errors.Join(errs...)
}
