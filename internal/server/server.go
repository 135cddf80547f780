package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/checkmygrade/internal/bootstrap"
	"github.com/yigit/checkmygrade/internal/config"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
	http   *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer(configPath string) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		lgr.Error().Err(err).Msg("Invalid server configuration")
		return nil, err
	}

	if err := bootstrap.SetupStorage(cfg, lgr); err != nil {
		return nil, fmt.Errorf("failed to setup storage: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	return &Server{
		config: cfg,
		router: router,
		deps:   deps,
		logger: lgr,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for errors starting the server
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(osSignals)

	// Block until we receive either a server error or a stop signal; SIGHUP
	// rereads the table files and keeps serving.
	for running := true; running; {
		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("error starting server: %w", err)
			}
			running = false
		case sig := <-osSignals:
			if sig == syscall.SIGHUP {
				s.logger.Info().Msg("Received SIGHUP, reloading ledgers...")
				_ = bootstrap.ReloadLedgers(context.Background(), s.deps)
				continue
			}
			s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
			running = false
		}
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and flushes the ledgers.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var shutdownErr error

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownErr = errors.Join(shutdownErr, err)
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	// Every mutation already persisted; this covers a ledger whose last write failed.
	if s.deps != nil {
		s.logger.Info().Msg("Persisting ledgers...")
		repos := s.deps.Repos
		if err := repos.StudentRepository.Persist(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Student ledger persist error")
			shutdownErr = errors.Join(shutdownErr, err)
		}
		if err := repos.ProfessorRepository.Persist(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Professor ledger persist error")
			shutdownErr = errors.Join(shutdownErr, err)
		}
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownErr != nil {
		return fmt.Errorf("server shutdown completed with errors: %w", shutdownErr)
	}
	return nil
}
