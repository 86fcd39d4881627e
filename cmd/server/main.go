package main

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"guest-list-api/internal/auth"
	"guest-list-api/internal/config"
	"guest-list-api/internal/guest"
	"guest-list-api/internal/handler"
	"guest-list-api/internal/logging"
	"guest-list-api/internal/middleware"
	"guest-list-api/internal/store"
)

func main() {
	cfg, log, err := setup(os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// setup loads the config and builds the logger it describes. On a config
// error the returned logger is a plain console one, so the failure can still
// be reported.
func setup(w io.Writer) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, logging.New("info", logging.FormatConsole, w), err
	}
	return cfg, logging.New(cfg.LogLevel, cfg.LogFormat, w), nil
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// database
	pool, err := store.Open(ctx, store.Options{
		URL:            cfg.DatabaseURL,
		MaxConns:       cfg.DBMaxConns,
		ConnectTimeout: cfg.DBConnectTimeout,
		InsecureTLS:    cfg.DBInsecureTLS,
	})
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := store.Migrate(ctx, pool, log.With().Str("component", "migrate").Logger()); err != nil {
		return err
	}

	st := store.New(pool)
	repo := guest.NewRepository(st, cfg.Locale)
	verifier, err := auth.NewStaticVerifier(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return err
	}

	httpLog := log.With().Str("component", "http").Logger()
	h := handler.New(repo, verifier, st, httpLog)
	rl := middleware.NewRateLimiter(ctx, cfg.LoginRate, cfg.LoginBurst)

	srv := &http.Server{
		Handler: middleware.Chain(h.Routes(middleware.RateLimit(rl)),
			middleware.RequestID,
			middleware.CORS,
			middleware.Logger(httpLog),
			middleware.Recover(httpLog),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc := net.ListenConfig{Control: reusePort}
	lis, err := lc.Listen(ctx, "tcp", "0.0.0.0:"+cfg.Port)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("serving on port %s", cfg.Port)
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// graceful shutdown
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
