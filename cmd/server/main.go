package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stockproxy/internal/config"
	"stockproxy/internal/httpx"
	"stockproxy/internal/lookup"
	"stockproxy/internal/mockdata"
	"stockproxy/internal/provider/alphavantage"
	"stockproxy/internal/provider/alphavantageadapter"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if cfg.AlphaVantage.APIKey == "" {
		logger.Warn("ALPHA_VANTAGE_API_KEY not set; lookups outside the mock table will fail")
	}

	httpClient := httpx.New(cfg.AlphaVantage.CallTimeout())
	avClient, err := alphavantage.NewAlphaVantageAPIClient(
		cfg.AlphaVantage.APIKey,
		alphavantage.WithHTTPClient(httpClient),
		alphavantage.WithBaseURL(cfg.AlphaVantage.BaseURL),
	)
	if err != nil {
		logger.Fatal("alpha vantage client", zap.Error(err))
	}
	av := alphavantageadapter.New(alphavantageadapter.Config{OutputSize: cfg.AlphaVantage.OutputSize}, avClient)

	table := mockdata.New()
	logger.Info("mock data loaded", zap.Strings("symbols", table.Symbols()), zap.Int("points", mockdata.HistoryLength))

	dispatcher := lookup.New(table, av,
		lookup.WithCallTimeout(cfg.AlphaVantage.CallTimeout()),
		lookup.WithLogger(logger.Named("lookup")),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           newHandler(dispatcher, logger.Named("http"), cfg.Server.RequestTimeout()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Server.RequestTimeout() + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config := zap.Config{
		Level:            lvl,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return config.Build()
}
