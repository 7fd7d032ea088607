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

	"bookgraph/internal/author"
	"bookgraph/internal/book"
	"bookgraph/internal/config"
	"bookgraph/internal/graph"
	"bookgraph/internal/httpx"
	"bookgraph/internal/platform/logging"
	"bookgraph/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	logger.Info("store connection OK", zap.String("driver", cfg.Store.Driver))

	handler, rl, err := newRouter(cfg, st, logger, prometheus.NewRegistry())
	if err != nil {
		_ = st.Close(context.Background())
		return err
	}
	defer rl.Close()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err = <-serveErr:
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	if closeErr := st.Close(shutdownCtx); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func newRouter(cfg *config.Config, st store.Store, logger *zap.Logger, reg *prometheus.Registry) (http.Handler, *httpx.RateLimitMiddleware, error) {
	bookService := book.NewService(st.Books(), logger.Named("book"))
	authorService := author.NewService(st.Authors(), logger.Named("author"))

	schema, err := graph.NewSchema(bookService, authorService, graph.Options{
		MaxDepth: cfg.MaxQueryDepth,
		Logger:   logger.Named("graphql"),
	})
	if err != nil {
		return nil, nil, err
	}

	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := httpx.NewMetrics(reg, "/graphql", "/healthz", "/readyz", "/metrics")

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			httpx.LoggerFrom(r).Warn("store not ready", zap.Error(err))
			httpx.JSONErrorWithRequest(r, w, http.StatusServiceUnavailable, "DATA_UNAVAILABLE", "store not ready", nil)
			return
		}
		httpx.JSONSuccessWithRequest(r, w, map[string]string{"status": "ready"})
	})
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	router.Handle("/graphql", graph.NewHandler(schema))

	rl := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	handler := httpx.Chain(router,
		httpx.RecoveryMiddleware(logger),
		httpx.RequestIDMiddleware(logger.Named("http")),
		httpx.AccessLogMiddleware(logger.Named("http")),
		metrics.Middleware,
		httpx.SecurityHeadersMiddleware,
		httpx.CORSMiddleware(cfg.AllowedOrigins),
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
		rl.Middleware,
	)
	return handler, rl, nil
}
