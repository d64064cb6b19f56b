package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/innkeeper/internal/api"
	"github.com/mmynk/innkeeper/internal/config"
	"github.com/mmynk/innkeeper/internal/metrics"
	"github.com/mmynk/innkeeper/internal/middleware"
	"github.com/mmynk/innkeeper/internal/service"
	"github.com/mmynk/innkeeper/internal/storage"
	"github.com/mmynk/innkeeper/pkg/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// Logging is not configured yet
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	stores, err := openBackends(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer stores.Close()
	slog.Info("Storage initialized", "backend", cfg.Storage.Backend, "location", stores.location)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	opts := []service.Option{
		service.WithMetrics(m),
		service.WithCorruptionHandler(func(err *storage.CorruptError) {
			// Already logged by the store; keep a louder trace for operators
			slog.Error("Persisted data was unreadable and has been reset", "store", err.Store, "location", err.Location)
		}),
	}
	customers := service.NewCustomerStore(stores.customers, opts...)
	hotels := service.NewHotelStore(stores.hotels, customers, opts...)
	reservations := service.NewReservationService(hotels, customers)

	mux := http.NewServeMux()
	api.New(hotels, customers, reservations).Register(mux, connect.WithInterceptors(middleware.LoggingInterceptor()))
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	handler := middleware.Logging(middleware.CORS(mux))

	// h2c serves HTTP/2 without TLS alongside HTTP/1.1
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("Server starting", "address", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
