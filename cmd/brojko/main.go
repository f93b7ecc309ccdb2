// Command brojko is the main entry point for the brojko voice-resolution server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/0x0all/brojko/internal/config"
	"github.com/0x0all/brojko/internal/httpapi"
	"github.com/0x0all/brojko/internal/observe"
	"github.com/0x0all/brojko/internal/ready"
	"github.com/0x0all/brojko/internal/selection"
	"github.com/0x0all/brojko/pkg/provider/enum"
	"github.com/0x0all/brojko/pkg/provider/enum/device"
	"github.com/0x0all/brojko/pkg/provider/enum/mock"
	"github.com/0x0all/brojko/pkg/provider/enum/piper"
	"github.com/0x0all/brojko/pkg/voice"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "brojko: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "brojko: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("brojko starting",
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
		"provider", cfg.Platform.Provider,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName: "brojko",
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()
	metrics := observe.DefaultMetrics()

	// ── Platform enumerator ───────────────────────────────────────────────────
	enumerator, err := buildEnumerator(cfg)
	if err != nil {
		slog.Error("failed to create enumerator", "err", err)
		return 1
	}

	// ── Wait for the platform's voice table ───────────────────────────────────
	slog.Info("waiting for platform readiness",
		"attempts", cfg.Readiness.Attempts,
		"interval", cfg.Readiness.Interval,
	)
	if err := ready.Wait(ctx, enumerator, cfg.Readiness.Attempts, cfg.Readiness.IntervalDuration()); err != nil {
		slog.Error("platform never became ready", "err", err)
		return 1
	}

	// ── Snapshot the voice inventory ──────────────────────────────────────────
	start := time.Now()
	raws, err := enumerator.ListVoices(ctx)
	if err != nil {
		slog.Error("failed to enumerate voices", "err", err)
		return 1
	}
	metrics.EnumerationDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("provider", string(cfg.Platform.Provider))))

	catalog, err := voice.NewCatalog(enum.Records(raws))
	if err != nil {
		slog.Error("failed to build voice catalog", "err", err)
		return 1
	}
	metrics.VoicesIndexed.Add(ctx, int64(catalog.Len()))
	slog.Info("voice catalog built", "voices", catalog.Len())

	// ── Resolve the configured languages ──────────────────────────────────────
	start = time.Now()
	for _, tag := range cfg.Languages {
		ids, match := catalog.Resolve(tag)
		metrics.RecordResolution(ctx, tag, match.String())
		slog.Info("language resolved", "language", tag, "match", match, "voices", len(ids))
	}
	grouped := voice.GroupByLanguage(catalog, cfg.Languages)
	metrics.ResolutionDuration.Record(ctx, time.Since(start).Seconds())

	// ── Selection store (optional) ────────────────────────────────────────────
	apiOpts := []httpapi.Option{
		httpapi.WithReadyChecks(httpapi.Checker{
			Name:  "platform",
			Check: enumerator.AwaitReady,
		}),
	}
	if cfg.Selections.PostgresDSN != "" {
		store, err := selection.NewStore(ctx, cfg.Selections.PostgresDSN)
		if err != nil {
			slog.Error("failed to open selection store", "err", err)
			return 1
		}
		defer store.Close()
		apiOpts = append(apiOpts,
			httpapi.WithSelectionStore(store),
			httpapi.WithReadyChecks(httpapi.Checker{
				Name:  "selections",
				Check: store.Ping,
			}),
		)
		slog.Info("selection store connected")
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	httpapi.New(catalog, grouped, apiOpts...).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ── Startup summary ───────────────────────────────────────────────────────
	printStartupSummary(cfg, catalog.Len())
	slog.Info("server ready — press Ctrl+C to shut down", "listen_addr", cfg.Server.ListenAddr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		slog.Info("shutdown signal received, stopping…")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// ── Enumerator wiring ─────────────────────────────────────────────────────────

// buildEnumerator creates the voice-enumeration backend named in cfg.
func buildEnumerator(cfg *config.Config) (enum.Enumerator, error) {
	switch cfg.Platform.Provider {
	case config.ProviderPiper:
		return piper.New(cfg.Platform.URL)
	case config.ProviderDevice:
		return device.New(cfg.Platform.URL)
	case config.ProviderMock:
		return &mock.Enumerator{}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Platform.Provider)
	}
}

// ── Startup summary ───────────────────────────────────────────────────────────

func printStartupSummary(cfg *config.Config, voices int) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║          brojko — startup summary     ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	printRow("Provider", string(cfg.Platform.Provider))
	printRow("Platform URL", cfg.Platform.URL)
	printRow("Voices", fmt.Sprintf("%d", voices))
	printRow("Languages", fmt.Sprintf("%d", len(cfg.Languages)))
	if cfg.Selections.PostgresDSN != "" {
		printRow("Selections", "enabled")
	} else {
		printRow("Selections", "(disabled)")
	}
	printRow("Listen addr", cfg.Server.ListenAddr)
	fmt.Println("╚═══════════════════════════════════════╝")
}

func printRow(label, value string) {
	if value == "" {
		value = "(not configured)"
	}
	if len(value) > 19 {
		value = value[:16] + "…"
	}
	fmt.Printf("║  %-14s  : %-19s ║\n", label, value)
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
