package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/netatlas/netatlas/internal/api"
	"github.com/netatlas/netatlas/internal/apiserver"
	"github.com/netatlas/netatlas/internal/config"
	"github.com/netatlas/netatlas/internal/lifecycle"
	"github.com/netatlas/netatlas/internal/logging"
	"github.com/netatlas/netatlas/internal/tracing"
	"github.com/netatlas/netatlas/internal/upstream"
)

var (
	configPath         string
	apiPort            int
	upstreamURL        string
	watchConfig        bool
	tracingEnabled     bool
	tracingEndpoint    string
	tracingTLSCAPath   string
	tracingTLSInsecure bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the NetAtlas server",
	Long: `Start the NetAtlas server which fetches topology snapshots from the
upstream scanner and serves the containment hierarchy over HTTP.`,
	Run: runServer,
}

func init() {
	serverCmd.Flags().StringVar(&configPath, "config", "", "Path to the YAML configuration file (optional)")
	serverCmd.Flags().IntVar(&apiPort, "api-port", 8080, "Port the API server listens on")
	serverCmd.Flags().StringVar(&upstreamURL, "upstream-url", "", "Base URL of the topology scanner service")
	serverCmd.Flags().BoolVar(&watchConfig, "watch-config", true, "Reload the configuration file on change")
	serverCmd.Flags().BoolVar(&tracingEnabled, "tracing-enabled", false, "Enable OpenTelemetry tracing")
	serverCmd.Flags().StringVar(&tracingEndpoint, "tracing-endpoint", "", "OTLP gRPC endpoint for traces (e.g., otel-collector:4317)")
	serverCmd.Flags().StringVar(&tracingTLSCAPath, "tracing-tls-ca", "", "Path to CA certificate for TLS verification (optional)")
	serverCmd.Flags().BoolVar(&tracingTLSInsecure, "tracing-tls-insecure", false, "Skip TLS certificate verification (insecure, use only for testing)")
}

func runServer(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	HandleError(err, "Failed to load configuration")
	applyFlagOverrides(cmd, cfg)
	HandleError(cfg.Validate(), "Invalid configuration")

	HandleError(setupLog(cfg.LogLevel), "Failed to initialize logging")
	logger := logging.GetLogger("server")

	tracingProvider, err := tracing.NewProvider(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		TLSCAPath:   cfg.Tracing.TLSCAPath,
		TLSInsecure: cfg.Tracing.TLSInsecure,
		Version:     Version,
	})
	HandleError(err, "Failed to initialize tracing")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	client, err := upstream.NewClient(upstream.Config{
		BaseURL:   cfg.UpstreamURL,
		Timeout:   cfg.UpstreamTimeout,
		CacheSize: cfg.SnapshotCacheSize,
		CacheTTL:  cfg.SnapshotCacheTTL,
	}, upstream.NewMetrics(registry), tracingProvider.GetTracer("netatlas.upstream"))
	HandleError(err, "Failed to create upstream client")

	apiMetrics := api.NewMetrics(registry)
	service := api.NewHierarchyService(client, cfg.Defaults.Policy(), apiMetrics,
		tracingProvider.GetTracer("netatlas.api"))
	server := apiserver.New(cfg.APIPort, service, apiMetrics, registry, nil)

	manager := lifecycle.NewManager()
	HandleError(manager.Register(tracingProvider), "Failed to register tracing provider")
	HandleError(manager.Register(server), "Failed to register API server")

	if configPath != "" && watchConfig {
		watcher, err := config.NewWatcher(configPath, func(next *config.Config) error {
			service.SetDefaults(next.Defaults.Policy())
			client.Purge()
			logger.Info("Configuration reloaded, defaults updated and snapshot cache purged")
			return nil
		})
		HandleError(err, "Failed to create config watcher")
		HandleError(manager.Register(watcher), "Failed to register config watcher")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	HandleError(manager.Start(ctx), "Failed to start components")
	logger.Info("NetAtlas %s ready on port %d (upstream: %s)", Version, cfg.APIPort, cfg.UpstreamURL)

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	if err := manager.Stop(context.Background()); err != nil {
		logger.Error("Shutdown error: %v", err)
	}
}

// applyFlagOverrides layers explicitly set CLI flags over the file config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("api-port") {
		cfg.APIPort = apiPort
	}
	if cmd.Flags().Changed("upstream-url") {
		cfg.UpstreamURL = upstreamURL
	}
	if cmd.Flags().Changed("tracing-enabled") {
		cfg.Tracing.Enabled = tracingEnabled
	}
	if cmd.Flags().Changed("tracing-endpoint") {
		cfg.Tracing.Endpoint = tracingEndpoint
	}
	if cmd.Flags().Changed("tracing-tls-ca") {
		cfg.Tracing.TLSCAPath = tracingTLSCAPath
	}
	if cmd.Flags().Changed("tracing-tls-insecure") {
		cfg.Tracing.TLSInsecure = tracingTLSInsecure
	}
	if cmd.Root().PersistentFlags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
}
