// Package app wires one provider's tool table into a runnable MCP server.
// The three provider executables differ only in the Options they pass here.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpGoServer "github.com/mark3labs/mcp-go/server"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"sportsbridge/configs"
	"sportsbridge/internal/adapter/inbound/admin"
	"sportsbridge/internal/adapter/outbound/httpexec"
	"sportsbridge/internal/adapter/outbound/reqbuilder"
	"sportsbridge/internal/adapter/outbound/specrepo"
	"sportsbridge/internal/domain"
	"sportsbridge/internal/normalizer"
	"sportsbridge/internal/usecase"
)

// Options selects which provider a server process serves.
type Options struct {
	// ServerName is the MCP server name advertised to hosts.
	ServerName string
	// Version is the advertised server version.
	Version string
	// ProviderID picks the upstream provider configuration.
	ProviderID string
	// Specs is the provider's tool table.
	Specs []domain.ToolSpec
}

// Run is the shared entry point of the provider executables. It parses flags,
// loads configuration, wires the dispatch pipeline, registers the tool table,
// and serves the selected transport until interrupted.
func Run(opts Options) {
	var transport string
	flag.StringVar(&transport, "transport", "stdio", "Transport mode: stdio or sse")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	cfg, err := configs.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg, transport)
	slog.SetDefault(logger)
	logger.Info("Logger initialized.",
		slog.String("level", cfg.ParsedLogLevel().String()),
		slog.String("transport", transport),
		slog.String("provider", opts.ProviderID))

	shutdownOtel, err := initOtelProvider(cfg, opts.ServerName)
	if err != nil {
		logger.Error("Failed to initialize OpenTelemetry.", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := shutdownOtel(context.Background()); err != nil {
			logger.Error("Failed to shutdown OpenTelemetry TracerProvider.", slog.Any("error", err))
		}
	}()

	// Credential resolution failures abort before anything is served.
	providerCfg, err := cfg.ResolveProvider(opts.ProviderID)
	if err != nil {
		logger.Error("Provider configuration invalid.", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	mcpSrv := mcpGoServer.NewMCPServer(
		opts.ServerName,
		opts.Version,
		mcpGoServer.WithToolCapabilities(true),
	)

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	repo := specrepo.New(logger)
	builder := reqbuilder.New()
	executor := httpexec.New(httpClient, logger)
	norm := normalizer.New(cfg.MaxPayloadChars, logger)
	dispatcher := usecase.NewDispatcher(repo, builder, executor, norm, providerCfg, logger)
	registerUC := usecase.NewRegisterToolsUseCase(repo, dispatcher, norm, mcpSrv, logger)

	if err := registerUC.Execute(ctx, opts.Specs); err != nil {
		logger.Error("Tool registration failed.", slog.Any("error", err))
		os.Exit(1)
	}

	switch transport {
	case "stdio":
		logger.Info("Starting in STDIO mode")
		if err := mcpGoServer.ServeStdio(mcpSrv); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("STDIO server error", slog.Any("error", err))
			os.Exit(1)
		}

	case "sse":
		logger.Info("Starting in SSE mode")
		sseServer := mcpGoServer.NewSSEServer(mcpSrv,
			mcpGoServer.WithBaseURL("http://"+cfg.ListenAddr))

		adminMux := http.NewServeMux()
		admin.NewHandlers(repo, opts.ProviderID, logger).RegisterRoutes(adminMux)
		adminServer := &http.Server{Addr: cfg.AdminAddr, Handler: adminMux}
		go func() {
			logger.Info("Admin HTTP server starting.", slog.String("address", adminServer.Addr))
			if err := adminServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Admin HTTP server failed to start.", slog.Any("error", err))
			}
		}()

		go func() {
			logger.Info("MCP SSE server starting.", slog.String("address", cfg.ListenAddr))
			if err := sseServer.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("MCP SSE server failed to start.", slog.Any("error", err))
				stop()
			}
		}()

		<-ctx.Done()

		logger.Info("Shutting down servers...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := adminServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Admin HTTP server graceful shutdown failed.", slog.Any("error", err))
		}
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("MCP SSE server graceful shutdown failed.", slog.Any("error", err))
		}
		logger.Info("Servers shut down gracefully.")

	default:
		logger.Error("Invalid transport mode", slog.String("transport", transport))
		os.Exit(1)
	}
}

// newLogger builds the process logger. In stdio mode stdout carries the
// protocol stream, so logs go to the configured file instead of a terminal.
func newLogger(cfg *configs.Config, transport string) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.ParsedLogLevel()}
	if transport == "stdio" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return slog.New(slog.NewTextHandler(io.Discard, handlerOpts))
		}
		return slog.New(slog.NewTextHandler(logFile, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, handlerOpts))
}

// initOtelProvider initializes the OpenTelemetry SDK with an OTLP trace
// exporter. Without an endpoint configured it installs nothing and returns a
// no-op shutdown.
func initOtelProvider(cfg *configs.Config, serviceName string) (func(context.Context) error, error) {
	ctx := context.Background()

	if cfg.OtelExporterOtlpEndpoint == "" {
		slog.Info("OTEL_EXPORTER_OTLP_ENDPOINT not set, OpenTelemetry tracing disabled.")
		return func(context.Context) error { return nil }, nil
	}

	grpcOpts := []grpc.DialOption{}
	if cfg.OtelExporterOtlpInsecure {
		grpcOpts = append(grpcOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
		slog.Warn("Using insecure connection for OTLP exporter.")
	}

	conn, err := grpc.NewClient(cfg.OtelExporterOtlpEndpoint, grpcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to OTLP endpoint: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		_ = traceExporter.Shutdown(ctx)
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(r),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) error {
		providerErr := tp.Shutdown(ctx)
		connErr := conn.Close()
		return errors.Join(providerErr, connErr)
	}, nil
}
