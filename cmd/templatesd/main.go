// Templatesd serves the Memex universe template catalog over MCP.
//
// The default command runs the web daemon: MCP over SSE and streamable HTTP,
// a REST view of the catalog, docs, and Prometheus metrics. The stdio
// subcommand runs the same MCP server over stdin/stdout for local clients.
//
// Usage:
//
//	# Start the web daemon on :8000
//	templatesd
//
//	# Configure via environment
//	PORT=9000 FIREBASE_ENABLED=false templatesd
//
//	# Run over stdio for a local MCP client
//	templatesd stdio
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/memex-universe/templatesd/internal/cache"
	"github.com/memex-universe/templatesd/internal/config"
	"github.com/memex-universe/templatesd/internal/firebase"
	"github.com/memex-universe/templatesd/internal/gitclone"
	httpserver "github.com/memex-universe/templatesd/internal/http"
	"github.com/memex-universe/templatesd/internal/logging"
	mcpserver "github.com/memex-universe/templatesd/internal/mcp"
	"github.com/memex-universe/templatesd/internal/telemetry"
	"github.com/memex-universe/templatesd/internal/template"
)

// Version information (set via ldflags during build)
var (
	version   = "0.1.0"
	gitCommit = "unknown"
	buildDate = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:     "templatesd",
	Short:   "MCP server for Memex universe templates",
	Long:    "templatesd serves the universe template catalog over MCP (SSE, streamable HTTP, and stdio) with a REST API alongside.",
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Run the MCP server on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStdio(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("templatesd\n")
		fmt.Printf("Version:    %s\n", version)
		fmt.Printf("Commit:     %s\n", gitCommit)
		fmt.Printf("Build Date: %s\n", buildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.config/templatesd/config.yaml)")
	rootCmd.AddCommand(stdioCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "templatesd: %v\n", err)
		os.Exit(1)
	}
}

// services bundles everything both transports need.
type services struct {
	cfg       *config.Config
	logger    *zap.Logger
	telemetry *telemetry.Telemetry
	mcp       *mcpserver.Server
	templates *template.Service
	cloner    *gitclone.Cloner
}

// buildServices loads config and wires the catalog service, cloner, and MCP
// server.
func buildServices(ctx context.Context) (*services, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	tel, err := telemetry.New(ctx, cfg.Observability, version)
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}
	if tel.Degraded() {
		logger.Warn("telemetry exporters degraded, continuing without export")
	}

	var source template.Source
	if cfg.Firebase.Enabled {
		client, err := firebase.NewClient(cfg.Firebase, logger.Named("firebase"))
		if err != nil {
			return nil, fmt.Errorf("initializing catalog backend: %w", err)
		}
		source = client
	} else {
		logger.Info("catalog backend disabled, serving seed templates only")
	}

	store := cache.New(cfg.Cache.TTL)
	templates, err := template.NewService(source, store, logger.Named("template"))
	if err != nil {
		return nil, fmt.Errorf("initializing template service: %w", err)
	}

	cloner, err := gitclone.NewCloner(cfg.Clone.DefaultBranch, cfg.Clone.Timeout, logger.Named("gitclone"))
	if err != nil {
		return nil, fmt.Errorf("initializing cloner: %w", err)
	}

	mcpSrv, err := mcpserver.NewServer(&mcpserver.Config{
		Name:    config.ServerName,
		Version: version,
		Logger:  logger.Named("mcp"),
	}, templates, cloner)
	if err != nil {
		return nil, fmt.Errorf("initializing MCP server: %w", err)
	}

	return &services{
		cfg:       cfg,
		logger:    logger,
		telemetry: tel,
		mcp:       mcpSrv,
		templates: templates,
		cloner:    cloner,
	}, nil
}

// runServe starts the web daemon and blocks until shutdown.
func runServe(ctx context.Context) error {
	svcs, err := buildServices(ctx)
	if err != nil {
		return err
	}
	defer logging.Sync(svcs.logger)

	logger := svcs.logger
	cfg := svcs.cfg

	srv, err := httpserver.NewServer(cfg.Server, version, svcs.templates, svcs.cloner, svcs.mcp, logger.Named("http"))
	if err != nil {
		return fmt.Errorf("initializing http server: %w", err)
	}

	logger.Info("templatesd starting",
		zap.String("version", version),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Bool("firebase", cfg.Firebase.Enabled))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", zap.Error(err))
		}
		if err := svcs.telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("templatesd shutdown complete")
	return nil
}

// runStdio serves MCP over stdin/stdout. Logs go to stderr so stdout stays
// clean for protocol frames.
func runStdio(ctx context.Context) error {
	svcs, err := buildServices(ctx)
	if err != nil {
		return err
	}
	defer logging.Sync(svcs.logger)

	fmt.Fprintln(os.Stderr, "templatesd stdio mode started")

	if err := svcs.mcp.Run(ctx); err != nil {
		return fmt.Errorf("stdio server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), svcs.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := svcs.telemetry.Shutdown(shutdownCtx); err != nil {
		svcs.logger.Warn("telemetry shutdown failed", zap.Error(err))
	}

	svcs.logger.Info("stdio server shutdown complete")
	return nil
}
