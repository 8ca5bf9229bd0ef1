package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gitamind/internal/server"
)

var (
	serveAddr string
	serveWarm bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serve POST /api/gita-search, POST /api/guide-llm and GET /health.

The source document is parsed on the first request and cached for the life of
the process. Use --warm to parse it before accepting requests.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveWarm, "warm", false, "parse the source document at startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	a, err := buildApp(cfg, GetRootDir(), false)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveWarm {
		if _, err := a.loader.LoadPassages(ctx); err != nil {
			slog.Warn("warm-up failed, will retry on first request", "err", err)
		}
	}

	slog.Info("starting gitamind",
		"addr", cfg.Server.Addr,
		"reranker", a.reranked,
		"providers", a.guide.Providers(),
	)

	return server.New(cfg.Server, a.retrieve, a.guide, cfg.Retrieve.TopK).Run(ctx)
}
