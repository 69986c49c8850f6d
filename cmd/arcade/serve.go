package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/arcade-loop/internal/platform/tui"
	"github.com/vovakirdan/arcade-loop/internal/platform/web"
)

// Environment variables read by serve, optionally from a .env file. Flags
// given on the command line take precedence.
const (
	envHTTPAddr = "ARCADE_HTTP_ADDR"
	envSSHAddr  = "ARCADE_SSH_ADDR"
	envBoard    = "ARCADE_BOARD"
)

var (
	flagHTTPAddr    string
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagEnvFile     string
	flagWatch       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the leaderboard web service and the SSH arcade",
	Long: `Serve the leaderboard over HTTP and, with --ssh, the arcade over SSH.

HTTP API:
  POST /api/save-name          {"name"}
  POST /api/save-score         {"game","name","score"}
  GET  /api/leaderboard?game=  top 5 as JSON
  GET  /api/leaderboard/live?game=  websocket feed of the top 5

Each SSH connection gets its own menu session; the SSH user name is the
player name. Both share the --board leaderboard. Game configs are reloaded
when their YAML files change.

Settings may come from a .env file:
  ARCADE_HTTP_ADDR, ARCADE_SSH_ADDR, ARCADE_BOARD

Examples:
  arcade serve
  arcade serve --http :8080 --ssh :23234
  arcade serve --board sqlite:/var/lib/arcade/board.db
  arcade serve --env-file /etc/arcade.env`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP listen address (empty disables)")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH listen address, e.g. :23234 (empty disables)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting SSH users")
	serveCmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "Environment file to load if present")
	serveCmd.Flags().BoolVar(&flagWatch, "watch", true, "Reload game configs when their files change")
}

// envDefault replaces an unset flag with the environment variable, if any.
func envDefault(cmd *cobra.Command, flag, env string, dst *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v, ok := os.LookupEnv(env); ok {
		*dst = v
	}
}

func runServe(cmd *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	})

	if err := godotenv.Load(flagEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fail("loading %s: %v", flagEnvFile, err)
	}
	envDefault(cmd, "http", envHTTPAddr, &flagHTTPAddr)
	envDefault(cmd, "ssh", envSSHAddr, &flagSSHAddr)
	envDefault(cmd, "board", envBoard, &flagBoard)

	if flagHTTPAddr == "" && flagSSHAddr == "" {
		fail("nothing to serve: set --http or --ssh")
	}

	board := openBoard(true)
	defer board.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	opts := hostOptions(board, logger.WithPrefix("ssh"))

	if flagHTTPAddr != "" {
		srv := web.New(board, logger.WithPrefix("http"))
		g.Go(func() error {
			return srv.ListenAndServe(ctx, flagHTTPAddr)
		})
	}

	if flagSSHAddr != "" {
		cfg := tui.DefaultSSHServerConfig()
		cfg.Address = flagSSHAddr
		cfg.HostKeyPath = flagHostKey
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		srv, err := tui.NewSSHServer(cfg, opts)
		if err != nil {
			fail("creating SSH server: %v", err)
		}
		g.Go(func() error {
			return srv.ListenAndServe(ctx)
		})
	}

	if flagWatch {
		g.Go(func() error {
			return opts.Config.Watch(ctx, logger.WithPrefix("config"), nil)
		})
	}

	logger.Info("arcade serving", "http", flagHTTPAddr, "ssh", flagSSHAddr, "board", flagBoard)
	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}
