package cli

import (
	"context"
	"net"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"wordstat-go/internal/sandbox"
	"wordstat-go/pkg/logger"
)

func (a *app) sandboxCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Serve a local emulation of the Wordstat API",
		Long: `Serve a local emulation of the Wordstat API methods.

Point the other commands at it with --url http://<addr>` + sandbox.Path + `.
Tokens, report delay and queue size come from the sandbox section of the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config.Sandbox
			if addr == "" {
				addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
			}

			srv := sandbox.New(sandbox.Config{
				Tokens:     cfg.Tokens,
				ReadyAfter: cfg.ReadyAfter,
				MaxReports: cfg.MaxReports,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serveUntilDone(ctx, srv, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default sandbox.host:sandbox.port)")
	return cmd
}

// serveUntilDone serves until ctx is cancelled or the listener fails
func serveUntilDone(ctx context.Context, srv *sandbox.Server, addr string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Listen(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.GetLogger().Info("Shutting down sandbox")
		return srv.Shutdown()
	})
	return g.Wait()
}
