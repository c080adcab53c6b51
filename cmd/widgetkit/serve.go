package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/widgetkit/internal/preview"
	"github.com/vango-dev/widgetkit/pkg/frame"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live preview server",
		Long: `Serve the widgets to a browser. The page mirrors the document
kept by the server; clicks and input are sent back over a websocket and
every render pass streams its mutations to the page.

Examples:
  widgetkit serve
  widgetkit serve --port=8080
  widgetkit serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Preview.Port = port
			}
			if host != "" {
				cfg.Preview.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := newLogger(cfg.Log, cmd.ErrOrStderr())

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			loop := frame.NewLoop(cfg.FrameRate, logger)
			a, err := newApp(cfg, appOptions{frames: loop, logger: logger, animate: true})
			if err != nil {
				return err
			}
			srv := preview.New(a.doc, loop, preview.Config{
				Title:    cfg.Name,
				Logger:   logger,
				Registry: a.registry,
			})
			loop.AfterFrame(srv.Flush)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return loop.Run(gctx)
			})
			g.Go(func() error {
				select {
				case <-loop.Started():
				case <-gctx.Done():
					return nil
				}
				return srv.Serve(gctx, cfg.Address())
			})

			fmt.Fprintf(cmd.OutOrStdout(), "preview at http://%s\n", cfg.Address())
			return g.Wait()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	return cmd
}
