package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/masnyjimmy/asyncdocket/config"
	"github.com/masnyjimmy/asyncdocket/preview"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the AsyncAPI document with live reload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, _ := cmd.Flags().GetString("input")
			applyServeFlags(cmd, a.cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx, input)
		},
	}

	serveCmd.Flags().StringP("input", "i", "docket.yaml", "Docket file to watch")
	serveCmd.Flags().String("address", "", "Listen address (default from ASYNCDOCKET_ADDRESS or :8080)")
	serveCmd.Flags().String("base-url", "", "Path prefix of the preview routes")
	serveCmd.Flags().Duration("debounce", 0, "Delay before reloading after a file change")
	serveCmd.Flags().StringSlice("allowed-origins", nil, "CORS allowed origins")

	return serveCmd
}

func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("address") {
		cfg.Address, _ = flags.GetString("address")
	}
	if flags.Changed("base-url") {
		cfg.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("debounce") {
		cfg.Debounce, _ = flags.GetDuration("debounce")
	}
	if flags.Changed("allowed-origins") {
		cfg.AllowedOrigins, _ = flags.GetStringSlice("allowed-origins")
	}
}

func (a *app) serve(ctx context.Context, input string) error {
	log := a.log.WithField("input", input)

	document, err := loadDocument(input)
	if err != nil {
		return err
	}

	p, err := preview.New(document, preview.Options{
		BaseURL:        a.cfg.BaseURL,
		AllowedOrigins: a.cfg.AllowedOrigins,
	})
	if err != nil {
		return exitWith(exitCompile, err)
	}

	g, ctx := errgroup.WithContext(ctx)

	// event streams end with ctx so Shutdown does not wait on them
	server := &http.Server{
		Addr:        a.cfg.Address,
		Handler:     p.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g.Go(func() error {
		ui, _ := p.URLs()
		log.WithField("address", a.cfg.Address).Infof("serving preview at %v", ui)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sctx)
	})

	watcher, err := preview.WatchFile(input, a.cfg.Debounce)
	if err != nil {
		log.WithError(err).Warn("unable to watch for file updates")
	} else {
		g.Go(func() error {
			return watcher.Run(ctx)
		})
		g.Go(func() error {
			for err := range watcher.Updates() {
				if err != nil {
					log.WithError(err).Warn("watcher error")
					continue
				}
				a.reload(p, input)
			}
			return nil
		})
	}

	return g.Wait()
}

// reload keeps the last good document when the docket no longer compiles.
func (a *app) reload(p *preview.Preview, input string) {
	log := a.log.WithField("input", input)

	document, err := loadDocument(input)
	if err != nil {
		p.ReportFailure()
		log.WithError(err).Warn("unable to update document")
		return
	}

	if err := p.SetDocument(document); err != nil {
		log.WithError(err).Warn("unable to publish document")
		return
	}
	log.Info("document reloaded")
}
