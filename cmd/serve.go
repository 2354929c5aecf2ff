package cmd

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/greenslot/api/slots"
	"github.com/kilianp07/greenslot/infra/logger"
	"github.com/kilianp07/greenslot/infra/metrics"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve committed slots and metrics over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.API.Addr = addr
			}
			svc, err := root.service(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			mux := http.NewServeMux()
			mux.Handle("/api/slots", slots.NewHandler(svc, cfg.API.Token))
			mux.Handle("/metrics", metrics.Handler())
			return metrics.Serve(ctx, cfg.API.Addr, mux, logger.New("api"))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides api.addr")
	return cmd
}
