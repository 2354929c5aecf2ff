package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/greenslot/app"
	"github.com/kilianp07/greenslot/core/catalog"
	"github.com/kilianp07/greenslot/pkg/export"
)

type scheduleOptions struct {
	catalog string
	today   string
	format  string
	linger  time.Duration
}

func newScheduleCmd(root *rootOptions) *cobra.Command {
	opts := &scheduleOptions{}
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Assign delivery slots to the products of a catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "product catalog file (yaml or json)")
	cmd.Flags().StringVar(&opts.today, "today", "", "schedule as if today were YYYY-MM-DD")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format: json or csv")
	cmd.Flags().DurationVar(&opts.linger, "linger", 0, "keep the metrics endpoint up for this long after the run")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func runSchedule(cmd *cobra.Command, root *rootOptions, opts *scheduleOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	products, err := catalog.Load(opts.catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	cfg, err := root.config()
	if err != nil {
		return err
	}
	var extra []app.Option
	if opts.today != "" {
		today, err := parseDate(opts.today, cfg)
		if err != nil {
			return err
		}
		extra = append(extra, app.WithClock(func() time.Time { return today }))
	}
	svc, err := root.service(cfg, extra...)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	metricsCtx, cancelMetrics := context.WithCancel(ctx)
	defer cancelMetrics()
	served := make(chan error, 1)
	go func() { served <- svc.ServeMetrics(metricsCtx) }()

	res, err := svc.Schedule(ctx, products)
	if err != nil {
		return err
	}
	if err := export.Write(cmd.OutOrStdout(), opts.format, res.Schedule); err != nil {
		return err
	}
	for _, p := range res.Rejected {
		fmt.Fprintf(cmd.ErrOrStderr(), "rejected: %s: %s\n", p, p.InvalidReason())
	}
	for _, p := range res.Unscheduled {
		fmt.Fprintf(cmd.ErrOrStderr(), "unscheduled: %s\n", p)
	}
	for _, p := range products {
		if slot, ok := res.Booked[p.ID()]; ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "booked: %s at %s\n", p, slot.Begin.UTC().Format(time.RFC3339))
			delete(res.Booked, p.ID())
		}
	}

	if opts.linger > 0 && cfg.Metrics.PrometheusAddr != "" {
		select {
		case <-ctx.Done():
		case <-time.After(opts.linger):
		case err := <-served:
			return err
		}
	}
	return nil
}
