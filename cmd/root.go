package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/greenslot/app"
	"github.com/kilianp07/greenslot/config"
)

type rootOptions struct {
	cfgPath string
	// extra service options, used by tests.
	svcOpts []app.Option
}

// NewRootCmd builds the greenslot command tree.
func NewRootCmd(svcOpts ...app.Option) *cobra.Command {
	opts := &rootOptions{svcOpts: svcOpts}
	root := &cobra.Command{
		Use:           "greenslot",
		Short:         "Delivery slot scheduler favouring green days",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "", "configuration file (yaml or json)")
	root.AddCommand(newScheduleCmd(opts), newValidateCmd(opts), newSlotsCmd(opts), newServeCmd(opts))
	return root
}

// Execute runs the CLI.
func Execute() error { return NewRootCmd().Execute() }

func (o *rootOptions) config() (*config.Config, error) {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (o *rootOptions) service(cfg *config.Config, extra ...app.Option) (*app.Service, error) {
	opts := append(append([]app.Option{}, o.svcOpts...), extra...)
	return app.New(cfg, opts...)
}

// parseDate reads a YYYY-MM-DD flag value in the configured zone.
func parseDate(value string, cfg *config.Config) (time.Time, error) {
	loc, err := cfg.Scheduler.Location()
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return t, nil
}
