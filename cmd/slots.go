package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/greenslot/core/model"
	"github.com/kilianp07/greenslot/core/snapshot"
)

type slotsOptions struct {
	from, to string
	product  string
}

func newSlotsCmd(root *rootOptions) *cobra.Command {
	opts := &slotsOptions{}
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List the delivery slots kept in the snapshot store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			var q snapshot.Query
			if opts.from != "" {
				if q.Start, err = parseDate(opts.from, cfg); err != nil {
					return err
				}
			}
			if opts.to != "" {
				end, err := parseDate(opts.to, cfg)
				if err != nil {
					return err
				}
				q.End = end.AddDate(0, 0, 1)
			}
			if opts.product != "" {
				q.ProductID = model.ProductID(opts.product)
			}
			svc, err := root.service(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()
			slots, err := svc.Slots(cmd.Context(), q)
			if err != nil {
				return err
			}
			loc, err := cfg.Scheduler.Location()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "BEGIN\tEND\tGREEN\tPRODUCT")
			for _, s := range slots {
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n",
					s.Begin.In(loc).Format(time.RFC3339), s.End.In(loc).Format(time.RFC3339), s.Green, s.ProductID)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&opts.from, "from", "", "first day to list (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "last day to list (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.product, "product", "", "only slots of this product name")
	return cmd
}
