package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/greenslot/core/catalog"
)

// errInvalidCatalog is returned when at least one product cannot be scheduled.
var errInvalidCatalog = errors.New("catalog contains invalid products")

func newValidateCmd(root *rootOptions) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the products of a catalog against the delivery rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := catalog.Load(path)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			out := cmd.OutOrStdout()
			invalid := 0
			seen := make(map[string]bool)
			for _, p := range products {
				switch {
				case !p.IsValid():
					invalid++
					fmt.Fprintf(out, "INVALID %s: %s\n", p, p.InvalidReason())
				case seen[p.Name()]:
					fmt.Fprintf(out, "DUPLICATE %s\n", p)
				default:
					fmt.Fprintf(out, "OK %s\n", p)
				}
				seen[p.Name()] = true
			}
			fmt.Fprintf(out, "%d products, %d invalid\n", len(products), invalid)
			if invalid > 0 {
				return errInvalidCatalog
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "catalog", "", "product catalog file (yaml or json)")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}
