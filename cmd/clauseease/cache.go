package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/clauseease/internal/cache"
)

func newCacheCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the model response cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached model response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := opts.cfg.CacheDir
			if err := cache.ClearDir(dir); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cache cleared: %s\n", dir)
			return nil
		},
	})
	return cmd
}
