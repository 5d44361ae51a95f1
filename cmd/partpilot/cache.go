package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newCacheCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the offline search cache",
	}
	cmd.AddCommand(newCacheListCmd(opts), newCacheClearCmd(opts))
	return cmd
}

func newCacheListCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached searches, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openOneShot(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.close()

			entries, err := a.services.Cache.Entries(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			return renderCache(cmd.OutOrStdout(), entries, time.Now())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON entries")
	return cmd
}

func newCacheClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openOneShot(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.services.Cache.Clear(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Offline cache cleared.")
			return err
		},
	}
}
