package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/partpilot/internal/config"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	env     string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "partpilot",
		Short:         "PartPilot - auto parts search with an offline cache",
		Long:          "PartPilot finds replacement parts for a vehicle, keeps recent results for offline use and tracks repair jobs.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.env, "env", config.GetEnv(), "config environment (local, dev, prod)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging for one-shot commands")

	root.AddCommand(
		newServeCmd(opts),
		newSearchCmd(opts),
		newCacheCmd(opts),
		newVersionCmd(),
	)
	return root
}
