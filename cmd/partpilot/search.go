package main

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/partpilot/internal/domain/vehicle"
)

type searchOptions struct {
	year    int
	mk      string
	model   string
	engine  string
	offline bool
	asJSON  bool
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	so := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find parts for a repair",
		Long: "Search asks the lookup service for matching parts and caches the answer. " +
			"Offline, only a previously cached query (case-insensitive) can be answered.",
		Example: `  partpilot search "front brake pads" --year 2019 --make Ford --model F-150
  partpilot search "oil filter" --offline`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), opts, so, strings.Join(args, " "), cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.IntVar(&so.year, "year", 0, "vehicle model year")
	f.StringVar(&so.mk, "make", "", "vehicle make")
	f.StringVar(&so.model, "model", "", "vehicle model")
	f.StringVar(&so.engine, "engine", "", "engine, e.g. 5.0L V8")
	f.BoolVar(&so.offline, "offline", false, "answer from the offline cache only")
	f.BoolVar(&so.asJSON, "json", false, "print the raw JSON result")
	return cmd
}

// vehicle returns nil when no vehicle flag was set, or a validated vehicle otherwise.
func (so *searchOptions) vehicle(now time.Time) (*vehicle.Vehicle, error) {
	if so.year == 0 && so.mk == "" && so.model == "" && so.engine == "" {
		return nil, nil
	}
	v, err := vehicle.New(so.year, so.mk, so.model, so.engine, now)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func runSearch(ctx context.Context, opts *rootOptions, so *searchOptions, query string, out io.Writer) error {
	v, err := so.vehicle(time.Now())
	if err != nil {
		return err
	}

	a, err := openOneShot(ctx, opts)
	if err != nil {
		return err
	}
	defer a.close()

	switch {
	case so.offline:
		online := false
		a.conn.Force(&online)
	case a.cfg.Connectivity.ProbeIntervalSec > 0:
		a.conn.Probe(ctx)
	}

	res, err := a.services.Search.Search(ctx, nil, query, v)
	if err != nil {
		return err
	}
	res.Results = a.services.Affiliate.TagParts(res.Results)

	if so.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return renderOutcome(out, res)
}
