package cmd

import (
	"context"
	"fmt"
	"time"

	"syncflow-curator/internal/config"
	"syncflow-curator/internal/curate"
	"syncflow-curator/internal/feed"
	"syncflow-curator/internal/redisclient"
	"syncflow-curator/internal/storage"
	"syncflow-curator/worker"

	"github.com/spf13/cobra"
)

var (
	curateOutput  string
	curateSources string
)

// curateCmd runs one curation pass and writes the ranked collection.
var curateCmd = &cobra.Command{
	Use:   "curate",
	Short: "Fetch deal feeds once and write the curated collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		sources := cfg.Feeds.Sources
		if curateSources != "" {
			var err error
			sources, err = feed.LoadSources(curateSources)
			if err != nil {
				return err
			}
		}
		out := cfg.Curation.OutputPath
		if curateOutput != "" {
			out = curateOutput
		}

		w, cleanup, err := newCuratorWorker(cfg, sources, out)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := w.RunOnce(context.Background()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Curated collection written to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(curateCmd)
	curateCmd.Flags().StringVarP(&curateOutput, "output", "o", "", "output path (default from config)")
	curateCmd.Flags().StringVarP(&curateSources, "sources", "s", "", "optional YAML source list overriding the configured feeds")
}

// newCuratorWorker wires the feed client, curator and optional Redis store
// from configuration. The returned cleanup closes the Redis connection.
func newCuratorWorker(cfg config.Config, sources []feed.Source, out string) (*worker.CuratorWorker, func(), error) {
	timeout, err := time.ParseDuration(cfg.Feeds.Timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid feeds.timeout: %w", err)
	}
	rateDelay, err := time.ParseDuration(cfg.Feeds.RateDelay)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid feeds.rate_delay: %w", err)
	}
	interval, err := time.ParseDuration(cfg.Curation.Interval)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid curation.interval: %w", err)
	}

	w := &worker.CuratorWorker{
		Client: feed.NewClient(timeout, cfg.Feeds.Retries, rateDelay),
		Curator: &curate.Curator{
			MaxDeals:            cfg.Curation.MaxDeals,
			MaxPerCategory:      cfg.Curation.MaxPerCategory,
			SimilarityThreshold: cfg.Curation.SimilarityThreshold,
			AffiliateTag:        cfg.Curation.AffiliateTag,
		},
		Sources:    sources,
		OutputPath: out,
		Interval:   interval,
	}
	cleanup := func() {}
	if cfg.Redis.Addr != "" {
		rdb := redisclient.New(cfg.Redis)
		w.Store = storage.NewRedisStore(rdb)
		cleanup = func() { _ = rdb.Close() }
	}
	return w, cleanup, nil
}
