package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"syncflow-curator/internal/curate"
	"syncflow-curator/internal/extract"
	"syncflow-curator/internal/feed"
	"syncflow-curator/internal/model"

	"github.com/spf13/cobra"
)

// debugExtractCmd dumps per-entry extraction results for a feed, for
// diagnosing noisy sources.
var debugExtractCmd = &cobra.Command{
	Use:   "debug-extract <feed_url_or_path>",
	Short: "Debug: extract fields from each entry of a feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := args[0]

		var entries []model.RawEntry
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			cfg := GetConfig()
			timeout, err := time.ParseDuration(cfg.Feeds.Timeout)
			if err != nil {
				return fmt.Errorf("invalid feeds.timeout: %w", err)
			}
			c := feed.NewClient(timeout, cfg.Feeds.Retries, 0)
			entries, err = c.Fetch(context.Background(), arg)
			if err != nil {
				return err
			}
		} else {
			b, err := os.ReadFile(arg)
			if err != nil {
				return err
			}
			entries, err = feed.ParseEntries(string(b))
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		for i, e := range entries {
			f, err := extract.Fields(e)
			if err != nil {
				fmt.Fprintf(out, "%3d  skip: %v  title=%q\n", i, err, e.Title)
				continue
			}
			title := curate.NormalizeTitle(e.Title)
			price := f.Price
			if price == "" {
				price = model.UnknownPrice
			}
			fmt.Fprintf(out, "%3d  id=%-10s  price=%-8s  discount=%d%%  category=%s  score=%d\n",
				i, f.ID, price, f.Discount, curate.Categorize(title), curate.Score(price, f.Discount, title))
			fmt.Fprintf(out, "     title=%q\n", title)
		}
		fmt.Fprintf(out, "entries: %d\n", len(entries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(debugExtractCmd)
}
