package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"syncflow-curator/worker"

	"github.com/spf13/cobra"
)

// serveCmd runs the curation worker on its configured interval.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the curation worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		w, cleanup, err := newCuratorWorker(cfg, cfg.Feeds.Sources, cfg.Curation.OutputPath)
		if err != nil {
			return err
		}
		defer cleanup()

		mgr := worker.NewManager(w)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("received signal, shutting down", "signal", s.String())
			cancel()
		}()

		slog.Info("starting curation worker", "sources", len(w.Sources), "interval", w.Interval.String())
		return mgr.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
