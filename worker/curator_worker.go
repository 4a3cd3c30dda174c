package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sort"
	"time"

	"syncflow-curator/internal/curate"
	"syncflow-curator/internal/feed"
	"syncflow-curator/internal/model"
	"syncflow-curator/internal/storage"
)

// CuratorWorker runs the curation pipeline on an interval: fetch the
// configured feeds in priority order, curate, write the JSON collection and
// cache the snapshot.
type CuratorWorker struct {
	Client     *feed.Client
	Curator    *curate.Curator
	Sources    []feed.Source
	Store      *storage.RedisStore // optional; nil disables caching
	OutputPath string
	Interval   time.Duration
}

func (w *CuratorWorker) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 30 * time.Minute
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()

	// initial run
	if err := w.RunOnce(ctx); err != nil {
		slog.Error("curator: run failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if err := w.RunOnce(ctx); err != nil {
				slog.Error("curator: run failed", "error", err)
			}
		}
	}
}

// RunOnce performs a single curation pass. Per-source fetch failures are
// logged and skipped; whatever was accepted is still emitted. The only
// returned errors are writing the output file or caching the snapshot.
func (w *CuratorWorker) RunOnce(ctx context.Context) error {
	run := w.Curator.NewRun()
	for _, src := range w.Sources {
		if run.Full() {
			slog.Info("curator: capacity reached, skipping remaining sources")
			break
		}
		entries, err := w.Client.Fetch(ctx, src.URL)
		if err != nil {
			slog.Error("curator: fetch failed", "source", src.Name, "error", err)
			continue
		}
		accepted := run.Consume(entries)
		slog.Info("curator: source processed", "source", src.Name, "entries", len(entries), "accepted", accepted)
	}
	deals := run.Finish()

	if err := WriteCollection(w.OutputPath, deals); err != nil {
		return err
	}
	if w.Store != nil {
		period := time.Now().UTC().Format("2006-01-02")
		if err := w.Store.SaveSnapshot(ctx, period, deals); err != nil {
			return err
		}
	}
	logBreakdown(run.Breakdown(), len(deals), w.OutputPath)
	return nil
}

// WriteCollection writes the ranked collection to path as indented JSON in
// the {"deals": [...]} envelope.
func WriteCollection(path string, deals []model.Deal) error {
	b, err := json.MarshalIndent(model.Collection{Deals: deals}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func logBreakdown(counts map[string]int, total int, path string) {
	cats := make([]string, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		slog.Info("curator: category breakdown", "category", c, "deals", counts[c])
	}
	slog.Info("curator: saved deals", "total", total, "output", path)
}
