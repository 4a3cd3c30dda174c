package worker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"syncflow-curator/internal/curate"
	"syncflow-curator/internal/feed"
	"syncflow-curator/internal/model"
)

const dealsFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Deals</title>
    <item>
      <title>Deal: Logitech MX Master Mouse (40% OFF) - $69.99</title>
      <description>&lt;img src="https://img.example.com/mouse.jpg"&gt;</description>
      <link>https://www.amazon.com/dp/B0AAAA0001</link>
    </item>
    <item>
      <title>Dog Leash Heavy Duty - $9.50</title>
      <description>&lt;a href="https://www.amazon.com/dp/B0AAAA0002"&gt;go&lt;/a&gt;</description>
      <link>https://example.com/2</link>
    </item>
    <item>
      <title>No Product Here</title>
      <description>nothing</description>
      <link>https://example.com/3</link>
    </item>
  </channel>
</rss>`

func TestRunOnceWritesRankedCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(dealsFeed))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "deals.json")
	w := &CuratorWorker{
		Client: feed.NewClient(5*time.Second, 2, 0),
		Curator: &curate.Curator{
			MaxDeals:            80,
			MaxPerCategory:      25,
			SimilarityThreshold: 0.85,
			AffiliateTag:        "syncflow-20",
		},
		Sources:    []feed.Source{{Name: "test", URL: srv.URL}},
		OutputPath: out,
	}

	if err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce error: %v", err)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var c model.Collection
	if err := json.Unmarshal(b, &c); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if len(c.Deals) != 2 {
		t.Fatalf("deals = %d, want 2 (link-less entry skipped)", len(c.Deals))
	}
	// The $9.50 leash scores 3, the mouse 2.
	if c.Deals[0].ID != "B0AAAA0002" || c.Deals[1].ID != "B0AAAA0001" {
		t.Errorf("unexpected order: %s, %s", c.Deals[0].ID, c.Deals[1].ID)
	}
	for _, d := range c.Deals {
		if d.Rating != model.UnknownRating {
			t.Errorf("deal %s rating = %q, want sentinel", d.ID, d.Rating)
		}
	}
}

func TestRunOnceSurvivesDeadSource(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer dead.Close()
	alive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(dealsFeed))
	}))
	defer alive.Close()

	out := filepath.Join(t.TempDir(), "deals.json")
	w := &CuratorWorker{
		Client: feed.NewClient(time.Second, 1, 0),
		Curator: &curate.Curator{
			MaxDeals:            80,
			MaxPerCategory:      25,
			SimilarityThreshold: 0.85,
			AffiliateTag:        "syncflow-20",
		},
		Sources: []feed.Source{
			{Name: "dead", URL: dead.URL},
			{Name: "alive", URL: alive.URL},
		},
		OutputPath: out,
	}

	if err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce error: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var c model.Collection
	if err := json.Unmarshal(b, &c); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if len(c.Deals) != 2 {
		t.Fatalf("deals = %d, want 2 from the healthy source", len(c.Deals))
	}
}
