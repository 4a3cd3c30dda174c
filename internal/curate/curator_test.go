package curate

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"syncflow-curator/internal/model"
)

func testEntry(title, asin string) model.RawEntry {
	return model.RawEntry{
		Title:   title,
		Summary: fmt.Sprintf(`<p>Deal of the day.</p><img src="https://img.example.com/%s.jpg">`, asin),
		Link:    "https://www.amazon.com/dp/" + asin,
	}
}

func testCurator() *Curator {
	return &Curator{
		MaxDeals:            80,
		MaxPerCategory:      25,
		SimilarityThreshold: 0.85,
		AffiliateTag:        "syncflow-20",
		Now:                 func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func TestAddAcceptsAndPopulatesDeal(t *testing.T) {
	c := testCurator()
	run := c.NewRun()

	d, reason := run.Add(testEntry("Deal: Logitech MX Master Mouse (40% OFF) - $69.99", "B0AAAA0001"))
	if reason != SkipNone {
		t.Fatalf("unexpected skip: %s", reason)
	}
	if d.ID != "B0AAAA0001" {
		t.Errorf("id = %q", d.ID)
	}
	if d.Title != "Logitech MX Master Mouse" {
		t.Errorf("title = %q", d.Title)
	}
	if d.Price != "$69.99" {
		t.Errorf("price = %q", d.Price)
	}
	if d.Discount != 40 {
		t.Errorf("discount = %d", d.Discount)
	}
	if d.Category != "Tech" {
		t.Errorf("category = %q", d.Category)
	}
	if d.Score != 2 { // discount >= 30; price above 50; no quality words
		t.Errorf("score = %d, want 2", d.Score)
	}
	if d.Rating != model.UnknownRating || d.Reviews != model.UnknownRating {
		t.Errorf("rating/reviews = %q/%q, want sentinel", d.Rating, d.Reviews)
	}
	if d.Image != "https://img.example.com/B0AAAA0001.jpg" {
		t.Errorf("image = %q", d.Image)
	}
	if !strings.Contains(d.URL, "tag=syncflow-20") {
		t.Errorf("url missing affiliate tag: %q", d.URL)
	}
	if d.Timestamp != 1700000000 {
		t.Errorf("timestamp = %d", d.Timestamp)
	}
}

func TestAddUsesPriceSentinelWhenAbsent(t *testing.T) {
	c := testCurator()
	run := c.NewRun()

	d, reason := run.Add(testEntry("Nintendo Switch OLED Console", "B0AAAA0002"))
	if reason != SkipNone {
		t.Fatalf("unexpected skip: %s", reason)
	}
	if d.Price != model.UnknownPrice {
		t.Errorf("price = %q, want %q", d.Price, model.UnknownPrice)
	}
	if d.Score != 0 {
		t.Errorf("score = %d, want 0", d.Score)
	}
}

func TestAddSkipReasons(t *testing.T) {
	c := testCurator()
	run := c.NewRun()

	// No recognizable product link anywhere.
	_, reason := run.Add(model.RawEntry{Title: "X", Summary: "plain text", Link: "https://example.com/x"})
	if reason != SkipNoProductLink {
		t.Errorf("no link: got %s", reason)
	}

	// Retailer link without an identifier run.
	_, reason = run.Add(model.RawEntry{Title: "X", Summary: "", Link: "https://www.amazon.com/deals/today"})
	if reason != SkipNoIdentifier {
		t.Errorf("no identifier: got %s", reason)
	}

	if _, reason = run.Add(testEntry("Logitech MX Master Mouse", "B0AAAA0001")); reason != SkipNone {
		t.Fatalf("seed entry rejected: %s", reason)
	}

	// Exact identifier collision wins over everything else.
	_, reason = run.Add(testEntry("Completely Different Product", "B0AAAA0001"))
	if reason != SkipDuplicateID {
		t.Errorf("duplicate id: got %s", reason)
	}

	// Distinct identifier but near-identical title.
	_, reason = run.Add(testEntry("Logitech MX Master Mouse v2", "B0AAAA0009"))
	if reason != SkipDuplicateTitle {
		t.Errorf("duplicate title: got %s", reason)
	}
}

func TestAddEnforcesCategoryCap(t *testing.T) {
	c := testCurator()
	c.MaxPerCategory = 1
	run := c.NewRun()

	if _, reason := run.Add(testEntry("Samsung 990 Pro SSD 2TB", "B0AAAA0001")); reason != SkipNone {
		t.Fatalf("first Tech entry rejected: %s", reason)
	}
	_, reason := run.Add(testEntry("Dell 27in 4K Monitor", "B0AAAA0002"))
	if reason != SkipCategoryFull {
		t.Fatalf("second Tech entry: got %s, want %s", reason, SkipCategoryFull)
	}
	// A different category is still open.
	if _, reason := run.Add(testEntry("Dog Leash Heavy Duty", "B0AAAA0003")); reason != SkipNone {
		t.Fatalf("Pets entry rejected: %s", reason)
	}
}

func TestGlobalCapacity(t *testing.T) {
	c := testCurator()
	c.MaxDeals = 2
	run := c.NewRun()

	entries := []model.RawEntry{
		testEntry("Samsung 990 Pro SSD 2TB", "B0AAAA0001"),
		testEntry("Nintendo Switch OLED Console", "B0AAAA0002"),
		testEntry("Dog Leash Heavy Duty", "B0AAAA0003"),
	}
	if accepted := run.Consume(entries); accepted != 2 {
		t.Fatalf("accepted = %d, want 2", accepted)
	}
	if !run.Full() {
		t.Fatal("run should be full")
	}
	if _, reason := run.Add(testEntry("Robot Vacuum Cleaner", "B0AAAA0004")); reason != SkipCapacityReached {
		t.Fatalf("over-capacity add: got %s", reason)
	}
	if got := len(run.Finish()); got != 2 {
		t.Fatalf("final count = %d, want 2", got)
	}
}

func TestFinishSortsByScoreThenTimestamp(t *testing.T) {
	c := testCurator()
	var tick int64
	c.Now = func() time.Time {
		tick++
		return time.Unix(1700000000+tick, 0)
	}
	run := c.NewRun()

	// Scores: 0, 3 (price <= 10), 2 (price <= 25).
	for _, e := range []model.RawEntry{
		testEntry("Plain Widget Alpha", "B0AAAA0001"),
		testEntry("Bargain Gadget Pro - $5", "B0AAAA0002"),
		testEntry("Desk Organizer Tray - $20", "B0AAAA0003"),
	} {
		if _, reason := run.Add(e); reason != SkipNone {
			t.Fatalf("entry rejected: %s", reason)
		}
	}
	deals := run.Finish()
	want := []string{"B0AAAA0002", "B0AAAA0003", "B0AAAA0001"}
	for i, id := range want {
		if deals[i].ID != id {
			t.Errorf("deals[%d].ID = %s, want %s", i, deals[i].ID, id)
		}
	}
}

func TestFinishBreaksScoreTiesByRecency(t *testing.T) {
	c := testCurator()
	var tick int64
	c.Now = func() time.Time {
		tick++
		return time.Unix(1700000000+tick, 0)
	}
	run := c.NewRun()

	if _, reason := run.Add(testEntry("Plain Widget Alpha", "B0AAAA0001")); reason != SkipNone {
		t.Fatal("first entry rejected")
	}
	if _, reason := run.Add(testEntry("Garden Hose Reel", "B0AAAA0002")); reason != SkipNone {
		t.Fatal("second entry rejected")
	}
	deals := run.Finish()
	if deals[0].ID != "B0AAAA0002" || deals[1].ID != "B0AAAA0001" {
		t.Fatalf("tie order = [%s %s], want newest first", deals[0].ID, deals[1].ID)
	}
}

func TestCurateIsIdempotent(t *testing.T) {
	batches := [][]model.RawEntry{
		{
			testEntry("Deal: Logitech MX Master Mouse (40% OFF) - $69.99", "B0AAAA0001"),
			testEntry("Nintendo Switch OLED Console", "B0AAAA0002"),
		},
		{
			testEntry("Dog Leash Heavy Duty - $9.50", "B0AAAA0003"),
			testEntry("Nintendo Switch OLED Console", "B0AAAA0004"), // fuzzy duplicate
		},
	}

	out1, err := json.Marshal(model.Collection{Deals: testCurator().Curate(batches)})
	if err != nil {
		t.Fatal(err)
	}
	out2, err := json.Marshal(model.Collection{Deals: testCurator().Curate(batches)})
	if err != nil {
		t.Fatal(err)
	}
	if string(out1) != string(out2) {
		t.Fatalf("output not idempotent:\n%s\n%s", out1, out2)
	}

	var c model.Collection
	if err := json.Unmarshal(out1, &c); err != nil {
		t.Fatal(err)
	}
	if len(c.Deals) != 3 {
		t.Fatalf("deals = %d, want 3 (fuzzy duplicate dropped)", len(c.Deals))
	}
	seen := map[string]bool{}
	for _, d := range c.Deals {
		if seen[d.ID] {
			t.Errorf("duplicate id in output: %s", d.ID)
		}
		seen[d.ID] = true
	}
}
