// Package curate implements the deal curation pipeline: field extraction,
// title normalization, near-duplicate detection, categorization, scoring and
// capacity-aware ranking.
package curate

import (
	"sort"
	"strings"
	"time"

	"syncflow-curator/internal/extract"
	"syncflow-curator/internal/model"
)

// SkipReason explains why an entry was not accepted. Skips are expected
// steady-state outcomes, not errors; the run always continues.
type SkipReason string

const (
	SkipNone            SkipReason = ""
	SkipNoProductLink   SkipReason = "no_product_link"
	SkipNoIdentifier    SkipReason = "no_identifier"
	SkipNoImage         SkipReason = "no_image"
	SkipDuplicateID     SkipReason = "duplicate_id"
	SkipDuplicateTitle  SkipReason = "duplicate_title"
	SkipCategoryFull    SkipReason = "category_full"
	SkipCapacityReached SkipReason = "capacity_reached"
)

// Curator holds the fixed policy knobs for a curation pass.
type Curator struct {
	MaxDeals            int
	MaxPerCategory      int
	SimilarityThreshold float64
	AffiliateTag        string
	Now                 func() time.Time // defaults to time.Now
}

// State tracks per-run dedup and distribution bookkeeping. It is mutated
// only on acceptance, in strict entry order.
type State struct {
	seenIDs    map[string]struct{}
	seenTitles []string // lowercased normalized titles of accepted deals
	perCat     map[string]int
}

// NewState returns an empty curation state.
func NewState() *State {
	return &State{
		seenIDs: map[string]struct{}{},
		perCat:  map[string]int{},
	}
}

// IsDuplicate reports whether the candidate identifier or normalized title
// collides with an already accepted deal. The exact identifier check is
// authoritative and short-circuits the fuzzy title comparison.
func (st *State) IsDuplicate(id, title string, threshold float64) (bool, SkipReason) {
	if _, ok := st.seenIDs[id]; ok {
		return true, SkipDuplicateID
	}
	// O(n*m) per pair over a MAX_DEALS-bounded set; fine at current capacity.
	lower := strings.ToLower(title)
	for _, seen := range st.seenTitles {
		if Ratio(lower, seen) >= threshold {
			return true, SkipDuplicateTitle
		}
	}
	return false, SkipNone
}

func (st *State) accept(id, title, category string) {
	st.seenIDs[id] = struct{}{}
	st.seenTitles = append(st.seenTitles, strings.ToLower(title))
	st.perCat[category]++
}

// Breakdown returns a copy of the per-category acceptance counts.
func (st *State) Breakdown() map[string]int {
	out := make(map[string]int, len(st.perCat))
	for k, v := range st.perCat {
		out[k] = v
	}
	return out
}

// Run accumulates accepted deals across sources for one curation pass. The
// ingestion layer feeds it entries source by source in priority order.
type Run struct {
	c     *Curator
	state *State
	deals []model.Deal
}

// NewRun starts a curation pass with empty state.
func (c *Curator) NewRun() *Run {
	return &Run{c: c, state: NewState(), deals: make([]model.Deal, 0, c.MaxDeals)}
}

// Full reports whether the global capacity has been reached; callers should
// stop feeding further sources once it returns true.
func (r *Run) Full() bool {
	return len(r.deals) >= r.c.MaxDeals
}

// Breakdown exposes the per-category acceptance counts of the pass so far.
func (r *Run) Breakdown() map[string]int {
	return r.state.Breakdown()
}

// Consume processes a batch of raw entries in order, stopping early when the
// global capacity is reached. It returns the number of accepted entries.
func (r *Run) Consume(entries []model.RawEntry) int {
	accepted := 0
	for _, e := range entries {
		if r.Full() {
			break
		}
		if _, reason := r.Add(e); reason == SkipNone {
			accepted++
		}
	}
	return accepted
}

// Add runs one raw entry through the pipeline. On acceptance the deal is
// appended to the run and the state updated; otherwise the skip reason is
// returned and nothing changes.
func (r *Run) Add(e model.RawEntry) (model.Deal, SkipReason) {
	if r.Full() {
		return model.Deal{}, SkipCapacityReached
	}
	f, err := extract.Fields(e)
	if err != nil {
		return model.Deal{}, SkipNoProductLink
	}
	if f.ID == "" {
		return model.Deal{}, SkipNoIdentifier
	}
	if f.Image == "" {
		return model.Deal{}, SkipNoImage
	}
	// Normalized once here; the same value serves dedup, scoring and storage.
	title := NormalizeTitle(e.Title)
	if dup, reason := r.state.IsDuplicate(f.ID, title, r.c.SimilarityThreshold); dup {
		return model.Deal{}, reason
	}
	cat := Categorize(title)
	if r.state.perCat[cat] >= r.c.MaxPerCategory {
		return model.Deal{}, SkipCategoryFull
	}
	price := f.Price
	if price == "" {
		price = model.UnknownPrice
	}
	now := time.Now
	if r.c.Now != nil {
		now = r.c.Now
	}
	d := model.Deal{
		ID:        f.ID,
		Title:     title,
		Image:     f.Image,
		Price:     price,
		Rating:    model.UnknownRating,
		Reviews:   model.UnknownRating,
		URL:       extract.AffiliateURL(f.ProductURL, r.c.AffiliateTag),
		Category:  cat,
		Timestamp: now().Unix(),
		Score:     Score(price, f.Discount, title),
		Discount:  f.Discount,
	}
	r.deals = append(r.deals, d)
	r.state.accept(f.ID, title, cat)
	return d, SkipNone
}

// Finish ranks the accepted deals and returns the final collection: score
// descending, then timestamp descending, stable beyond that so output is
// deterministic for a fixed input sequence.
func (r *Run) Finish() []model.Deal {
	sort.SliceStable(r.deals, func(i, j int) bool {
		if r.deals[i].Score != r.deals[j].Score {
			return r.deals[i].Score > r.deals[j].Score
		}
		return r.deals[i].Timestamp > r.deals[j].Timestamp
	})
	return r.deals
}

// Curate runs a whole pass over pre-fetched entry batches, one batch per
// source in priority order.
func (c *Curator) Curate(batches [][]model.RawEntry) []model.Deal {
	run := c.NewRun()
	for _, batch := range batches {
		if run.Full() {
			break
		}
		run.Consume(batch)
	}
	return run.Finish()
}
