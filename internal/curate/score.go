package curate

import (
	"strconv"
	"strings"

	"syncflow-curator/internal/model"
)

// qualityWords are title signals worth one extra point.
var qualityWords = []string{"new", "hot", "limited", "exclusive"}

// Score computes the quality score for a deal from its price text, discount
// percentage and normalized title. Unparseable or unknown prices contribute
// zero; parse failures are never surfaced.
func Score(price string, discount int, title string) int {
	s := 0
	if v, ok := parsePrice(price); ok {
		switch {
		case v <= 10:
			s += 3
		case v <= 25:
			s += 2
		case v <= 50:
			s++
		}
	}
	switch {
	case discount >= 50:
		s += 3
	case discount >= 30:
		s += 2
	case discount >= 20:
		s++
	}
	t := strings.ToLower(title)
	for _, w := range qualityWords {
		if strings.Contains(t, w) {
			s++
			break
		}
	}
	return s
}

// parsePrice strips the currency symbol and parses the numeric amount.
// The second return value reports whether a usable amount was found.
func parsePrice(price string) (float64, bool) {
	if price == "" || price == model.UnknownPrice {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimPrefix(price, "$"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
