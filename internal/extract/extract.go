// Package extract pulls structured deal facts out of noisy feed entries.
package extract

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"syncflow-curator/internal/model"
)

// ErrNoProductLink is returned when neither the summary nor the fallback
// link contains a recognizable product URL.
var ErrNoProductLink = errors.New("no product link in entry")

const (
	retailerHost  = "amazon.com"
	imageTemplate = "https://m.media-amazon.com/images/I/%s._AC_SL1500_.jpg"
)

var (
	productLinkRe = regexp.MustCompile(`https://www\.amazon\.com/[^\s"<]+`)
	identifierRe  = regexp.MustCompile(`[A-Z0-9]{10}`)
	priceRe       = regexp.MustCompile(`\$[0-9]+(?:\.[0-9]{1,2})?`)
	discountRe    = regexp.MustCompile(`([0-9]+)%`)
)

// Fields extracts product URL, identifier, price, discount and image from a
// single raw entry. Pure function; every field except the product URL is
// best-effort and may be absent.
func Fields(e model.RawEntry) (model.ExtractedFields, error) {
	u := productURL(e.Summary, e.Link)
	if u == "" {
		return model.ExtractedFields{}, ErrNoProductLink
	}
	f := model.ExtractedFields{
		ProductURL: u,
		ID:         identifierRe.FindString(u),
		Price:      priceRe.FindString(e.Title),
		Discount:   discountFromTitle(e.Title),
	}
	f.Image = imageFromSummary(e.Summary)
	if f.Image == "" {
		f.Image = ImageForID(f.ID)
	}
	return f, nil
}

// productURL prefers the fallback link when it already points at the
// retailer, otherwise scans the summary for the first product URL.
func productURL(summary, fallback string) string {
	if strings.Contains(fallback, retailerHost) {
		return fallback
	}
	return productLinkRe.FindString(summary)
}

func discountFromTitle(title string) int {
	m := discountRe.FindStringSubmatch(title)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// imageFromSummary parses the summary as HTML and returns the src of the
// first <img> element, or "" when there is none.
func imageFromSummary(summary string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(summary))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}

// ImageForID synthesizes a product image URL from an identifier.
// Returns "" when the identifier is absent.
func ImageForID(id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf(imageTemplate, id)
}

// AffiliateURL merges the affiliate tag into the product URL's query
// parameters, preserving any existing parameters. The raw URL is returned
// unchanged when it cannot be parsed.
func AffiliateURL(raw, tag string) string {
	if tag == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("tag", tag)
	u.RawQuery = q.Encode()
	return u.String()
}
