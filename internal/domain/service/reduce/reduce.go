// Package reduce converts raw listing markup into a bounded plain-text
// signal for a downstream consumer with a hard input budget. Marketplace
// pages carry megabytes of script/style noise; the reducer trades recall for
// precision by scanning a fixed list of known high-signal regions before
// falling back to whole-page text.
package reduce

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"flipscan/internal/domain/entity"
)

const (
	// DefaultBudget is the default output character budget. Call sites
	// configure anything between 1500 and 10000.
	DefaultBudget = 8000

	// defaultMinSignalLen is the minimum amount of targeted-region text
	// considered a usable signal before falling back to the whole page.
	defaultMinSignalLen = 40

	regionDelimiter = " | "
)

// strippedSelector removes non-visible and structural subtrees entirely,
// descendants included.
const strippedSelector = "script, style, nav, footer, header, aside, svg, iframe, noscript"

// targetSelectors are known high-signal regions of marketplace pages,
// scanned in order. A missing region is simply skipped.
var targetSelectors = []string{ //nolint:gochecknoglobals
	"#productTitle",
	"#titleSection",
	"#corePrice_feature_div",
	"#priceblock_ourprice",
	".a-price",
	"#feature-bullets",
	"#productDescription",
	".s-main-slot",
	"#search",
	".product-title",
	".product-price",
	".price",
}

var titleSelectors = []string{ //nolint:gochecknoglobals
	"#productTitle",
	"h1.product-title",
	"h1",
	"title",
}

type Reducer struct {
	budget       int
	minSignalLen int
}

func NewReducer() *Reducer {
	return &Reducer{
		budget:       DefaultBudget,
		minSignalLen: defaultMinSignalLen,
	}
}

func (r *Reducer) WithBudget(budget int) *Reducer {
	if budget > 0 {
		r.budget = budget
	}

	return r
}

func (r *Reducer) WithMinSignalLen(n int) *Reducer {
	if n >= 0 {
		r.minSignalLen = n
	}

	return r
}

// Reduce extracts visible text from markup, preferring targeted high-signal
// regions, collapses whitespace and truncates to the configured budget.
// Malformed or empty input never raises; empty input yields an empty string.
func (r *Reducer) Reduce(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		// Best effort: the html parser is lenient, this is unreachable in
		// practice, but a parse failure must not crash the caller.
		return truncate(collapse(markup), r.budget)
	}

	doc.Find(strippedSelector).Remove()

	var regions []string

	for _, sel := range targetSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if text := collapse(s.Text()); text != "" {
				regions = append(regions, text)
			}
		})
	}

	text := strings.Join(regions, regionDelimiter)
	if len(text) < r.minSignalLen {
		text = collapse(doc.Text())
	}

	return truncate(text, r.budget)
}

// Snapshot reduces markup and derives the best-effort title and price.
func (r *Reducer) Snapshot(sourceURL, markup string) entity.ListingSnapshot {
	snapshot := entity.ListingSnapshot{
		SourceURL: sourceURL,
		Text:      r.Reduce(markup),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return snapshot
	}

	doc.Find(strippedSelector).Remove()

	for _, sel := range titleSelectors {
		if title := collapse(doc.Find(sel).First().Text()); title != "" {
			snapshot.Title = title
			break
		}
	}

	if price, ok := ExtractPrice(snapshot.Text); ok {
		snapshot.Price = &price
	}

	return snapshot
}

// collapse folds all whitespace runs (newlines included) into single spaces
// and trims the ends.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate caps s at budget characters, not bytes.
func truncate(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}

	return string(runes[:budget])
}
