package analyzer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"flipscan/internal/domain/entity"
)

// referencePrices is the static market-value table used when the inference
// backend cannot answer.
var referencePrices = map[string]float64{ //nolint:gochecknoglobals
	"laptop":     1000,
	"headphones": 150,
	"phone":      700,
	"monitor":    300,
	"keyboard":   100,
	"mouse":      50,
	"desk":       400,
}

// ReferencePrice looks up the typical market value for a category.
func ReferencePrice(category string) (float64, bool) {
	value, ok := referencePrices[strings.ToLower(strings.TrimSpace(category))]
	return value, ok
}

// GuessCategory scans free text for a known category keyword. Keys are
// checked in sorted order so the guess is deterministic.
func GuessCategory(text string) (string, bool) {
	text = strings.ToLower(text)

	categories := make([]string, 0, len(referencePrices))
	for category := range referencePrices {
		categories = append(categories, category)
	}

	sort.Strings(categories)

	for _, category := range categories {
		if strings.Contains(text, category) {
			return category, true
		}
	}

	return "", false
}

// fallbackReport builds a deterministic report from the snapshot, the
// reference-price table and the margin calculator. It never fails: missing
// signal just produces a more guarded report.
func (a *Analyzer) fallbackReport(snapshot entity.ListingSnapshot) entity.Report {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## Flip analysis (offline estimate)\n\n")
	fmt.Fprintf(&sb, "**Listing:** %s\n\n", snapshot.SourceURL)

	if snapshot.Title != "" {
		fmt.Fprintf(&sb, "**Product:** %s\n\n", snapshot.Title)
	}

	category, haveCategory := GuessCategory(snapshot.Title + " " + snapshot.Text + " " + snapshot.SourceURL)

	verdict := entity.VerdictUnknown

	switch {
	case !haveCategory:
		sb.WriteString("Could not match the listing to a known product category; no reference price available.\n")
	case !snapshot.HasPrice():
		market := referencePrices[category]
		fmt.Fprintf(&sb, "**Category:** %s (typical market value $%.2f)\n\n", category, market)
		sb.WriteString("No listed price could be extracted, so no price comparison is possible.\n")
	default:
		listed := *snapshot.Price
		market := referencePrices[category]

		fmt.Fprintf(&sb, "**Category:** %s\n\n", category)
		fmt.Fprintf(&sb, "| | |\n|---|---|\n")
		fmt.Fprintf(&sb, "| Listed price | $%.2f |\n", listed)
		fmt.Fprintf(&sb, "| Typical market value | $%.2f |\n", market)

		if result, err := a.calc.Calculate(market, listed, category); err == nil {
			fmt.Fprintf(&sb, "| Referral fee | $%.2f |\n", result.ReferralFee)
			fmt.Fprintf(&sb, "| Fulfillment fee | $%.2f |\n", result.FulfillmentFee)
			fmt.Fprintf(&sb, "| Net profit if resold at market | $%.2f |\n", result.NetProfit)
			fmt.Fprintf(&sb, "| ROI | %.2f%% |\n", result.ROIPercent)
		}

		var recommendation string
		verdict, recommendation = classify(listed, market)

		fmt.Fprintf(&sb, "\n**Verdict:** %s\n\n**Recommendation:** %s\n", verdict, recommendation)

		if verdict == entity.VerdictUnderpriced {
			sb.WriteString("\nALERT: listed significantly below typical market value.\n")
		}
	}

	sb.WriteString("\n_The AI analyst was unreachable; this estimate uses a static reference-price table._\n")

	return entity.Report{
		URL:          snapshot.SourceURL,
		Verdict:      verdict,
		Markdown:     sb.String(),
		FromFallback: true,
		CreatedAt:    time.Now(),
	}
}

// classify buckets a listed price against market value using the same
// thresholds the system prompt gives the model.
func classify(listed, market float64) (entity.Verdict, string) {
	if market <= 0 {
		return entity.VerdictUnknown, "CONSIDER"
	}

	ratio := listed / market

	switch {
	case ratio <= 0.8:
		return entity.VerdictUnderpriced, "BUY"
	case ratio <= 0.9:
		return entity.VerdictGoodDeal, "CONSIDER"
	case ratio <= 1.1:
		return entity.VerdictFair, "CONSIDER"
	default:
		return entity.VerdictOverpriced, "AVOID"
	}
}
