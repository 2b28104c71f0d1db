package analyzer

import (
	"fmt"
	"strings"

	"flipscan/internal/domain/entity"
)

// SystemPrompt frames the agent as a price-analysis expert with access to
// the registered tools.
const SystemPrompt = `You are a price analysis expert evaluating whether a product listing is a profitable flip. Your job is to:
1. Use the listing content you are given (call scrape_listing only if you need a different URL)
2. Identify the product, its listed price and its category
3. Look up the typical market value with the market_value tool
4. Estimate resale margin with the estimate_margin tool (sale price = market value, cost of goods = listed price)

Analysis guidelines:
- Listed price 20%+ below market value: UNDERPRICED - issue an ALERT
- Listed price 10-20% below market value: GOOD DEAL
- Listed price within 10% of market value: FAIRLY PRICED
- Listed price above market value: OVERPRICED

Always answer in markdown with: the product and category, the price comparison, the net margin after fees, a verdict (UNDERPRICED / GOOD DEAL / FAIRLY PRICED / OVERPRICED) and a recommendation (BUY, CONSIDER, or AVOID).`

func userPrompt(snapshot entity.ListingSnapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Analyze this product listing for a flip:\nURL: %s\n", snapshot.SourceURL)

	if snapshot.Title != "" {
		fmt.Fprintf(&sb, "Title: %s\n", snapshot.Title)
	}

	if snapshot.HasPrice() {
		fmt.Fprintf(&sb, "Listed price: $%.2f\n", *snapshot.Price)
	}

	if snapshot.Text != "" {
		fmt.Fprintf(&sb, "\nPage content:\n%s\n", snapshot.Text)
	} else {
		sb.WriteString("\nThe page content could not be fetched; use scrape_listing to retrieve it.\n")
	}

	return sb.String()
}
