package analyzer

import (
	"context"
	"encoding/json"
	"fmt"

	"git.appkode.ru/pub/go/failure"

	"flipscan/internal/agent"
	"flipscan/internal/domain/service/margin"
	"flipscan/internal/domain/service/reduce"
	"flipscan/pkg/errcodes"
)

// Tools returns the capability set handed to the agent loop.
func (a *Analyzer) Tools() []agent.Tool {
	return []agent.Tool{
		scrapeTool{fetcher: a.fetcher, reducer: a.reducer},
		marginTool{calc: a.calc},
		marketValueTool{},
	}
}

// scrapeTool fetches a listing page and returns its reduced text.
type scrapeTool struct {
	fetcher Fetcher
	reducer *reduce.Reducer
}

type scrapeArgs struct {
	URL string `json:"url"`
}

func (t scrapeTool) Name() string { return "scrape_listing" }

func (t scrapeTool) Description() string {
	return "Fetch a product listing URL and return its visible text, title and price."
}

func (t scrapeTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"url": {"type": "string", "description": "The product listing URL to fetch"}
		},
		"required": ["url"]
	}`)
}

func (t scrapeTool) Invoke(ctx context.Context, args json.RawMessage) (string, error) {
	var in scrapeArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return "", invalidToolArgs(err)
	}

	markup, err := t.fetcher.Fetch(ctx, in.URL)
	if err != nil {
		return "", fmt.Errorf("fetcher.Fetch: %w", err)
	}

	snapshot := t.reducer.Snapshot(in.URL, markup)

	out := "Title: " + orNA(snapshot.Title) + "\n"

	if snapshot.HasPrice() {
		out += fmt.Sprintf("Price: $%.2f\n", *snapshot.Price)
	} else {
		out += "Price: N/A\n"
	}

	return out + "Content: " + orNA(snapshot.Text), nil
}

// marginTool exposes the deterministic fee/margin calculator.
type marginTool struct {
	calc *margin.Calculator
}

type marginArgs struct {
	SalePrice   float64 `json:"sale_price"`
	CostOfGoods float64 `json:"cost_of_goods"`
	Category    string  `json:"category"`
}

func (t marginTool) Name() string { return "estimate_margin" }

func (t marginTool) Description() string {
	return "Compute net profit and ROI for reselling an item, after marketplace referral and fulfillment fees."
}

func (t marginTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"sale_price": {"type": "number", "description": "Expected resale price in USD"},
			"cost_of_goods": {"type": "number", "description": "Purchase price in USD"},
			"category": {"type": "string", "description": "Product category, e.g. electronics or apparel"}
		},
		"required": ["sale_price", "cost_of_goods"]
	}`)
}

func (t marginTool) Invoke(_ context.Context, args json.RawMessage) (string, error) {
	var in marginArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return "", invalidToolArgs(err)
	}

	result, err := t.calc.Calculate(in.SalePrice, in.CostOfGoods, in.Category)
	if err != nil {
		return "", fmt.Errorf("calc.Calculate: %w", err)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	return string(out), nil
}

// marketValueTool answers from the static reference-price table.
type marketValueTool struct{}

type marketValueArgs struct {
	Category string `json:"category"`
}

func (t marketValueTool) Name() string { return "market_value" }

func (t marketValueTool) Description() string {
	return "Look up the typical market value in USD for a product category."
}

func (t marketValueTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"category": {"type": "string", "description": "Product category, e.g. laptop, phone, headphones"}
		},
		"required": ["category"]
	}`)
}

func (t marketValueTool) Invoke(_ context.Context, args json.RawMessage) (string, error) {
	var in marketValueArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return "", invalidToolArgs(err)
	}

	value, ok := ReferencePrice(in.Category)
	if !ok {
		return "", failure.NewNotFoundError(
			"unknown category",
			failure.WithCode(errcodes.InvalidCategory),
			failure.WithDescription("no reference price for category: "+in.Category),
		)
	}

	return fmt.Sprintf("$%.2f", value), nil
}

func invalidToolArgs(err error) error {
	return failure.NewInvalidArgumentError(
		fmt.Errorf("json.Unmarshal: %w", err).Error(),
		failure.WithCode(errcodes.InvalidToolArgs),
		failure.WithDescription("malformed tool arguments"),
	)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}

	return s
}
