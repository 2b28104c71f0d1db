// Package margin implements the deterministic fee/margin calculator.
// No I/O, no external calls.
package margin

import (
	"math"
	"strings"

	"git.appkode.ru/pub/go/failure"

	"flipscan/internal/domain/entity"
	"flipscan/pkg/errcodes"
)

// Policy selects how the marketplace referral fee is resolved.
type Policy string

const (
	// PolicyCategory resolves a category-dependent referral rate and adds
	// the flat fulfillment fee.
	PolicyCategory Policy = "category"
	// PolicyFlat charges a single fixed marketplace rate with no
	// fulfillment add-on. Kept as a separate named policy, never merged
	// with PolicyCategory.
	PolicyFlat Policy = "flat"
)

// DefaultFulfillmentFee is the flat per-order fulfillment fee applied under
// the category policy. Override per deployment with WithFulfillmentFee.
const DefaultFulfillmentFee = 3.22

const (
	electronicsRate = 0.08
	apparelRate     = 0.17
	generalRate     = 0.15
	flatRate        = 0.13

	defaultCategory = "general"
)

// Keyword sets are matched as substrings of the lower-cased category,
// electronics first.
var (
	electronicsKeywords = []string{ //nolint:gochecknoglobals
		"electronic", "laptop", "computer", "phone", "tablet",
		"camera", "headphone", "monitor", "keyboard", "mouse", "console",
	}
	apparelKeywords = []string{ //nolint:gochecknoglobals
		"apparel", "clothing", "clothes", "shirt", "shoe", "sneaker",
		"jacket", "dress", "fashion",
	}
)

type Calculator struct {
	policy         Policy
	fulfillmentFee float64
}

func NewCalculator() *Calculator {
	return &Calculator{
		policy:         PolicyCategory,
		fulfillmentFee: DefaultFulfillmentFee,
	}
}

func (c *Calculator) WithPolicy(policy Policy) *Calculator {
	c.policy = policy
	return c
}

func (c *Calculator) WithFulfillmentFee(fee float64) *Calculator {
	c.fulfillmentFee = fee
	return c
}

// ReferralRate resolves the category-dependent referral rate. Matching is
// substring-based over the lower-cased category, in fixed priority order:
// electronics, then apparel, then the general default.
func ReferralRate(category string) float64 {
	category = strings.ToLower(strings.TrimSpace(category))

	for _, kw := range electronicsKeywords {
		if strings.Contains(category, kw) {
			return electronicsRate
		}
	}

	for _, kw := range apparelKeywords {
		if strings.Contains(category, kw) {
			return apparelRate
		}
	}

	return generalRate
}

// Calculate returns the margin for selling at salePrice an item bought at
// costOfGoods. The empty category defaults to "general". Negative prices are
// rejected; costOfGoods == 0 yields ROIPercent 0 rather than an error.
func (c *Calculator) Calculate(salePrice, costOfGoods float64, category string) (entity.MarginResult, error) {
	if salePrice < 0 || costOfGoods < 0 {
		return entity.MarginResult{}, failure.NewInvalidArgumentError(
			"negative price",
			failure.WithCode(errcodes.InvalidMarginInput),
			failure.WithDescription("sale price and cost of goods must be non-negative"),
		)
	}

	if strings.TrimSpace(category) == "" {
		category = defaultCategory
	}

	var referralFee, fulfillmentFee float64

	switch c.policy {
	case PolicyFlat:
		referralFee = salePrice * flatRate
	case PolicyCategory:
		referralFee = salePrice * ReferralRate(category)
		fulfillmentFee = c.fulfillmentFee
	default:
		return entity.MarginResult{}, failure.NewInvalidArgumentError(
			"unknown policy",
			failure.WithCode(errcodes.InvalidPolicy),
			failure.WithDescription("unknown margin policy: "+string(c.policy)),
		)
	}

	netProfit := salePrice - costOfGoods - referralFee - fulfillmentFee

	var roi float64
	if costOfGoods > 0 {
		roi = 100 * netProfit / costOfGoods
	}

	return entity.MarginResult{
		SalePrice:      salePrice,
		CostOfGoods:    costOfGoods,
		Category:       strings.ToLower(strings.TrimSpace(category)),
		ReferralFee:    round2(referralFee),
		FulfillmentFee: round2(fulfillmentFee),
		NetProfit:      round2(netProfit),
		ROIPercent:     round2(roi),
	}, nil
}

// round2 rounds for display; intermediate math above runs at full precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
