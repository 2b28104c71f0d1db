package margin_test

import (
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"flipscan/internal/domain/service/margin"
	"flipscan/pkg/errcodes"
)

func TestCalculatorCalculate(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name           string
		policy         margin.Policy
		salePrice      float64
		costOfGoods    float64
		category       string
		referralFee    float64
		fulfillmentFee float64
		netProfit      float64
		roiPercent     float64
	}{
		{
			name:           "Electronics category",
			policy:         margin.PolicyCategory,
			salePrice:      100,
			costOfGoods:    50,
			category:       "electronics",
			referralFee:    8,
			fulfillmentFee: 3.22,
			netProfit:      38.78,
			roiPercent:     77.56,
		},
		{
			name:           "Apparel keyword match",
			policy:         margin.PolicyCategory,
			salePrice:      80,
			costOfGoods:    20,
			category:       "Men's Running Shoes",
			referralFee:    13.6,
			fulfillmentFee: 3.22,
			netProfit:      43.18,
			roiPercent:     215.9,
		},
		{
			name:           "Empty category defaults to general",
			policy:         margin.PolicyCategory,
			salePrice:      200,
			costOfGoods:    120,
			category:       "",
			referralFee:    30,
			fulfillmentFee: 3.22,
			netProfit:      46.78,
			roiPercent:     38.98,
		},
		{
			name:        "Flat policy skips fulfillment",
			policy:      margin.PolicyFlat,
			salePrice:   100,
			costOfGoods: 50,
			category:    "electronics",
			referralFee: 13,
			netProfit:   37,
			roiPercent:  74,
		},
		{
			name:           "Zero cost yields zero ROI",
			policy:         margin.PolicyCategory,
			salePrice:      50,
			costOfGoods:    0,
			category:       "general",
			referralFee:    7.5,
			fulfillmentFee: 3.22,
			netProfit:      39.28,
			roiPercent:     0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			calc := margin.NewCalculator().WithPolicy(tc.policy)

			result, err := calc.Calculate(tc.salePrice, tc.costOfGoods, tc.category)
			rq.NoError(err)

			rq.InDelta(tc.referralFee, result.ReferralFee, 0.001)
			rq.InDelta(tc.fulfillmentFee, result.FulfillmentFee, 0.001)
			rq.InDelta(tc.netProfit, result.NetProfit, 0.001)
			rq.InDelta(tc.roiPercent, result.ROIPercent, 0.001)
		})
	}
}

func TestCalculatorRejectsNegativePrices(t *testing.T) {
	rq := require.New(t)

	calc := margin.NewCalculator()

	_, err := calc.Calculate(-1, 10, "electronics")
	rq.Error(err)
	rq.Equal(errcodes.InvalidMarginInput, failure.Code(err))

	_, err = calc.Calculate(10, -1, "electronics")
	rq.Error(err)
	rq.Equal(errcodes.InvalidMarginInput, failure.Code(err))
}

func TestCalculatorRejectsUnknownPolicy(t *testing.T) {
	rq := require.New(t)

	calc := margin.NewCalculator().WithPolicy(margin.Policy("percentage"))

	_, err := calc.Calculate(10, 5, "general")
	rq.Error(err)
	rq.Equal(errcodes.InvalidPolicy, failure.Code(err))
}

func TestReferralRate(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		category string
		rate     float64
	}{
		{category: "electronics", rate: 0.08},
		{category: "Gaming Laptop", rate: 0.08},
		{category: "wireless headphones", rate: 0.08},
		{category: "apparel", rate: 0.17},
		{category: "Winter Jacket", rate: 0.17},
		{category: "kitchen", rate: 0.15},
		{category: "", rate: 0.15},
	}

	for _, tc := range testCases {
		rq.InDelta(tc.rate, margin.ReferralRate(tc.category), 0.0001, "category %q", tc.category)
	}
}
