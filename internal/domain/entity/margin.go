package entity

// MarginResult is a pure function of its three inputs (sale price, cost of
// goods, category); it carries no state and is recomputed on every call.
// NetProfit and ROIPercent are rounded to 2 decimal places for display.
type MarginResult struct {
	SalePrice      float64 `json:"sale_price"`
	CostOfGoods    float64 `json:"cost_of_goods"`
	Category       string  `json:"category"`
	ReferralFee    float64 `json:"referral_fee"`
	FulfillmentFee float64 `json:"fulfillment_fee"`
	NetProfit      float64 `json:"net_profit"`
	ROIPercent     float64 `json:"roi_percent"`
}
