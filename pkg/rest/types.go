package rest

type AnalyzeRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type Report struct {
	URL          string `json:"url"`
	Verdict      string `json:"verdict"`
	Markdown     string `json:"markdown"`
	FromFallback bool   `json:"fromFallback"`
	CreatedAt    string `json:"createdAt"`
}

type MarginRequest struct {
	SalePrice   float64 `json:"salePrice" validate:"gte=0"`
	CostOfGoods float64 `json:"costOfGoods" validate:"gte=0"`
	Category    string  `json:"category"`
	// Policy is "category" (default) or "flat".
	Policy string `json:"policy" validate:"omitempty,oneof=category flat"`
}

type MarginResult struct {
	SalePrice      float64 `json:"salePrice"`
	CostOfGoods    float64 `json:"costOfGoods"`
	Category       string  `json:"category"`
	ReferralFee    float64 `json:"referralFee"`
	FulfillmentFee float64 `json:"fulfillmentFee"`
	NetProfit      float64 `json:"netProfit"`
	ROIPercent     float64 `json:"roiPercent"`
}

// Error is the common error envelope.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type ErrorCode string
