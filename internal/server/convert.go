package server

import (
	"time"

	"flipscan/internal/domain/entity"
	"flipscan/pkg/rest"
)

func newRESTReport(report entity.Report) rest.Report {
	return rest.Report{
		URL:          report.URL,
		Verdict:      string(report.Verdict),
		Markdown:     report.Markdown,
		FromFallback: report.FromFallback,
		CreatedAt:    report.CreatedAt.Format(time.RFC3339),
	}
}

func newRESTMargin(result entity.MarginResult) rest.MarginResult {
	return rest.MarginResult{
		SalePrice:      result.SalePrice,
		CostOfGoods:    result.CostOfGoods,
		Category:       result.Category,
		ReferralFee:    result.ReferralFee,
		FulfillmentFee: result.FulfillmentFee,
		NetProfit:      result.NetProfit,
		ROIPercent:     result.ROIPercent,
	}
}
