package server

import (
	"fmt"
	"net/http"

	"flipscan/internal/domain/service/margin"
	"flipscan/pkg/httpx/reply"
	"flipscan/pkg/httpx/req"
	"flipscan/pkg/rest"
)

type MarginServer struct {
	fulfillmentFee float64
}

func NewMarginServer(fulfillmentFee float64) MarginServer {
	return MarginServer{
		fulfillmentFee: fulfillmentFee,
	}
}

func (s MarginServer) postV1Margin(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.MarginRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	calc := margin.NewCalculator().WithFulfillmentFee(s.fulfillmentFee)

	if request.Policy != "" {
		calc = calc.WithPolicy(margin.Policy(request.Policy))
	}

	result, err := calc.Calculate(request.SalePrice, request.CostOfGoods, request.Category)
	if err != nil {
		return fmt.Errorf("calc.Calculate: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTMargin(result))

	return nil
}
