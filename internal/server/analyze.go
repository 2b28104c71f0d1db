package server

import (
	"context"
	"fmt"
	"net/http"

	"flipscan/internal/domain/entity"
	"flipscan/internal/metrics"
	"flipscan/pkg/httpx/reply"
	"flipscan/pkg/httpx/req"
	"flipscan/pkg/rest"
)

type analyzeService interface {
	Analyze(ctx context.Context, targetURL string) (entity.Report, error)
}

type AnalyzeServer struct {
	analyzeService analyzeService
}

func NewAnalyzeServer(analyzeService analyzeService) AnalyzeServer {
	return AnalyzeServer{
		analyzeService: analyzeService,
	}
}

func (s AnalyzeServer) postV1Analyze(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.AnalyzeRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	metrics.ScansTotal.WithLabelValues("rest").Inc()

	report, err := s.analyzeService.Analyze(ctx, request.URL)
	if err != nil {
		return fmt.Errorf("analyzeService.Analyze: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTReport(report))

	return nil
}
