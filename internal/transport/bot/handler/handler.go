package handler

import (
	"context"

	"flipscan/internal/infrastructure/store"
	"flipscan/internal/worker"
)

type checkoutClient interface {
	CreateCharge(ctx context.Context, userID string) (string, error)
}

type analyzeEnqueuer interface {
	EnqueueAnalyze(ctx context.Context, payload worker.AnalyzePayload) error
}

type Handler struct {
	enqueuer      analyzeEnqueuer
	store         store.Store
	checkout      checkoutClient
	freeScanLimit int64
}

func New(
	enqueuer analyzeEnqueuer,
	st store.Store,
	checkout checkoutClient,
	freeScanLimit int64,
) *Handler {
	return &Handler{
		enqueuer:      enqueuer,
		store:         st,
		checkout:      checkout,
		freeScanLimit: freeScanLimit,
	}
}
