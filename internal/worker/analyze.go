// Package worker runs listing analyses as asynq background tasks so the
// webhook/bot handlers can acknowledge immediately. Concurrency is bounded
// by the asynq server config instead of spawning a goroutine per message.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"flipscan/internal/domain/entity"
	"flipscan/internal/domain/service/analyzer"
	"flipscan/internal/metrics"
	"flipscan/pkg/contextx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

const (
	// TaskTypeAnalyzeListing is the asynq task pattern for one analysis.
	TaskTypeAnalyzeListing = "analyze:listing"

	QueueAnalyze = "analyze"

	taskMaxRetry = 2
)

// AnalyzePayload identifies one requested analysis.
type AnalyzePayload struct {
	URL    string `json:"url"`
	ChatID int64  `json:"chat_id"`
	UserID string `json:"user_id"`
}

// NewAnalyzeTask builds the asynq task for a payload.
func NewAnalyzeTask(payload AnalyzePayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(
		TaskTypeAnalyzeListing,
		b,
		asynq.Queue(QueueAnalyze),
		asynq.MaxRetry(taskMaxRetry),
	), nil
}

// Enqueuer submits analyze tasks to the queue.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) Enqueuer {
	return Enqueuer{client: client}
}

func (e Enqueuer) EnqueueAnalyze(ctx context.Context, payload AnalyzePayload) error {
	task, err := NewAnalyzeTask(payload)
	if err != nil {
		return fmt.Errorf("worker.NewAnalyzeTask: %w", err)
	}

	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("asynqClient.Enqueue: %w", err)
	}

	return nil
}

type reportSender interface {
	SendReport(ctx context.Context, chatID int64, report entity.Report) error
	SendText(ctx context.Context, chatID int64, text string) error
}

// AnalyzeHandler executes analyze tasks and delivers the report.
type AnalyzeHandler struct {
	analyzer    *analyzer.Analyzer
	sender      reportSender
	taskTimeout time.Duration
}

func NewAnalyzeHandler(a *analyzer.Analyzer, sender reportSender) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: a,
		sender:   sender,
	}
}

// WithTaskTimeout bounds each task execution, so one stuck scrape or
// inference call cannot hold a worker slot forever.
func (h *AnalyzeHandler) WithTaskTimeout(timeout time.Duration) *AnalyzeHandler {
	h.taskTimeout = timeout
	return h
}

func (h *AnalyzeHandler) Handle(ctx context.Context, task *asynq.Task) error {
	if h.taskTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, h.taskTimeout)
		defer cancel()
	}

	var payload AnalyzePayload

	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		// A malformed payload will never deserialize on retry either.
		return fmt.Errorf("json.Unmarshal: %w", asynq.SkipRetry)
	}

	metrics.ScansTotal.WithLabelValues("bot").Inc()

	report, err := h.analyzer.Analyze(ctx, payload.URL)
	if err != nil {
		logger(ctx).Error("analysis failed", "url", payload.URL, "error", err)

		if sendErr := h.sender.SendText(ctx, payload.ChatID,
			"Could not analyze that listing, sorry. Try another URL.",
		); sendErr != nil {
			logger(ctx).Error("failed to send failure notice", "error", sendErr)
		}

		return fmt.Errorf("analyzer.Analyze: %w", err)
	}

	if err := h.sender.SendReport(ctx, payload.ChatID, report); err != nil {
		return fmt.Errorf("sender.SendReport: %w", err)
	}

	return nil
}
