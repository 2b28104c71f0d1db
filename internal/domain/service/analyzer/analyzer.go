// Package analyzer orchestrates a listing analysis: fetch, reduce, agent
// inference, report. When the inference backend is unavailable it degrades
// to a deterministic local estimate so the caller always gets a report.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/patrickmn/go-cache"

	"flipscan/internal/domain/entity"
	"flipscan/internal/domain/service/margin"
	"flipscan/internal/domain/service/reduce"
	"flipscan/internal/infrastructure/llm"
	"flipscan/internal/metrics"
	"flipscan/pkg/contextx"
	"flipscan/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const defaultCacheTTL = 10 * time.Minute

type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) (string, error)
}

type agentRunner interface {
	Run(ctx context.Context, input string) (string, error)
}

type Analyzer struct {
	fetcher     Fetcher
	reducer     *reduce.Reducer
	agent       agentRunner
	calc        *margin.Calculator
	reportCache *cache.Cache
	cacheTTL    time.Duration
}

func New(
	fetcher Fetcher,
	reducer *reduce.Reducer,
	calc *margin.Calculator,
) *Analyzer {
	return &Analyzer{
		fetcher:     fetcher,
		reducer:     reducer,
		calc:        calc,
		reportCache: cache.New(defaultCacheTTL, defaultCacheTTL),
		cacheTTL:    defaultCacheTTL,
	}
}

// WithAgent installs the inference loop. It is injected after construction
// because the loop's tools are built from the analyzer's own collaborators.
func (a *Analyzer) WithAgent(agent agentRunner) *Analyzer {
	a.agent = agent
	return a
}

func (a *Analyzer) WithCacheTTL(ttl time.Duration) *Analyzer {
	a.cacheTTL = ttl
	a.reportCache = cache.New(ttl, ttl)

	return a
}

// Analyze fetches the listing behind targetURL and produces a flip report.
// Externally-triggered failures degrade to a report rather than an error;
// only an invalid URL or an unexpected agent failure is returned as one.
func (a *Analyzer) Analyze(ctx context.Context, targetURL string) (entity.Report, error) {
	if err := validateURL(targetURL); err != nil {
		return entity.Report{}, err
	}

	if cached, ok := a.reportCache.Get(targetURL); ok {
		return cached.(entity.Report), nil
	}

	snapshot := a.snapshot(ctx, targetURL)

	report, err := a.infer(ctx, snapshot)
	if err != nil {
		return entity.Report{}, err
	}

	a.reportCache.Set(targetURL, report, a.cacheTTL)

	return report, nil
}

// snapshot fetches and reduces the page. A fetch failure yields an empty
// snapshot; the agent and the fallback both know how to work from the URL
// alone.
func (a *Analyzer) snapshot(ctx context.Context, targetURL string) entity.ListingSnapshot {
	markup, err := a.fetcher.Fetch(ctx, targetURL)
	if err != nil {
		logger(ctx).Error("listing fetch failed", "url", targetURL, "error", err)

		return entity.ListingSnapshot{SourceURL: targetURL}
	}

	return a.reducer.Snapshot(targetURL, markup)
}

func (a *Analyzer) infer(ctx context.Context, snapshot entity.ListingSnapshot) (entity.Report, error) {
	if a.agent == nil {
		return a.fallbackReport(snapshot), nil
	}

	output, err := a.agent.Run(ctx, userPrompt(snapshot))

	switch {
	case err == nil:
		return entity.Report{
			URL:       snapshot.SourceURL,
			Verdict:   verdictFromText(output),
			Markdown:  output,
			CreatedAt: time.Now(),
		}, nil
	case errors.Is(err, llm.ErrUnavailable):
		logger(ctx).Warn("inference backend unavailable, using local estimate", "error", err)
		metrics.FallbacksTotal.Inc()

		return a.fallbackReport(snapshot), nil
	default:
		return entity.Report{}, fmt.Errorf("agent.Run: %w", err)
	}
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return failure.NewInvalidArgumentError(
			"invalid listing url",
			failure.WithCode(errcodes.InvalidURL),
			failure.WithDescription("listing URL must be absolute http(s)"),
		)
	}

	return nil
}
