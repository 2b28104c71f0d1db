package analyzer_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"flipscan/internal/domain/entity"
	"flipscan/internal/domain/service/analyzer"
	"flipscan/internal/domain/service/margin"
	"flipscan/internal/domain/service/reduce"
	"flipscan/internal/infrastructure/llm"
	"flipscan/pkg/errcodes"
)

type stubFetcher struct {
	markup string
	err    error

	fetches int
}

func (s *stubFetcher) Fetch(_ context.Context, _ string) (string, error) {
	s.fetches++
	return s.markup, s.err
}

type stubAgent struct {
	output string
	err    error
}

func (s *stubAgent) Run(_ context.Context, _ string) (string, error) {
	return s.output, s.err
}

func newAnalyzer(fetcher *stubFetcher) *analyzer.Analyzer {
	return analyzer.New(fetcher, reduce.NewReducer(), margin.NewCalculator())
}

const laptopMarkup = `<html><body>
	<span id="productTitle">Refurbished Gaming Laptop</span>
	<div class="a-price">$500.00</div>
</body></html>`

func TestAnalyzeWithAgent(t *testing.T) {
	rq := require.New(t)

	fetcher := &stubFetcher{markup: laptopMarkup}
	a := newAnalyzer(fetcher).WithAgent(&stubAgent{
		output: "## Analysis\n\nVerdict: UNDERPRICED. Recommendation: BUY.",
	})

	report, err := a.Analyze(context.Background(), "https://example.com/laptop")
	rq.NoError(err)

	rq.Equal("https://example.com/laptop", report.URL)
	rq.Equal(entity.VerdictUnderpriced, report.Verdict)
	rq.Contains(report.Markdown, "BUY")
	rq.False(report.FromFallback)
	rq.False(report.CreatedAt.IsZero())
}

func TestAnalyzeFallsBackWhenBackendUnavailable(t *testing.T) {
	rq := require.New(t)

	fetcher := &stubFetcher{markup: laptopMarkup}
	a := newAnalyzer(fetcher).WithAgent(&stubAgent{err: llm.ErrUnavailable})

	report, err := a.Analyze(context.Background(), "https://example.com/laptop")
	rq.NoError(err)

	rq.True(report.FromFallback)
	rq.Equal(entity.VerdictUnderpriced, report.Verdict)
	rq.Contains(report.Markdown, "laptop")
	rq.Contains(report.Markdown, "$500.00")
	rq.Contains(report.Markdown, "$1000.00")
	rq.Contains(report.Markdown, "BUY")
	rq.Contains(report.Markdown, "ALERT")
}

func TestAnalyzeFallsBackWhenBackendUnreachable(t *testing.T) {
	rq := require.New(t)

	fetcher := &stubFetcher{markup: laptopMarkup}
	a := newAnalyzer(fetcher).WithAgent(&stubAgent{
		err: fmt.Errorf("client.Complete: chat completion request failed: %w: connection refused", llm.ErrUnavailable),
	})

	report, err := a.Analyze(context.Background(), "https://example.com/laptop")
	rq.NoError(err)

	rq.True(report.FromFallback)
	rq.Equal(entity.VerdictUnderpriced, report.Verdict)
}

func TestAnalyzeFallbackWithoutPrice(t *testing.T) {
	rq := require.New(t)

	fetcher := &stubFetcher{markup: "<html><body><h1>Ergonomic standing desk, great condition</h1></body></html>"}
	a := newAnalyzer(fetcher).WithAgent(&stubAgent{err: llm.ErrUnavailable})

	report, err := a.Analyze(context.Background(), "https://example.com/desk")
	rq.NoError(err)

	rq.True(report.FromFallback)
	rq.Equal(entity.VerdictUnknown, report.Verdict)
	rq.Contains(report.Markdown, "desk")
	rq.Contains(report.Markdown, "no price comparison")
}

func TestAnalyzeFallbackUnknownCategory(t *testing.T) {
	rq := require.New(t)

	fetcher := &stubFetcher{markup: "<html><body><p>Antique porcelain vase, $75</p></body></html>"}
	a := newAnalyzer(fetcher).WithAgent(&stubAgent{err: llm.ErrUnavailable})

	report, err := a.Analyze(context.Background(), "https://example.com/vase")
	rq.NoError(err)

	rq.True(report.FromFallback)
	rq.Equal(entity.VerdictUnknown, report.Verdict)
	rq.Contains(report.Markdown, "no reference price")
}

func TestAnalyzeSurvivesFetchFailure(t *testing.T) {
	rq := require.New(t)

	fetcher := &stubFetcher{err: errors.New("scrape backend down")}
	a := newAnalyzer(fetcher).WithAgent(&stubAgent{err: llm.ErrUnavailable})

	// The URL itself names a known category, so the fallback still has a
	// little signal to work with.
	report, err := a.Analyze(context.Background(), "https://example.com/listings/monitor-27")
	rq.NoError(err)

	rq.True(report.FromFallback)
	rq.Contains(report.Markdown, "monitor")
}

func TestAnalyzeRejectsInvalidURL(t *testing.T) {
	rq := require.New(t)

	a := newAnalyzer(&stubFetcher{markup: laptopMarkup})

	testCases := []string{
		"",
		"not a url",
		"ftp://example.com/file",
		"example.com/no-scheme",
		"https://",
	}

	for _, raw := range testCases {
		_, err := a.Analyze(context.Background(), raw)
		rq.Error(err, "url %q", raw)
		rq.Equal(errcodes.InvalidURL, failure.Code(err), "url %q", raw)
	}
}

func TestAnalyzePropagatesUnexpectedAgentErrors(t *testing.T) {
	rq := require.New(t)

	fetcher := &stubFetcher{markup: laptopMarkup}
	a := newAnalyzer(fetcher).WithAgent(&stubAgent{err: errors.New("boom")})

	_, err := a.Analyze(context.Background(), "https://example.com/laptop")
	rq.Error(err)
}

func TestAnalyzeCachesReports(t *testing.T) {
	rq := require.New(t)

	fetcher := &stubFetcher{markup: laptopMarkup}
	a := newAnalyzer(fetcher).WithAgent(&stubAgent{output: "Verdict: FAIRLY PRICED"})

	_, err := a.Analyze(context.Background(), "https://example.com/laptop")
	rq.NoError(err)

	_, err = a.Analyze(context.Background(), "https://example.com/laptop")
	rq.NoError(err)

	rq.Equal(1, fetcher.fetches)
}

func TestGuessCategory(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		text     string
		category string
		found    bool
	}{
		{text: "Refurbished Gaming Laptop", category: "laptop", found: true},
		{text: "wireless HEADPHONES with case", category: "headphones", found: true},
		{text: "porcelain vase", found: false},
		// Sorted key order makes multi-match deterministic.
		{text: "phone stand for monitor", category: "monitor", found: true},
	}

	for _, tc := range testCases {
		category, found := analyzer.GuessCategory(tc.text)
		rq.Equal(tc.found, found, "text %q", tc.text)
		rq.Equal(tc.category, category, "text %q", tc.text)
	}
}

func TestReferencePrice(t *testing.T) {
	rq := require.New(t)

	price, ok := analyzer.ReferencePrice("Laptop")
	rq.True(ok)
	rq.InDelta(1000, price, 0.001)

	_, ok = analyzer.ReferencePrice("submarine")
	rq.False(ok)
}
