package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriassist/internal/advisory"
)

func sampleResponse() *advisory.StrategyResponse {
	return &advisory.StrategyResponse{
		LowRisk:  advisory.Strategy{Title: "Low Risk Plan", Content: "* stay with paddy\n"},
		Balanced: advisory.Strategy{Title: "Balanced Plan", Content: "**Profit:** medium\n"},
		HighRisk: advisory.Strategy{Title: "High Risk Plan", Content: "# Go exotic\n"},
	}
}

func TestPresenter_DefaultsToBalanced(t *testing.T) {
	t.Parallel()
	p := NewPresenter(sampleResponse())
	assert.Equal(t, TabBalanced, p.ActiveTab())
	assert.Equal(t, "Balanced Plan", p.Active().Title)
}

func TestPresenter_SelectTab(t *testing.T) {
	t.Parallel()
	p := NewPresenter(sampleResponse())

	p.SelectTab(TabHighRisk)
	assert.Equal(t, "High Risk Plan", p.Active().Title)

	p.SelectTab(Tab(99)) // ignored
	assert.Equal(t, TabHighRisk, p.ActiveTab())
}

func TestPresenter_CarouselWraps(t *testing.T) {
	t.Parallel()
	p := NewPresenter(sampleResponse())

	p.NextTab()
	assert.Equal(t, TabHighRisk, p.ActiveTab())
	p.NextTab()
	assert.Equal(t, TabLowRisk, p.ActiveTab())

	p.PrevTab()
	assert.Equal(t, TabHighRisk, p.ActiveTab())
}

func TestSelectTab_PureOverResponse(t *testing.T) {
	t.Parallel()
	resp := sampleResponse()
	before := *resp

	p := NewPresenter(resp)
	p.SelectTab(TabLowRisk)
	p.SelectTab(TabBalanced)

	if diff := cmp.Diff(before, *resp); diff != "" {
		t.Errorf("tab switching mutated the response (-before +after):\n%s", diff)
	}
}

// stubRenderer lets tests drive each RenderBody branch.
type stubRenderer struct {
	out   string
	err   error
	panic bool
}

func (s stubRenderer) Render(markdown string) (string, error) {
	if s.panic {
		panic("renderer exploded")
	}
	return s.out, s.err
}

func TestRenderBody_FallsBackToRawMarkdown(t *testing.T) {
	t.Parallel()
	p := NewPresenter(sampleResponse())

	assert.Equal(t, "styled", p.RenderBody(stubRenderer{out: "styled"}))
	assert.Equal(t, "**Profit:** medium\n", p.RenderBody(nil))
	assert.Equal(t, "**Profit:** medium\n", p.RenderBody(stubRenderer{err: errors.New("boom")}))
	assert.Equal(t, "**Profit:** medium\n", p.RenderBody(stubRenderer{panic: true}))
}

func TestFileName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "AgriAssist_balanced_Strategy.md", FileName(TabBalanced, "md"))
	assert.Equal(t, "AgriAssist_lowRisk_Strategy.pdf", FileName(TabLowRisk, "pdf"))
}

func TestMarkdownWriter_WritesActiveTab(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w := NewMarkdownWriter(dir)
	w.now = func() time.Time { return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC) }

	p := NewPresenter(sampleResponse())
	p.SelectTab(TabHighRisk)

	path, err := p.Export(w)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "AgriAssist_highRisk_Strategy.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# High Risk Plan")
	assert.Contains(t, content, "# Go exotic")
	assert.Contains(t, content, "Exported by AgriAssist on 2026-08-28 10:00")
}

// failingWriter simulates a document generation failure.
type failingWriter struct{}

func (failingWriter) Ext() string                    { return "md" }
func (failingWriter) Write(Document) (string, error) { return "", errors.New("layout failed") }

func TestExport_FailureLeavesPresenterIntact(t *testing.T) {
	t.Parallel()
	p := NewPresenter(sampleResponse())
	p.SelectTab(TabLowRisk)

	_, err := p.Export(failingWriter{})
	require.ErrorIs(t, err, ErrExport)

	assert.Equal(t, TabLowRisk, p.ActiveTab())
	assert.Equal(t, "Low Risk Plan", p.Active().Title)
}

func TestSnapshot_CapturesActiveTabOnly(t *testing.T) {
	t.Parallel()
	p := NewPresenter(sampleResponse())
	doc := p.Snapshot()
	assert.Equal(t, TabBalanced, doc.Tab)
	assert.Equal(t, "Balanced Plan", doc.Title)
	assert.Equal(t, "**Profit:** medium\n", doc.Markdown)
}
