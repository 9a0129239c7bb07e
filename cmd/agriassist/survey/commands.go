package survey

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"agriassist/internal/geo"
	"agriassist/internal/logging"
	"agriassist/internal/report"
)

// acquireLocation issues one positioning query. The 10 s ceiling lives in
// the locator itself.
func acquireLocation(locator geo.Locator) tea.Cmd {
	return func() tea.Msg {
		log := logging.Get(logging.CategoryGeo)
		fix, err := locator.Locate(context.Background())
		if err != nil {
			log.Warn("acquisition failed", zap.Error(err))
			return locationErrMsg{err: err}
		}
		log.Info("acquisition succeeded",
			zap.Float64("lat", fix.Lat),
			zap.Float64("lng", fix.Lng))
		return locationMsg(fix)
	}
}

// submitSurvey sends the answer map and location snapshot captured at
// trigger time. Single-flight is enforced by the Submitting state before
// this command is created.
func submitSurvey(s Submitter, answers map[string]string, fix *geo.Fix) tea.Cmd {
	return func() tea.Msg {
		log := logging.Get(logging.CategorySubmit)
		resp, err := s.Submit(context.Background(), answers, fix)
		if err != nil {
			log.Warn("submission failed", zap.Error(err))
			return submitErrMsg{err: err}
		}
		log.Info("submission succeeded")
		return submitDoneMsg{resp: resp}
	}
}

// exportActive writes the active tab through the document writer.
func exportActive(p *report.Presenter, w report.DocumentWriter) tea.Cmd {
	return func() tea.Msg {
		log := logging.Get(logging.CategoryExport)
		path, err := p.Export(w)
		if err != nil {
			log.Warn("export failed", zap.Error(err))
			return exportErrMsg{err: err}
		}
		log.Info("export written", zap.String("path", path))
		return exportDoneMsg{path: path}
	}
}

// scheduleReportScroll fires the deterministic scroll-into-view shortly
// after the report starts rendering.
func scheduleReportScroll() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return scrollReportMsg{}
	})
}
