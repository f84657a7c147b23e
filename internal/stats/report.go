// Package stats contains result history calculations and reporting.
package stats

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/cyberguard/internal/model"
	"github.com/verte-zerg/cyberguard/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Results []model.ResultRecord
	Best    []model.BestScore
}

// BuildReport loads and prepares data for history rendering. The result
// list and the per-difficulty bests are queried concurrently.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	var report Report
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results, err := st.ListResults(gctx, cfg)
		report.Results = results
		return err
	})
	g.Go(func() error {
		best, err := st.BestScores(gctx)
		report.Best = best
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return report, nil
}

// Render writes the full report.
func (r Report) Render(w io.Writer) error {
	if err := RenderSummary(w, r.Results); err != nil {
		return err
	}
	if err := RenderBest(w, r.Best); err != nil {
		return err
	}
	return RenderResults(w, r.Results)
}
