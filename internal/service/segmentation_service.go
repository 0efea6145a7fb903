// internal/service/segmentation_service.go
package service

import (
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sonalkolhe/customer-segmentation-webapp/internal/chart"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/cluster"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/dataset"
	appErrors "github.com/sonalkolhe/customer-segmentation-webapp/internal/errors"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/insight"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/model"
)

// Bounds for the requested segment count. Beyond ten the dashboard cards stop
// being readable.
const (
	MinK = 2
	MaxK = 10
)

type SegmentationService struct {
	Reader     dataset.CustomerReaderInterface
	Summarizer insight.SummarizerInterface
	DefaultK   int
	Restarts   int
	Seed       int64
}

// AnalyzeOptions are the per-request knobs. Zero values mean the service
// defaults.
type AnalyzeOptions struct {
	K        int
	Features cluster.FeaturePair
	Seed     int64
}

// Report is the full result of one analysis run. It lives for exactly one
// response and is never stored anywhere. The source dataset rides along
// unexported so the clustered download can echo the upload's own columns.
type Report struct {
	ID          string                 `json:"report_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	Features    cluster.FeaturePair    `json:"features"`
	K           int                    `json:"k"`
	KPIs        model.KPIBlock         `json:"kpis"`
	Insights    []model.SegmentSummary `json:"insights"`
	Assignments []model.Assignment     `json:"assignments"`
	Chart       chart.Spec             `json:"chart"`

	source *dataset.Dataset
}

// Analyze runs the whole pipeline on one uploaded CSV: parse and validate,
// cluster on the selected feature pair, then summarize into segments, KPIs,
// and a chart spec.
func (s *SegmentationService) Analyze(r io.Reader, opts AnalyzeOptions) (*Report, error) {
	ds, err := s.Reader.Read(r)
	if err != nil {
		return nil, err
	}
	customers := ds.Customers

	k := opts.K
	if k == 0 {
		k = s.DefaultK
	}
	if k < MinK || k > MaxK {
		return nil, appErrors.NewInvalidInput("number of segments must be between %d and %d, got %d", MinK, MaxK, k)
	}

	pair := opts.Features
	if pair == "" {
		pair = cluster.IncomeVsSpending
	}

	seed := opts.Seed
	if seed == 0 {
		seed = s.Seed
	}

	engine := cluster.New(k)
	engine.Seed = seed
	if s.Restarts > 0 {
		engine.Restarts = s.Restarts
	}

	assignments, err := engine.Cluster(customers, pair)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Features:    pair,
		K:           k,
		KPIs:        s.Summarizer.KPIs(customers),
		Insights:    s.Summarizer.Summarize(assignments),
		Assignments: assignments,
		Chart:       chart.BuildScatter(assignments, pair),
		source:      ds,
	}

	log.Printf("✅ report %s: %d customers, k=%d, %d segments on %s features",
		report.ID, len(customers), k, len(report.Insights), pair)

	return report, nil
}

// WriteClusteredCSV streams the report's uploaded table back as CSV with a
// trailing Cluster column. Nothing touches disk.
func (s *SegmentationService) WriteClusteredCSV(w io.Writer, report *Report) error {
	return dataset.WriteClusteredCSV(w, report.source, report.Assignments)
}
