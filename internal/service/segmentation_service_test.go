// internal/service/segmentation_service_test.go
package service_test

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/sonalkolhe/customer-segmentation-webapp/internal/cluster"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/dataset"
	appErrors "github.com/sonalkolhe/customer-segmentation-webapp/internal/errors"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/insight"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/model"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/service"
)

const csvHeader = "CustomerID,Gender,Age,Annual Income (k$),Spending Score (1-100)\n"

// FailingReader stands in for the CSV reader to exercise error propagation.
type FailingReader struct {
	err error
}

func (f *FailingReader) Read(r io.Reader) (*dataset.Dataset, error) {
	return nil, f.err
}

func newService() *service.SegmentationService {
	return &service.SegmentationService{
		Reader:     &dataset.CSVCustomerReader{MaxRows: dataset.DefaultMaxRows},
		Summarizer: insight.NewSummarizer(insight.DefaultRules()),
		DefaultK:   5,
		Restarts:   10,
		Seed:       42,
	}
}

// twoGroupCSV builds 5 low-income/low-spending and 5 high-income/high-spending
// customers with a wide gap between the groups.
func twoGroupCSV() string {
	var b strings.Builder
	b.WriteString(csvHeader)
	genders := []string{"Female", "Male"}
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "%d,%s,%d,%d,%d\n", i+1, genders[i%2], 45+i, 19+i, 9+i)
	}
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "%d,%s,%d,%d,%d\n", i+6, genders[i%2], 38+i, 79+i, 89+i)
	}
	return b.String()
}

func TestAnalyzeEndToEnd(t *testing.T) {
	svc := newService()

	report, err := svc.Analyze(strings.NewReader(twoGroupCSV()), service.AnalyzeOptions{K: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.ID == "" {
		t.Error("report id is empty")
	}
	if report.K != 2 {
		t.Errorf("report k = %d, want 2", report.K)
	}
	if report.Features != cluster.IncomeVsSpending {
		t.Errorf("report features = %q, want income", report.Features)
	}
	if len(report.Assignments) != 10 {
		t.Fatalf("expected 10 assignments, got %d", len(report.Assignments))
	}

	lowID := report.Assignments[0].ClusterID
	highID := report.Assignments[5].ClusterID
	if lowID == highID {
		t.Fatalf("expected the two groups in different clusters, both got %d", lowID)
	}

	var highSummary *model.SegmentSummary
	for i := range report.Insights {
		if report.Insights[i].ClusterID == highID {
			highSummary = &report.Insights[i]
		}
	}
	if highSummary == nil {
		t.Fatalf("no summary for high-income cluster %d", highID)
	}
	if highSummary.Recommendation != "Target with VIP offers" {
		t.Errorf("high-income recommendation = %q, want Target with VIP offers", highSummary.Recommendation)
	}
	if highSummary.Size != 5 {
		t.Errorf("high-income segment size = %d, want 5", highSummary.Size)
	}

	if report.KPIs.TotalCustomers != 10 {
		t.Errorf("kpi total = %d, want 10", report.KPIs.TotalCustomers)
	}
	if len(report.Chart.Data) != 2 {
		t.Errorf("chart has %d series, want 2", len(report.Chart.Data))
	}
}

func TestAnalyzeUsesServiceDefaults(t *testing.T) {
	svc := newService()
	svc.DefaultK = 2

	report, err := svc.Analyze(strings.NewReader(twoGroupCSV()), service.AnalyzeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.K != 2 {
		t.Errorf("report k = %d, want the service default 2", report.K)
	}
	if report.Features != cluster.IncomeVsSpending {
		t.Errorf("report features = %q, want the income default", report.Features)
	}
}

func TestAnalyzeRejectsKOutOfRange(t *testing.T) {
	svc := newService()

	for _, k := range []int{1, 11, -3} {
		_, err := svc.Analyze(strings.NewReader(twoGroupCSV()), service.AnalyzeOptions{K: k})
		if err == nil {
			t.Errorf("k=%d: expected error, got nil", k)
			continue
		}
		if !appErrors.IsInvalidInput(err) {
			t.Errorf("k=%d: expected invalid input error, got %T: %v", k, err, err)
		}
	}
}

func TestAnalyzeTooFewRecordsForK(t *testing.T) {
	svc := newService()
	csv := csvHeader +
		"1,Female,23,20,30\n" +
		"2,Male,31,40,55\n" +
		"3,Female,28,70,80\n"

	_, err := svc.Analyze(strings.NewReader(csv), service.AnalyzeOptions{K: 5})
	if err == nil {
		t.Fatal("expected error for 3 records with k=5, got nil")
	}
	if !appErrors.IsClustering(err) {
		t.Fatalf("expected clustering error, got %T: %v", err, err)
	}
}

func TestAnalyzeRejectsNonFiniteValues(t *testing.T) {
	svc := newService()

	for _, v := range []string{"NaN", "+Inf"} {
		csv := csvHeader +
			fmt.Sprintf("1,Female,23,%s,30\n", v) +
			"2,Male,31,40,55\n" +
			"3,Female,28,70,80\n"

		_, err := svc.Analyze(strings.NewReader(csv), service.AnalyzeOptions{K: 2})
		if err == nil {
			t.Fatalf("income %s: expected error, got nil", v)
		}
		if !appErrors.IsInvalidInput(err) {
			t.Fatalf("income %s: expected invalid input error, got %T: %v", v, err, err)
		}
	}
}

func TestAnalyzePropagatesReaderErrors(t *testing.T) {
	svc := newService()
	svc.Reader = &FailingReader{err: appErrors.NewInvalidInput("missing required column(s): gender")}

	_, err := svc.Analyze(strings.NewReader("whatever"), service.AnalyzeOptions{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !appErrors.IsInvalidInput(err) {
		t.Fatalf("expected invalid input error, got %T: %v", err, err)
	}
}

func TestAnalyzeAgeFeatures(t *testing.T) {
	svc := newService()

	report, err := svc.Analyze(strings.NewReader(twoGroupCSV()), service.AnalyzeOptions{K: 2, Features: cluster.AgeVsSpending})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Features != cluster.AgeVsSpending {
		t.Errorf("report features = %q, want age", report.Features)
	}
	if report.Chart.Layout.XAxis.Title.Text != "Age" {
		t.Errorf("chart x axis = %q, want Age", report.Chart.Layout.XAxis.Title.Text)
	}
}

func TestWriteClusteredCSV(t *testing.T) {
	svc := newService()

	report, err := svc.Analyze(strings.NewReader(twoGroupCSV()), service.AnalyzeOptions{K: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.WriteClusteredCSV(&buf, report); err != nil {
		t.Fatalf("write clustered csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected header plus 10 rows, got %d lines", len(lines))
	}
	if lines[0] != strings.TrimSpace(csvHeader)+",Cluster" {
		t.Errorf("header = %q, want the upload's header plus Cluster", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,Female,45,19,9,") {
		t.Errorf("first row should keep its uploaded cells, got %q", lines[1])
	}
}
