// internal/cluster/features.go
package cluster

import (
	"strings"

	appErrors "github.com/sonalkolhe/customer-segmentation-webapp/internal/errors"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/model"
)

// FeaturePair selects which two numeric columns the engine clusters on.
// Fields outside the pair are carried through untouched for the summarizer.
type FeaturePair string

const (
	// IncomeVsSpending is the default segmentation: annual income against
	// spending score.
	IncomeVsSpending FeaturePair = "income"
	// AgeVsSpending clusters age against spending score instead.
	AgeVsSpending FeaturePair = "age"
)

// ParseFeaturePair maps a request value onto a known pair. Empty input means
// the default income segmentation.
func ParseFeaturePair(s string) (FeaturePair, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "income":
		return IncomeVsSpending, nil
	case "age":
		return AgeVsSpending, nil
	}
	return "", appErrors.NewInvalidInput("unknown feature pair %q (use income or age)", s)
}

// Extract returns the raw (x, y) feature values for one customer.
func (f FeaturePair) Extract(c model.Customer) (float64, float64) {
	if f == AgeVsSpending {
		return c.Age, c.SpendingScore
	}
	return c.AnnualIncome, c.SpendingScore
}

// Axes returns the display labels for the chart axes.
func (f FeaturePair) Axes() (string, string) {
	if f == AgeVsSpending {
		return "Age", "Spending Score (1-100)"
	}
	return "Annual Income (k$)", "Spending Score (1-100)"
}

// Title returns the chart title for this segmentation.
func (f FeaturePair) Title() string {
	if f == AgeVsSpending {
		return "Age vs Spending Segments"
	}
	return "Customer Segments"
}
