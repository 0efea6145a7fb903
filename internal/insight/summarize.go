// internal/insight/summarize.go
package insight

import (
	"math"
	"sort"

	"github.com/sonalkolhe/customer-segmentation-webapp/internal/model"
)

// SummarizerInterface is what the service layer consumes.
type SummarizerInterface interface {
	Summarize(assignments []model.Assignment) []model.SegmentSummary
	KPIs(customers []model.Customer) model.KPIBlock
}

// Summarizer turns raw cluster assignments into per-segment marketing
// summaries using a configured rule set.
type Summarizer struct {
	rules Rules
}

func NewSummarizer(rules Rules) *Summarizer {
	return &Summarizer{rules: rules}
}

// Summarize groups assignments by cluster id and computes the per-segment
// aggregates, ordered by cluster id. Empty clusters do not appear.
func (s *Summarizer) Summarize(assignments []model.Assignment) []model.SegmentSummary {
	groups := make(map[int][]model.Customer)
	for _, a := range assignments {
		groups[a.ClusterID] = append(groups[a.ClusterID], a.Customer)
	}

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	summaries := make([]model.SegmentSummary, 0, len(ids))
	for _, id := range ids {
		summaries = append(summaries, s.summarizeCluster(id, groups[id]))
	}
	return summaries
}

func (s *Summarizer) summarizeCluster(id int, members []model.Customer) model.SegmentSummary {
	var ageSum, incomeSum, spendSum float64
	genderCounts := make(map[string]int)
	gendered := 0
	for _, c := range members {
		ageSum += c.Age
		incomeSum += c.AnnualIncome
		spendSum += c.SpendingScore
		if c.Gender != "" {
			genderCounts[c.Gender]++
			gendered++
		}
	}

	n := float64(len(members))
	avgAge := ageSum / n
	avgIncome := incomeSum / n
	avgSpend := spendSum / n

	// Percentages are over records that carry a gender value at all.
	femalePct, malePct := 0, 0
	if gendered > 0 {
		femalePct = int(math.Round(float64(genderCounts["Female"]) / float64(gendered) * 100))
		malePct = int(math.Round(float64(genderCounts["Male"]) / float64(gendered) * 100))
	}

	genderProfile := "Balanced"
	genderIcon := "bi-gender-ambiguous"
	if femalePct > s.rules.GenderMajorityPct {
		genderProfile = "Female Dominated"
		genderIcon = "bi-gender-female"
	} else if malePct > s.rules.GenderMajorityPct {
		genderProfile = "Male Dominated"
		genderIcon = "bi-gender-male"
	}

	profile := s.rules.Classify(avgIncome, avgSpend, avgAge)

	return model.SegmentSummary{
		ClusterID:      id,
		Size:           len(members),
		AvgAge:         math.Round(avgAge),
		AvgIncome:      round1(avgIncome),
		AvgSpending:    round1(avgSpend),
		GenderCounts:   genderCounts,
		GenderProfile:  genderProfile,
		GenderIcon:     genderIcon,
		FemalePct:      femalePct,
		MalePct:        malePct,
		Label:          profile.Label,
		Color:          profile.Color,
		Description:    profile.Description,
		CampaignAction: profile.CampaignAction,
		Recommendation: profile.Recommendation,
	}
}

// KPIs computes the dataset-wide headline numbers for the dashboard.
func (s *Summarizer) KPIs(customers []model.Customer) model.KPIBlock {
	if len(customers) == 0 {
		return model.KPIBlock{}
	}
	var incomeSum, spendSum float64
	for _, c := range customers {
		incomeSum += c.AnnualIncome
		spendSum += c.SpendingScore
	}
	n := float64(len(customers))
	return model.KPIBlock{
		TotalCustomers: len(customers),
		AvgIncome:      round2(incomeSum / n),
		AvgSpending:    round2(spendSum / n),
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

var _ SummarizerInterface = (*Summarizer)(nil)
