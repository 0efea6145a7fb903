// internal/insight/rules.go
package insight

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds the documented segmentation thresholds. Comparisons are strict,
// so a cluster mean sitting exactly on a boundary falls through to the
// average profile.
type Rules struct {
	HighIncome        float64 `yaml:"high_income"`
	LowIncome         float64 `yaml:"low_income"`
	VIPSpend          float64 `yaml:"vip_spend"`
	HighSpend         float64 `yaml:"high_spend"`
	LowSpend          float64 `yaml:"low_spend"`
	YoungAge          float64 `yaml:"young_age"`
	GenderMajorityPct int     `yaml:"gender_majority_pct"`
}

// DefaultRules returns the stock thresholds: income is high above 70k and low
// below 40k, spending is high above 60 (VIP above 70) and low below 40, a
// cluster is "young" under a mean age of 35, and a gender dominates above 55%.
func DefaultRules() Rules {
	return Rules{
		HighIncome:        70,
		LowIncome:         40,
		VIPSpend:          70,
		HighSpend:         60,
		LowSpend:          40,
		YoungAge:          35,
		GenderMajorityPct: 55,
	}
}

// LoadRules reads threshold overrides from a YAML file on top of the
// defaults. Keys missing from the file keep their default values.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read segment rules: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("parse segment rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return rules, err
	}
	return rules, nil
}

// Validate rejects threshold sets that cannot classify anything sensibly.
func (r Rules) Validate() error {
	if r.LowIncome >= r.HighIncome {
		return fmt.Errorf("segment rules: low_income (%v) must be below high_income (%v)", r.LowIncome, r.HighIncome)
	}
	if r.LowSpend >= r.HighSpend {
		return fmt.Errorf("segment rules: low_spend (%v) must be below high_spend (%v)", r.LowSpend, r.HighSpend)
	}
	if r.GenderMajorityPct < 50 || r.GenderMajorityPct > 100 {
		return fmt.Errorf("segment rules: gender_majority_pct (%d) must be between 50 and 100", r.GenderMajorityPct)
	}
	return nil
}

// Profile is the marketing identity a cluster maps to.
type Profile struct {
	Label          string
	Color          string
	Description    string
	CampaignAction string
	Recommendation string
}

// Classify maps a cluster's mean income, spending score, and age onto one of
// the five canned marketing profiles. Means are compared unrounded.
func (r Rules) Classify(avgIncome, avgSpend, avgAge float64) Profile {
	switch {
	case avgIncome > r.HighIncome && avgSpend > r.VIPSpend:
		p := Profile{
			Label:          "VIP / Big Spenders",
			Color:          "success",
			Description:    "Established wealth with high consumption habits.",
			CampaignAction: "Campaign: Exclusive VIP Club membership & Concierge services.",
			Recommendation: "Target with VIP offers",
		}
		if avgAge < r.YoungAge {
			p.Description = "Young, wealthy, and loves to spend. Target for luxury fashion and trending tech."
			p.CampaignAction = "Campaign: Instagram/TikTok Influencers promoting exclusive 'Drops'."
		}
		return p

	case avgIncome > r.HighIncome && avgSpend < r.LowSpend:
		return Profile{
			Label:          "Wealthy Savers",
			Color:          "warning",
			Description:    "High earning potential but careful with money.",
			CampaignAction: "Campaign: Focus on 'Value for Money', Investment products, or 'Buy It For Life' quality.",
			Recommendation: "Upsell premium products",
		}

	case avgIncome < r.LowIncome && avgSpend > r.HighSpend:
		return Profile{
			Label:          "Young Trendsetters",
			Color:          "info",
			Description:    "Likely students or young professionals spending on trends.",
			CampaignAction: "Campaign: Flash Sales, 'Buy Now Pay Later' offers, and discount coupons.",
			Recommendation: "Use Discount Coupons",
		}

	case avgIncome < r.LowIncome && avgSpend < r.LowSpend:
		return Profile{
			Label:          "Budget Conscious",
			Color:          "secondary",
			Description:    "Strict budget constraints. Only buys essentials.",
			CampaignAction: "Campaign: Clearance sales, bulk discounts, and loyalty points.",
			Recommendation: "Low priority / retention campaigns",
		}

	default:
		return Profile{
			Label:          "Average Customer",
			Color:          "primary",
			Description:    "Steady income and average spending habits.",
			CampaignAction: "Campaign: Standard newsletter, seasonal promotions, and retention offers.",
			Recommendation: "Standard newsletter and seasonal promotions",
		}
	}
}
