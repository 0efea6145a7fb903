// internal/model/segment.go
package model

// Assignment pairs a customer with the cluster K-Means placed it in.
// ClusterID is an arbitrary label in [0, k-1]; it carries no ranking.
type Assignment struct {
	Customer  Customer `json:"customer"`
	ClusterID int      `json:"cluster_id"`
}

// SegmentSummary aggregates one non-empty cluster and its marketing profile.
type SegmentSummary struct {
	ClusterID      int            `json:"cluster_id"`
	Size           int            `json:"size"`
	AvgAge         float64        `json:"avg_age"`
	AvgIncome      float64        `json:"avg_income"`
	AvgSpending    float64        `json:"avg_spending"`
	GenderCounts   map[string]int `json:"gender_counts"`
	GenderProfile  string         `json:"gender_profile"`
	GenderIcon     string         `json:"gender_icon"`
	FemalePct      int            `json:"female_pct"`
	MalePct        int            `json:"male_pct"`
	Label          string         `json:"label"`
	Color          string         `json:"color"`
	Description    string         `json:"description"`
	CampaignAction string         `json:"campaign_action"`
	Recommendation string         `json:"recommendation"`
}
