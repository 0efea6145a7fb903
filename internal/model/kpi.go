// internal/model/kpi.go
package model

// KPIBlock carries the dataset-wide headline numbers shown above the chart.
type KPIBlock struct {
	TotalCustomers int     `json:"total_customers"`
	AvgIncome      float64 `json:"avg_income"`
	AvgSpending    float64 `json:"avg_spending"`
}
