// internal/model/customer.go
package model

// Customer is one parsed row of an uploaded dataset. Records are immutable
// once the validator has produced them.
type Customer struct {
	ID            int     `json:"id"`
	Gender        string  `json:"gender"`
	Age           float64 `json:"age"`
	AnnualIncome  float64 `json:"annual_income"`
	SpendingScore float64 `json:"spending_score"`
}
