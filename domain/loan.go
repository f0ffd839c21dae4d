package domain

// LoanParameters are the three user-adjustable inputs of a calculation.
type LoanParameters struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TermYears         int     `json:"term_years"`
}

// AmortizationResult is derived from LoanParameters on every read and is
// never stored on its own.
type AmortizationResult struct {
	MonthlyInstallment float64 `json:"monthly_installment"`
	TotalPayment       float64 `json:"total_payment"`
	TotalInterest      float64 `json:"total_interest"`
}

type ChartSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Display holds the presentation strings, rounded to whole currency units.
type Display struct {
	MonthlyInstallment string `json:"monthly_installment"`
	Principal          string `json:"principal"`
	TotalInterest      string `json:"total_interest"`
	TotalPayment       string `json:"total_payment"`
	AnnualRate         string `json:"annual_rate"`
	Term               string `json:"term"`
}

type Summary struct {
	Parameters LoanParameters     `json:"parameters"`
	Result     AmortizationResult `json:"result"`
	Display    Display            `json:"display"`
	Chart      []ChartSlice       `json:"chart"`
}

// Edit is one user change to a session. Text comes from a free-text field
// and is sanitized; Value comes from a slider. Exactly one is set.
type Edit struct {
	Field string   `json:"field"`
	Text  *string  `json:"text,omitempty"`
	Value *float64 `json:"value,omitempty"`
}

// CalculateInput is the free text of all three fields. Empty fields keep
// their defaults.
type CalculateInput struct {
	Principal         string `json:"principal"`
	AnnualRatePercent string `json:"annual_rate_percent"`
	TermYears         string `json:"term_years"`
}
