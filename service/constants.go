package service

const (
	MinPrincipal = 10_000.0
	MaxPrincipal = 10_000_000.0
	MinRate      = 1.0  // percent per annum
	MaxRate      = 20.0 // percent per annum
	MinTermYears = 1
	MaxTermYears = 30

	DefaultPrincipal = 1_000_000.0
	DefaultRate      = 6.5
	DefaultTermYears = 5

	// Rates keep one decimal.
	RateStep = 0.1

	PrincipalLabel = "Principal"
	InterestLabel  = "Interest"
	PrincipalColor = "#000000"
	InterestColor  = "#0A41F5"

	CurrencySymbol = "₹"
)

// Field names accepted by the edit operations.
const (
	FieldPrincipal = "principal"
	FieldRate      = "annual_rate_percent"
	FieldTermYears = "term_years"
)
