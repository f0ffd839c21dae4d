package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"emi-calculator/domain"
)

// Calculator owns the loan parameters of one interactive session. Every edit
// goes through a setter; a rejected edit leaves the previous value in place.
//
// Free-text setters take what the user typed, sanitize it and validate the
// range. Slide setters take a numeric control value and validate the range;
// an in-range value is stored as given, except the rate, which keeps one
// decimal. Both report whether the edit was applied.
//
// A Calculator is not safe for concurrent use.
type Calculator struct {
	params domain.LoanParameters
}

var errUnknownField = errors.New("unknown field")

// DefaultParameters returns the parameters a new session starts with:
// principal 1,000,000, rate 6.5% and term 5 years.
func DefaultParameters() domain.LoanParameters {
	return domain.LoanParameters{
		Principal:         DefaultPrincipal,
		AnnualRatePercent: DefaultRate,
		TermYears:         DefaultTermYears,
	}
}

// NewCalculator creates a calculator starting from initial, which must be in range.
func NewCalculator(initial domain.LoanParameters) (*Calculator, error) {
	if err := ValidateParameters(initial); err != nil {
		return nil, err
	}
	return &Calculator{params: initial}, nil
}

// ValidateParameters checks the three range invariants.
func ValidateParameters(p domain.LoanParameters) error {
	if !principalInRange(p.Principal) {
		return fmt.Errorf("principal %.2f outside [%.0f, %.0f]", p.Principal, MinPrincipal, MaxPrincipal)
	}
	if !rateInRange(p.AnnualRatePercent) {
		return fmt.Errorf("annual rate %.2f%% outside [%.0f, %.0f]", p.AnnualRatePercent, MinRate, MaxRate)
	}
	if !termInRange(p.TermYears) {
		return fmt.Errorf("term %d years outside [%d, %d]", p.TermYears, MinTermYears, MaxTermYears)
	}
	return nil
}

func (c *Calculator) Parameters() domain.LoanParameters {
	return c.params
}

func (c *Calculator) Result() domain.AmortizationResult {
	return ComputeSchedule(c.params)
}

func (c *Calculator) ChartSlices() []domain.ChartSlice {
	return BuildChartSlices(c.params, c.Result())
}

func (c *Calculator) SetPrincipal(raw string) bool {
	v, err := strconv.ParseFloat(sanitizeDigits(raw), 64)
	if err != nil {
		return false
	}
	return c.applyPrincipal(v)
}

func (c *Calculator) SetAnnualRatePercent(raw string) bool {
	v, err := strconv.ParseFloat(sanitizeDecimal(raw), 64)
	if err != nil {
		return false
	}
	return c.applyRate(v)
}

func (c *Calculator) SetTermYears(raw string) bool {
	v, err := strconv.Atoi(sanitizeDigits(raw))
	if err != nil {
		return false
	}
	return c.applyTerm(v)
}

func (c *Calculator) SlidePrincipal(value float64) bool {
	return c.applyPrincipal(value)
}

func (c *Calculator) SlideAnnualRatePercent(value float64) bool {
	if !rateInRange(value) {
		return false
	}
	return c.applyRate(snap(value, RateStep))
}

func (c *Calculator) SlideTermYears(value int) bool {
	return c.applyTerm(value)
}

// Set applies a free-text edit to the named field.
func (c *Calculator) Set(field, raw string) (bool, error) {
	switch field {
	case FieldPrincipal:
		return c.SetPrincipal(raw), nil
	case FieldRate:
		return c.SetAnnualRatePercent(raw), nil
	case FieldTermYears:
		return c.SetTermYears(raw), nil
	}
	return false, fmt.Errorf("%w %q", errUnknownField, field)
}

// Slide applies a slider edit to the named field.
func (c *Calculator) Slide(field string, value float64) (bool, error) {
	switch field {
	case FieldPrincipal:
		return c.SlidePrincipal(value), nil
	case FieldRate:
		return c.SlideAnnualRatePercent(value), nil
	case FieldTermYears:
		if value != math.Trunc(value) || value < MinTermYears || value > MaxTermYears {
			return false, nil
		}
		return c.SlideTermYears(int(value)), nil
	}
	return false, fmt.Errorf("%w %q", errUnknownField, field)
}

func (c *Calculator) applyPrincipal(v float64) bool {
	if !principalInRange(v) {
		return false
	}
	c.params.Principal = v
	return true
}

func (c *Calculator) applyRate(v float64) bool {
	if !rateInRange(v) {
		return false
	}
	c.params.AnnualRatePercent = v
	return true
}

func (c *Calculator) applyTerm(v int) bool {
	if !termInRange(v) {
		return false
	}
	c.params.TermYears = v
	return true
}

func principalInRange(v float64) bool { return v >= MinPrincipal && v <= MaxPrincipal }
func rateInRange(v float64) bool      { return v >= MinRate && v <= MaxRate }
func termInRange(v int) bool          { return v >= MinTermYears && v <= MaxTermYears }

// sanitizeDigits drops everything but ASCII digits, so "₹ 50,000" becomes "50000".
func sanitizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// sanitizeDecimal is sanitizeDigits that also keeps '.'.
func sanitizeDecimal(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || (r <= unicode.MaxASCII && unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, s)
}

// snap rounds value to the nearest multiple of step. Decimal arithmetic keeps
// 0.1 steps exact. value must be finite.
func snap(value, step float64) float64 {
	d := decimal.NewFromFloat(step)
	snapped, _ := decimal.NewFromFloat(value).Div(d).Round(0).Mul(d).Float64()
	return snapped
}
