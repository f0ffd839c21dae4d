package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"go.uber.org/zap"

	"emi-calculator/domain"
	"emi-calculator/repository"
)

// ComputeSchedule returns the fixed monthly installment and totals of a
// monthly-compounding loan. Values keep full precision; rounding is a
// display concern.
func ComputeSchedule(params domain.LoanParameters) domain.AmortizationResult {
	n := params.TermYears * 12

	var installment float64
	if params.AnnualRatePercent == 0 {
		installment = params.Principal / float64(n)
	} else {
		monthlyRate := params.AnnualRatePercent / 100 / 12
		installment = params.Principal * monthlyRate /
			(1 - math.Pow(1+monthlyRate, -float64(n)))
	}

	total := installment * float64(n)

	return domain.AmortizationResult{
		MonthlyInstallment: installment,
		TotalPayment:       total,
		TotalInterest:      total - params.Principal,
	}
}

// BuildChartSlices splits the total payment into principal and interest.
// Principal always comes first so legend and colors stay stable.
func BuildChartSlices(
	params domain.LoanParameters,
	result domain.AmortizationResult,
) []domain.ChartSlice {
	return []domain.ChartSlice{
		{Label: PrincipalLabel, Value: params.Principal, Color: PrincipalColor},
		{Label: InterestLabel, Value: result.TotalInterest, Color: InterestColor},
	}
}

// Summarize computes everything the presentation layer needs for one set of
// parameters.
func Summarize(params domain.LoanParameters) domain.Summary {
	calc := &Calculator{params: params}
	result := calc.Result()

	return domain.Summary{
		Parameters: params,
		Result:     result,
		Display: domain.Display{
			MonthlyInstallment: FormatCurrency(result.MonthlyInstallment),
			Principal:          FormatCurrency(params.Principal),
			TotalInterest:      FormatCurrency(result.TotalInterest),
			TotalPayment:       FormatCurrency(result.TotalPayment),
			AnnualRate:         FormatRate(params.AnnualRatePercent),
			Term:               FormatTerm(params.TermYears),
		},
		Chart: calc.ChartSlices(),
	}
}

type LoanService struct {
	cache    repository.CacheRepository
	defaults domain.LoanParameters
	logger   *zap.Logger
}

// NewLoanService creates a LoanService backed by the given summary cache.
// defaults seed every new calculator and must be in range.
func NewLoanService(
	cache repository.CacheRepository,
	defaults domain.LoanParameters,
	logger *zap.Logger,
) (*LoanService, error) {
	if err := ValidateParameters(defaults); err != nil {
		return nil, fmt.Errorf("invalid defaults: %w", err)
	}
	return &LoanService{cache: cache, defaults: defaults, logger: logger}, nil
}

func (s *LoanService) Defaults() domain.LoanParameters {
	return s.defaults
}

// NewCalculator returns a calculator seeded with the service defaults.
func (s *LoanService) NewCalculator() (*Calculator, error) {
	return NewCalculator(s.defaults)
}

// Calculate applies each non-empty field of input to a fresh calculator and
// summarizes the outcome. Fields that fail sanitizing or range checks keep
// their default and are listed in the returned slice.
func (s *LoanService) Calculate(
	ctx context.Context,
	input domain.CalculateInput,
) (domain.Summary, []string, error) {
	calc, err := s.NewCalculator()
	if err != nil {
		return domain.Summary{}, nil, err
	}

	rejected := []string{}
	for _, f := range []struct {
		name string
		raw  string
	}{
		{FieldPrincipal, input.Principal},
		{FieldRate, input.AnnualRatePercent},
		{FieldTermYears, input.TermYears},
	} {
		if f.raw == "" {
			continue
		}
		accepted, _ := calc.Set(f.name, f.raw)
		recordEdit(f.name, "text", accepted)
		if !accepted {
			s.logger.Debug("ignoring invalid input",
				zap.String("field", f.name), zap.String("raw", f.raw))
			rejected = append(rejected, f.name)
		}
	}

	return s.Summary(ctx, calc.Parameters()), rejected, nil
}

// Summary returns the summary for params, served from the cache when a
// previous request already rendered it. Cache failures are not critical.
func (s *LoanService) Summary(ctx context.Context, params domain.LoanParameters) domain.Summary {
	key := summaryKey(params)

	if cached, ok := s.cache.Get(ctx, key); ok {
		var summary domain.Summary
		err := json.Unmarshal([]byte(cached), &summary)
		if err == nil {
			calculationsTotal.WithLabelValues("hit").Inc()
			return summary
		}
		s.logger.Warn("discarding undecodable cached summary",
			zap.String("key", key), zap.Error(err))
	}

	summary := Summarize(params)
	calculationsTotal.WithLabelValues("miss").Inc()

	data, err := json.Marshal(summary)
	if err != nil {
		s.logger.Warn("failed to encode summary for cache", zap.Error(err))
		return summary
	}
	if err := s.cache.Set(ctx, key, string(data)); err != nil {
		s.logger.Warn("failed to cache summary", zap.String("key", key), zap.Error(err))
	}

	return summary
}

func summaryKey(params domain.LoanParameters) string {
	return fmt.Sprintf("summary:%g:%g:%d",
		params.Principal, params.AnnualRatePercent, params.TermYears)
}
