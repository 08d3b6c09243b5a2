package compensation

import (
	"fmt"
	"math"
	"strings"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/optional"
	"talent-match-workers/internal/models"
)

// DefaultTolerance widens the budget band by 10% on each side.
const DefaultTolerance = 0.10

// Alignment is the relationship between an expectation and a budget range.
type Alignment string

const (
	WithinRange Alignment = "within_range"
	AboveRange  Alignment = "above_range"
	BelowRange  Alignment = "below_range"
	Unknown     Alignment = "unknown"
)

var AllAlignments = []Alignment{WithinRange, AboveRange, BelowRange, Unknown}

func (a Alignment) Valid() bool {
	switch a {
	case WithinRange, AboveRange, BelowRange, Unknown:
		return true
	}
	return false
}

// ParseAlignment maps anything outside the enum to Unknown.
func ParseAlignment(s string) Alignment {
	a := Alignment(strings.ToLower(strings.TrimSpace(s)))
	if a.Valid() {
		return a
	}
	return Unknown
}

// CompensationAlignmentResult carries the category plus the amounts it was
// decided on. Amounts are in ReferenceCurrency, or as given when neither side
// named a currency.
type CompensationAlignmentResult struct {
	Alignment             Alignment               `json:"alignment"`
	NormalizedExpectation optional.Value[float64] `json:"normalizedExpectation"`
	NormalizedMin         optional.Value[float64] `json:"normalizedMin"`
	NormalizedMax         optional.Value[float64] `json:"normalizedMax"`
	ReferenceCurrency     string                  `json:"referenceCurrency,omitempty"`
	RateVersion           string                  `json:"rateVersion,omitempty"`
}

// Classify places expectation against [min, max] widened by tolerance. All
// amounts must share a unit. A one-sided range checks only the bound given.
func Classify(expectation, minBudget, maxBudget optional.Value[float64], tolerance float64) Alignment {
	e, ok := expectation.Get()
	if !ok {
		return Unknown
	}
	lo, hasLo := minBudget.Get()
	hi, hasHi := maxBudget.Get()
	if !hasLo && !hasHi {
		return Unknown
	}
	if hasLo && hasHi && lo > hi {
		lo, hi = hi, lo
	}

	if hasHi && e > hi*(1+tolerance) {
		return AboveRange
	}
	if hasLo && e < lo*(1-tolerance) {
		return BelowRange
	}
	return WithinRange
}

// Aligner converts amounts with the current rate table and classifies them.
type Aligner struct {
	rates     *Normalizer
	tolerance float64
}

// NewAligner requires a tolerance in [0,1).
func NewAligner(rates *Normalizer, tolerance float64) (*Aligner, error) {
	if rates == nil {
		return nil, errors.NewInvalidRateTableError("rate normalizer is required")
	}
	if math.IsNaN(tolerance) || tolerance < 0 || tolerance >= 1 {
		return nil, errors.NewInvalidConfigurationError(fmt.Sprintf("tolerance must be within [0,1), got %v", tolerance))
	}
	return &Aligner{rates: rates, tolerance: tolerance}, nil
}

// DefaultAligner uses the built-in rate table and tolerance.
func DefaultAligner() *Aligner {
	return &Aligner{rates: NewNormalizer(DefaultRateTable()), tolerance: DefaultTolerance}
}

func (a *Aligner) Rates() *Normalizer { return a.rates }

func (a *Aligner) Tolerance() float64 { return a.tolerance }

// CalculateCompensationAlignment never fails. Missing or unusable inputs
// produce Unknown.
func (a *Aligner) CalculateCompensationAlignment(
	expectation, minBudget, maxBudget optional.Value[float64],
	expectationCurrency, budgetCurrency string,
) CompensationAlignmentResult {
	table := a.rates.Table()
	result := CompensationAlignmentResult{Alignment: Unknown, RateVersion: table.Version()}

	expectation = sanitizeAmount(expectation)
	minBudget = sanitizeAmount(minBudget)
	maxBudget = sanitizeAmount(maxBudget)
	if !expectation.Present() || (!minBudget.Present() && !maxBudget.Present()) {
		return result
	}

	expCur, ok := parseOptionalCurrency(expectationCurrency)
	if !ok {
		return result
	}
	budgetCur, ok := parseOptionalCurrency(budgetCurrency)
	if !ok {
		return result
	}
	if !expCur.Present() {
		expCur = budgetCur
	}
	if !budgetCur.Present() {
		budgetCur = expCur
	}

	if cur, ok := expCur.Get(); ok {
		bc, _ := budgetCur.Get()
		var converted bool
		if expectation, converted = convert(table, expectation, cur); !converted {
			return result
		}
		if minBudget, converted = convert(table, minBudget, bc); !converted {
			return result
		}
		if maxBudget, converted = convert(table, maxBudget, bc); !converted {
			return result
		}
		result.ReferenceCurrency = string(table.Reference())
	}

	result.NormalizedExpectation = expectation
	result.NormalizedMin = minBudget
	result.NormalizedMax = maxBudget
	result.Alignment = Classify(expectation, minBudget, maxBudget, a.tolerance)
	return result
}

// AlignRecords aligns a talent's expectation with an opportunity's budget.
// A hidden expectation is treated as undisclosed.
func (a *Aligner) AlignRecords(talent models.TalentRecord, opportunity models.OpportunityRecord) CompensationAlignmentResult {
	var (
		expectation optional.Value[float64]
		currency    string
	)
	if c := talent.Compensation; c != nil && !c.Hidden {
		expectation = optional.FromPtr(c.Amount)
		currency = c.Currency
	}
	return a.CalculateCompensationAlignment(
		expectation,
		optional.FromPtr(opportunity.Budget.Min),
		optional.FromPtr(opportunity.Budget.Max),
		currency,
		opportunity.Budget.Currency,
	)
}

func sanitizeAmount(v optional.Value[float64]) optional.Value[float64] {
	x, ok := v.Get()
	if !ok || math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return optional.None[float64]()
	}
	return v
}

// parseOptionalCurrency reports false only for a code that is given but not
// recognized. A blank code is absent.
func parseOptionalCurrency(code string) (optional.Value[Currency], bool) {
	if strings.TrimSpace(code) == "" {
		return optional.None[Currency](), true
	}
	c, ok := ParseCurrency(code)
	if !ok {
		return optional.None[Currency](), false
	}
	return optional.Some(c), true
}

func convert(table *RateTable, v optional.Value[float64], c Currency) (optional.Value[float64], bool) {
	x, ok := v.Get()
	if !ok {
		return v, true
	}
	converted, ok := table.Convert(x, c)
	if !ok {
		return v, false
	}
	return optional.Some(converted), true
}
