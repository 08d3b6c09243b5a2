package compensation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/optional"
	"talent-match-workers/internal/models"
)

var (
	some = optional.Some[float64]
	none = optional.None[float64]()
)

func floatPtr(v float64) *float64 { return &v }

func testAligner(t *testing.T) *Aligner {
	t.Helper()
	table, err := NewRateTable("test", "EUR", map[string]float64{
		"EUR": 1,
		"USD": 12.0 / 13.0,
		"GBP": 1.2,
	})
	require.NoError(t, err)
	aligner, err := NewAligner(NewNormalizer(table), DefaultTolerance)
	require.NoError(t, err)
	return aligner
}

func TestCalculateCompensationAlignmentExamples(t *testing.T) {
	aligner := testAligner(t)

	tests := []struct {
		name        string
		expectation optional.Value[float64]
		min, max    optional.Value[float64]
		expCur      string
		budgetCur   string
		expected    Alignment
	}{
		{"within range", some(60000), some(50000), some(70000), "EUR", "EUR", WithinRange},
		{"above range", some(85000), some(50000), some(70000), "EUR", "EUR", AboveRange},
		{"below range", some(40000), some(50000), some(70000), "EUR", "EUR", BelowRange},
		{"missing budget", some(60000), none, none, "EUR", "EUR", Unknown},
		{"missing expectation", none, some(50000), some(70000), "EUR", "EUR", Unknown},
		{"inside upper tolerance", some(76000), some(50000), some(70000), "EUR", "EUR", WithinRange},
		{"inside lower tolerance", some(45000), some(50000), some(70000), "EUR", "EUR", WithinRange},
		{"converted expectation", some(65000), some(50000), some(70000), "USD", "EUR", WithinRange},
		{"unknown expectation currency", some(60000), some(50000), some(70000), "XYZ", "EUR", Unknown},
		{"unknown budget currency", some(60000), some(50000), some(70000), "EUR", "doubloons", Unknown},
		{"currency missing from table", some(60000), some(50000), some(70000), "JPY", "EUR", Unknown},
		{"expectation currency falls back", some(60000), some(50000), some(70000), "", "EUR", WithinRange},
		{"no currencies compares as-is", some(60000), some(50000), some(70000), "", "", WithinRange},
		{"min only", some(90000), some(50000), none, "EUR", "EUR", WithinRange},
		{"min only below", some(30000), some(50000), none, "EUR", "EUR", BelowRange},
		{"max only above", some(90000), none, some(70000), "EUR", "EUR", AboveRange},
		{"inverted bounds", some(60000), some(70000), some(50000), "EUR", "EUR", WithinRange},
		{"negative expectation", some(-1), some(50000), some(70000), "EUR", "EUR", Unknown},
		{"NaN bound ignored", some(90000), some(math.NaN()), some(70000), "EUR", "EUR", AboveRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := aligner.CalculateCompensationAlignment(tt.expectation, tt.min, tt.max, tt.expCur, tt.budgetCur)
			assert.Equal(t, tt.expected, result.Alignment)
			assert.Equal(t, "test", result.RateVersion)
		})
	}
}

func TestCurrencyClassificationStability(t *testing.T) {
	aligner := testAligner(t)

	converted := aligner.CalculateCompensationAlignment(some(65000), some(50000), some(70000), "usd", "EUR")
	direct := aligner.CalculateCompensationAlignment(some(60000), some(50000), some(70000), "EUR", "EUR")

	assert.Equal(t, direct.Alignment, converted.Alignment)
	assert.Equal(t, "EUR", converted.ReferenceCurrency)
	exp, ok := converted.NormalizedExpectation.Get()
	require.True(t, ok)
	assert.InDelta(t, 60000, exp, 1e-6)
}

func TestCalculateCompensationAlignmentConvertsBudget(t *testing.T) {
	aligner := testAligner(t)

	result := aligner.CalculateCompensationAlignment(some(60000), some(40000), some(50000), "EUR", "GBP")
	assert.Equal(t, WithinRange, result.Alignment)
	lo, _ := result.NormalizedMin.Get()
	hi, _ := result.NormalizedMax.Get()
	assert.InDelta(t, 48000, lo, 1e-9)
	assert.InDelta(t, 60000, hi, 1e-9)
}

func TestAlignRecords(t *testing.T) {
	aligner := testAligner(t)
	opp := models.OpportunityRecord{
		ID:     "o-1",
		Budget: models.Budget{Min: floatPtr(50000), Max: floatPtr(70000), Currency: "EUR"},
	}

	talent := models.TalentRecord{
		ID:           "t-1",
		Compensation: &models.SalaryExpectation{Amount: floatPtr(65000), Currency: "USD"},
	}
	assert.Equal(t, WithinRange, aligner.AlignRecords(talent, opp).Alignment)

	talent.Compensation.Hidden = true
	assert.Equal(t, Unknown, aligner.AlignRecords(talent, opp).Alignment)

	talent.Compensation = nil
	assert.Equal(t, Unknown, aligner.AlignRecords(talent, opp).Alignment)
}

func TestNewAlignerValidatesTolerance(t *testing.T) {
	for _, tol := range []float64{-0.1, 1, math.NaN()} {
		_, err := NewAligner(NewNormalizer(nil), tol)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidConfiguration), "tolerance %v", tol)
	}

	_, err := NewAligner(nil, DefaultTolerance)
	assert.True(t, errors.IsConfigurationError(err))
}

func TestClassifyZeroTolerance(t *testing.T) {
	assert.Equal(t, AboveRange, Classify(some(70001), some(50000), some(70000), 0))
	assert.Equal(t, WithinRange, Classify(some(70000), some(50000), some(70000), 0))
	assert.Equal(t, BelowRange, Classify(some(49999), some(50000), some(70000), 0))
}

func TestParseAlignment(t *testing.T) {
	assert.Equal(t, AboveRange, ParseAlignment(" Above_Range "))
	assert.Equal(t, Unknown, ParseAlignment("way_off"))
}
