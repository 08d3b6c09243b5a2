package store

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sony/gobreaker/v2"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/metrics"
	"talent-match-workers/internal/models"
)

const talentColumns = `id, version, role_level, current_location, divisions, years_in_luxury, languages,
	target_role_levels, target_locations, mobility, assessment_scores,
	salary_amount, salary_currency, salary_hidden`

const opportunityColumns = `id, version, title, role_level, division, city, country,
	min_experience_years, required_languages, budget_min, budget_max, budget_currency`

var (
	queryTalent      = `SELECT ` + talentColumns + ` FROM talents WHERE id = $1`
	queryTalents     = `SELECT ` + talentColumns + ` FROM talents WHERE id = ANY($1)`
	queryOpportunity = `SELECT ` + opportunityColumns + ` FROM opportunities WHERE id = $1`
)

// BreakerSettings tunes the circuit around postgres.
type BreakerSettings struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		MinRequests:      5,
		FailureThreshold: 0.6,
	}
}

// PostgresProfiles reads profiles from postgres behind a circuit breaker.
// Missing rows do not count as failures.
type PostgresProfiles struct {
	db      *sql.DB
	breaker *gobreaker.CircuitBreaker[any]
	logger  logger.Logger
}

func NewPostgresProfiles(db *sql.DB, settings BreakerSettings, log logger.Logger) *PostgresProfiles {
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "postgres-profiles",
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= settings.MinRequests && failureRatio >= settings.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			log.Warn("circuit breaker state changed", map[string]interface{}{
				"name": name,
				"from": from.String(),
				"to":   to.String(),
			})
		},
		IsSuccessful: func(err error) bool {
			return err == nil || stderrors.Is(err, sql.ErrNoRows)
		},
	})
	return &PostgresProfiles{db: db, breaker: cb, logger: log}
}

func (p *PostgresProfiles) GetTalent(ctx context.Context, id string) (*models.TalentRecord, error) {
	res, err := p.breaker.Execute(func() (any, error) {
		return scanTalent(p.db.QueryRowContext(ctx, queryTalent, id))
	})
	if err != nil {
		return nil, p.mapError("talent", id, err)
	}
	return res.(*models.TalentRecord), nil
}

func (p *PostgresProfiles) GetOpportunity(ctx context.Context, id string) (*models.OpportunityRecord, error) {
	res, err := p.breaker.Execute(func() (any, error) {
		return scanOpportunity(p.db.QueryRowContext(ctx, queryOpportunity, id))
	})
	if err != nil {
		return nil, p.mapError("opportunity", id, err)
	}
	return res.(*models.OpportunityRecord), nil
}

// GetTalents returns the talents in the order of ids. Any missing id fails
// the whole call.
func (p *PostgresProfiles) GetTalents(ctx context.Context, ids []string) ([]models.TalentRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	res, err := p.breaker.Execute(func() (any, error) {
		rows, err := p.db.QueryContext(ctx, queryTalents, pq.Array(ids))
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		byID := make(map[string]models.TalentRecord, len(ids))
		for rows.Next() {
			t, err := scanTalent(rows)
			if err != nil {
				return nil, err
			}
			byID[t.ID] = *t
		}
		return byID, rows.Err()
	})
	if err != nil {
		return nil, p.mapError("talent", fmt.Sprint(ids), err)
	}

	byID := res.(map[string]models.TalentRecord)
	out := make([]models.TalentRecord, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return nil, errors.NewProfileNotFoundError("talent", id)
		}
		out = append(out, t)
	}
	return out, nil
}

func (p *PostgresProfiles) mapError(kind, id string, err error) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NewProfileNotFoundError(kind, id)
	}
	p.logger.Error("profile query failed", map[string]interface{}{
		"kind":  kind,
		"id":    id,
		"error": err.Error(),
	})
	return errors.NewProfileFetchFailedError(kind, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTalent(row rowScanner) (*models.TalentRecord, error) {
	var (
		t            models.TalentRecord
		years        sql.NullInt64
		mobility     sql.NullString
		assessments  []byte
		salaryAmount sql.NullFloat64
		salaryCur    sql.NullString
		salaryHidden sql.NullBool
	)
	err := row.Scan(
		&t.ID, &t.Version, &t.RoleLevel, &t.CurrentLocation,
		pq.Array(&t.Divisions), &years, pq.Array(&t.Languages),
		pq.Array(&t.Preferences.TargetRoleLevels), pq.Array(&t.Preferences.TargetLocations),
		&mobility, &assessments,
		&salaryAmount, &salaryCur, &salaryHidden,
	)
	if err != nil {
		return nil, err
	}

	if years.Valid {
		y := int(years.Int64)
		t.YearsInLuxury = &y
	}
	t.Preferences.Mobility = mobility.String
	if len(assessments) > 0 {
		if err := json.Unmarshal(assessments, &t.AssessmentScores); err != nil {
			return nil, fmt.Errorf("decode assessment scores for %s: %w", t.ID, err)
		}
	}
	if salaryAmount.Valid || salaryCur.Valid {
		t.Compensation = &models.SalaryExpectation{
			Currency: salaryCur.String,
			Hidden:   salaryHidden.Bool,
		}
		if salaryAmount.Valid {
			amount := salaryAmount.Float64
			t.Compensation.Amount = &amount
		}
	}
	return &t, nil
}

func scanOpportunity(row rowScanner) (*models.OpportunityRecord, error) {
	var (
		o        models.OpportunityRecord
		minYears sql.NullInt64
		lo, hi   sql.NullFloat64
		currency sql.NullString
	)
	err := row.Scan(
		&o.ID, &o.Version, &o.Title, &o.RoleLevel, &o.Division, &o.Location.City, &o.Location.Country,
		&minYears, pq.Array(&o.RequiredLanguages), &lo, &hi, &currency,
	)
	if err != nil {
		return nil, err
	}

	if minYears.Valid {
		y := int(minYears.Int64)
		o.MinExperienceYears = &y
	}
	if lo.Valid {
		v := lo.Float64
		o.Budget.Min = &v
	}
	if hi.Valid {
		v := hi.Float64
		o.Budget.Max = &v
	}
	o.Budget.Currency = currency.String
	return &o, nil
}
