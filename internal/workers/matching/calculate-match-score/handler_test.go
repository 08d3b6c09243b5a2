package calculatematchscore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/compensation"
	"talent-match-workers/internal/matching"
	"talent-match-workers/internal/models"
	"talent-match-workers/internal/store"
	"talent-match-workers/internal/store/storetest"
	"talent-match-workers/internal/workers/jobs"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func testTalent() *models.TalentRecord {
	return &models.TalentRecord{
		ID:              "t-1",
		Version:         "3",
		RoleLevel:       "L3",
		CurrentLocation: "Paris, France",
		Divisions:       []string{"Watches"},
		YearsInLuxury:   intPtr(6),
		Languages:       []string{"English", "French"},
		Preferences:     models.CareerPreferences{TargetRoleLevels: []string{"L4"}, Mobility: "national"},
		Compensation:    &models.SalaryExpectation{Amount: floatPtr(80000), Currency: "EUR"},
	}
}

func testOpportunity() *models.OpportunityRecord {
	return &models.OpportunityRecord{
		ID:                 "o-1",
		Version:            "9",
		RoleLevel:          "L4",
		Division:           "watches",
		Location:           models.Location{City: "Lyon", Country: "France"},
		MinExperienceYears: intPtr(5),
		RequiredLanguages:  []string{"French"},
		Budget:             models.Budget{Min: floatPtr(70000), Max: floatPtr(90000), Currency: "EUR"},
	}
}

func createTestHandler(t *testing.T, profiles store.ProfileStore, results *store.ResultCache) *Handler {
	t.Helper()
	return NewHandler(&Config{Timeout: 5 * time.Second}, jobs.Deps{
		Engine:   matching.DefaultEngine(),
		Aligner:  compensation.DefaultAligner(),
		Badges:   compensation.DefaultBadgeTable(),
		Profiles: profiles,
		Results:  results,
		Logger:   logger.NewTestLogger(t),
	})
}

func TestHandler_Execute_InlineRecords(t *testing.T) {
	profiles := new(storetest.MockProfileStore)
	handler := createTestHandler(t, profiles, nil)

	output, err := handler.Execute(context.Background(), &Input{
		Talent:              testTalent(),
		Opportunity:         testOpportunity(),
		IncludeCompensation: true,
	})
	require.NoError(t, err)

	expected := matching.DefaultEngine().CalculateMatch(*testTalent(), *testOpportunity())
	assert.Equal(t, expected.OverallScore, output.MatchScore)
	assert.Equal(t, expected.Breakdown, output.Breakdown)
	assert.Equal(t, matching.DefaultEngine().Version(), output.EngineVersion)
	assert.False(t, output.Cached)

	_, err = uuid.Parse(output.EvaluationID)
	assert.NoError(t, err)

	require.NotNil(t, output.Compensation)
	assert.Equal(t, compensation.WithinRange, output.Compensation.Alignment)
	assert.Equal(t, "Within budget", output.Compensation.Badge.Label)
	profiles.AssertNotCalled(t, "GetTalent", mock.Anything, mock.Anything)
}

func TestHandler_Execute_LoadsByIDAndCaches(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	profiles := new(storetest.MockProfileStore)
	profiles.On("GetTalent", mock.Anything, "t-1").Return(testTalent(), nil)
	profiles.On("GetOpportunity", mock.Anything, "o-1").Return(testOpportunity(), nil)

	results := store.NewResultCache(rdb, time.Minute, logger.NewTestLogger(t))
	handler := createTestHandler(t, profiles, results)
	ctx := context.Background()

	first, err := handler.Execute(ctx, &Input{TalentID: "t-1", OpportunityID: "o-1"})
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Nil(t, first.Compensation)
	assert.True(t, mr.Exists("match:"+matching.DefaultEngine().Version()+":t-1@3:o-1@9"))

	second, err := handler.Execute(ctx, &Input{TalentID: "t-1", OpportunityID: "o-1"})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.MatchScore, second.MatchScore)
	assert.Equal(t, first.Breakdown, second.Breakdown)
	assert.NotEqual(t, first.EvaluationID, second.EvaluationID)
	profiles.AssertExpectations(t)
}

func TestHandler_Execute_UnversionedRecordsSkipCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	talent := testTalent()
	talent.Version = ""
	handler := createTestHandler(t, new(storetest.MockProfileStore), store.NewResultCache(rdb, time.Minute, logger.NewTestLogger(t)))

	_, err := handler.Execute(context.Background(), &Input{Talent: talent, Opportunity: testOpportunity()})
	require.NoError(t, err)
	assert.Empty(t, mr.Keys())
}

func TestHandler_Execute_InlineRecordTakesIDFromInput(t *testing.T) {
	talent := testTalent()
	talent.ID = ""
	handler := createTestHandler(t, new(storetest.MockProfileStore), nil)

	output, err := handler.Execute(context.Background(), &Input{
		TalentID:    "t-77",
		Talent:      talent,
		Opportunity: testOpportunity(),
	})
	require.NoError(t, err)
	assert.Equal(t, "t-77", output.TalentID)
}

func TestHandler_Execute_ProfileErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
	}{
		{
			name: "missing talent",
			err:  errors.NewProfileNotFoundError("talent", "ghost"),
			code: errors.ErrCodeProfileNotFound,
		},
		{
			name: "store unavailable",
			err:  errors.NewProfileFetchFailedError("talent", assert.AnError),
			code: errors.ErrCodeProfileFetchFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := new(storetest.MockProfileStore)
			profiles.On("GetTalent", mock.Anything, "ghost").Return(nil, tt.err)
			handler := createTestHandler(t, profiles, nil)

			output, err := handler.Execute(context.Background(), &Input{TalentID: "ghost", Opportunity: testOpportunity()})
			assert.Nil(t, output)
			assert.True(t, errors.HasCode(err, tt.code))
		})
	}
}

func TestHandler_Execute_HiddenExpectationIsUnknown(t *testing.T) {
	talent := testTalent()
	talent.Compensation.Hidden = true
	handler := createTestHandler(t, new(storetest.MockProfileStore), nil)

	output, err := handler.Execute(context.Background(), &Input{
		Talent:              talent,
		Opportunity:         testOpportunity(),
		IncludeCompensation: true,
	})
	require.NoError(t, err)
	assert.Equal(t, compensation.Unknown, output.Compensation.Alignment)
	assert.Equal(t, "Not disclosed", output.Compensation.Badge.Label)
}
