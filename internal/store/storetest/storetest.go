// Package storetest provides testify mocks of the store interfaces.
package storetest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"talent-match-workers/internal/models"
	"talent-match-workers/internal/store"
)

var (
	_ store.ProfileStore        = (*MockProfileStore)(nil)
	_ store.OpportunitySearcher = (*MockSearcher)(nil)
)

type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) GetTalent(ctx context.Context, id string) (*models.TalentRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TalentRecord), args.Error(1)
}

func (m *MockProfileStore) GetOpportunity(ctx context.Context, id string) (*models.OpportunityRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OpportunityRecord), args.Error(1)
}

func (m *MockProfileStore) GetTalents(ctx context.Context, ids []string) ([]models.TalentRecord, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TalentRecord), args.Error(1)
}

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Find(ctx context.Context, q store.SearchQuery) ([]models.OpportunityRecord, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OpportunityRecord), args.Error(1)
}
