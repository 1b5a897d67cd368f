package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-catalog/backend/internal/matching"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// MockMatchService is a mock implementation of the match service
type MockMatchService struct {
	mock.Mock
}

// FindMatches mocks the FindMatches method
func (m *MockMatchService) FindMatches(ctx context.Context, req *types.MatchRequest) (*types.MatchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MatchResponse), args.Error(1)
}

// InvalidateCache mocks the InvalidateCache method
func (m *MockMatchService) InvalidateCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMatchFinder is a mock implementation of the match engine
type MockMatchFinder struct {
	mock.Mock
}

// FindMatches mocks the FindMatches method
func (m *MockMatchFinder) FindMatches(ctx context.Context, q matching.Query) (*matching.PagedResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matching.PagedResult), args.Error(1)
}

// MockLanguageSource is a mock implementation of the language store
type MockLanguageSource struct {
	mock.Mock
}

// DefaultCode mocks the DefaultCode method
func (m *MockLanguageSource) DefaultCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
