package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fjss-ccgp/ccgp/internal/repository"
	"github.com/fjss-ccgp/ccgp/pkg/model"
)

// MockRunRecorder is a mock implementation of repository.RunRecorder.
type MockRunRecorder struct {
	mock.Mock
}

// RecordGeneration mocks the RecordGeneration method.
func (m *MockRunRecorder) RecordGeneration(ctx context.Context, record *repository.GenerationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// ListGenerations mocks the ListGenerations method.
func (m *MockRunRecorder) ListGenerations(ctx context.Context, runID string) ([]*repository.GenerationRecord, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.GenerationRecord), args.Error(1)
}

// ExpectRecordGeneration sets up an expectation for RecordGeneration.
func (m *MockRunRecorder) ExpectRecordGeneration(err error) *mock.Call {
	return m.On("RecordGeneration", mock.Anything, mock.Anything).Return(err)
}

// ExpectListGenerations sets up an expectation for ListGenerations.
func (m *MockRunRecorder) ExpectListGenerations(runID string, records []*repository.GenerationRecord, err error) *mock.Call {
	return m.On("ListGenerations", mock.Anything, runID).Return(records, err)
}

// MockLowerBoundResolver is a mock implementation of problem.LowerBoundResolver.
type MockLowerBoundResolver struct {
	mock.Mock
}

// Resolve mocks the Resolve method.
func (m *MockLowerBoundResolver) Resolve(path string) (model.Time, bool) {
	args := m.Called(path)
	return args.Get(0).(model.Time), args.Bool(1)
}

// ExpectResolve sets up an expectation for Resolve.
func (m *MockLowerBoundResolver) ExpectResolve(path string, lb model.Time, ok bool) *mock.Call {
	return m.On("Resolve", path).Return(lb, ok)
}
