package iocache

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/plotsense/plotsense/internal/contract"
	"github.com/plotsense/plotsense/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetAnalysisStore implements the StoreManager interface.
func (m *MockStoreManager) GetAnalysisStore() contract.AnalysisStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.AnalysisStore)
	return store
}

// MockAnalysisStore is a mock implementation of AnalysisStore for testing.
type MockAnalysisStore struct {
	mock.Mock
}

var _ contract.AnalysisStore = &MockAnalysisStore{} // Compile-time check

// BeginAnalysis implements the AnalysisStore interface.
func (m *MockAnalysisStore) BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndAnalysis implements the AnalysisStore interface.
func (m *MockAnalysisStore) EndAnalysis(analysisID int64, endTime time.Time, rowCount, fieldCount int) error {
	args := m.Called(analysisID, endTime, rowCount, fieldCount)
	return args.Error(0)
}

// RecordRecommendation implements the AnalysisStore interface.
func (m *MockAnalysisStore) RecordRecommendation(analysisID int64, datasetHash string, rec schema.ChartRecommendation) error {
	args := m.Called(analysisID, datasetHash, rec)
	return args.Error(0)
}

// RecordInsight implements the AnalysisStore interface.
func (m *MockAnalysisStore) RecordInsight(analysisID int64, datasetHash string, in schema.DataInsight) error {
	args := m.Called(analysisID, datasetHash, in)
	return args.Error(0)
}

// GetStatus implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetStatus() (schema.AnalysisStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.AnalysisStatus), args.Error(1)
}

// GetAllAnalysisRuns implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	args := m.Called()
	return args.Get(0).([]schema.AnalysisRunRecord), args.Error(1)
}

// GetAllRecommendations implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllRecommendations() ([]schema.RecommendationRecord, error) {
	args := m.Called()
	return args.Get(0).([]schema.RecommendationRecord), args.Error(1)
}

// GetAllInsights implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllInsights() ([]schema.InsightRecord, error) {
	args := m.Called()
	return args.Get(0).([]schema.InsightRecord), args.Error(1)
}

// Close implements the AnalysisStore interface.
func (m *MockAnalysisStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
