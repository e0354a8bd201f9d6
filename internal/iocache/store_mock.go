package iocache

import (
	"context"
	"time"

	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetEntryCache implements the StoreManager interface.
func (m *MockStoreManager) GetEntryCache() contract.EntryCache {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.EntryCache)
	return store
}

// GetRecordStore implements the StoreManager interface.
func (m *MockStoreManager) GetRecordStore() contract.RecordStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RecordStore)
	return store
}

// MockEntryCache is a mock implementation of EntryCache for testing.
type MockEntryCache struct {
	mock.Mock
}

var _ contract.EntryCache = &MockEntryCache{} // Compile-time check

// Get implements the EntryCache interface.
func (m *MockEntryCache) Get(key string) (schema.CacheEntry, bool) {
	args := m.Called(key)
	return args.Get(0).(schema.CacheEntry), args.Bool(1)
}

// Put implements the EntryCache interface.
func (m *MockEntryCache) Put(key string, value []byte, dt schema.DataType) {
	m.Called(key, value, dt)
}

// Delete implements the EntryCache interface.
func (m *MockEntryCache) Delete(key string) bool {
	args := m.Called(key)
	return args.Bool(0)
}

// DeletePrefix implements the EntryCache interface.
func (m *MockEntryCache) DeletePrefix(prefix string) int {
	args := m.Called(prefix)
	return args.Int(0)
}

// Sweep implements the EntryCache interface.
func (m *MockEntryCache) Sweep() int {
	args := m.Called()
	return args.Int(0)
}

// Stats implements the EntryCache interface.
func (m *MockEntryCache) Stats() schema.CacheStats {
	args := m.Called()
	return args.Get(0).(schema.CacheStats)
}

// Close implements the EntryCache interface.
func (m *MockEntryCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockRecordStore is a mock implementation of RecordStore for testing.
type MockRecordStore struct {
	mock.Mock
}

var _ contract.RecordStore = &MockRecordStore{} // Compile-time check

// FindRecent implements the RecordStore interface.
func (m *MockRecordStore) FindRecent(ctx context.Context, barcode string, userID int64, maxAge time.Duration) (schema.ScanRecord, error) {
	args := m.Called(ctx, barcode, userID, maxAge)
	return args.Get(0).(schema.ScanRecord), args.Error(1)
}

// Save implements the RecordStore interface.
func (m *MockRecordStore) Save(ctx context.Context, rec schema.ScanRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// ListRecords implements the RecordStore interface.
func (m *MockRecordStore) ListRecords(ctx context.Context) ([]schema.ScanRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.ScanRecord)
	return records, args.Error(1)
}

// GetStatus implements the RecordStore interface.
func (m *MockRecordStore) GetStatus() (schema.RecordStoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RecordStoreStatus), args.Error(1)
}

// Close implements the RecordStore interface.
func (m *MockRecordStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockProductFetcher is a mock implementation of ProductFetcher for testing.
type MockProductFetcher struct {
	mock.Mock
}

var _ contract.ProductFetcher = &MockProductFetcher{} // Compile-time check

// FetchProduct implements the ProductFetcher interface.
func (m *MockProductFetcher) FetchProduct(ctx context.Context, barcode string) (schema.ProductMetadata, error) {
	args := m.Called(ctx, barcode)
	return args.Get(0).(schema.ProductMetadata), args.Error(1)
}

// MockIngredientFetcher is a mock implementation of IngredientFetcher for testing.
type MockIngredientFetcher struct {
	mock.Mock
}

var _ contract.IngredientFetcher = &MockIngredientFetcher{} // Compile-time check

// FetchIngredient implements the IngredientFetcher interface.
func (m *MockIngredientFetcher) FetchIngredient(ctx context.Context, name string) (schema.IngredientHazardData, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(schema.IngredientHazardData), args.Error(1)
}

// MockHazardEstimator is a mock implementation of HazardEstimator for testing.
type MockHazardEstimator struct {
	mock.Mock
}

var _ contract.HazardEstimator = &MockHazardEstimator{} // Compile-time check

// EstimateHazards implements the HazardEstimator interface.
func (m *MockHazardEstimator) EstimateHazards(ctx context.Context, name string) ([]string, error) {
	args := m.Called(ctx, name)
	codes, _ := args.Get(0).([]string)
	return codes, args.Error(1)
}
