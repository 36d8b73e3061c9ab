package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"sdd/internal/models"
	"sdd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns the number of recorded entries at the given level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockStore is an in-memory diary.StoreInterface with the same contract as
// the blob store: descending List order, silent no-op Update/Delete on a
// missing id.
type MockStore struct {
	mu      sync.Mutex
	Records []*models.DiaryRecord
	FailAll error // when set, every operation returns this error
}

func (m *MockStore) List() ([]*models.DiaryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return nil, m.FailAll
	}
	out := make([]*models.DiaryRecord, len(m.Records))
	copy(out, m.Records)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *MockStore) Create(record *models.DiaryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return m.FailAll
	}
	clone := *record
	m.Records = append(m.Records, &clone)
	return nil
}

func (m *MockStore) Update(record *models.DiaryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return m.FailAll
	}
	for i, r := range m.Records {
		if r.ID == record.ID {
			clone := *record
			m.Records[i] = &clone
			return nil
		}
	}
	return nil
}

func (m *MockStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return m.FailAll
	}
	for i, r := range m.Records {
		if r.ID == id {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return nil
}

// Get returns the stored record with the given id, or nil.
func (m *MockStore) Get(id string) *models.DiaryRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Records {
		if r.ID == id {
			clone := *r
			return &clone
		}
	}
	return nil
}

// MockAnalysisClient implements services.AnalysisClientInterface with an
// injectable result or error.
type MockAnalysisClient struct {
	mu     sync.Mutex
	Result *models.AnalysisResult
	Err    error
	Calls  []string
}

func (m *MockAnalysisClient) Analyze(_ context.Context, content string) (*models.AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, content)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		clone := *m.Result
		return &clone, nil
	}
	return &models.AnalysisResult{Emotion: models.EmotionPeaceful, Summary: "a quiet day"}, nil
}

func (m *MockAnalysisClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu     sync.Mutex
	Data   map[string][]byte
	Clears int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
	m.Clears++
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu           sync.Mutex
	Requests     int
	CacheHits    int
	CacheMisses  int
	Analysis     map[string]int
	RecordsTotal int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Analysis: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncAnalysisTotal(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Analysis[outcome]++
}

func (m *MockMetrics) ObserveAnalysisDuration(_ time.Duration) {}

func (m *MockMetrics) SetRecordsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordsTotal = count
}

func (m *MockMetrics) AnalysisCount(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Analysis[outcome]
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
