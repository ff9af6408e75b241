package testutil

import (
	"sync"
	"time"

	"emotrack/internal/models"
	"emotrack/internal/providers"
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

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockPersister implements services.PersisterInterface. Err, when set, is
// returned by every Save and nothing is recorded.
type MockPersister struct {
	mu    sync.Mutex
	Err   error
	Saves []*models.Storage
}

func (m *MockPersister) Save(storage *models.Storage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Saves = append(m.Saves, storage)
	return nil
}

func (m *MockPersister) Last() *models.Storage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Saves) == 0 {
		return nil
	}
	return m.Saves[len(m.Saves)-1]
}

func (m *MockPersister) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
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

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
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

// MockMetrics implements providers.MetricsProviderInterface and records calls.
type MockMetrics struct {
	mu              sync.Mutex
	Requests        map[string]int
	CacheHits       int
	CacheMisses     int
	PersistenceObs  int
	RecordsTotal    int
	Declarations    map[string]int
	OpenAlerts      map[string]int
	RequestDuration []time.Duration
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Requests:     make(map[string]int),
		Declarations: make(map[string]int),
		OpenAlerts:   make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Requests == nil {
		m.Requests = make(map[string]int)
	}
	m.Requests[endpoint]++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestDuration = append(m.RequestDuration, d)
}

func (m *MockMetrics) IncCacheHits(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceObs++
}

func (m *MockMetrics) SetRecordsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordsTotal = count
}

func (m *MockMetrics) IncDeclarations(period string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Declarations == nil {
		m.Declarations = make(map[string]int)
	}
	m.Declarations[period]++
}

func (m *MockMetrics) SetOpenAlerts(kind string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.OpenAlerts == nil {
		m.OpenAlerts = make(map[string]int)
	}
	m.OpenAlerts[kind] = count
}

// MetricsCounts is a point-in-time copy of MockMetrics counters.
type MetricsCounts struct {
	CacheHits      int
	CacheMisses    int
	PersistenceObs int
	RecordsTotal   int
	Requests       map[string]int
	Declarations   map[string]int
	OpenAlerts     map[string]int
}

func (m *MockMetrics) Counts() MetricsCounts {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := MetricsCounts{
		CacheHits:      m.CacheHits,
		CacheMisses:    m.CacheMisses,
		PersistenceObs: m.PersistenceObs,
		RecordsTotal:   m.RecordsTotal,
		Requests:       make(map[string]int, len(m.Requests)),
		Declarations:   make(map[string]int, len(m.Declarations)),
		OpenAlerts:     make(map[string]int, len(m.OpenAlerts)),
	}
	for k, v := range m.Requests {
		out.Requests[k] = v
	}
	for k, v := range m.Declarations {
		out.Declarations[k] = v
	}
	for k, v := range m.OpenAlerts {
		out.OpenAlerts[k] = v
	}
	return out
}
