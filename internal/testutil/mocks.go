package testutil

import (
	"abconfig/internal/configsync"
	"abconfig/internal/models"
	"abconfig/internal/providers"
	"context"
	"sync"
	"time"

	json "github.com/goccy/go-json"
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

// CountByLevel returns how many entries were recorded with the given level.
func (m *MockLogger) CountByLevel(level string) int {
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

// MockPrefs implements interfaces.PrefsInterface in memory.
type MockPrefs struct {
	mu       sync.Mutex
	Values   map[string]string
	SetErr   error
	SetCalls []string
}

func NewMockPrefs() *MockPrefs {
	return &MockPrefs{Values: make(map[string]string)}
}

func (m *MockPrefs) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Values[key]
	return val, ok
}

func (m *MockPrefs) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Values[key] = value
	m.SetCalls = append(m.SetCalls, key)
	return nil
}

func (m *MockPrefs) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Values[key]
	return ok
}

// MockTransport implements configsync.TransportInterface with canned results.
type MockTransport struct {
	mu           sync.Mutex
	Connectivity bool
	LoadPayload  json.RawMessage
	LoadErr      error
	LoadDelay    time.Duration
	LoadCalls    []LoadCall
	SaveErr      error
	SaveCalls    []SaveCall
	ListResult   map[string]any
	ListErr      error
}

type LoadCall struct {
	Type     configsync.ConfigType
	Platform configsync.Platform
}

type SaveCall struct {
	Type     configsync.ConfigType
	Payload  any
	Platform configsync.Platform
}

func (m *MockTransport) HasConnectivity() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Connectivity
}

func (m *MockTransport) Load(ctx context.Context, t configsync.ConfigType, p configsync.Platform) (json.RawMessage, error) {
	if m.LoadDelay > 0 {
		select {
		case <-time.After(m.LoadDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls = append(m.LoadCalls, LoadCall{Type: t, Platform: p})
	return m.LoadPayload, m.LoadErr
}

func (m *MockTransport) Save(ctx context.Context, t configsync.ConfigType, payload any, p configsync.Platform) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, SaveCall{Type: t, Payload: payload, Platform: p})
	return m.SaveErr
}

func (m *MockTransport) List(ctx context.Context) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ListResult, m.ListErr
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu           sync.Mutex
	SyncOutcomes map[string]int
	CacheHits    int
	CacheMisses  int
	ConfigsReady int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{SyncOutcomes: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) ObserveLoadDuration(_ string, _ time.Duration)    {}

func (m *MockMetrics) IncSyncTotal(configType string, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SyncOutcomes[configType+":"+outcome]++
}

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

func (m *MockMetrics) SetConfigsReady(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConfigsReady = count
}

func (m *MockMetrics) SyncOutcome(configType, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SyncOutcomes[configType+":"+outcome]
}

// NewEventAbData builds a store with the given variants populated.
func NewEventAbData(variants ...models.Variant) *models.AbData[*models.EventAbData] {
	ab := &models.AbData[*models.EventAbData]{}
	for _, v := range variants {
		ab.Set(v, &models.EventAbData{})
	}
	return ab
}
