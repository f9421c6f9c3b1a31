package collector

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/reviewsync/internal/config"
	"github.com/sells-group/reviewsync/internal/store"
)

// memRunLog records run transitions in memory for engine tests.
type memRunLog struct {
	mu        sync.Mutex
	nextID    int
	started   []string
	completed map[string]int64
	failed    map[string]string
	byID      map[string]string // run ID -> collector name
}

func newMemRunLog() *memRunLog {
	return &memRunLog{
		completed: make(map[string]int64),
		failed:    make(map[string]string),
		byID:      make(map[string]string),
	}
}

func (m *memRunLog) StartRun(_ context.Context, collector string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := collector + "-run"
	m.started = append(m.started, collector)
	m.byID[id] = collector
	return id, nil
}

func (m *memRunLog) CompleteRun(_ context.Context, runID string, rows int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed[m.byID[runID]] = rows
	return nil
}

func (m *memRunLog) FailRun(_ context.Context, runID string, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed[m.byID[runID]] = errMsg
	return nil
}

func (m *memRunLog) LastSuccess(context.Context, string) (*time.Time, error) { return nil, nil }
func (m *memRunLog) RecentRuns(context.Context, int) ([]store.Run, error)    { return nil, nil }
func (m *memRunLog) Migrate(context.Context) error                           { return nil }
func (m *memRunLog) Close() error                                            { return nil }

func fastEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		MaxConcurrent:     3,
		LaunchIntervalSec: 0.001,
		TimeoutMins:       1,
	}
}

func TestEngine_RunAllSucceed(t *testing.T) {
	reg, stubs := newRegistryWithStubs()
	runLog := newMemRunLog()
	eng := NewEngine(reg, runLog, fastEngineConfig())

	err := eng.Run(context.Background(), RunOpts{})
	require.NoError(t, err)

	for _, s := range stubs {
		assert.Equal(t, 1, s.calls, s.name)
	}
	started := append([]string(nil), runLog.started...)
	sort.Strings(started)
	assert.Equal(t, []string{"2gis", "gmaps", "yamaps"}, started)
	assert.Equal(t, int64(5), runLog.completed["yamaps"])
	assert.Equal(t, int64(9), runLog.completed["2gis"])
	assert.Empty(t, runLog.failed)
}

func TestEngine_PartialFailureDoesNotAbortSiblings(t *testing.T) {
	reg, stubs := newRegistryWithStubs()
	stubs[1].err = eris.New("browser crashed")
	stubs[1].result = nil
	runLog := newMemRunLog()
	eng := NewEngine(reg, runLog, fastEngineConfig())

	err := eng.Run(context.Background(), RunOpts{})
	require.NoError(t, err)

	assert.Equal(t, 1, stubs[0].calls)
	assert.Equal(t, 1, stubs[2].calls)
	assert.Contains(t, runLog.failed["gmaps"], "browser crashed")
	assert.Contains(t, runLog.completed, "yamaps")
	assert.Contains(t, runLog.completed, "2gis")
}

func TestEngine_AllFailedReturnsError(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubCollector{name: "yamaps", platform: "Yandex Maps", mode: Incremental, err: eris.New("boom")})
	runLog := newMemRunLog()
	eng := NewEngine(reg, runLog, fastEngineConfig())

	err := eng.Run(context.Background(), RunOpts{})
	assert.Error(t, err)
	assert.Contains(t, runLog.failed, "yamaps")
}

func TestEngine_SelectionFilters(t *testing.T) {
	reg, stubs := newRegistryWithStubs()
	runLog := newMemRunLog()
	eng := NewEngine(reg, runLog, fastEngineConfig())

	err := eng.Run(context.Background(), RunOpts{Names: []string{"gmaps"}})
	require.NoError(t, err)
	assert.Equal(t, 0, stubs[0].calls)
	assert.Equal(t, 1, stubs[1].calls)
	assert.Equal(t, 0, stubs[2].calls)
}

func TestEngine_UnknownNameFailsBeforeAnyRun(t *testing.T) {
	reg, stubs := newRegistryWithStubs()
	runLog := newMemRunLog()
	eng := NewEngine(reg, runLog, fastEngineConfig())

	err := eng.Run(context.Background(), RunOpts{Names: []string{"nope"}})
	assert.Error(t, err)
	for _, s := range stubs {
		assert.Equal(t, 0, s.calls)
	}
	assert.Empty(t, runLog.started)
}

func TestEngine_NoCollectorsSelectedIsNoop(t *testing.T) {
	reg, _ := newRegistryWithStubs()
	runLog := newMemRunLog()
	eng := NewEngine(reg, runLog, fastEngineConfig())

	mode := Full
	err := eng.Run(context.Background(), RunOpts{Mode: &mode, Names: []string{"yamaps"}})
	require.NoError(t, err)
	assert.Empty(t, runLog.started)
}
