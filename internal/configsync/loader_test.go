package configsync_test

import (
	"context"
	"testing"

	"abconfig/internal/configsync"
	"abconfig/internal/models"
	"abconfig/internal/testutil"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loaderFixture struct {
	loader    *configsync.ConfigLoader[*models.EventAbData, *models.EventServerData]
	online    *configsync.EventOnlineConfig
	event     *models.EventConfig
	prefs     *testutil.MockPrefs
	transport *testutil.MockTransport
	metrics   *testutil.MockMetrics
	logger    *testutil.MockLogger
}

func newLoaderFixture(t *testing.T) *loaderFixture {
	t.Helper()

	online, event, prefs, logger := newEventOnlineConfig(t, models.VariantA)
	transport := &testutil.MockTransport{Connectivity: true}
	metrics := testutil.NewMockMetrics()

	loader := configsync.NewConfigLoader(online, transport, configsync.PlatformIos, metrics, logger)
	return &loaderFixture{
		loader:    loader,
		online:    online,
		event:     event,
		prefs:     prefs,
		transport: transport,
		metrics:   metrics,
		logger:    logger,
	}
}

func serverPayload(t *testing.T, unlockLevel int) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(serverData(models.VariantA, unlockLevel))
	require.NoError(t, err)
	return raw
}

func TestConfigLoader_RemoteLoadApplies(t *testing.T) {
	f := newLoaderFixture(t)
	f.transport.LoadPayload = serverPayload(t, 8)

	f.loader.ProcessLoad(context.Background(), true)

	local, _ := f.event.Store().Get(models.VariantA)
	assert.Equal(t, 8, local.UnlockLevel)
	assert.True(t, f.loader.IsLoadingDone())
	assert.True(t, f.online.Ready().Ready())
	assert.True(t, f.prefs.Has("OnlineConfig:Event"))
	assert.Equal(t, 1, f.metrics.SyncOutcome("Event", "ok"))

	require.Len(t, f.transport.LoadCalls, 1)
	assert.Equal(t, configsync.PlatformIos, f.transport.LoadCalls[0].Platform)
}

func TestConfigLoader_EmptyCacheLeavesDefaults(t *testing.T) {
	f := newLoaderFixture(t)

	f.loader.ProcessLoad(context.Background(), false)

	// Nothing cached: the local payload stays at its defaults, the attempt
	// still concludes.
	local, _ := f.event.Store().Get(models.VariantA)
	assert.Equal(t, 1, local.UnlockLevel)
	assert.True(t, f.loader.IsLoadingDone())
	assert.True(t, f.online.Ready().Ready())
	assert.Equal(t, 1, f.metrics.SyncOutcome("Event", "cache"))
	assert.Empty(t, f.transport.LoadCalls)
}

func TestConfigLoader_CacheLoadReplaysStoredPayload(t *testing.T) {
	f := newLoaderFixture(t)
	require.NoError(t, f.online.UpdateData(serverData(models.VariantA, 6)))

	// Reset the local payload so the replay is observable.
	local, _ := f.event.Store().Get(models.VariantA)
	local.UnlockLevel = 0

	f.loader.ProcessLoad(context.Background(), false)

	assert.Equal(t, 6, local.UnlockLevel)
	assert.Equal(t, 1, f.metrics.SyncOutcome("Event", "cache"))
}

func TestConfigLoader_NilRemotePayloadLeavesData(t *testing.T) {
	f := newLoaderFixture(t)
	f.transport.LoadPayload = nil

	f.loader.ProcessLoad(context.Background(), true)

	local, _ := f.event.Store().Get(models.VariantA)
	assert.Equal(t, 1, local.UnlockLevel)
	assert.True(t, f.online.Ready().Ready())
	assert.True(t, f.loader.IsLoadingDone())
	assert.Equal(t, 1, f.metrics.SyncOutcome("Event", "empty"))
	assert.Equal(t, 1, f.logger.CountByLevel("warn"))
}

func TestConfigLoader_TransportErrorStillConcludes(t *testing.T) {
	f := newLoaderFixture(t)
	f.transport.LoadErr = assert.AnError

	f.loader.ProcessLoad(context.Background(), true)

	assert.True(t, f.online.Ready().Ready())
	assert.True(t, f.loader.IsLoadingDone())
	assert.Equal(t, 1, f.metrics.SyncOutcome("Event", "error"))
}

func TestConfigLoader_DecodeErrorStillConcludes(t *testing.T) {
	f := newLoaderFixture(t)
	f.transport.LoadPayload = json.RawMessage(`{"AbData":`)

	f.loader.ProcessLoad(context.Background(), true)

	local, _ := f.event.Store().Get(models.VariantA)
	assert.Equal(t, 1, local.UnlockLevel)
	assert.True(t, f.online.Ready().Ready())
	assert.Equal(t, 1, f.metrics.SyncOutcome("Event", "decode_error"))
}

func TestConfigLoader_ReadinessSurvivesReload(t *testing.T) {
	f := newLoaderFixture(t)
	f.transport.LoadErr = assert.AnError

	f.loader.ProcessLoad(context.Background(), true)
	require.True(t, f.online.Ready().Ready())

	// A later successful reload keeps readiness set and applies data.
	f.transport.LoadErr = nil
	f.transport.LoadPayload = serverPayload(t, 3)
	f.loader.ProcessLoad(context.Background(), true)

	local, _ := f.event.Store().Get(models.VariantA)
	assert.Equal(t, 3, local.UnlockLevel)
	assert.True(t, f.online.Ready().Ready())
}
