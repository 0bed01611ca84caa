package configsync_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"abconfig/internal/configsync"
	"abconfig/internal/structures"
	"abconfig/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transportConf(baseURL string) *structures.Config {
	return &structures.Config{
		Remote: structures.RemoteConfig{
			Environment: configsync.EnvironmentStage,
			ProdUrl:     "https://config.example.com",
			StageUrl:    baseURL,
		},
	}
}

func newTransport(t *testing.T, conf *structures.Config) configsync.TransportInterface {
	t.Helper()
	return configsync.NewTransport(conf, testutil.NewMockPrefs(), &testutil.MockLogger{})
}

func TestTransport_Load(t *testing.T) {
	var gotPath, gotInstallID, gotEnv string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInstallID = r.Header.Get("X-Install-Id")
		gotEnv = r.Header.Get("X-Environment")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"AbData":{"Variants":[]}}}`))
	}))
	defer server.Close()

	transport := newTransport(t, transportConf(server.URL))

	raw, err := transport.Load(context.Background(), configsync.ConfigTypeEvent, configsync.PlatformIos)
	require.NoError(t, err)
	assert.JSONEq(t, `{"AbData":{"Variants":[]}}`, string(raw))
	assert.Equal(t, "/load/event/event-config-ab_ios", gotPath)
	assert.Equal(t, "stage", gotEnv)
	_, err = uuid.Parse(gotInstallID)
	assert.NoError(t, err)
}

func TestTransport_LoadRejectedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false}`))
	}))
	defer server.Close()

	transport := newTransport(t, transportConf(server.URL))

	_, err := transport.Load(context.Background(), configsync.ConfigTypeEvent, configsync.PlatformNone)
	assert.Error(t, err)
}

func TestTransport_LoadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	transport := newTransport(t, transportConf(server.URL))

	_, err := transport.Load(context.Background(), configsync.ConfigTypeEvent, configsync.PlatformNone)
	assert.Error(t, err)
}

func TestTransport_LoadUnknownPlatform(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	transport := newTransport(t, transportConf(server.URL))

	_, err := transport.Load(context.Background(), configsync.ConfigTypeEvent, configsync.PlatformUnknown)
	assert.ErrorIs(t, err, configsync.ErrUnknownPlatform)
}

func TestTransport_LoadWithoutConnectivity(t *testing.T) {
	// Nothing listens on this port, so the dial probe fails and the load
	// degrades to "nothing to fetch" without an error.
	transport := newTransport(t, transportConf("http://127.0.0.1:1"))

	raw, err := transport.Load(context.Background(), configsync.ConfigTypeEvent, configsync.PlatformIos)
	assert.NoError(t, err)
	assert.Nil(t, raw)
}

func TestTransport_Save(t *testing.T) {
	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer server.Close()

	transport := newTransport(t, transportConf(server.URL))

	payload := map[string]any{"UnlockLevelIndex": 5}
	err := transport.Save(context.Background(), configsync.ConfigTypeEvent, payload, configsync.PlatformAndroid)
	require.NoError(t, err)
	assert.Equal(t, "/store/event/event-config-ab_android", gotPath)
	assert.JSONEq(t, `{"UnlockLevelIndex":5}`, gotBody)
}

func TestTransport_SaveNilPayload(t *testing.T) {
	transport := newTransport(t, transportConf("http://127.0.0.1:1"))

	err := transport.Save(context.Background(), configsync.ConfigTypeEvent, nil, configsync.PlatformIos)
	assert.ErrorIs(t, err, configsync.ErrNilPayload)
}

func TestTransport_SaveProdGuard(t *testing.T) {
	conf := transportConf("http://127.0.0.1:1")
	conf.Remote.Environment = configsync.EnvironmentProd

	transport := newTransport(t, conf)

	err := transport.Save(context.Background(), configsync.ConfigTypeEvent, map[string]any{}, configsync.PlatformIos)
	assert.ErrorIs(t, err, configsync.ErrProdWriteGuard)
}

func TestTransport_SaveProdGuardViaForceProd(t *testing.T) {
	conf := transportConf("http://127.0.0.1:1")
	conf.Remote.ForceProd = true

	transport := newTransport(t, conf)

	err := transport.Save(context.Background(), configsync.ConfigTypeEvent, map[string]any{}, configsync.PlatformIos)
	assert.ErrorIs(t, err, configsync.ErrProdWriteGuard)
}

func TestTransport_SaveUnknownPlatform(t *testing.T) {
	transport := newTransport(t, transportConf("http://127.0.0.1:1"))

	err := transport.Save(context.Background(), configsync.ConfigTypeEvent, map[string]any{}, configsync.PlatformUnknown)
	assert.ErrorIs(t, err, configsync.ErrUnknownPlatform)
}

func TestTransport_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list", r.URL.Path)
		_, _ = w.Write([]byte(`{"event":["event-config-ab","event-config-ab_ios"]}`))
	}))
	defer server.Close()

	transport := newTransport(t, transportConf(server.URL))

	listing, err := transport.List(context.Background())
	require.NoError(t, err)
	assert.Contains(t, listing, "event")
}

func TestTransport_InstallIDPersisted(t *testing.T) {
	prefs := testutil.NewMockPrefs()
	conf := transportConf("http://127.0.0.1:1")
	logger := &testutil.MockLogger{}

	configsync.NewTransport(conf, prefs, logger)

	id, ok := prefs.Get("OnlineConfig:InstallId")
	require.True(t, ok)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	// A second transport reuses the stored id instead of generating a new one.
	configsync.NewTransport(conf, prefs, logger)
	again, _ := prefs.Get("OnlineConfig:InstallId")
	assert.Equal(t, id, again)
}

func TestTransport_HasConnectivity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	up := newTransport(t, transportConf(server.URL))
	assert.True(t, up.HasConnectivity())

	down := newTransport(t, transportConf("http://127.0.0.1:1"))
	assert.False(t, down.HasConnectivity())
}
