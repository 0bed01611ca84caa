package configsync

import (
	"abconfig/internal/configsync/interfaces"
	"abconfig/internal/providers"
	"abconfig/internal/structures"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// requestTimeout bounds every remote call unless the config overrides it.
const requestTimeout = 20 * time.Second

const installIDKey = "OnlineConfig:InstallId"

var (
	ErrUnknownPlatform = errors.New("platform is not valid")
	ErrInvalidPath     = errors.New("no remote path for config")
	ErrProdWriteGuard  = errors.New("saving to the prod environment is not allowed")
	ErrNilPayload      = errors.New("config payload is nil")
)

// LoadResult is the response envelope of the config service.
type LoadResult struct {
	Ok     bool            `json:"ok"`
	Result json.RawMessage `json:"result"`
}

type TransportInterface interface {
	HasConnectivity() bool
	// Load fetches the payload for a config type. A nil payload with a nil
	// error means "nothing to load" (no connectivity); the caller keeps its
	// local data either way.
	Load(ctx context.Context, t ConfigType, p Platform) (json.RawMessage, error)
	Save(ctx context.Context, t ConfigType, payload any, p Platform) error
	List(ctx context.Context) (map[string]any, error)
}

type HTTPTransport struct {
	conf      *structures.Config
	baseURL   string
	client    *http.Client
	installID string
	logger    providers.Logger
}

func NewTransport(conf *structures.Config, prefs interfaces.PrefsInterface, logger providers.Logger) TransportInterface {
	timeout := requestTimeout
	if conf.Remote.Timeout > 0 {
		timeout = conf.Remote.Timeout
	}

	return &HTTPTransport{
		conf:      conf,
		baseURL:   BaseURL(conf),
		client:    &http.Client{Timeout: timeout},
		installID: installID(prefs, logger),
		logger:    logger,
	}
}

// installID returns the persisted per-install identifier, generating and
// storing one on first use.
func installID(prefs interfaces.PrefsInterface, logger providers.Logger) string {
	if id, ok := prefs.Get(installIDKey); ok {
		return id
	}

	id := uuid.NewString()
	if err := prefs.Set(installIDKey, id); err != nil {
		logger.Warnf(providers.TypeApp, "Cannot persist install id: %s", err)
	}
	return id
}

// HasConnectivity probes the config service host with a short TCP dial.
func (t *HTTPTransport) HasConnectivity() bool {
	u, err := url.Parse(t.baseURL)
	if err != nil {
		return false
	}

	host := u.Host
	if u.Port() == "" {
		port := "443"
		if u.Scheme == "http" {
			port = "80"
		}
		host = net.JoinHostPort(u.Hostname(), port)
	}

	conn, err := net.DialTimeout("tcp", host, 2*time.Second)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func (t *HTTPTransport) Load(ctx context.Context, typ ConfigType, platform Platform) (json.RawMessage, error) {
	if !t.HasConnectivity() {
		t.logger.Infof(providers.TypeSync, "[Configs] No connectivity, skipping load for %s config", typ)
		return nil, nil
	}

	if platform == PlatformUnknown {
		t.logger.Errorf(providers.TypeSync, "[Configs] Invalid platform for %s config: %s", typ, platform)
		return nil, fmt.Errorf("%w: %s config", ErrUnknownPlatform, typ)
	}

	namespace, name, ok := ConfigPath(typ, platform)
	if !ok {
		t.logger.Errorf(providers.TypeSync, "[Configs] Invalid path for %s config", typ)
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, typ)
	}

	reqURL := t.baseURL + loadPath + namespace + "/" + name

	ctx, cancel := context.WithTimeout(ctx, t.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	t.decorate(req)

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Errorf(providers.TypeSync, "[Configs] Could not load %s config: %s", typ, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.logger.Errorf(providers.TypeSync, "[Configs] Loading of %s config failed: %s, url: %s", typ, resp.Status, reqURL)
		return nil, fmt.Errorf("loading of %s config failed: %s", typ, resp.Status)
	}

	var result LoadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.logger.Errorf(providers.TypeSync, "[Configs] Could not decode %s config response: %s", typ, err)
		return nil, err
	}

	if !result.Ok {
		t.logger.Errorf(providers.TypeSync, "[Configs] Loading of %s config failed, url: %s", typ, reqURL)
		return nil, fmt.Errorf("loading of %s config failed", typ)
	}

	t.logger.Infof(providers.TypeSync, "[Configs] Loading of %s config successful, url: %s", typ, reqURL)
	return result.Result, nil
}

func (t *HTTPTransport) Save(ctx context.Context, typ ConfigType, payload any, platform Platform) error {
	if payload == nil {
		t.logger.Errorf(providers.TypeSync, "[Configs] %s config data is nil", typ)
		return ErrNilPayload
	}

	// Guard rail: the write path is disabled against prod entirely.
	if IsProd(t.conf) {
		t.logger.Errorf(providers.TypeSync, "[Configs] Cannot save %s config to the prod environment", typ)
		return ErrProdWriteGuard
	}

	if platform == PlatformUnknown {
		t.logger.Errorf(providers.TypeSync, "[Configs] Invalid platform for %s config: %s", typ, platform)
		return fmt.Errorf("%w: %s config", ErrUnknownPlatform, typ)
	}

	namespace, name, ok := ConfigPath(typ, platform)
	if !ok {
		t.logger.Errorf(providers.TypeSync, "[Configs] Invalid path for %s config", typ)
		return fmt.Errorf("%w: %s", ErrInvalidPath, typ)
	}

	body, err := MarshalFiltered(payload)
	if err != nil {
		return err
	}

	reqURL := t.baseURL + storePath + namespace + "/" + name

	ctx, cancel := context.WithTimeout(ctx, t.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	t.decorate(req)

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Errorf(providers.TypeSync, "[Configs] Could not save %s config: %s", typ, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.logger.Errorf(providers.TypeSync, "[Configs] Saving of %s config failed: %s, url: %s", typ, resp.Status, reqURL)
		return fmt.Errorf("saving of %s config failed: %s", typ, resp.Status)
	}

	t.logger.Infof(providers.TypeSync, "[Configs] Saved %s config, url: %s", typ, reqURL)
	return nil
}

func (t *HTTPTransport) List(ctx context.Context) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, t.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+listPath, nil)
	if err != nil {
		return nil, err
	}
	t.decorate(req)

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Errorf(providers.TypeSync, "[Configs] Could not list configurations: %s", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing configurations failed: %s", resp.Status)
	}

	var listing map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (t *HTTPTransport) decorate(req *http.Request) {
	req.Header.Set("X-Install-Id", t.installID)
	req.Header.Set("X-Environment", EnvironmentName(t.conf))
}
