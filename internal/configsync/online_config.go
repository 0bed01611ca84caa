package configsync

import (
	"abconfig/internal/configsync/interfaces"
	"abconfig/internal/models"
	"abconfig/internal/providers"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
)

const prefsKeyPrefix = "OnlineConfig:"

// AbServerData is the envelope persisted and exchanged for an online AB
// config: one server payload per variant.
type AbServerData[TServer any] struct {
	AbData models.AbData[TServer] `json:"AbData"`
}

// OnlineCtx wires an OnlineAbConfig to its surroundings.
type OnlineCtx[TAb any, TServer any] struct {
	Type          ConfigType
	FixedPlatform Platform
	Config        *models.AbConfig[TAb]
	Prefs         interfaces.PrefsInterface
	Logger        providers.Logger
	// ApplyServer merges one variant's server payload into the matching
	// local payload; ToServer converts a local payload for upload.
	ApplyServer func(server TServer, local TAb)
	ToServer    func(local TAb) TServer
}

// OnlineAbConfig binds an AB config to the sync machinery: a config type,
// a readiness flag and the prefs-backed server payload cache.
type OnlineAbConfig[TAb any, TServer any] struct {
	ctx   OnlineCtx[TAb, TServer]
	ready *Readiness

	// saveMu serializes writes to this config's prefs key so concurrent
	// triggers cannot interleave on the cache entry.
	saveMu sync.Mutex
}

func NewOnlineAbConfig[TAb any, TServer any](ctx OnlineCtx[TAb, TServer]) *OnlineAbConfig[TAb, TServer] {
	return &OnlineAbConfig[TAb, TServer]{
		ctx:   ctx,
		ready: NewReadiness(),
	}
}

func (c *OnlineAbConfig[TAb, TServer]) Type() ConfigType {
	return c.ctx.Type
}

func (c *OnlineAbConfig[TAb, TServer]) FixedPlatform() Platform {
	return c.ctx.FixedPlatform
}

func (c *OnlineAbConfig[TAb, TServer]) Ready() *Readiness {
	return c.ready
}

func (c *OnlineAbConfig[TAb, TServer]) Config() *models.AbConfig[TAb] {
	return c.ctx.Config
}

func (c *OnlineAbConfig[TAb, TServer]) prefsKey() string {
	return prefsKeyPrefix + c.ctx.Type.String()
}

// ApplyServerData merges every variant of the server payload into the local
// store. Variants the local store does not carry are skipped with a warning.
func (c *OnlineAbConfig[TAb, TServer]) ApplyServerData(data *AbServerData[TServer]) {
	data.AbData.Each(func(v models.Variant, server TServer) {
		local, ok := c.ctx.Config.Store().Get(v)
		if !ok {
			c.ctx.Logger.Warnf(providers.TypeSync,
				"[Configs] %s config has no local %s variant, skipping server data", c.ctx.Type, v)
			return
		}
		c.ctx.ApplyServer(server, local)
	})
}

// DataToSave converts every local variant into the upload envelope.
func (c *OnlineAbConfig[TAb, TServer]) DataToSave() *AbServerData[TServer] {
	out := &AbServerData[TServer]{}
	c.ctx.Config.Store().Each(func(v models.Variant, local TAb) {
		out.AbData.Set(v, c.ctx.ToServer(local))
	})
	return out
}

// UpdateData applies a freshly loaded server payload and persists it to the
// prefs cache under this config's key.
func (c *OnlineAbConfig[TAb, TServer]) UpdateData(data *AbServerData[TServer]) error {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.ApplyServerData(data)

	blob, err := MarshalFiltered(data)
	if err != nil {
		return fmt.Errorf("cannot serialize %s server data: %w", c.ctx.Type, err)
	}
	if err := c.ctx.Prefs.Set(c.prefsKey(), string(blob)); err != nil {
		return fmt.Errorf("cannot persist %s server data: %w", c.ctx.Type, err)
	}

	c.ctx.Logger.Infof(providers.TypeSync, "[Configs] Saved server data for %s config", c.ctx.Type)
	return nil
}

// UpdateDataFromPrefs replays the last persisted server payload. Missing key
// is a no-op.
func (c *OnlineAbConfig[TAb, TServer]) UpdateDataFromPrefs() error {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	raw, ok := c.ctx.Prefs.Get(c.prefsKey())
	if !ok {
		return nil
	}

	var data AbServerData[TServer]
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return fmt.Errorf("cannot decode cached %s server data: %w", c.ctx.Type, err)
	}

	c.ApplyServerData(&data)
	c.ctx.Logger.Infof(providers.TypeSync, "[Configs] Loaded saved server data for %s config", c.ctx.Type)
	return nil
}
