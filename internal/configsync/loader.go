package configsync

import (
	"abconfig/internal/providers"
	"context"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

type LoaderInterface interface {
	IsLoadingDone() bool
	ProcessLoad(ctx context.Context, fromServer bool)
}

// ConfigLoader runs one load attempt for one online config: from the prefs
// cache when offline, from the server otherwise. A failed attempt keeps the
// local data and still concludes the readiness flag; retries are up to the
// caller.
type ConfigLoader[TAb any, TServer any] struct {
	cfg             *OnlineAbConfig[TAb, TServer]
	transport       TransportInterface
	defaultPlatform Platform
	metrics         providers.MetricsProviderInterface
	logger          providers.Logger
	done            atomic.Bool
}

func NewConfigLoader[TAb any, TServer any](
	cfg *OnlineAbConfig[TAb, TServer],
	transport TransportInterface,
	defaultPlatform Platform,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) *ConfigLoader[TAb, TServer] {
	return &ConfigLoader[TAb, TServer]{
		cfg:             cfg,
		transport:       transport,
		defaultPlatform: defaultPlatform,
		metrics:         metrics,
		logger:          logger,
	}
}

func (l *ConfigLoader[TAb, TServer]) IsLoadingDone() bool {
	return l.done.Load()
}

func (l *ConfigLoader[TAb, TServer]) ProcessLoad(ctx context.Context, fromServer bool) {
	l.done.Store(false)
	defer func() {
		l.cfg.Ready().Set()
		l.done.Store(true)
	}()

	typ := l.cfg.Type()

	if !fromServer {
		if err := l.cfg.UpdateDataFromPrefs(); err != nil {
			l.logger.Errorf(providers.TypeSync, "[Configs] Cache load for %s config failed: %s", typ, err)
			l.metrics.IncSyncTotal(typ.String(), "cache_error")
			return
		}
		l.metrics.IncSyncTotal(typ.String(), "cache")
		return
	}

	platform := l.cfg.FixedPlatform()
	if platform == PlatformUnknown {
		platform = l.defaultPlatform
	}

	start := time.Now()
	raw, err := l.transport.Load(ctx, typ, platform)
	if err != nil {
		l.metrics.IncSyncTotal(typ.String(), "error")
		return
	}
	if raw == nil {
		l.logger.Warnf(providers.TypeSync, "[Configs] Load returned no data for type: %s", typ)
		l.metrics.IncSyncTotal(typ.String(), "empty")
		return
	}

	var data AbServerData[TServer]
	if err := json.Unmarshal(raw, &data); err != nil {
		l.logger.Errorf(providers.TypeSync, "[Configs] Cannot decode %s server data: %s", typ, err)
		l.metrics.IncSyncTotal(typ.String(), "decode_error")
		return
	}

	if err := l.cfg.UpdateData(&data); err != nil {
		l.logger.Errorf(providers.TypeSync, "[Configs] Cannot apply %s server data: %s", typ, err)
		l.metrics.IncSyncTotal(typ.String(), "apply_error")
		return
	}

	l.metrics.ObserveLoadDuration(typ.String(), time.Since(start))
	l.metrics.IncSyncTotal(typ.String(), "ok")
}
