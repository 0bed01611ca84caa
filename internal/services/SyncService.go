package services

import (
	"abconfig/internal/configsync"
	"abconfig/internal/configsync/interfaces"
	"abconfig/internal/models"
	"abconfig/internal/providers"
	"abconfig/internal/structures"
	"context"
	"fmt"

	json "github.com/goccy/go-json"
)

type ConfigStatus struct {
	Type    string `json:"type"`
	Ready   bool   `json:"ready"`
	Variant string `json:"variant"`
}

type SyncServiceInterface interface {
	// SyncAll fires one load attempt per registered config, concurrently,
	// without awaiting them individually. Offline attempts fall back to the
	// prefs cache.
	SyncAll(ctx context.Context)
	// WaitReady blocks until every config's sync attempt has concluded.
	WaitReady(ctx context.Context) error
	ReadyCount() (ready int, total int)
	Statuses() []ConfigStatus
	Event() *models.EventConfig
	ApplyVariant(t configsync.ConfigType, v models.Variant) error
	// DataToSave returns the upload payload a SaveConfig call would send.
	DataToSave(t configsync.ConfigType) (any, error)
	SaveConfig(ctx context.Context, t configsync.ConfigType, platform configsync.Platform) error
	PullConfig(ctx context.Context, t configsync.ConfigType, platform configsync.Platform) error
	ListConfigurations(ctx context.Context) (map[string]any, error)
}

type SyncService struct {
	conf      *structures.Config
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	transport configsync.TransportInterface

	event       *models.EventConfig
	onlineEvent *configsync.EventOnlineConfig

	loaders   map[configsync.ConfigType]configsync.LoaderInterface
	readiness map[configsync.ConfigType]*configsync.Readiness

	defaultPlatform configsync.Platform
}

func NewSyncService(conf *structures.Config, prefs interfaces.PrefsInterface, transport configsync.TransportInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) SyncServiceInterface {
	event := models.NewEventConfig(defaultEventVariants(), defaultEventIcons(), logger)
	onlineEvent := configsync.NewEventOnlineConfig(event, prefs, logger)

	defaultPlatform := configsync.ParsePlatform(conf.Remote.Platform)

	s := &SyncService{
		conf:            conf,
		logger:          logger,
		metrics:         metrics,
		transport:       transport,
		event:           event,
		onlineEvent:     onlineEvent,
		loaders:         make(map[configsync.ConfigType]configsync.LoaderInterface),
		readiness:       make(map[configsync.ConfigType]*configsync.Readiness),
		defaultPlatform: defaultPlatform,
	}

	for _, t := range configsync.AllConfigTypes() {
		loader := s.getLoader(t)
		if loader == nil {
			logger.Warnf(providers.TypeSync, "Loader with type %s is not found", t)
			continue
		}
		s.loaders[t] = loader
	}
	s.readiness[configsync.ConfigTypeEvent] = onlineEvent.Ready()

	return s
}

func (s *SyncService) getLoader(t configsync.ConfigType) configsync.LoaderInterface {
	switch t {
	case configsync.ConfigTypeEvent:
		return configsync.NewConfigLoader(s.onlineEvent, s.transport, s.defaultPlatform, s.metrics, s.logger)
	default:
		return nil
	}
}

func (s *SyncService) SyncAll(ctx context.Context) {
	hasNet := s.transport.HasConnectivity()

	for t, loader := range s.loaders {
		go func(t configsync.ConfigType, loader configsync.LoaderInterface) {
			loader.ProcessLoad(ctx, hasNet)
			ready, _ := s.ReadyCount()
			s.metrics.SetConfigsReady(ready)
		}(t, loader)
	}
}

func (s *SyncService) WaitReady(ctx context.Context) error {
	for t, r := range s.readiness {
		select {
		case <-r.Done():
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s config: %w", t, ctx.Err())
		}
	}
	return nil
}

func (s *SyncService) ReadyCount() (int, int) {
	ready := 0
	for _, r := range s.readiness {
		if r.Ready() {
			ready++
		}
	}
	return ready, len(s.readiness)
}

func (s *SyncService) Statuses() []ConfigStatus {
	statuses := make([]ConfigStatus, 0, len(s.readiness))
	for _, t := range configsync.AllConfigTypes() {
		r, ok := s.readiness[t]
		if !ok {
			continue
		}

		variant := "unset"
		if t == configsync.ConfigTypeEvent {
			if v, has := s.event.CurrentVariant(); has {
				variant = v.String()
			}
		}

		statuses = append(statuses, ConfigStatus{
			Type:    t.String(),
			Ready:   r.Ready(),
			Variant: variant,
		})
	}
	return statuses
}

func (s *SyncService) Event() *models.EventConfig {
	return s.event
}

func (s *SyncService) ApplyVariant(t configsync.ConfigType, v models.Variant) error {
	switch t {
	case configsync.ConfigTypeEvent:
		s.event.ApplyVariant(v)
		return nil
	default:
		return fmt.Errorf("unknown config type: %s", t)
	}
}

func (s *SyncService) DataToSave(t configsync.ConfigType) (any, error) {
	switch t {
	case configsync.ConfigTypeEvent:
		return s.onlineEvent.DataToSave(), nil
	default:
		return nil, fmt.Errorf("unknown config type: %s", t)
	}
}

// SaveConfig uploads the current local data of a config. The transport
// enforces the platform and prod-environment guards.
func (s *SyncService) SaveConfig(ctx context.Context, t configsync.ConfigType, platform configsync.Platform) error {
	switch t {
	case configsync.ConfigTypeEvent:
		platform = s.resolvePlatform(s.onlineEvent.FixedPlatform(), platform)
		return s.transport.Save(ctx, t, s.onlineEvent.DataToSave(), platform)
	default:
		return fmt.Errorf("unknown config type: %s", t)
	}
}

// PullConfig loads a config from the server and overwrites local data and
// the prefs cache with the result.
func (s *SyncService) PullConfig(ctx context.Context, t configsync.ConfigType, platform configsync.Platform) error {
	switch t {
	case configsync.ConfigTypeEvent:
		platform = s.resolvePlatform(s.onlineEvent.FixedPlatform(), platform)
		raw, err := s.transport.Load(ctx, t, platform)
		if err != nil {
			return err
		}
		if raw == nil {
			return fmt.Errorf("load returned no data for type: %s", t)
		}

		var data configsync.AbServerData[*models.EventServerData]
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("cannot decode %s server data: %w", t, err)
		}
		return s.onlineEvent.UpdateData(&data)
	default:
		return fmt.Errorf("unknown config type: %s", t)
	}
}

func (s *SyncService) ListConfigurations(ctx context.Context) (map[string]any, error) {
	return s.transport.List(ctx)
}

func (s *SyncService) resolvePlatform(fixed, requested configsync.Platform) configsync.Platform {
	if fixed != configsync.PlatformUnknown {
		return fixed
	}
	if requested != configsync.PlatformUnknown {
		return requested
	}
	return s.defaultPlatform
}
