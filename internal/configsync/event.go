package configsync

import (
	"abconfig/internal/configsync/interfaces"
	"abconfig/internal/models"
	"abconfig/internal/providers"
)

// EventOnlineConfig is the event config bound to the sync machinery.
type EventOnlineConfig = OnlineAbConfig[*models.EventAbData, *models.EventServerData]

func NewEventOnlineConfig(event *models.EventConfig, prefs interfaces.PrefsInterface, logger providers.Logger) *EventOnlineConfig {
	return NewOnlineAbConfig(OnlineCtx[*models.EventAbData, *models.EventServerData]{
		Type:          ConfigTypeEvent,
		FixedPlatform: PlatformUnknown,
		Config:        event.AbConfig,
		Prefs:         prefs,
		Logger:        logger,
		ApplyServer: func(server *models.EventServerData, local *models.EventAbData) {
			local.ApplyServer(server)
		},
		ToServer: func(local *models.EventAbData) *models.EventServerData {
			return local.ToServer()
		},
	})
}
