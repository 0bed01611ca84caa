package controllers

import (
	"abconfig/internal/models"
	"abconfig/internal/providers"
	"abconfig/internal/services"
	"context"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

const eventConfigCacheKey = "config:event"

type StatusController struct {
	logger  providers.Logger
	service services.SyncServiceInterface
	cache   providers.CacheProviderInterface
}

func NewStatusController(logger providers.Logger, service services.SyncServiceInterface, cache providers.CacheProviderInterface) *StatusController {
	return &StatusController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (sc *StatusController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := sc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// GetStatuses reports per-config readiness and the active variant.
// Not cached: readiness flips as startup sync concludes.
func (sc *StatusController) GetStatuses(w http.ResponseWriter, r *http.Request) {
	gson, err := json.Marshal(sc.service.Statuses())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

type eventResponse struct {
	Variant       string              `json:"variant"`
	Data          *models.EventAbData `json:"data"`
	ActiveNow     bool                `json:"active_now"`
	ActivePeriod  string              `json:"active_period,omitempty"`
	TimeRemaining string              `json:"time_remaining,omitempty"`
}

// GetEventConfig renders the event config's resolved payload.
func (sc *StatusController) GetEventConfig(w http.ResponseWriter, r *http.Request) {
	sc.serveFromCacheOrCompute(w, eventConfigCacheKey, func() (any, error) {
		event := sc.service.Event()

		resp := eventResponse{Variant: "unset", Data: event.Data()}
		if v, ok := event.CurrentVariant(); ok {
			resp.Variant = v.String()
		}

		now := time.Now().UTC()
		if period, ok := event.ActivePeriod(now); ok {
			resp.ActiveNow = true
			resp.ActivePeriod = period.String()
			resp.TimeRemaining = period.TimeRemaining(now).String()
		}

		return resp, nil
	})
}

// TriggerSync re-fires the sync across all configs.
func (sc *StatusController) TriggerSync(w http.ResponseWriter, r *http.Request) {
	sc.logger.Infof(providers.TypeSync, "Sync triggered via HTTP")

	// Detach from the request context: the loads outlive this request.
	sc.service.SyncAll(context.Background())

	// The sync may change the active variant, so the cached rendering is stale.
	sc.cache.Del(eventConfigCacheKey)
	w.WriteHeader(http.StatusAccepted)
}
