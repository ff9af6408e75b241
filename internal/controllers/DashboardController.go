package controllers

import (
	"net/http"
	"strings"

	"emotrack/internal/models"
	"emotrack/internal/providers"
	"emotrack/internal/services"

	json "github.com/goccy/go-json"
)

// DashboardController serves the role views, statistics and the alert feed.
type DashboardController struct {
	logger    providers.Logger
	dashboard services.DashboardServiceInterface
	store     services.EmotionServiceInterface
	cache     providers.CacheProviderInterface
}

type resolveRequest struct {
	ID string `json:"id"`
}

func NewDashboardController(logger providers.Logger, dashboard services.DashboardServiceInterface, store services.EmotionServiceInterface, cache providers.CacheProviderInterface) *DashboardController {
	return &DashboardController{
		logger:    logger,
		dashboard: dashboard,
		store:     store,
		cache:     cache,
	}
}

// Dashboard is keyed by hour as well: the employee view's pending period
// changes during the day without a store mutation.
func (dc *DashboardController) Dashboard(w http.ResponseWriter, r *http.Request) {
	dc.serveSubjectView(w, r, "dashboard", dc.store.Now().Hour(), func(subject string, days int) (any, error) {
		return dc.dashboard.View(subject, days)
	})
}

func (dc *DashboardController) Statistics(w http.ResponseWriter, r *http.Request) {
	dc.serveSubjectView(w, r, "statistics", 0, func(subject string, days int) (any, error) {
		return dc.dashboard.Statistics(subject, days)
	})
}

func (dc *DashboardController) Alerts(w http.ResponseWriter, r *http.Request) {
	key := cacheKey("alerts", dc.store.Revision(), models.FormatDate(dc.store.Now()))
	serveFromCacheOrCompute(w, r, dc.cache, dc.logger, key, func() (any, error) {
		return dc.dashboard.OrganizationAlerts(r.Context())
	})
}

func (dc *DashboardController) Resolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	id := strings.TrimSpace(payload.ID)
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := dc.dashboard.ResolveAlert(r.Context(), id); err != nil {
		writeServiceError(w, r, dc.logger, err)
		return
	}
	dc.logger.Infof(providers.TypePost, "Alert %s resolved", id)
	w.WriteHeader(http.StatusNoContent)
}

func (dc *DashboardController) serveSubjectView(w http.ResponseWriter, r *http.Request, prefix string, hour int, compute func(subject string, days int) (any, error)) {
	subject, ok := subjectParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "subject is required")
		return
	}
	days, err := daysParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := cacheKey(prefix, dc.store.Revision(), models.FormatDate(dc.store.Now()), hour, subject, days)
	serveFromCacheOrCompute(w, r, dc.cache, dc.logger, key, func() (any, error) {
		return compute(subject, days)
	})
}
