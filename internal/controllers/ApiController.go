package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"emotrack/internal/export"
	"emotrack/internal/models"
	"emotrack/internal/providers"
	"emotrack/internal/services"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

// ApiController handles declarations and raw record access.
type ApiController struct {
	logger    providers.Logger
	service   services.EmotionServiceInterface
	directory providers.DirectoryInterface
	cache     providers.CacheProviderInterface
	metrics   providers.MetricsProviderInterface
}

func NewApiController(logger providers.Logger, service services.EmotionServiceInterface, directory providers.DirectoryInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		logger:    logger,
		service:   service,
		directory: directory,
		cache:     cache,
		metrics:   metrics,
	}
}

// Declare records (or replaces) one emotion declaration.
func (ac *ApiController) Declare(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.Declaration
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}

	if err := payload.ValidateAt(ac.service.Now()); err != nil {
		var verrs validate.Errors
		if errors.As(err, &verrs) {
			writeValidationError(w, verrs)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := ac.directory.Subject(payload.SubjectID); !ok {
		writeError(w, http.StatusNotFound, "unknown subject")
		return
	}

	saved, err := ac.service.Upsert(payload.ToRecord())
	if err != nil {
		writeServiceError(w, r, ac.logger, err)
		return
	}

	ac.metrics.IncDeclarations(string(saved.Period))
	ac.metrics.SetRecordsTotal(ac.service.Len())
	ac.logger.Debugf(providers.TypePost, "Declaration %s stored: %s", saved.ID, saved.Emotion)
	writeJSON(w, http.StatusCreated, saved)
}

// List returns a subject's records in the window, newest first.
func (ac *ApiController) List(w http.ResponseWriter, r *http.Request) {
	subject, ok := ac.knownSubject(w, r)
	if !ok {
		return
	}
	days, err := daysParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := cacheKey("list", ac.service.Revision(), models.FormatDate(ac.service.Now()), subject, days)
	serveFromCacheOrCompute(w, r, ac.cache, ac.logger, key, func() (any, error) {
		return ac.service.QueryBySubject(subject, days), nil
	})
}

func (ac *ApiController) Today(w http.ResponseWriter, r *http.Request) {
	subject, ok := ac.knownSubject(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ac.service.QueryToday(subject))
}

// Export downloads every record as CSV (default) or JSON.
func (ac *ApiController) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := export.Serialize(ac.service.All(), format, ac.service.Now())
	if err != nil {
		writeServiceError(w, r, ac.logger, err)
		return
	}

	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+out.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Data)
}

func (ac *ApiController) knownSubject(w http.ResponseWriter, r *http.Request) (string, bool) {
	subject, ok := subjectParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "subject is required")
		return "", false
	}
	if _, ok := ac.directory.Subject(subject); !ok {
		writeError(w, http.StatusNotFound, "unknown subject")
		return "", false
	}
	return subject, true
}
