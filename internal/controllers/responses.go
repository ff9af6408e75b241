package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"emotrack/internal/providers"
	"emotrack/internal/services"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"github.com/spf13/cast"
)

const (
	maxRequestBodySize = 1 << 20 // 1 MB
	maxWindowDays      = 366
)

var errBadWindow = errors.New("days must be an integer between 0 and 366")

type errorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeValidationError(w http.ResponseWriter, errs validate.Errors) {
	fields := make(map[string][]string, len(errs))
	for field, msgs := range errs {
		for _, m := range msgs {
			fields[field] = append(fields[field], m)
		}
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
}

// writeServiceError maps service sentinels to client errors and logs the rest.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger providers.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrUnknownSubject), errors.Is(err, services.ErrUnknownAlert):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrScopeNotAllowed):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cache providers.CacheProviderInterface, logger providers.Logger, cacheKey string, compute func() (any, error)) {
	if data, ok := cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeServiceError(w, r, logger, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		writeServiceError(w, r, logger, err)
		return
	}

	cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// cacheKey builds a memoisation key. The revision makes every store mutation
// invalidate earlier entries and the date bounds day-relative windows.
func cacheKey(prefix string, revision uint64, date string, parts ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%s", prefix, revision, date)
	for _, p := range parts {
		fmt.Fprintf(&b, ":%v", p)
	}
	return b.String()
}

func subjectParam(r *http.Request) (string, bool) {
	s := strings.TrimSpace(r.URL.Query().Get("subject"))
	return s, s != ""
}

// daysParam reads ?days=N in base 10. Absent means 0, which selects the view
// default.
func daysParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return 0, nil
	}
	if strings.TrimLeft(raw, "0123456789") != "" {
		return 0, errBadWindow
	}
	// cast honours base prefixes, so leading zeros would read as octal
	digits := strings.TrimLeft(raw, "0")
	if digits == "" {
		return 0, nil
	}
	if len(digits) > 3 {
		return 0, errBadWindow
	}
	days, err := cast.ToIntE(digits)
	if err != nil {
		return 0, errBadWindow
	}
	if days > maxWindowDays {
		return 0, errBadWindow
	}
	return days, nil
}
