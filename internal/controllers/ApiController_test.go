package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"emotrack/internal/models"
	"emotrack/internal/providers"
	"emotrack/internal/services"
	"emotrack/internal/structures"
	"emotrack/internal/testutil"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

type apiFixture struct {
	controller *ApiController
	service    services.EmotionServiceInterface
	persister  *testutil.MockPersister
	cache      *testutil.MockCache
	metrics    *testutil.MockMetrics
	logger     *testutil.MockLogger
}

func newDirectory(t *testing.T) providers.DirectoryInterface {
	t.Helper()
	dir, err := providers.NewDirectoryProvider(&structures.Config{}, &testutil.MockLogger{})
	require.NoError(t, err)
	return dir
}

func newAPIFixture(t *testing.T) apiFixture {
	t.Helper()
	f := apiFixture{
		persister: &testutil.MockPersister{},
		cache:     testutil.NewMockCache(),
		metrics:   testutil.NewMockMetrics(),
		logger:    &testutil.MockLogger{},
	}
	f.service = services.NewEmotionService(f.persister)
	f.controller = NewApiController(f.logger, f.service, newDirectory(t), f.cache, f.metrics)
	return f
}

func today() string {
	return models.FormatDate(time.Now())
}

func declare(t *testing.T, ac *ApiController, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/emotions", strings.NewReader(body))
	rr := httptest.NewRecorder()
	ac.Declare(rr, req)
	return rr
}

// --- Declare tests ---

func TestDeclare_ValidPayload(t *testing.T) {
	f := newAPIFixture(t)

	rr := declare(t, f.controller, `{"subjectId":"1","date":"`+today()+`","period":"morning","emotion":"happy","comment":" good "}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var saved models.EmotionRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &saved))
	assert.Equal(t, "1-"+today()+"-morning", saved.ID)
	assert.Equal(t, "good", saved.Comment)
	assert.False(t, saved.RecordedAt.IsZero())

	assert.Equal(t, 1, f.service.Len())
	counts := f.metrics.Counts()
	assert.Equal(t, 1, counts.Declarations["morning"])
	assert.Equal(t, 1, counts.RecordsTotal)
}

func TestDeclare_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"unknown emotion":  `{"subjectId":"1","date":"2024-01-01","period":"morning","emotion":"angry"}`,
		"unknown period":   `{"subjectId":"1","date":"2024-01-01","period":"night","emotion":"happy"}`,
		"malformed date":   `{"subjectId":"1","date":"01/01/2024","period":"morning","emotion":"happy"}`,
		"missing subject":  `{"date":"2024-01-01","period":"morning","emotion":"happy"}`,
		"missing emotion":  `{"subjectId":"1","date":"2024-01-01","period":"morning"}`,
		"comment too long": `{"subjectId":"1","date":"2024-01-01","period":"morning","emotion":"happy","comment":"` + strings.Repeat("x", 501) + `"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			f := newAPIFixture(t)
			rr := declare(t, f.controller, body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			var resp errorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Fields)
			assert.Equal(t, 0, f.service.Len())
		})
	}
}

func TestDeclare_RejectsFutureDate(t *testing.T) {
	f := newAPIFixture(t)
	tomorrow := models.FormatDate(time.Now().AddDate(0, 0, 1))

	for _, date := range []string{tomorrow, "2099-12-31"} {
		rr := declare(t, f.controller, `{"subjectId":"1","date":"`+date+`","period":"morning","emotion":"sad"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code, date)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "date")
	}
	assert.Equal(t, 0, f.service.Len())
}

func TestDeclare_InvalidJSON(t *testing.T) {
	f := newAPIFixture(t)
	assert.Equal(t, http.StatusBadRequest, declare(t, f.controller, "not json").Code)
	assert.Equal(t, http.StatusBadRequest, declare(t, f.controller, "").Code)
}

func TestDeclare_OversizedBody(t *testing.T) {
	f := newAPIFixture(t)
	big := `{"comment":"` + strings.Repeat("x", maxRequestBodySize+1) + `"}`
	assert.Equal(t, http.StatusBadRequest, declare(t, f.controller, big).Code)
}

func TestDeclare_UnknownSubject(t *testing.T) {
	f := newAPIFixture(t)
	rr := declare(t, f.controller, `{"subjectId":"404","date":"2024-01-01","period":"morning","emotion":"happy"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeclare_StorageFailure(t *testing.T) {
	f := newAPIFixture(t)
	f.persister.SetErr(errors.New("disk full"))

	rr := declare(t, f.controller, `{"subjectId":"1","date":"2024-01-01","period":"morning","emotion":"happy"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, 0, f.service.Len())
	assert.Equal(t, 1, f.logger.Count("error"))
	assert.Empty(t, f.metrics.Counts().Declarations)
}

// --- List / Today tests ---

func TestList_ReturnsNewestFirst(t *testing.T) {
	f := newAPIFixture(t)
	yesterday := models.FormatDate(time.Now().AddDate(0, 0, -1))
	require.Equal(t, http.StatusCreated, declare(t, f.controller, `{"subjectId":"1","date":"`+yesterday+`","period":"evening","emotion":"sad"}`).Code)
	require.Equal(t, http.StatusCreated, declare(t, f.controller, `{"subjectId":"1","date":"`+today()+`","period":"morning","emotion":"happy"}`).Code)

	req := httptest.NewRequest(http.MethodGet, "/emotions?subject=1&days=7", nil)
	rr := httptest.NewRecorder()
	f.controller.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var result []models.EmotionRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	require.Len(t, result, 2)
	assert.Equal(t, models.EmotionHappy, result[0].Emotion)
	assert.Equal(t, models.EmotionSad, result[1].Emotion)
}

func TestList_EmptyIsArray(t *testing.T) {
	f := newAPIFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/emotions?subject=2", nil)
	rr := httptest.NewRecorder()
	f.controller.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
}

func TestList_BadParams(t *testing.T) {
	f := newAPIFixture(t)

	cases := map[string]int{
		"/emotions":                   http.StatusBadRequest,
		"/emotions?subject=1&days=x":  http.StatusBadRequest,
		"/emotions?subject=1&days=-1": http.StatusBadRequest,
		"/emotions?subject=404":       http.StatusNotFound,
	}
	for url, status := range cases {
		rr := httptest.NewRecorder()
		f.controller.List(rr, httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, status, rr.Code, url)
	}
}

func TestList_CacheInvalidatedByDeclaration(t *testing.T) {
	f := newAPIFixture(t)

	get := func() []models.EmotionRecord {
		rr := httptest.NewRecorder()
		f.controller.List(rr, httptest.NewRequest(http.MethodGet, "/emotions?subject=1", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		var result []models.EmotionRecord
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		return result
	}

	assert.Empty(t, get())
	assert.Len(t, f.cache.Data, 1)

	require.Equal(t, http.StatusCreated, declare(t, f.controller, `{"subjectId":"1","date":"`+today()+`","period":"morning","emotion":"happy"}`).Code)
	assert.Len(t, get(), 1)
	assert.Len(t, f.cache.Data, 2)
}

func TestToday(t *testing.T) {
	f := newAPIFixture(t)
	require.Equal(t, http.StatusCreated, declare(t, f.controller, `{"subjectId":"1","date":"`+today()+`","period":"evening","emotion":"tired"}`).Code)

	rr := httptest.NewRecorder()
	f.controller.Today(rr, httptest.NewRequest(http.MethodGet, "/emotions/today?subject=1", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var result models.TodayRecords
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Nil(t, result.Morning)
	require.NotNil(t, result.Evening)
	assert.Equal(t, models.EmotionTired, result.Evening.Emotion)
}

// --- Export tests ---

func TestExport_CSVDefault(t *testing.T) {
	f := newAPIFixture(t)
	require.Equal(t, http.StatusCreated, declare(t, f.controller, `{"subjectId":"1","date":"2024-01-01","period":"morning","emotion":"happy","comment":"great"}`).Code)

	rr := httptest.NewRecorder()
	f.controller.Export(rr, httptest.NewRequest(http.MethodGet, "/export", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "emotions-"+today()+".csv")
	assert.Equal(t, "Date,Utilisateur,Période,Émotion,Commentaire\n2024-01-01,1,morning,happy,\"great\"", rr.Body.String())
}

func TestExport_JSON(t *testing.T) {
	f := newAPIFixture(t)
	require.Equal(t, http.StatusCreated, declare(t, f.controller, `{"subjectId":"1","date":"2024-01-01","period":"morning","emotion":"happy"}`).Code)

	rr := httptest.NewRecorder()
	f.controller.Export(rr, httptest.NewRequest(http.MethodGet, "/export?format=json", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), ".json")
	var result []models.EmotionRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Len(t, result, 1)
}

func TestExport_UnknownFormat(t *testing.T) {
	f := newAPIFixture(t)
	rr := httptest.NewRecorder()
	f.controller.Export(rr, httptest.NewRequest(http.MethodGet, "/export?format=xml", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
