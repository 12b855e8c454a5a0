package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ougirez/covidboard/internal/domain"
	"github.com/ougirez/covidboard/internal/pkg/cache"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/ougirez/covidboard/internal/pkg/utils"
	"github.com/ougirez/covidboard/internal/service/dashboard"
	"github.com/ougirez/covidboard/internal/service/loader"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	globalCSV = "date,location,total_cases,total_deaths\n" +
		"2020-03-01,Testland,10,1\n" +
		"2020-03-01,Zeroland,0,0\n" +
		"2020-03-01,World,10,1\n" +
		"2020-03-02,Testland,15,2\n" +
		"2020-03-02,Zeroland,0,0\n" +
		"2020-03-02,World,15,2\n"

	indiaCSV = "Date,State,Confirmed,Recovered,Deceased\n" +
		"2020-04-01,India,100,40,2\n" +
		"2020-04-01,Kerala,100,40,2\n" +
		"2020-04-02,India,150,60,4\n" +
		"2020-04-02,Kerala,150,60,4\n"

	testSecret = "open sesame"
)

func csvServer(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func newTestAPI(t *testing.T, indiaStatus int) (*APIService, cache.Cache) {
	t.Helper()
	viper.Set(constants.ViperSecretKey, testSecret)
	viper.Set(constants.ViperSigningKeyKey, "test signing key")
	t.Cleanup(viper.Reset)

	globalURL := csvServer(t, http.StatusOK, globalCSV)
	sources := map[domain.Dataset]loader.Source{
		domain.DatasetGlobal:     {Dataset: domain.DatasetGlobal, URL: globalURL, Schema: loader.GlobalSchema},
		domain.DatasetFatalities: {Dataset: domain.DatasetFatalities, URL: globalURL, Schema: loader.GlobalSchema},
		domain.DatasetIndia:      {Dataset: domain.DatasetIndia, URL: csvServer(t, indiaStatus, indiaCSV), Schema: loader.IndiaSchema},
	}

	datasetCache := cache.NewMemory(time.Minute)
	svc, err := NewAPIService(
		dashboard.NewDashboardService(loader.NewLoaderService(datasetCache, loader.Options{Timeout: time.Second}), sources, ""),
		datasetCache,
	)
	require.NoError(t, err)
	return svc, datasetCache
}

func do(t *testing.T, svc *APIService, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	svc.ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	}
	return rec, body
}

func get(t *testing.T, svc *APIService, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	return do(t, svc, httptest.NewRequest(http.MethodGet, target, nil))
}

func TestHealthz(t *testing.T) {
	svc, _ := newTestAPI(t, http.StatusOK)

	rec, body := get(t, svc, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestGlobalRoutes(t *testing.T) {
	svc, _ := newTestAPI(t, http.StatusOK)

	rec, body := get(t, svc, "/api/v1/global/overview")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "2020-03-02", body["date"])
	assert.Len(t, body["map"], 2)

	rec, body = get(t, svc, "/api/v1/global/countries/testland")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Testland", body["entity"])
	assert.Len(t, body["daily"], 2)

	rec, body = get(t, svc, "/api/v1/global/countries/Zeroland")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	latest := body["latest"].(map[string]interface{})
	assert.Equal(t, domain.NotApplicable, latest["fatality_rate"])

	rec, body = get(t, svc, "/api/v1/global/trend?window=month")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "month", body["window"])

	rec, body = get(t, svc, "/api/v1/global/fatalities?by=rate&limit=1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, body["entries"], 1)

	rec, body = get(t, svc, "/api/v1/global/compare?country=Testland&country=Zeroland")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, body["series"], 2)
}

func TestErrorMapping(t *testing.T) {
	svc, _ := newTestAPI(t, http.StatusInternalServerError)

	for _, tc := range []struct {
		target string
		code   int
	}{
		{"/api/v1/global/countries/Atlantis", http.StatusNotFound},
		{"/api/v1/global/compare", http.StatusBadRequest},
		{"/api/v1/global/fatalities?by=weight", http.StatusBadRequest},
		{"/api/v1/global/trend?window=year", http.StatusBadRequest},
		{"/api/v1/view", http.StatusBadRequest},
		{"/api/v1/view?analysis=forecast", http.StatusBadRequest},
		{"/api/v1/india/overview", http.StatusBadGateway},
		{"/api/v1/nowhere", http.StatusNotFound},
	} {
		rec, body := get(t, svc, tc.target)
		assert.Equal(t, tc.code, rec.Code, tc.target)
		assert.EqualValues(t, tc.code, body["code"], tc.target)
		assert.NotEmpty(t, body["message"], tc.target)
	}
}

func TestViewRoute(t *testing.T) {
	svc, _ := newTestAPI(t, http.StatusOK)

	rec, body := get(t, svc, "/api/v1/view?analysis=overview&dashboard=india")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	india := body["india"].(map[string]interface{})
	assert.Equal(t, "2020-04-01", india["previous_date"])
	assert.Equal(t, []interface{}{"Kerala"}, india["states"])

	rec, body = get(t, svc, "/api/v1/india/states/kerala")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	latest := body["latest"].(map[string]interface{})
	assert.EqualValues(t, 86, latest["current"])
	assert.EqualValues(t, 40, latest["recovery_rate"])

	rec, body = get(t, svc, "/api/v1/view?analysis=compare&entity=Testland")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "compare", body["analysis"])
	assert.NotNil(t, body["comparison"])
}

func adminToken(t *testing.T, secret string) string {
	t.Helper()
	token, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{Secret: secret}, time.Minute)
	require.NoError(t, err)
	return token
}

func TestAdminRoutes(t *testing.T) {
	svc, datasetCache := newTestAPI(t, http.StatusOK)

	rec, _ := get(t, svc, "/api/v1/global/overview")
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/cache/purge", nil)
	rec, _ = do(t, svc, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/cache/purge", nil)
	req.AddCookie(&http.Cookie{Name: constants.CookieKeySecretToken, Value: "garbage"})
	rec, _ = do(t, svc, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/cache/purge", nil)
	req.AddCookie(&http.Cookie{Name: constants.CookieKeySecretToken, Value: adminToken(t, "wrong")})
	rec, _ = do(t, svc, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/cache/purge", nil)
	req.AddCookie(&http.Cookie{Name: constants.CookieKeySecretToken, Value: adminToken(t, testSecret)})
	rec, body := do(t, svc, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, body["purged"])

	_, _, err := datasetCache.Get(req.Context(), "anything")
	assert.ErrorIs(t, err, constants.ErrCacheMiss)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/warmup", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, testSecret))
	rec, _ = do(t, svc, req)
	assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
}

func TestAdminRoutesWithoutSigningKey(t *testing.T) {
	svc, _ := newTestAPI(t, http.StatusOK)
	token := adminToken(t, testSecret)
	viper.Set(constants.ViperSigningKeyKey, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/cache/purge", nil)
	req.AddCookie(&http.Cookie{Name: constants.CookieKeySecretToken, Value: token})
	rec, body := do(t, svc, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, body["message"], constants.ViperSigningKeyKey)
}
