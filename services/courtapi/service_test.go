package courtapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"causelist-backend/lib/scrapers/ecourts"
	"causelist-backend/lib/testutil"
	"causelist-backend/services/courtdata"
	courtdatadb "causelist-backend/services/courtdata/db"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, portal http.Handler) Service {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/courtapi",
		DbSchema: courtdatadb.Schema,
	})
	t.Cleanup(cleanup)

	server := httptest.NewServer(portal)
	t.Cleanup(server.Close)

	scraper, err := ecourts.NewClient(ecourts.ClientOptions{
		BaseUrl: server.URL + "/ecourtindia_v6",
	})
	require.NoError(t, err)

	store := courtdata.NewStore(setup.DB)
	return NewService(scraper, &store)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHealth(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	router := service.Routes()

	rec, env := doJSON(t, router, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
}

func TestGetStatesFallsBack(t *testing.T) {
	// an empty portal page means the scraper serves its built-in table
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	router := service.Routes()

	rec, env := doJSON(t, router, http.MethodGet, "/api/states", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	states, ok := env.Data.([]any)
	require.True(t, ok)
	require.NotEmpty(t, states)
}

func TestGetDistricts(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Write([]byte("<html></html>"))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"app_token": "tok",
			"dist_list": `<select name="dist_code"><option value="0">Select</option><option value="9">New Delhi</option></select>`,
		})
	}))
	router := service.Routes()

	rec, env := doJSON(t, router, http.MethodGet, "/api/districts/26", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var districts []ecourts.Location
	require.NoError(t, json.Unmarshal(raw, &districts))
	require.Equal(t, []ecourts.Location{{Code: "9", Name: "New Delhi"}}, districts)
}

func TestSearchByCNRValidation(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	router := service.Routes()

	rec, env := doJSON(t, router, http.MethodPost, "/api/search/cnr", `{"cnr": ""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, env.Success)
	require.NotEmpty(t, env.Error)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/search/cnr", "not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitCauseListErrorsStayInPayload(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	router := service.Routes()

	// missing court code: still a 200, diagnosis inside the result
	rec, env := doJSON(t, router, http.MethodPost, "/api/cause-list", `{
		"state_code": "26",
		"district_code": "9",
		"court_complex_code": "101",
		"date": "10-06-2024",
		"captcha_code": "abc"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var result ecourts.CauseListResult
	require.NoError(t, json.Unmarshal(raw, &result))
	require.NotEmpty(t, result.Error)
	require.Empty(t, result.Cases)
}

func TestRequestIDHeader(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	router := service.Routes()

	rec, _ := doJSON(t, router, http.MethodGet, "/api/health", "")
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, "fixed-id", rec.Header().Get("X-Request-Id"))
}

func TestCORSPreflight(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	router := service.Routes()

	req := httptest.NewRequest(http.MethodOptions, "/api/search/cnr", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHistoryEndpointsWithEmptyStore(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	router := service.Routes()

	rec, env := doJSON(t, router, http.MethodGet, "/api/history/searches", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	rec, env = doJSON(t, router, http.MethodGet, "/api/history/cause-lists?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
}
