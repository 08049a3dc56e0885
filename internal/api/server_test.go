package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/welllog/internal/db"
	"github.com/banshee-data/welllog/internal/testutil"
	"github.com/banshee-data/welllog/internal/units"
)

func setupTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	database, err := db.NewDB(filepath.Join(t.TempDir(), "welllog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	cat, err := units.DefaultCatalogue()
	require.NoError(t, err)
	return NewServer(db.NewWellStore(database), cat, opts)
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestShowVersion(t *testing.T) {
	s := NewServer(nil, nil, Options{})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	assert.Equal(t, "dev", decodeMap(t, rec)["version"])

	rec = serve(s, httptest.NewRequest(http.MethodPost, "/api/version", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusMethodNotAllowed)
}

func TestParseLAS(t *testing.T) {
	s := NewServer(nil, nil, Options{})

	rec := serve(s, testutil.NewLASRequest(http.MethodPost, "/api/las/parse", testutil.MinimalLAS))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	body := decodeMap(t, rec)
	assert.Equal(t, "2.00", body["version"])
	assert.Equal(t, "SPACE", body["delimiter"])
	assert.Equal(t, float64(2), body["num_samples"])
	assert.Equal(t, float64(3), body["estimated_samples"])
	assert.Equal(t, "TestWell", body["well"].(map[string]any)["name"])

	curves := body["curves"].([]any)
	require.Len(t, curves, 2)
	assert.Equal(t, "GR", curves[1].(map[string]any)["mnemonic"])

	stats := body["stats"].([]any)
	require.Len(t, stats, 2)
	gr := stats[1].(map[string]any)
	assert.Equal(t, float64(1), gr["count"])
	assert.Equal(t, float64(1), gr["nulls"])
}

func TestParseLASErrors(t *testing.T) {
	s := NewServer(nil, nil, Options{MaxBodyBytes: 64})

	tests := []struct {
		name   string
		method string
		body   string
		status int
		line   float64
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed, 0},
		{"empty body", http.MethodPost, "", http.StatusUnprocessableEntity, 0},
		{"no curves", http.MethodPost, "~V\n VERS. 2.0 :\n~W\n~A\n1 2\n", http.StatusUnprocessableEntity, 4},
		{"too large", http.MethodPost, testutil.FullLAS20, http.StatusRequestEntityTooLarge, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s, testutil.NewLASRequest(tt.method, "/api/las/parse", tt.body))
			testutil.AssertStatusCode(t, rec.Code, tt.status)

			body := decodeMap(t, rec)
			assert.NotEmpty(t, body["error"])
			if tt.line > 0 {
				assert.Equal(t, tt.line, body["line"])
			} else {
				assert.NotContains(t, body, "line")
			}
		})
	}
}

func TestConvertLAS(t *testing.T) {
	s := NewServer(nil, nil, Options{})

	rec := serve(s, testutil.NewLASRequest(http.MethodPost, "/api/las/convert?curves=NPHI", testutil.FullLAS20))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))

	out := rec.Body.String()
	assert.True(t, strings.HasPrefix(out, "~Version"), out)
	assert.Contains(t, out, " DEPT")
	assert.Contains(t, out, " NPHI")
	assert.NotContains(t, out, " RHOB")

	rec = serve(s, testutil.NewLASRequest(http.MethodPost, "/api/las/convert?curves=NOPE", testutil.FullLAS20))
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
}

func TestCurvesParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x?curves=GR,+,RHOB,", nil)
	assert.Equal(t, []string{"GR", "RHOB"}, curvesParam(req))
	assert.Nil(t, curvesParam(httptest.NewRequest(http.MethodGet, "/x", nil)))
}

func TestWellLifecycle(t *testing.T) {
	s := setupTestServer(t, Options{PlotWidthIn: 3, PlotHeightIn: 4})

	rec := serve(s, testutil.NewLASRequest(http.MethodPost, "/api/wells?source=full.las", testutil.FullLAS20))
	testutil.AssertStatusCode(t, rec.Code, http.StatusCreated)
	id, _ := decodeMap(t, rec)["well_id"].(string)
	require.NotEmpty(t, id)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/wells", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	var wells []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&wells))
	require.Len(t, wells, 1)
	assert.Equal(t, id, wells[0]["id"])
	assert.Equal(t, "full.las", wells[0]["source_path"])

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/wells/"+id, nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	well := decodeMap(t, rec)
	assert.Len(t, well["curves"], 4)
	assert.Equal(t, "ca", well["well"].(map[string]any)["country"])

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/wells/"+id+"/las?curves=DT", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	assert.Equal(t, `attachment; filename="`+id+`.las"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), " DT")
	assert.Contains(t, rec.Body.String(), "AAAAA_2")

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/wells/"+id+"/chart", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	assert.Contains(t, rec.Body.String(), "<html")
	assert.Contains(t, rec.Body.String(), "RHOB")

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/wells/"+id+"/plot.png?curves=DT,NPHI", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	_, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)

	rec = serve(s, httptest.NewRequest(http.MethodDelete, "/api/wells/"+id, nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusNoContent)

	for _, path := range []string{"/api/wells/" + id, "/api/wells/" + id + "/las", "/api/wells/" + id + "/chart"} {
		rec = serve(s, httptest.NewRequest(http.MethodGet, path, nil))
		testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)
	}
	rec = serve(s, httptest.NewRequest(http.MethodDelete, "/api/wells/"+id, nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)
}

func TestWellsEmptyListIsArray(t *testing.T) {
	s := setupTestServer(t, Options{})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/wells", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestWellRoutesMethods(t *testing.T) {
	s := setupTestServer(t, Options{})

	rec := serve(s, httptest.NewRequest(http.MethodPut, "/api/wells", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusMethodNotAllowed)
	rec = serve(s, httptest.NewRequest(http.MethodPost, "/api/wells/abc", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusMethodNotAllowed)
	rec = serve(s, httptest.NewRequest(http.MethodPost, "/api/wells/abc/chart", nil))
	testutil.AssertStatusCode(t, rec.Code, http.StatusMethodNotAllowed)
}

func TestWellRoutesWithoutStore(t *testing.T) {
	s := NewServer(nil, nil, Options{})

	for _, path := range []string{"/api/wells", "/api/wells/abc", "/api/wells/abc/las"} {
		rec := serve(s, httptest.NewRequest(http.MethodGet, path, nil))
		testutil.AssertStatusCode(t, rec.Code, http.StatusServiceUnavailable)
	}
}

type fakeAdmin struct{ attached bool }

func (f *fakeAdmin) AttachAdminRoutes(mux *http.ServeMux) {
	f.attached = true
	mux.HandleFunc("/debug/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestHandlerAttachesAdminAndLogs(t *testing.T) {
	admin := &fakeAdmin{}
	s := NewServer(nil, nil, Options{Admin: admin})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/ping", nil))
	assert.True(t, admin.attached)
	testutil.AssertStatusCode(t, rec.Code, http.StatusTeapot)
}

func TestStatusCodeColor(t *testing.T) {
	assert.Contains(t, statusCodeColor(200), colorBoldGreen)
	assert.Contains(t, statusCodeColor(304), colorYellow)
	assert.Contains(t, statusCodeColor(404), colorBoldRed)
	assert.Contains(t, statusCodeColor(503), colorBoldRed)
	assert.Equal(t, "100", statusCodeColor(100))
}
