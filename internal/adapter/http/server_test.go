package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/jacket-load-service/internal/adapter/http"
	"github.com/couchcryptid/jacket-load-service/internal/domain"
	"github.com/couchcryptid/jacket-load-service/internal/observability"
	"github.com/couchcryptid/jacket-load-service/internal/register"
)

// memStore is an in-memory record store backing the handler tests.
type memStore struct {
	readings  []domain.Reading
	appendErr error
	loadErr   error
}

func (m *memStore) Append(_ context.Context, r domain.Reading) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.readings = append(m.readings, r)
	return nil
}

func (m *memStore) LoadAll(_ context.Context) ([]domain.Reading, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]domain.Reading(nil), m.readings...), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(store *memStore) *httpadapter.Server {
	svc := register.New(store, nil, discardLogger(), observability.NewMetricsForTesting())
	return httpadapter.NewServer(":0", svc, discardLogger())
}

func do(t *testing.T, srv *httpadapter.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	srv.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const validBody = `{"jacket_id":"G05","case":"EAC","pressures":{"A":11.6,"B":11.4,"C":22.9,"D":54.1}}`

func TestHealthzReturns200(t *testing.T) {
	rec := do(t, newTestServer(&memStore{}), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])
}

func TestReadyz(t *testing.T) {
	t.Run("ready when storage reachable", func(t *testing.T) {
		rec := do(t, newTestServer(&memStore{}), http.MethodGet, "/readyz", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", decode(t, rec)["status"])
	})

	t.Run("503 on storage failure", func(t *testing.T) {
		rec := do(t, newTestServer(&memStore{loadErr: domain.ErrStorage}), http.MethodGet, "/readyz", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "not ready", decode(t, rec)["status"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	rec := do(t, newTestServer(&memStore{}), http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestListJackets(t *testing.T) {
	rec := do(t, newTestServer(&memStore{}), http.MethodGet, "/api/v1/jackets", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Contains(t, body["jackets"], "G05")
	assert.Contains(t, body["jackets"], "D07 (Radar)")
	assert.Equal(t, []any{"EAC", "OBS"}, body["cases"])
}

func TestGetTargets(t *testing.T) {
	srv := newTestServer(&memStore{})

	t.Run("known jacket", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/v1/jackets/G05/targets?case=OBS", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		targets := body["targets"].(map[string]any)
		assert.Equal(t, 17.3, targets["A"])
		assert.Equal(t, 22.9, targets["C"])
	})

	t.Run("unknown jacket is 404", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/v1/jackets/Z99/targets?case=EAC", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown case is 404", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/v1/jackets/G05/targets?case=NOPE", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAssess(t *testing.T) {
	srv := newTestServer(&memStore{})

	t.Run("pass verdict", func(t *testing.T) {
		rec := do(t, srv, http.MethodPost, "/api/v1/assessments", validBody)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, true, body["pass"])
		assert.NotContains(t, body, "advice")

		dist := body["distribution"].(map[string]any)
		assert.Equal(t, 100.0, dist["total_pressure"])
		pct := dist["percentages"].(map[string]any)
		assert.InDelta(t, 54.1, pct["D"], 1e-6)
	})

	t.Run("fail verdict carries advice", func(t *testing.T) {
		zeroBody := `{"jacket_id":"G05","case":"EAC","pressures":{"A":0,"B":0,"C":0,"D":0}}`
		rec := do(t, srv, http.MethodPost, "/api/v1/assessments", zeroBody)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, false, body["pass"])
		assert.Contains(t, body["advice"], "Re-level the jacket")

		dist := body["distribution"].(map[string]any)
		assert.Equal(t, []any{"A", "B", "C", "D"}, dist["legs_below_minimum"])
	})

	t.Run("negative pressure is 400", func(t *testing.T) {
		bad := `{"jacket_id":"G05","case":"EAC","pressures":{"A":-1,"B":1,"C":1,"D":1}}`
		rec := do(t, srv, http.MethodPost, "/api/v1/assessments", bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing leg is 400", func(t *testing.T) {
		bad := `{"jacket_id":"G05","case":"EAC","pressures":{"A":1,"B":1,"C":1}}`
		rec := do(t, srv, http.MethodPost, "/api/v1/assessments", bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown jacket is 404", func(t *testing.T) {
		bad := `{"jacket_id":"Z99","case":"EAC","pressures":{"A":1,"B":1,"C":1,"D":1}}`
		rec := do(t, srv, http.MethodPost, "/api/v1/assessments", bad)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed JSON is 400", func(t *testing.T) {
		rec := do(t, srv, http.MethodPost, "/api/v1/assessments", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSaveReading(t *testing.T) {
	t.Run("persists and returns the reading", func(t *testing.T) {
		store := &memStore{}
		srv := newTestServer(store)

		rec := do(t, srv, http.MethodPost, "/api/v1/readings", validBody)

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decode(t, rec)

		reading := body["reading"].(map[string]any)
		assert.Equal(t, "G05", reading["jacket_id"])
		assert.Equal(t, "EAC", reading["case"])
		assert.NotEmpty(t, reading["timestamp"])

		assessment := body["assessment"].(map[string]any)
		assert.Equal(t, true, assessment["pass"])

		require.Len(t, store.readings, 1)
		assert.Equal(t, "G05", store.readings[0].JacketID)
	})

	t.Run("storage failure is 500 and drops nothing silently", func(t *testing.T) {
		store := &memStore{appendErr: domain.ErrStorage}
		srv := newTestServer(store)

		rec := do(t, srv, http.MethodPost, "/api/v1/readings", validBody)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, decode(t, rec)["error"], "storage")
	})

	t.Run("validation failure does not persist", func(t *testing.T) {
		store := &memStore{}
		srv := newTestServer(store)
		bad := `{"jacket_id":"G05","case":"EAC","pressures":{"A":-5,"B":1,"C":1,"D":1}}`

		rec := do(t, srv, http.MethodPost, "/api/v1/readings", bad)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, store.readings)
	})
}

func TestHistory(t *testing.T) {
	t.Run("empty register", func(t *testing.T) {
		rec := do(t, newTestServer(&memStore{}), http.MethodGet, "/api/v1/readings", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, 0.0, body["count"])
		assert.Empty(t, body["readings"])
	})

	t.Run("returns saved readings in order", func(t *testing.T) {
		store := &memStore{}
		srv := newTestServer(store)

		require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/v1/readings", validBody).Code)
		second := `{"jacket_id":"H05","case":"OBS","pressures":{"A":20,"B":20,"C":25,"D":35}}`
		require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/v1/readings", second).Code)

		rec := do(t, srv, http.MethodGet, "/api/v1/readings", "")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, 2.0, body["count"])

		readings := body["readings"].([]any)
		require.Len(t, readings, 2)
		assert.Equal(t, "G05", readings[0].(map[string]any)["jacket_id"])
		assert.Equal(t, "H05", readings[1].(map[string]any)["jacket_id"])
	})

	t.Run("storage failure is 500", func(t *testing.T) {
		rec := do(t, newTestServer(&memStore{loadErr: domain.ErrStorage}), http.MethodGet, "/api/v1/readings", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
