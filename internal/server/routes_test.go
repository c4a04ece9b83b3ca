package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trknhr/cardlog/internal/journal"
	"github.com/trknhr/cardlog/internal/location"
	"github.com/trknhr/cardlog/internal/model/engine"
	"github.com/trknhr/cardlog/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	db, err := store.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := store.NewSQLEntryStore(db)
	eng := engine.New(st)
	clock := func() time.Time { return time.Date(2026, 3, 2, 8, 15, 0, 0, time.Local) }
	svc := journal.NewService(st, eng, location.Static("35.12345 139.98765 0"), journal.WithClock(clock))
	return New(svc, "test")
}

func do(t *testing.T, srv *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode %s %s: %v; body: %s", method, path, err, w.Body.String())
		}
	}
	return w, resp
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	w, resp := do(t, srv, "GET", "/api/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %v, want ok", resp["status"])
	}
	if resp["version"] != "test" {
		t.Errorf("version = %v, want test", resp["version"])
	}
}

func TestSuggestions_Empty(t *testing.T) {
	srv := testServer(t)
	w, resp := do(t, srv, "GET", "/api/suggestions", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	cands, ok := resp["candidates"].([]any)
	require.True(t, ok, "candidates should be a JSON array, got %T", resp["candidates"])
	assert.Empty(t, cands)

	ectx := resp["context"].(map[string]any)
	assert.Equal(t, float64(8), ectx["current_hour"])
	assert.Equal(t, "35.123_139.988", ectx["geo_key"])
}

func TestCreateEntry_Validation(t *testing.T) {
	srv := testServer(t)
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"kind":`},
		{"unknown kind", `{"kind":"photo","title":"x"}`},
		{"bad parent", `{"kind":"text","title":"x","parent_id":"nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := do(t, srv, "POST", "/api/entries", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
			if _, ok := resp["error"]; !ok {
				t.Error("expected error field in response")
			}
		})
	}
}

func TestCreateEntry_LearnsAndSuggests(t *testing.T) {
	srv := testServer(t)

	w, resp := do(t, srv, "POST", "/api/entries", `{"kind":"text","title":"Breakfast"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	entry := resp["entry"].(map[string]any)
	assert.Equal(t, "Breakfast", entry["title"])
	assert.Equal(t, "35.12345 139.98765 0", entry["geo"])

	w, resp = do(t, srv, "GET", "/api/suggestions", "")
	require.Equal(t, http.StatusOK, w.Code)
	cands := resp["candidates"].([]any)
	require.Len(t, cands, 1)
	top := cands[0].(map[string]any)
	assert.Equal(t, "Breakfast", top["title"])
	assert.InDelta(t, 1.0, top["score"].(float64), 1e-9)

	w, resp = do(t, srv, "GET", "/api/entries?limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["entries"].([]any), 1)
}

func TestCreateEntry_StructuralKindNotLearned(t *testing.T) {
	srv := testServer(t)

	w, _ := do(t, srv, "POST", "/api/entries", `{"kind":"card","title":"Monday"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	_, resp := do(t, srv, "GET", "/api/engine", "")
	stats := resp["stats"].(map[string]any)
	assert.Equal(t, float64(0), stats["hours"])
}

func TestListEntries_BadLimit(t *testing.T) {
	srv := testServer(t)
	w, _ := do(t, srv, "GET", "/api/entries?limit=-1", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestEngine_ResetAndBootstrap(t *testing.T) {
	srv := testServer(t)
	for _, title := range []string{"Breakfast", "Commute"} {
		w, _ := do(t, srv, "POST", "/api/entries", `{"kind":"text","title":"`+title+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	_, resp := do(t, srv, "GET", "/api/engine", "")
	stats := resp["stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["hours"])
	assert.Equal(t, float64(1), stats["geo_buckets"])

	w, _ := do(t, srv, "POST", "/api/engine/reset", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	_, resp = do(t, srv, "GET", "/api/engine", "")
	stats = resp["stats"].(map[string]any)
	assert.Equal(t, float64(0), stats["hours"])

	w, resp = do(t, srv, "POST", "/api/engine/bootstrap", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(2), resp["replayed"])

	_, resp = do(t, srv, "GET", "/api/suggestions", "")
	assert.Len(t, resp["candidates"].([]any), 2)
}

func TestEngine_BootstrapTwiceDoesNotDoubleCounts(t *testing.T) {
	srv := testServer(t)
	w, _ := do(t, srv, "POST", "/api/entries", `{"kind":"text","title":"Breakfast"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	for i := 0; i < 2; i++ {
		w, _ := do(t, srv, "POST", "/api/engine/bootstrap", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	snap := srv.journal.Engine().Inspect()
	assert.Equal(t, 1, snap.Time[8]["Breakfast"])
	assert.Equal(t, 1, snap.Location["35.123_139.988"]["Breakfast"])
}
