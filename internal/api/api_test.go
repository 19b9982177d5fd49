package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fitflow/fitflow/internal/models"
	"github.com/fitflow/fitflow/internal/store"
	"github.com/fitflow/fitflow/internal/testutil"
)

func newTestServer(t *testing.T) (*Server, *store.InMemoryStore) {
	t.Helper()
	st := store.NewInMemoryStore()
	turns := func(ctx context.Context, userID int64, text string) (string, error) {
		return "echo: " + text, nil
	}
	return NewServer(turns, st), st
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestTurnsHandler(t *testing.T) {
	s, _ := newTestServer(t)
	handler := s.Handler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/turns", strings.NewReader(`{"user_id":7,"text":"/start"}`))
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if resp.Status != models.APIStatusOK {
		t.Errorf("status field = %q, want ok", resp.Status)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok || result["reply"] != "echo: /start" {
		t.Errorf("result = %v, want reply echo: /start", resp.Result)
	}
}

func TestTurnsHandlerRejectsBadRequests(t *testing.T) {
	s, _ := newTestServer(t)
	handler := s.Handler()

	cases := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"invalid json", http.MethodPost, "{", http.StatusBadRequest},
		{"missing user id", http.MethodPost, `{"text":"hi"}`, http.StatusBadRequest},
		{"missing text", http.MethodPost, `{"user_id":7}`, http.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(c.method, "/turns", strings.NewReader(c.body))
			handler.ServeHTTP(rec, req)
			if rec.Code != c.want {
				t.Errorf("status = %d, want %d", rec.Code, c.want)
			}
		})
	}
}

func TestProgressHandler(t *testing.T) {
	s, st := newTestServer(t)
	handler := s.Handler()
	testutil.SeedProfile(t, st, 7, 2267, 2350)
	err := st.AddWaterLog(models.WaterLogEntry{ID: "w1", UserID: 7, AmountMl: 500, Timestamp: time.Now()})
	if err != nil {
		t.Fatalf("AddWaterLog() error = %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/progress?user_id=7", nil)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result = %v, want a snapshot object", resp.Result)
	}
	if result["water_consumed_ml"] != float64(500) {
		t.Errorf("water_consumed_ml = %v, want 500", result["water_consumed_ml"])
	}
	if result["water_target_ml"] != float64(2350) {
		t.Errorf("water_target_ml = %v, want 2350", result["water_target_ml"])
	}
}

func TestProgressHandlerExplicitDate(t *testing.T) {
	s, st := newTestServer(t)
	handler := s.Handler()
	testutil.SeedProfile(t, st, 7, 2267, 2350)
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	err := st.AddWaterLog(models.WaterLogEntry{ID: "w1", UserID: 7, AmountMl: 300, Timestamp: day})
	if err != nil {
		t.Fatalf("AddWaterLog() error = %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/progress?user_id=7&date=2026-03-10", nil)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	result := resp.Result.(map[string]interface{})
	if result["water_consumed_ml"] != float64(300) {
		t.Errorf("water_consumed_ml = %v, want 300", result["water_consumed_ml"])
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/progress?user_id=7&date=10-03-2026", nil)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed date status = %d, want 400", rec.Code)
	}
}

func TestProgressHandlerNoProfile(t *testing.T) {
	s, _ := newTestServer(t)
	handler := s.Handler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/progress?user_id=999", nil)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/progress", nil)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing user_id status = %d, want 400", rec.Code)
	}
}

func TestWeeklyProgressHandler(t *testing.T) {
	s, st := newTestServer(t)
	handler := s.Handler()
	testutil.SeedProfile(t, st, 7, 2267, 2350)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/progress/weekly?user_id=7", nil)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	days, ok := resp.Result.([]interface{})
	if !ok {
		t.Fatalf("result = %v, want an array", resp.Result)
	}
	if len(days) != 7 {
		t.Errorf("weekly report has %d days, want 7", len(days))
	}
}

func TestProfilesHandler(t *testing.T) {
	s, st := newTestServer(t)
	handler := s.Handler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profiles?user_id=7", nil)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 before setup", rec.Code)
	}

	testutil.SeedProfile(t, st, 7, 2267, 2350)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/profiles?user_id=7", nil)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	result := resp.Result.(map[string]interface{})
	if result["city"] != "Lisbon" || result["calorie_goal"] != float64(2267) {
		t.Errorf("profile result = %v", result)
	}
}

func TestHealthHandler(t *testing.T) {
	s, _ := newTestServer(t)
	handler := s.Handler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
