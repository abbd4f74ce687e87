package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/playtrade/exportquiz/internal/game"
)

func TestHealthReflectsDatasetState(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := game.NewRegistry()
	handler := handleHealth(logger, reg, nil)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status before load = %d, want 503", rec.Code)
	}

	var checks map[string]struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &checks); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if checks["dataset"].Status != "loading" {
		t.Errorf("dataset = %s, want loading", checks["dataset"].Status)
	}
	if _, ok := checks["sqlite"]; ok {
		t.Error("sqlite check reported without a database")
	}

	reg.SetIndex(testIndex())
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status after load = %d, want 200", rec.Code)
	}
}
