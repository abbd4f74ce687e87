package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAPISpec(t *testing.T) {
	rec := httptest.NewRecorder()
	handleOpenAPI()(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, path := range []string{"/healthz", "/ws", "/api/products", "/api/years", "/api/countries"} {
		if !strings.Contains(body, `"`+path+`"`) {
			t.Errorf("spec is missing %s", path)
		}
	}
}
