package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/playtrade/exportquiz/internal/game"
)

func TestCatalogBeforeDatasetReady(t *testing.T) {
	reg := game.NewRegistry()

	for _, handler := range []http.HandlerFunc{handleProducts(reg), handleYears(reg), handleCountries(reg)} {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
		var payload ErrorPayload
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if payload.Kind != "DatasetNotReady" {
			t.Errorf("kind = %s, want DatasetNotReady", payload.Kind)
		}
	}
}

func TestCatalogLists(t *testing.T) {
	reg := game.NewRegistry()
	reg.SetIndex(testIndex())

	rec := httptest.NewRecorder()
	handleProducts(reg)(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("products status = %d", rec.Code)
	}
	var products []string
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("decoding products: %v", err)
	}
	if len(products) != 1 || products[0] != "Wheat" {
		t.Errorf("products = %v", products)
	}

	rec = httptest.NewRecorder()
	handleYears(reg)(rec, httptest.NewRequest(http.MethodGet, "/api/years", nil))
	var years []string
	json.Unmarshal(rec.Body.Bytes(), &years)
	if len(years) != 1 || years[0] != "2020" {
		t.Errorf("years = %v", years)
	}
}

func TestCountriesQueryParams(t *testing.T) {
	reg := game.NewRegistry()
	reg.SetIndex(testIndex())
	handler := handleCountries(reg)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/countries?product=Wheat", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing year: status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/countries?product=Wheat&year=2020", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var countries []string
	if err := json.Unmarshal(rec.Body.Bytes(), &countries); err != nil {
		t.Fatalf("decoding countries: %v", err)
	}
	if len(countries) != 3 || countries[0] != "A" || countries[2] != "C" {
		t.Errorf("countries = %v", countries)
	}

	// Absent combinations answer an empty list, not null.
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/countries?product=Silk&year=1400", nil))
	if got := rec.Body.String(); got != "[]\n" && got != "[]" {
		t.Errorf("absent combination body = %q, want []", got)
	}
}
