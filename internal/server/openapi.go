package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "ExportQuiz API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the export trivia game. Gameplay runs over /ws; the REST routes serve catalog data and health.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Reports dataset readiness and, when SQLite-backed, database health.")
	getHealthz.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /ws
	getWS, _ := r.NewOperationContext(http.MethodGet, "/ws")
	getWS.SetSummary("Game websocket")
	getWS.SetDescription("Upgrades to the bidirectional game event channel. Frames both ways are {\"type\": ..., \"data\": ...}; see the server README for the event catalog.")
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	// GET /api/products
	getProducts, _ := r.NewOperationContext(http.MethodGet, "/api/products")
	getProducts.SetSummary("List products")
	getProducts.SetDescription("Distinct products in the dataset, sorted.")
	getProducts.AddRespStructure([]string{}, openapi.WithHTTPStatus(http.StatusOK))
	getProducts.AddRespStructure(ErrorPayload{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getProducts)

	// GET /api/years
	getYears, _ := r.NewOperationContext(http.MethodGet, "/api/years")
	getYears.SetSummary("List years")
	getYears.SetDescription("Distinct years in the dataset, sorted.")
	getYears.AddRespStructure([]string{}, openapi.WithHTTPStatus(http.StatusOK))
	getYears.AddRespStructure(ErrorPayload{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getYears)

	// GET /api/countries
	getCountries, _ := r.NewOperationContext(http.MethodGet, "/api/countries")
	getCountries.SetSummary("List countries for a product and year")
	getCountries.SetDescription("Countries with export data for the given product and year query parameters, sorted by name.")
	getCountries.AddRespStructure([]string{}, openapi.WithHTTPStatus(http.StatusOK))
	getCountries.AddRespStructure(ErrorPayload{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	getCountries.AddRespStructure(ErrorPayload{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getCountries)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
