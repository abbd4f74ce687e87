package server

import (
	"net/http"

	"github.com/playtrade/exportquiz/internal/game"
)

// The catalog endpoints mirror what the websocket hands a manager on
// roomCreated, for clients that want to populate pickers before
// opening a socket. All three return 503 while the dataset loads.

func handleProducts(reg *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx, err := reg.Index()
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, game.Kind(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, idx.Products())
	}
}

func handleYears(reg *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx, err := reg.Index()
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, game.Kind(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, idx.Years())
	}
}

func handleCountries(reg *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx, err := reg.Index()
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, game.Kind(err), err.Error())
			return
		}

		product := r.URL.Query().Get("product")
		year := r.URL.Query().Get("year")
		if product == "" || year == "" {
			writeError(w, http.StatusBadRequest, "BadRequest", "product and year query parameters are required")
			return
		}

		countries := idx.Countries(product, year)
		if countries == nil {
			countries = []string{}
		}
		writeJSON(w, http.StatusOK, countries)
	}
}
