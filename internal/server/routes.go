package server

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playtrade/exportquiz/internal/game"
)

func addRoutes(r chi.Router, logger *slog.Logger, hub *Hub, reg *game.Registry, db *sql.DB, spaDir string) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("ExportQuiz API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, reg, db))

	// The game itself runs over this socket; everything under /api is
	// read-only catalog data for building lobby screens.
	r.Get("/ws", handleWS(logger, hub))

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", handleProducts(reg))
		r.Get("/years", handleYears(reg))
		r.Get("/countries", handleCountries(reg))
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
