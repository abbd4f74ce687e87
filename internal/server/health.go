package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/playtrade/exportquiz/internal/game"
)

// handleHealth reports the dataset state and, when the dataset is
// SQLite-backed, the database connection. "loading" is reported with
// 503 so orchestrators hold traffic until rooms can actually be created.
func handleHealth(logger *slog.Logger, reg *game.Registry, db *sql.DB) http.HandlerFunc {
	type result struct {
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]result{
			"dataset": {Status: "ok"},
		}
		status := http.StatusOK

		if _, err := reg.Index(); err != nil {
			checks["dataset"] = result{Status: "loading"}
			status = http.StatusServiceUnavailable
		}

		if db != nil {
			checks["sqlite"] = result{Status: "ok"}
			if err := db.PingContext(ctx); err != nil {
				logger.Error("health check failed", "name", "sqlite", "error", err)
				checks["sqlite"] = result{Status: "error"}
				status = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(checks)
	}
}
