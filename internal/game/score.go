package game

import (
	"sort"

	"github.com/playtrade/exportquiz/internal/dataset"
)

// topCount is how many countries the end-of-round report lists.
const topCount = 5

// Standing is one leaderboard row.
type Standing struct {
	Name         string   `json:"name"`
	Score        float64  `json:"score"`
	SharePercent float64  `json:"sharePercent"`
	Countries    []string `json:"countries"`
}

// Results is the immutable end-of-round snapshot broadcast to the room.
type Results struct {
	Leaderboard  []Standing         `json:"leaderboard"`
	TopCountries []dataset.Exporter `json:"topCountries"`
	WorldTotal   float64            `json:"worldTotal"`
}

// score computes the round results and writes the final score and share
// back onto each player. Ordering is a documented total order: score
// descending, ties broken by join order (the sort is stable over a
// join-ordered roster).
func score(r *Room, idx *dataset.Index) *Results {
	product, year := r.Settings.Product, r.Settings.Year
	worldTotal := idx.WorldTotal(product, year)

	players := r.Players() // join order
	for _, p := range players {
		var sum float64
		for _, country := range p.Selected {
			sum += idx.Value(product, year, country) // missing country counts as zero
		}
		p.Score = sum
		if worldTotal > 0 {
			p.SharePercent = 100 * sum / worldTotal
		} else {
			p.SharePercent = 0
		}
	}

	ranked := make([]*Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	leaderboard := make([]Standing, len(ranked))
	for i, p := range ranked {
		leaderboard[i] = Standing{
			Name:         p.Name,
			Score:        p.Score,
			SharePercent: p.SharePercent,
			Countries:    append([]string(nil), p.Selected...),
		}
	}

	return &Results{
		Leaderboard:  leaderboard,
		TopCountries: idx.TopExporters(product, year, topCount),
		WorldTotal:   worldTotal,
	}
}
