// Package dataset holds the read-only export dataset the game is played
// against. An Index is built once at startup (from CSV or SQLite) and is
// never mutated afterwards, so it is safe to read from any goroutine.
package dataset

import (
	"sort"

	"github.com/samber/lo"
)

// Record is one export data point: how much of a product a country
// exported in a given year. Values are in the unit the source uses
// (FAOSTAT reports thousands of USD); the game only ever compares and
// sums them, so the unit never matters.
type Record struct {
	Country string
	Product string
	Year    string
	Value   float64
}

// Exporter is a country ranked within one (product, year) slice.
type Exporter struct {
	Country string  `json:"country"`
	Value   float64 `json:"value"`
	Share   float64 `json:"share"` // percentage of the world total
}

type pyKey struct {
	product string
	year    string
}

type valueKey struct {
	product string
	year    string
	country string
}

// Index answers every dataset question the game needs. When the source
// carries several rows for the same (product, year, country) triple the
// last row loaded wins; New applies records in input order.
type Index struct {
	values    map[valueKey]float64
	countries map[pyKey][]string  // sorted by name
	ranked    map[pyKey][]Exporter // sorted by value desc, name asc on ties
	totals    map[pyKey]float64
	products  []string
	years     []string
}

// New builds an Index from records. Input order is significant only for
// duplicate triples (last one wins).
func New(records []Record) *Index {
	idx := &Index{
		values:    make(map[valueKey]float64),
		countries: make(map[pyKey][]string),
		ranked:    make(map[pyKey][]Exporter),
		totals:    make(map[pyKey]float64),
	}

	for _, rec := range records {
		idx.values[valueKey{rec.Product, rec.Year, rec.Country}] = rec.Value
	}

	productSet := make(map[string]struct{})
	yearSet := make(map[string]struct{})
	for k, v := range idx.values {
		py := pyKey{k.product, k.year}
		idx.countries[py] = append(idx.countries[py], k.country)
		idx.ranked[py] = append(idx.ranked[py], Exporter{Country: k.country, Value: v})
		idx.totals[py] += v
		productSet[k.product] = struct{}{}
		yearSet[k.year] = struct{}{}
	}

	for py := range idx.countries {
		sort.Strings(idx.countries[py])

		ranked := idx.ranked[py]
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].Value != ranked[j].Value {
				return ranked[i].Value > ranked[j].Value
			}
			return ranked[i].Country < ranked[j].Country
		})
		if total := idx.totals[py]; total > 0 {
			for i := range ranked {
				ranked[i].Share = 100 * ranked[i].Value / total
			}
		}
	}

	idx.products = lo.Keys(productSet)
	sort.Strings(idx.products)
	idx.years = lo.Keys(yearSet)
	sort.Strings(idx.years)

	return idx
}

// Value returns the export value for a triple; zero when no row exists.
// A missing country is a legitimate zero, not an error.
func (idx *Index) Value(product, year, country string) float64 {
	return idx.values[valueKey{product, year, country}]
}

// HasCountry reports whether country has data for (product, year).
func (idx *Index) HasCountry(product, year, country string) bool {
	_, ok := idx.values[valueKey{product, year, country}]
	return ok
}

// Countries returns the countries with data for (product, year), sorted
// by name. The slice is shared; callers must not modify it.
func (idx *Index) Countries(product, year string) []string {
	return idx.countries[pyKey{product, year}]
}

// WorldTotal is the sum of every country's export value for (product, year).
func (idx *Index) WorldTotal(product, year string) float64 {
	return idx.totals[pyKey{product, year}]
}

// TopExporters returns up to n countries for (product, year), highest
// value first, names ascending on equal values.
func (idx *Index) TopExporters(product, year string, n int) []Exporter {
	ranked := idx.ranked[pyKey{product, year}]
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Products returns every distinct product, sorted.
func (idx *Index) Products() []string { return idx.products }

// Years returns every distinct year, sorted.
func (idx *Index) Years() []string { return idx.years }

// Len is the number of distinct (product, year, country) triples.
func (idx *Index) Len() int { return len(idx.values) }
