package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// FAOSTAT exports and the ad-hoc spreadsheets people feed this game do
// not agree on header names, so the parser matches a few synonyms per
// column, case-insensitively.
var csvColumns = map[string][]string{
	"country": {"country", "area"},
	"product": {"product", "item"},
	"year":    {"year"},
	"value":   {"value", "export value", "exportvalue", "export_value"},
	"element": {"element"},
}

// LoadCSV reads an export dataset from a CSV file and builds the Index.
func LoadCSV(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return New(records), nil
}

// ParseCSV decodes export records from r. Rows with an unparsable or
// empty value are skipped. When the file carries a FAOSTAT "Element"
// column, only "Export value" rows are kept — the same dump also holds
// export quantities, which are not money and must not be scored.
func ParseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int)
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		for field, synonyms := range csvColumns {
			for _, s := range synonyms {
				if name == s {
					cols[field] = i
				}
			}
		}
	}
	for _, field := range []string{"country", "product", "year", "value"} {
		if _, ok := cols[field]; !ok {
			return nil, fmt.Errorf("missing %s column in header %v", field, header)
		}
	}
	elementCol, hasElement := cols["element"]

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		if hasElement {
			el := strings.ToLower(strings.TrimSpace(row[elementCol]))
			if !strings.Contains(el, "export value") {
				continue
			}
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(row[cols["value"]]), 64)
		if err != nil {
			continue
		}

		rec := Record{
			Country: strings.TrimSpace(row[cols["country"]]),
			Product: strings.TrimSpace(row[cols["product"]]),
			Year:    strings.TrimSpace(row[cols["year"]]),
			Value:   value,
		}
		if rec.Country == "" || rec.Product == "" || rec.Year == "" {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}
