package dataset

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestLastRecordWins(t *testing.T) {
	idx := New([]Record{
		{Country: "A", Product: "Wheat", Year: "2020", Value: 1},
		{Country: "A", Product: "Wheat", Year: "2020", Value: 7},
	})

	if got := idx.Value("Wheat", "2020", "A"); got != 7 {
		t.Errorf("Value = %v, want 7 (last loaded)", got)
	}
	if got := idx.WorldTotal("Wheat", "2020"); got != 7 {
		t.Errorf("WorldTotal = %v, want 7 (no double counting)", got)
	}
	if got := len(idx.Countries("Wheat", "2020")); got != 1 {
		t.Errorf("Countries lists %d entries, want 1", got)
	}
}

func TestCountriesSortedByName(t *testing.T) {
	idx := New([]Record{
		{Country: "Peru", Product: "Wheat", Year: "2020", Value: 3},
		{Country: "Argentina", Product: "Wheat", Year: "2020", Value: 1},
		{Country: "Mexico", Product: "Wheat", Year: "2020", Value: 2},
		{Country: "Peru", Product: "Maize", Year: "2020", Value: 9},
	})

	want := []string{"Argentina", "Mexico", "Peru"}
	if got := idx.Countries("Wheat", "2020"); !reflect.DeepEqual(got, want) {
		t.Errorf("Countries = %v, want %v", got, want)
	}
	if got := idx.Countries("Wheat", "1999"); got != nil {
		t.Errorf("Countries for absent year = %v, want nil", got)
	}
}

func TestTopExporters(t *testing.T) {
	idx := New([]Record{
		{Country: "A", Product: "Wheat", Year: "2020", Value: 100},
		{Country: "B", Product: "Wheat", Year: "2020", Value: 50},
		{Country: "D", Product: "Wheat", Year: "2020", Value: 50},
		{Country: "C", Product: "Wheat", Year: "2020", Value: 25},
	})

	top := idx.TopExporters("Wheat", "2020", 3)
	if len(top) != 3 {
		t.Fatalf("got %d exporters, want 3", len(top))
	}

	// Value descending, equal values ordered by country name.
	wantOrder := []string{"A", "B", "D"}
	for i, want := range wantOrder {
		if top[i].Country != want {
			t.Errorf("top[%d] = %s, want %s", i, top[i].Country, want)
		}
	}

	if want := 100 * 100.0 / 225.0; math.Abs(top[0].Share-want) > 1e-9 {
		t.Errorf("top[0].Share = %v, want %v", top[0].Share, want)
	}

	if got := idx.TopExporters("Wheat", "2020", 10); len(got) != 4 {
		t.Errorf("asking for more than exist returned %d", len(got))
	}
}

func TestProductsAndYears(t *testing.T) {
	idx := New([]Record{
		{Country: "A", Product: "Wheat", Year: "2021", Value: 1},
		{Country: "A", Product: "Coffee", Year: "2019", Value: 1},
		{Country: "B", Product: "Wheat", Year: "2019", Value: 1},
	})

	if got, want := idx.Products(), []string{"Coffee", "Wheat"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Products = %v, want %v", got, want)
	}
	if got, want := idx.Years(), []string{"2019", "2021"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Years = %v, want %v", got, want)
	}
	if idx.Len() != 3 {
		t.Errorf("Len = %d, want 3", idx.Len())
	}
}

func TestParseCSV(t *testing.T) {
	t.Run("plain headers", func(t *testing.T) {
		in := "Country,Product,Year,Value\nItaly,Wheat,2020,12.5\nFrance,Wheat,2020,30\n"
		records, err := ParseCSV(strings.NewReader(in))
		if err != nil {
			t.Fatalf("ParseCSV: %v", err)
		}
		want := []Record{
			{Country: "Italy", Product: "Wheat", Year: "2020", Value: 12.5},
			{Country: "France", Product: "Wheat", Year: "2020", Value: 30},
		}
		if !reflect.DeepEqual(records, want) {
			t.Errorf("records = %+v, want %+v", records, want)
		}
	})

	t.Run("faostat headers with element filter", func(t *testing.T) {
		in := strings.Join([]string{
			"Area,Item,Element,Year,Value",
			"Italy,Wheat,Export value,2020,100",
			"Italy,Wheat,Export quantity,2020,99999",
			"Spain,Wheat,Export value,2020,70",
		}, "\n")
		records, err := ParseCSV(strings.NewReader(in))
		if err != nil {
			t.Fatalf("ParseCSV: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("got %d records, want 2 (quantities dropped): %+v", len(records), records)
		}
		if records[0].Country != "Italy" || records[0].Value != 100 {
			t.Errorf("records[0] = %+v", records[0])
		}
	})

	t.Run("bad rows skipped", func(t *testing.T) {
		in := "Country,Product,Year,Value\nItaly,Wheat,2020,not-a-number\n,Wheat,2020,5\nSpain,Wheat,2020,70\n"
		records, err := ParseCSV(strings.NewReader(in))
		if err != nil {
			t.Fatalf("ParseCSV: %v", err)
		}
		if len(records) != 1 || records[0].Country != "Spain" {
			t.Errorf("records = %+v, want just Spain", records)
		}
	})

	t.Run("missing column", func(t *testing.T) {
		in := "Country,Year,Value\nItaly,2020,5\n"
		if _, err := ParseCSV(strings.NewReader(in)); err == nil {
			t.Fatal("ParseCSV accepted a header without a product column")
		}
	})
}
