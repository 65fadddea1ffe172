package tableview

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dkasparas/autonuoma/database"
)

func manyCars(n int) []database.Car {
	cars := make([]database.Car, 0, n)
	for i := 1; i <= n; i++ {
		cars = append(cars, database.Car{
			ID:      uint(i),
			Marke:   "Marke" + fmt.Sprint(i),
			Modelis: "Modelis" + fmt.Sprint(i),
			Busena:  database.CarFree,
		})
	}
	return cars
}

func carColumns() []Column[database.Car] {
	return []Column[database.Car]{
		{Header: "Marke", Field: "marke"},
		{Header: "Modelis", Field: "modelis"},
		{Header: "Kaina", Derived: func(c *database.Car) string {
			return Stringify(c.KainaParai) + " EUR"
		}},
	}
}

func TestViewPagesThroughCollection(t *testing.T) {
	v, err := NewView("cars-grid", 5, carColumns())
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	cars := manyCars(12)

	v.Paginator.SetTotal(len(cars))
	tests := []struct {
		name    string
		page    int
		wantLen int
		wantID  uint
	}{
		{"first page", 1, 5, 1},
		{"middle page", 2, 5, 6},
		{"short last page", 3, 2, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v.Paginator.SetPage(tt.page)
			rows := v.Rows(cars)
			if len(rows) != tt.wantLen {
				t.Fatalf("Rows() len = %d, want %d", len(rows), tt.wantLen)
			}
			if rows[0].ID != tt.wantID {
				t.Errorf("Rows()[0].ID = %d, want %d", rows[0].ID, tt.wantID)
			}
		})
	}
}

func TestViewFilterChangeRewindsPage(t *testing.T) {
	v, _ := NewView("cars-grid", 5, carColumns())
	cars := manyCars(12)
	v.Rows(cars)
	v.Paginator.SetPage(3)

	v.SetSearch("modelis1")
	if v.Paginator.Page() != 1 {
		t.Errorf("Page() = %d after SetSearch, want 1", v.Paginator.Page())
	}

	v.Paginator.SetPage(2)
	v.SetStatus(database.CarRented)
	if v.Paginator.Page() != 1 {
		t.Errorf("Page() = %d after SetStatus, want 1", v.Paginator.Page())
	}
}

func TestColumnValue(t *testing.T) {
	car := database.Car{Marke: "Toyota", Modelis: "Corolla", KainaParai: 25.5}
	tests := []struct {
		name string
		col  Column[database.Car]
		want string
	}{
		{"db tag field", Column[database.Car]{Field: "marke"}, "Toyota"},
		{"field name fallback", Column[database.Car]{Field: "Modelis"}, "Corolla"},
		{"float without trailing zeros", Column[database.Car]{Field: "kaina_parai"}, "25.5"},
		{"unknown field", Column[database.Car]{Field: "nera"}, ""},
		{"derived", Column[database.Car]{Derived: func(c *database.Car) string {
			return c.Marke + " " + c.Modelis
		}}, "Toyota Corolla"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.col.Value(&car); got != tt.want {
				t.Errorf("Value() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFieldValueOnMaps(t *testing.T) {
	row := map[string]any{"marke": "Toyota", "metai": int64(2021)}
	val, ok := FieldValue(row, "marke")
	if !ok || Stringify(val) != "Toyota" {
		t.Errorf("FieldValue(map, marke) = %v, %v", val, ok)
	}
	if _, ok := FieldValue(row, "nera"); ok {
		t.Error("FieldValue(map, nera) reported ok for missing key")
	}
}

func TestRenderContainsRowsAndPager(t *testing.T) {
	v, _ := NewView("cars-grid", 5, carColumns())
	var sb strings.Builder
	if err := Render(v, manyCars(12), database.CarStatuses(), "/admin/grid/cars").Render(&sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := sb.String()
	for _, want := range []string{`id="cars-grid"`, "Marke1", "pagination", "page=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered grid missing %q", want)
		}
	}
	if strings.Contains(out, "Marke6") {
		t.Error("rendered grid leaked a row from the second page")
	}
}
