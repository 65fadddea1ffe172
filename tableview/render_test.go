package tableview

import (
	"strings"
	"testing"

	"github.com/dkasparas/autonuoma/database"
)

func renderGrid(t *testing.T, view *View[database.Car], cars []database.Car) string {
	t.Helper()
	var sb strings.Builder
	if err := Render(view, cars, database.CarStatuses(), "/admin/grid/cars").Render(&sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return sb.String()
}

func TestRenderPagerControls(t *testing.T) {
	cars := make([]database.Car, 12)
	for i := range cars {
		cars[i] = database.Car{ID: uint(i + 1), Marke: "Toyota", Busena: database.CarFree}
	}
	view, err := NewView("cars-grid", 5, []Column[database.Car]{{Header: "marke", Field: "marke"}})
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}

	out := renderGrid(t, view, cars)
	for _, want := range []string{"Atgal", "Pirmyn", "?page=1", "?page=2", "?page=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("pager output missing %q", want)
		}
	}
	if !strings.Contains(out, "page-item disabled") {
		t.Error("Atgal not disabled on the first page")
	}

	view.Paginator.SetPage(3)
	out = renderGrid(t, view, cars)
	if !strings.Contains(out, "page-item disabled") {
		t.Error("Pirmyn not disabled on the last page")
	}
	if !strings.Contains(out, "page-item active") {
		t.Error("current page not marked active")
	}
}

func TestRenderSinglePageSkipsPager(t *testing.T) {
	cars := []database.Car{{ID: 1, Marke: "Skoda", Busena: database.CarFree}}
	view, err := NewView("cars-grid", 5, []Column[database.Car]{{Header: "marke", Field: "marke"}})
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	if out := renderGrid(t, view, cars); strings.Contains(out, "pagination") {
		t.Error("single page still rendered a pager")
	}
}
