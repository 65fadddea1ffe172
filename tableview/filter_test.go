package tableview

import (
	"testing"

	"github.com/dkasparas/autonuoma/database"
)

func testCars() []database.Car {
	return []database.Car{
		{ID: 1, Marke: "Toyota", Modelis: "Corolla", KainaParai: 25, Busena: database.CarFree},
		{ID: 2, Marke: "Toyota", Modelis: "RAV4", KainaParai: 45, Busena: database.CarRented},
		{ID: 3, Marke: "Volkswagen", Modelis: "Golf", KainaParai: 28, Busena: database.CarFree},
		{ID: 4, Marke: "Volkswagen", Modelis: "Passat", KainaParai: 32, Busena: database.CarService},
		{ID: 5, Marke: "Skoda", Modelis: "Octavia", KainaParai: 35, Busena: database.CarFree},
	}
}

func carFilter() Filter {
	return Filter{
		StatusField:  "busena",
		SearchFields: []string{"marke", "modelis", "valst_numeris"},
	}
}

func TestFilterSearch(t *testing.T) {
	tests := []struct {
		name    string
		search  string
		wantIDs []uint
	}{
		{"empty search passes all", "", []uint{1, 2, 3, 4, 5}},
		{"model match is case insensitive", "corolla", []uint{1}},
		{"brand match", "toyota", []uint{1, 2}},
		{"query spanning brand and model", "toyota corolla", []uint{1}},
		{"spanning query is case insensitive", "VOLKSWAGEN golf", []uint{3}},
		{"partial brand", "volks", []uint{3, 4}},
		{"no match", "zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := carFilter()
			f.Search = tt.search
			got := Apply(&f, testCars())
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Apply() returned %d cars, want %d", len(got), len(tt.wantIDs))
			}
			for i, car := range got {
				if car.ID != tt.wantIDs[i] {
					t.Errorf("Apply()[%d].ID = %d, want %d", i, car.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestFilterStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantLen int
	}{
		{"all sentinel passes everything", StatusAll, 5},
		{"empty status passes everything", "", 5},
		{"free cars", database.CarFree, 3},
		{"rented cars", database.CarRented, 1},
		{"unknown status matches nothing", "dinges", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := carFilter()
			f.Status = tt.status
			if got := Apply(&f, testCars()); len(got) != tt.wantLen {
				t.Errorf("Apply() returned %d cars, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestFilterConjunction(t *testing.T) {
	f := carFilter()
	f.Status = database.CarFree
	f.Search = "toyota"
	got := Apply(&f, testCars())
	if len(got) != 1 || got[0].Modelis != "Corolla" {
		t.Fatalf("Apply() = %+v, want only the free Corolla", got)
	}
}

func TestFilterIdempotent(t *testing.T) {
	f := carFilter()
	f.Search = "toyota"
	once := Apply(&f, testCars())
	twice := Apply(&f, once)
	if len(once) != len(twice) {
		t.Fatalf("second Apply() returned %d cars, want %d", len(twice), len(once))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Errorf("second Apply()[%d].ID = %d, want %d", i, twice[i].ID, once[i].ID)
		}
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	cars := testCars()
	f := carFilter()
	f.Search = "corolla"
	Apply(&f, cars)
	if len(cars) != 5 {
		t.Errorf("input slice len = %d after Apply(), want 5", len(cars))
	}
}
