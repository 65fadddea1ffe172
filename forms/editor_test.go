package forms

import (
	"strings"
	"testing"

	"github.com/dkasparas/autonuoma/database"
	"github.com/pkg/errors"
)

func carFields() []Field {
	return []Field{
		TextField("marke", "Marke").WithRequired(),
		TextField("modelis", "Modelis").WithRequired(),
		NumberField("metai", "Metai"),
		NumberField("kaina_parai", "Kaina parai"),
		SelectField("busena", "Busena", database.CarStatuses()),
	}
}

func testCar() database.Car {
	return database.Car{
		ID: 1, Marke: "Toyota", Modelis: "Corolla",
		Metai: 2021, KainaParai: 25, Busena: database.CarFree,
	}
}

func TestEditorCancelRestoresItem(t *testing.T) {
	e := NewEditor(carFields(), func(c *database.Car) error { return nil })
	e.Load(testCar())

	if !e.Edit() {
		t.Fatal("Edit() = false, want true")
	}
	if err := e.SetField("kaina_parai", "30"); err != nil {
		t.Fatalf("SetField() error = %v", err)
	}
	if got := e.Value("kaina_parai"); got != "30" {
		t.Fatalf("Value() = %q while editing, want 30", got)
	}

	e.Cancel()
	if e.Editing() {
		t.Error("Editing() = true after Cancel()")
	}
	if got := e.Display("kaina_parai"); got != "25" {
		t.Errorf("Display() = %q after Cancel(), want 25", got)
	}
	if got := e.Item().KainaParai; got != 25 {
		t.Errorf("Item().KainaParai = %v after Cancel(), want 25", got)
	}
}

func TestEditorSaveCommitsBuffer(t *testing.T) {
	var saved []database.Car
	e := NewEditor(carFields(), func(c *database.Car) error {
		saved = append(saved, *c)
		return nil
	})
	e.Load(testCar())

	e.Edit()
	if err := e.SetField("kaina_parai", "30"); err != nil {
		t.Fatalf("SetField() error = %v", err)
	}
	if err := e.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if len(saved) != 1 {
		t.Fatalf("OnSave called %d times, want 1", len(saved))
	}
	if saved[0].KainaParai != 30 {
		t.Errorf("OnSave received KainaParai = %v, want 30", saved[0].KainaParai)
	}
	if e.Editing() {
		t.Error("Editing() = true after successful Save()")
	}
	if got := e.Display("kaina_parai"); got != "30" {
		t.Errorf("Display() = %q after Save(), want 30", got)
	}
}

func TestEditorSaveFailureKeepsBuffer(t *testing.T) {
	calls := 0
	e := NewEditor(carFields(), func(c *database.Car) error {
		calls++
		return errors.New("db locked")
	})
	e.Load(testCar())

	e.Edit()
	e.SetField("kaina_parai", "30")
	if err := e.Save(); err == nil {
		t.Fatal("Save() error = nil, want failure")
	}

	if !e.Editing() {
		t.Error("Editing() = false after failed Save(), want true")
	}
	if got := e.Value("kaina_parai"); got != "30" {
		t.Errorf("Value() = %q after failed Save(), want buffered 30", got)
	}
	if e.SaveError() == nil {
		t.Error("SaveError() = nil after failed Save()")
	}
	if got := e.Item().KainaParai; got != 25 {
		t.Errorf("Item().KainaParai = %v after failed Save(), want untouched 25", got)
	}
	if calls != 1 {
		t.Errorf("OnSave called %d times, want 1", calls)
	}
}

func TestEditorValidation(t *testing.T) {
	calls := 0
	e := NewEditor(carFields(), func(c *database.Car) error {
		calls++
		return nil
	})
	e.Load(testCar())
	e.Edit()
	e.SetField("marke", "")

	if err := e.Save(); err == nil {
		t.Fatal("Save() error = nil with empty required field")
	}
	if calls != 0 {
		t.Errorf("OnSave called %d times on validation failure, want 0", calls)
	}
	if !e.Editing() {
		t.Error("Editing() = false after validation failure")
	}
}

func TestEditorReadOnly(t *testing.T) {
	e := NewEditor[database.Car](carFields(), nil)
	e.Load(testCar())

	if !e.ReadOnly() {
		t.Error("ReadOnly() = false with nil OnSave")
	}
	if e.Edit() {
		t.Error("Edit() = true on read-only editor")
	}
	if err := e.SetField("marke", "BMW"); err == nil {
		t.Error("SetField() error = nil outside edit mode")
	}
}

func TestEditorLoadResetsState(t *testing.T) {
	e := NewEditor(carFields(), func(c *database.Car) error { return nil })
	e.Load(testCar())
	e.Edit()
	e.SetField("kaina_parai", "99")

	other := testCar()
	other.ID = 2
	other.Modelis = "Yaris"
	e.Load(other)

	if e.Editing() {
		t.Error("Editing() = true after Load()")
	}
	if got := e.Display("modelis"); got != "Yaris" {
		t.Errorf("Display() = %q after Load(), want Yaris", got)
	}
}

func TestEditorSetFieldParsing(t *testing.T) {
	e := NewEditor(carFields(), func(c *database.Car) error { return nil })
	e.Load(testCar())
	e.Edit()

	tests := []struct {
		name    string
		field   string
		raw     string
		wantErr bool
	}{
		{"number", "metai", "2024", false},
		{"float", "kaina_parai", "27.5", false},
		{"select", "busena", database.CarService, false},
		{"bad number", "metai", "daug", true},
		{"unknown field", "spalva", "melyna", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.SetField(tt.field, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("SetField(%s, %q) error = %v, wantErr %v", tt.field, tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestEditorDisplayEmptyValue(t *testing.T) {
	fields := append(carFields(), TextField("aprasymas", "Aprasymas"))
	e := NewEditor[database.Car](fields, nil)
	e.Load(testCar())
	if got := e.Display("aprasymas"); got != "—" {
		t.Errorf("Display() = %q for empty value, want em dash", got)
	}
}

func TestEditorDisplayFormatter(t *testing.T) {
	fields := carFields()
	fields[3] = fields[3].WithFormatter(func(v any) string {
		return "25.00 EUR"
	})
	e := NewEditor[database.Car](fields, nil)
	e.Load(testCar())
	if got := e.Display("kaina_parai"); got != "25.00 EUR" {
		t.Errorf("Display() = %q, want formatted price", got)
	}
}

func TestRenderModalModes(t *testing.T) {
	e := NewEditor(carFields(), func(c *database.Car) error { return nil })
	e.Load(testCar())

	var sb strings.Builder
	if err := RenderModal(e, "car-modal", "Toyota Corolla", "/admin/cars/1/modal").Render(&sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(sb.String(), "Redaguoti") {
		t.Error("view mode modal missing edit button")
	}

	e.Edit()
	sb.Reset()
	if err := RenderModal(e, "car-modal", "Toyota Corolla", "/admin/cars/1/modal").Render(&sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := sb.String()
	for _, want := range []string{"Issaugoti", "Atsaukti", `name="kaina_parai"`} {
		if !strings.Contains(out, want) {
			t.Errorf("edit mode modal missing %q", want)
		}
	}
}
