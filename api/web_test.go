package api

import (
	"strings"
	"testing"

	"github.com/dkasparas/autonuoma/database"
)

func renderActionCell(t *testing.T, table string, actions rowActions) string {
	t.Helper()
	tabledefault := database.GetTableDefaults(table)
	columns := gridColumns(table, &tabledefault, actions)
	last := columns[len(columns)-1]
	if last.Action == nil {
		t.Fatalf("gridColumns(%q) last column carries no action", table)
	}
	row := map[string]any{"id": int64(7)}
	var sb strings.Builder
	if err := last.Action(&row).Render(&sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return sb.String()
}

func TestGridColumnsActionVisibility(t *testing.T) {
	tests := []struct {
		name    string
		actions rowActions
		want    []string
		absent  []string
	}{
		{"all visible", allRowActions(), []string{"Perziureti", "Redaguoti", "Istrinti"}, nil},
		{"no delete", rowActions{View: true, Edit: true}, []string{"Perziureti", "Redaguoti"}, []string{"Istrinti"}},
		{"view only", rowActions{View: true}, []string{"Perziureti"}, []string{"Redaguoti", "Istrinti"}},
		{"delete only", rowActions{Delete: true}, []string{"Istrinti"}, []string{"Perziureti", "Redaguoti"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderActionCell(t, "cars", tt.actions)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("action cell missing %q", want)
				}
			}
			for _, absent := range tt.absent {
				if strings.Contains(out, absent) {
					t.Errorf("action cell contains hidden %q", absent)
				}
			}
		})
	}
}

func TestGridColumnsEditDeepLinksToModal(t *testing.T) {
	out := renderActionCell(t, "cars", rowActions{Edit: true})
	if !strings.Contains(out, "/admin/cars/7/modal?action=edit") {
		t.Errorf("edit button target = %q, want the modal edit deep link", out)
	}
}

func TestGridColumnsNoActionsDropsColumn(t *testing.T) {
	tabledefault := database.GetTableDefaults("cars")
	columns := gridColumns("cars", &tabledefault, rowActions{})
	if got, want := len(columns), len(tabledefault.Columns()); got != want {
		t.Errorf("gridColumns() returned %d columns, want %d", got, want)
	}
}

func TestTableActionDefaults(t *testing.T) {
	if tableActions("invoices").Delete {
		t.Error("invoice rows should not offer delete")
	}
	if got := tableActions("nezinoma"); got != allRowActions() {
		t.Errorf("tableActions(unknown) = %+v, want everything visible", got)
	}
}
