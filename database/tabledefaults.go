package database

import "strings"

// TableDefaults describes how a table is presented in the admin grids:
// which columns to show, which fields the free-text search scans and
// which column carries the status filter.
type TableDefaults struct {
	Table          string
	DefaultColumns string
	SearchFields   []string
	StatusField    string
	StatusOptions  []string
	Object         any
}

var tableDefaults = map[string]TableDefaults{
	"cars": {
		Table:          "cars",
		DefaultColumns: "id,marke,modelis,metai,valst_numeris,kaina_parai,busena",
		SearchFields:   []string{"marke", "modelis", "valst_numeris"},
		StatusField:    "busena",
		StatusOptions:  CarStatuses(),
		Object:         Car{},
	},
	"clients": {
		Table:          "clients",
		DefaultColumns: "id,vardas,pavarde,email,telefonas,miestas",
		SearchFields:   []string{"vardas", "pavarde", "email", "telefonas", "miestas"},
		Object:         Client{},
	},
	"employees": {
		Table:          "employees",
		DefaultColumns: "id,vardas,pavarde,email,pareigos",
		SearchFields:   []string{"vardas", "pavarde", "email", "pareigos"},
		Object:         Employee{},
	},
	"orders": {
		Table:          "orders",
		DefaultColumns: "id,client_id,car_id,nuo,iki,suma,busena",
		SearchFields:   []string{"busena"},
		StatusField:    "busena",
		StatusOptions:  OrderStatuses(),
		Object:         Order{},
	},
	"reservations": {
		Table:          "reservations",
		DefaultColumns: "id,client_id,car_id,nuo,iki,busena",
		SearchFields:   []string{"busena"},
		StatusField:    "busena",
		StatusOptions:  ReservationStatuses(),
		Object:         Reservation{},
	},
	"invoices": {
		Table:          "invoices",
		DefaultColumns: "id,numeris,order_id,suma,apmoketi_iki,busena",
		SearchFields:   []string{"numeris"},
		StatusField:    "busena",
		StatusOptions:  InvoiceStatuses(),
		Object:         Invoice{},
	},
	"support_tickets": {
		Table:          "support_tickets",
		DefaultColumns: "id,client_id,tema,busena,created_at",
		SearchFields:   []string{"tema", "zinute"},
		StatusField:    "busena",
		StatusOptions:  TicketStatuses(),
		Object:         SupportTicket{},
	},
}

// GetTableDefaults returns the grid defaults for the named table or a
// zero value when the table is unknown.
func GetTableDefaults(table string) TableDefaults {
	return tableDefaults[table]
}

// TableNames lists every table the admin grids expose.
func TableNames() []string {
	names := make([]string, 0, len(tableDefaults))
	for name := range tableDefaults {
		names = append(names, name)
	}
	return names
}

// Columns splits DefaultColumns into its column names.
func (t *TableDefaults) Columns() []string {
	if t.DefaultColumns == "" {
		return nil
	}
	cols := strings.Split(t.DefaultColumns, ",")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	return cols
}

// Known reports whether the table is registered for the admin grids.
func (t *TableDefaults) Known() bool {
	return t.Table != ""
}
