package database

import (
	"database/sql"
	"time"
)

// The rental tables keep the column names the business has used since the
// first spreadsheet, so the Lithuanian names stay on the wire as well.

type Car struct {
	ID           uint      `db:"id" json:"id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
	Marke        string    `db:"marke" json:"marke"`
	Modelis      string    `db:"modelis" json:"modelis"`
	Metai        int       `db:"metai" json:"metai"`
	ValstNumeris string    `db:"valst_numeris" json:"valst_numeris"`
	KainaParai   float64   `db:"kaina_parai" json:"kaina_parai"`
	Busena       string    `db:"busena" json:"busena"`
	Slug         string    `db:"slug" json:"slug"`
	Aprasymas    string    `db:"aprasymas" json:"aprasymas"`
}

type Client struct {
	ID        uint      `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	Vardas    string    `db:"vardas" json:"vardas"`
	Pavarde   string    `db:"pavarde" json:"pavarde"`
	Email     string    `db:"email" json:"email"`
	Telefonas string    `db:"telefonas" json:"telefonas"`
	Miestas   string    `db:"miestas" json:"miestas"`
}

type Employee struct {
	ID           uint      `db:"id" json:"id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
	Vardas       string    `db:"vardas" json:"vardas"`
	Pavarde      string    `db:"pavarde" json:"pavarde"`
	Email        string    `db:"email" json:"email"`
	Pareigos     string    `db:"pareigos" json:"pareigos"`
	PasswordHash string    `db:"password_hash" json:"-"`
}

type Order struct {
	ID        uint      `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	ClientID  uint      `db:"client_id" json:"client_id"`
	CarID     uint      `db:"car_id" json:"car_id"`
	Nuo       time.Time `db:"nuo" json:"nuo"`
	Iki       time.Time `db:"iki" json:"iki"`
	Suma      float64   `db:"suma" json:"suma"`
	Busena    string    `db:"busena" json:"busena"`
}

type Reservation struct {
	ID        uint      `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	ClientID  uint      `db:"client_id" json:"client_id"`
	CarID     uint      `db:"car_id" json:"car_id"`
	Nuo       time.Time `db:"nuo" json:"nuo"`
	Iki       time.Time `db:"iki" json:"iki"`
	Busena    string    `db:"busena" json:"busena"`
}

type Invoice struct {
	ID           uint         `db:"id" json:"id"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
	OrderID      uint         `db:"order_id" json:"order_id"`
	Numeris      string       `db:"numeris" json:"numeris"`
	Suma         float64      `db:"suma" json:"suma"`
	ApmoketiIki  time.Time    `db:"apmoketi_iki" json:"apmoketi_iki"`
	ApmoketaData sql.NullTime `db:"apmoketa_data" json:"apmoketa_data"`
	Busena       string       `db:"busena" json:"busena"`
}

type SupportTicket struct {
	ID        uint      `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	ClientID  uint      `db:"client_id" json:"client_id"`
	Tema      string    `db:"tema" json:"tema"`
	Zinute    string    `db:"zinute" json:"zinute"`
	Busena    string    `db:"busena" json:"busena"`
}

// Status vocabularies. The sentinel "all" is never stored, it exists only
// as a filter value.
const (
	StatusAll = "all"

	CarFree    = "laisvas"
	CarRented  = "isnuomotas"
	CarService = "remontas"

	OrderNew       = "nauja"
	OrderActive    = "vykdoma"
	OrderDone      = "baigta"
	OrderCancelled = "atsaukta"

	ReservationActive    = "aktyvi"
	ReservationDone      = "ivykdyta"
	ReservationCancelled = "atsaukta"
	ReservationOverdue   = "pradelsta"

	InvoiceIssued  = "israsyta"
	InvoicePaid    = "apmoketa"
	InvoiceOverdue = "velouja"

	TicketOpen   = "atvira"
	TicketClosed = "uzdaryta"
)

// CarStatuses lists the selectable car states for filters and forms.
func CarStatuses() []string { return []string{CarFree, CarRented, CarService} }

// OrderStatuses lists the selectable order states.
func OrderStatuses() []string {
	return []string{OrderNew, OrderActive, OrderDone, OrderCancelled}
}

// ReservationStatuses lists the selectable reservation states.
func ReservationStatuses() []string {
	return []string{ReservationActive, ReservationDone, ReservationCancelled, ReservationOverdue}
}

// InvoiceStatuses lists the selectable invoice states.
func InvoiceStatuses() []string {
	return []string{InvoiceIssued, InvoicePaid, InvoiceOverdue}
}

// TicketStatuses lists the selectable ticket states.
func TicketStatuses() []string { return []string{TicketOpen, TicketClosed} }
