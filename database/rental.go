package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/dkasparas/autonuoma/logger"
	"github.com/google/uuid"
)

const maxCollectionRows = 10000

// The admin grids load each collection wholesale and page in memory, so
// every loader caps at maxCollectionRows. A rental shop that outgrows
// that cap has outgrown this dashboard.

func GetCars() []Car {
	return GetrowsN[Car](maxCollectionRows, "select * from cars order by id limit ?", maxCollectionRows)
}

func GetCarByID(id uint) (Car, error) {
	return Structscan[Car]("select * from cars where id = ?", id)
}

func GetClients() []Client {
	return GetrowsN[Client](maxCollectionRows, "select * from clients order by id limit ?", maxCollectionRows)
}

func GetClientByID(id uint) (Client, error) {
	return Structscan[Client]("select * from clients where id = ?", id)
}

func GetEmployees() []Employee {
	return GetrowsN[Employee](maxCollectionRows, "select * from employees order by id limit ?", maxCollectionRows)
}

func GetEmployeeByID(id uint) (Employee, error) {
	return Structscan[Employee]("select * from employees where id = ?", id)
}

func GetOrders() []Order {
	return GetrowsN[Order](maxCollectionRows, "select * from orders order by id limit ?", maxCollectionRows)
}

func GetOrderByID(id uint) (Order, error) {
	return Structscan[Order]("select * from orders where id = ?", id)
}

func GetReservations() []Reservation {
	return GetrowsN[Reservation](maxCollectionRows, "select * from reservations order by id limit ?", maxCollectionRows)
}

func GetReservationByID(id uint) (Reservation, error) {
	return Structscan[Reservation]("select * from reservations where id = ?", id)
}

func GetInvoices() []Invoice {
	return GetrowsN[Invoice](maxCollectionRows, "select * from invoices order by id limit ?", maxCollectionRows)
}

func GetInvoiceByID(id uint) (Invoice, error) {
	return Structscan[Invoice]("select * from invoices where id = ?", id)
}

func GetTickets() []SupportTicket {
	return GetrowsN[SupportTicket](maxCollectionRows, "select * from support_tickets order by id limit ?", maxCollectionRows)
}

func GetTicketByID(id uint) (SupportTicket, error) {
	return Structscan[SupportTicket]("select * from support_tickets where id = ?", id)
}

// CarSlug builds the url slug stored alongside a car.
func CarSlug(car *Car) string {
	return logger.StringToSlug(fmt.Sprintf("%s %s %d", car.Marke, car.Modelis, car.Metai))
}

// NewInvoiceNumber returns a fresh invoice number like AN-2026-1a2b3c4d.
func NewInvoiceNumber() string {
	id := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("AN-%d-%s", time.Now().Year(), id)
}

// MarkOverdueReservations flips active reservations whose end date has
// passed to pradelsta. Returns the number of affected rows.
func MarkOverdueReservations() int64 {
	result, err := ExecN(
		"update reservations set busena = ?, updated_at = datetime('now') where busena = ? and iki < datetime('now')",
		ReservationOverdue, ReservationActive,
	)
	if err != nil {
		logger.Logtype("error").Err(err).Msg("overdue reservation sweep")
		return 0
	}
	affected, _ := result.RowsAffected()
	return affected
}

// MarkOverdueInvoices flips issued invoices past their due date to velouja.
func MarkOverdueInvoices() int64 {
	result, err := ExecN(
		"update invoices set busena = ?, updated_at = datetime('now') where busena = ? and apmoketi_iki < datetime('now')",
		InvoiceOverdue, InvoiceIssued,
	)
	if err != nil {
		logger.Logtype("error").Err(err).Msg("overdue invoice sweep")
		return 0
	}
	affected, _ := result.RowsAffected()
	return affected
}

// GetrowsMap returns rows of the query as generic maps for the admin
// table endpoints that are not bound to one model type.
func GetrowsMap(limit uint, query string, args ...any) []map[string]any {
	rows, err := dbData.Queryx(query, args...)
	if err != nil {
		logger.Logtype("error").Err(err).Str("query", query).Msg("select map rows")
		return nil
	}
	defer rows.Close()
	result := make([]map[string]any, 0, limit)
	for rows.Next() {
		entry := map[string]any{}
		if err := rows.MapScan(entry); err != nil {
			logger.Logtype("error").Err(err).Msg("scan map row")
			continue
		}
		result = append(result, entry)
		if uint(len(result)) >= limit {
			break
		}
	}
	return result
}
