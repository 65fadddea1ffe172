package database

const (
	insertCarSQL = `insert into cars (marke, modelis, metai, valst_numeris, kaina_parai, busena, slug, aprasymas)
		values (:marke, :modelis, :metai, :valst_numeris, :kaina_parai, :busena, :slug, :aprasymas)`
	updateCarSQL = `update cars set marke = :marke, modelis = :modelis, metai = :metai,
		valst_numeris = :valst_numeris, kaina_parai = :kaina_parai, busena = :busena,
		slug = :slug, aprasymas = :aprasymas, updated_at = datetime('now') where id = :id`

	insertClientSQL = `insert into clients (vardas, pavarde, email, telefonas, miestas)
		values (:vardas, :pavarde, :email, :telefonas, :miestas)`
	updateClientSQL = `update clients set vardas = :vardas, pavarde = :pavarde, email = :email,
		telefonas = :telefonas, miestas = :miestas, updated_at = datetime('now') where id = :id`

	insertEmployeeSQL = `insert into employees (vardas, pavarde, email, pareigos, password_hash)
		values (:vardas, :pavarde, :email, :pareigos, :password_hash)`
	updateEmployeeSQL = `update employees set vardas = :vardas, pavarde = :pavarde, email = :email,
		pareigos = :pareigos, updated_at = datetime('now') where id = :id`

	insertOrderSQL = `insert into orders (client_id, car_id, nuo, iki, suma, busena)
		values (:client_id, :car_id, :nuo, :iki, :suma, :busena)`
	updateOrderSQL = `update orders set client_id = :client_id, car_id = :car_id, nuo = :nuo,
		iki = :iki, suma = :suma, busena = :busena, updated_at = datetime('now') where id = :id`

	insertReservationSQL = `insert into reservations (client_id, car_id, nuo, iki, busena)
		values (:client_id, :car_id, :nuo, :iki, :busena)`
	updateReservationSQL = `update reservations set client_id = :client_id, car_id = :car_id,
		nuo = :nuo, iki = :iki, busena = :busena, updated_at = datetime('now') where id = :id`

	insertInvoiceSQL = `insert into invoices (order_id, numeris, suma, apmoketi_iki, apmoketa_data, busena)
		values (:order_id, :numeris, :suma, :apmoketi_iki, :apmoketa_data, :busena)`
	updateInvoiceSQL = `update invoices set order_id = :order_id, numeris = :numeris, suma = :suma,
		apmoketi_iki = :apmoketi_iki, apmoketa_data = :apmoketa_data, busena = :busena,
		updated_at = datetime('now') where id = :id`

	insertTicketSQL = `insert into support_tickets (client_id, tema, zinute, busena)
		values (:client_id, :tema, :zinute, :busena)`
	updateTicketSQL = `update support_tickets set client_id = :client_id, tema = :tema,
		zinute = :zinute, busena = :busena, updated_at = datetime('now') where id = :id`
)

// InsertCar stores a new car, filling defaults for status and slug.
func InsertCar(car *Car) (int64, error) {
	if car.Busena == "" {
		car.Busena = CarFree
	}
	if car.Slug == "" {
		car.Slug = CarSlug(car)
	}
	result, err := ExecNamed(insertCarSQL, car)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateCar rewrites the car row, refreshing the slug.
func UpdateCar(car *Car) error {
	car.Slug = CarSlug(car)
	_, err := ExecNamed(updateCarSQL, car)
	return err
}

func InsertClient(client *Client) (int64, error) {
	result, err := ExecNamed(insertClientSQL, client)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func UpdateClient(client *Client) error {
	_, err := ExecNamed(updateClientSQL, client)
	return err
}

func InsertEmployee(employee *Employee) (int64, error) {
	result, err := ExecNamed(insertEmployeeSQL, employee)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateEmployee rewrites the employee row. The password hash is not
// touched here, password changes go through their own flow.
func UpdateEmployee(employee *Employee) error {
	_, err := ExecNamed(updateEmployeeSQL, employee)
	return err
}

func InsertOrder(order *Order) (int64, error) {
	if order.Busena == "" {
		order.Busena = OrderNew
	}
	result, err := ExecNamed(insertOrderSQL, order)
	if err != nil {
		return 0, err
	}
	if err := syncCarStatus(order.CarID, order.Busena); err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func UpdateOrder(order *Order) error {
	if _, err := ExecNamed(updateOrderSQL, order); err != nil {
		return err
	}
	return syncCarStatus(order.CarID, order.Busena)
}

// An open order takes the car off the lot, a finished or cancelled one
// returns it. A car in remontas keeps that status either way.
func syncCarStatus(carID uint, orderStatus string) error {
	busena := CarRented
	if orderStatus == OrderDone || orderStatus == OrderCancelled {
		busena = CarFree
	}
	_, err := ExecN("update cars set busena = ? where id = ? and busena != ?",
		busena, carID, CarService)
	return err
}

func InsertReservation(reservation *Reservation) (int64, error) {
	if reservation.Busena == "" {
		reservation.Busena = ReservationActive
	}
	result, err := ExecNamed(insertReservationSQL, reservation)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func UpdateReservation(reservation *Reservation) error {
	_, err := ExecNamed(updateReservationSQL, reservation)
	return err
}

// InsertInvoice stores a new invoice, assigning a number when missing.
func InsertInvoice(invoice *Invoice) (int64, error) {
	if invoice.Numeris == "" {
		invoice.Numeris = NewInvoiceNumber()
	}
	if invoice.Busena == "" {
		invoice.Busena = InvoiceIssued
	}
	result, err := ExecNamed(insertInvoiceSQL, invoice)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func UpdateInvoice(invoice *Invoice) error {
	_, err := ExecNamed(updateInvoiceSQL, invoice)
	return err
}

func InsertTicket(ticket *SupportTicket) (int64, error) {
	if ticket.Busena == "" {
		ticket.Busena = TicketOpen
	}
	result, err := ExecNamed(insertTicketSQL, ticket)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func UpdateTicket(ticket *SupportTicket) error {
	_, err := ExecNamed(updateTicketSQL, ticket)
	return err
}

// DeleteByID removes one row from table.
func DeleteByID(table string, id uint) error {
	_, err := DeleteRow(table, Querywithargs{Where: "id = ?", Args: []any{id}})
	return err
}
