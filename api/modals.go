package api

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dkasparas/autonuoma/database"
	"github.com/dkasparas/autonuoma/forms"
	"github.com/dkasparas/autonuoma/logger"
	"github.com/dkasparas/autonuoma/tableview"
	"github.com/gin-gonic/gin"
	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// Field descriptor sets per entity. The modal and create handlers share
// them.

func carFormFields() []forms.Field {
	return []forms.Field{
		forms.TextField("marke", "Marke").WithRequired(),
		forms.TextField("modelis", "Modelis").WithRequired(),
		forms.NumberField("metai", "Metai"),
		forms.TextField("valst_numeris", "Valst. numeris"),
		forms.NumberField("kaina_parai", "Kaina parai").WithFormatter(priceFormatter),
		forms.SelectField("busena", "Busena", database.CarStatuses()),
		forms.TextareaField("aprasymas", "Aprasymas"),
	}
}

func clientFormFields() []forms.Field {
	return []forms.Field{
		forms.TextField("vardas", "Vardas").WithRequired(),
		forms.TextField("pavarde", "Pavarde").WithRequired(),
		forms.TextField("email", "El. pastas").WithRequired(),
		forms.TextField("telefonas", "Telefonas"),
		forms.TextField("miestas", "Miestas"),
	}
}

func employeeFormFields() []forms.Field {
	return []forms.Field{
		forms.TextField("vardas", "Vardas").WithRequired(),
		forms.TextField("pavarde", "Pavarde").WithRequired(),
		forms.TextField("email", "El. pastas").WithRequired(),
		forms.TextField("pareigos", "Pareigos"),
	}
}

func employeeCreateFields() []forms.Field {
	return append(employeeFormFields(),
		forms.PasswordField("password_hash", "Slaptazodis").WithRequired())
}

func orderFormFields() []forms.Field {
	return []forms.Field{
		forms.NumberField("client_id", "Klientas").WithRequired(),
		forms.NumberField("car_id", "Automobilis").WithRequired(),
		forms.DateField("nuo", "Nuo"),
		forms.DateField("iki", "Iki"),
		forms.NumberField("suma", "Suma").WithFormatter(priceFormatter),
		forms.SelectField("busena", "Busena", database.OrderStatuses()),
	}
}

func reservationFormFields() []forms.Field {
	return []forms.Field{
		forms.NumberField("client_id", "Klientas").WithRequired(),
		forms.NumberField("car_id", "Automobilis").WithRequired(),
		forms.DateField("nuo", "Nuo"),
		forms.DateField("iki", "Iki"),
		forms.SelectField("busena", "Busena", database.ReservationStatuses()),
	}
}

func invoiceFormFields() []forms.Field {
	return []forms.Field{
		forms.NumberField("order_id", "Uzsakymas").WithRequired(),
		forms.TextField("numeris", "Numeris").WithReadOnly(),
		forms.NumberField("suma", "Suma").WithFormatter(priceFormatter),
		forms.DateField("apmoketi_iki", "Apmoketi iki"),
		forms.DateField("apmoketa_data", "Apmoketa"),
		forms.SelectField("busena", "Busena", database.InvoiceStatuses()),
	}
}

func ticketFormFields() []forms.Field {
	return []forms.Field{
		forms.NumberField("client_id", "Klientas").WithRequired(),
		forms.TextField("tema", "Tema").WithRequired(),
		forms.TextareaField("zinute", "Zinute"),
		forms.SelectField("busena", "Busena", database.TicketStatuses()),
	}
}

func priceFormatter(value any) string {
	text := tableview.Stringify(value)
	if text == "" {
		return ""
	}
	return text + " EUR"
}

// modalFor runs one request through the editor lifecycle. The htmx
// buttons post back with action=edit, save or cancel; save carries the
// form values which land in the buffer before the commit.
func modalFor[T any](s *Server, table, title string, fields []forms.Field,
	get func(id uint) (T, error), save func(entity *T) error,
) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := webIDParam(ctx)
		if !ok {
			return
		}
		entity, err := get(id)
		if err != nil {
			ctx.String(http.StatusNotFound, "not found")
			return
		}

		editor := forms.NewEditor(fields, func(e *T) error {
			if err := save(e); err != nil {
				return err
			}
			s.Cache.Invalidate(table)
			return nil
		})
		editor.Load(entity)

		switch ctx.Query("action") {
		case "edit":
			editor.Edit()
		case "save":
			editor.Edit()
			for idx := range fields {
				field := &fields[idx]
				if field.ReadOnly {
					continue
				}
				if raw, ok := ctx.GetPostForm(field.Name); ok {
					if err := editor.SetField(field.Name, raw); err != nil {
						logger.Logtype("debug").Err(err).Str("field", field.Name).Msg("discard form value")
					}
				}
			}
			if err := editor.Save(); err != nil {
				logger.Logtype("warn").Err(err).Str("table", table).Msg("modal save rejected")
			}
		case "cancel", "":
		}

		modalID := table + "-modal"
		endpoint := fmt.Sprintf("/admin/%s/%d/modal", table, id)
		renderFragment(ctx, forms.RenderModal(editor, modalID, title, endpoint))
	}
}

func webIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		ctx.String(http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func renderFragment(ctx *gin.Context, node gomponents.Node) {
	ctx.Header("Content-Type", "text/html; charset=utf-8")
	ctx.Status(http.StatusOK)
	if err := node.Render(ctx.Writer); err != nil {
		logger.Logtype("error").Err(err).Msg("render fragment")
	}
}

func (s *Server) carModal(ctx *gin.Context) {
	modalFor(s, "cars", "Automobilis", carFormFields(),
		database.GetCarByID, database.UpdateCar)(ctx)
}

func (s *Server) clientModal(ctx *gin.Context) {
	modalFor(s, "clients", "Klientas", clientFormFields(),
		database.GetClientByID, database.UpdateClient)(ctx)
}

func (s *Server) employeeModal(ctx *gin.Context) {
	modalFor(s, "employees", "Darbuotojas", employeeFormFields(),
		database.GetEmployeeByID, database.UpdateEmployee)(ctx)
}

func (s *Server) orderModal(ctx *gin.Context) {
	modalFor(s, "orders", "Uzsakymas", orderFormFields(),
		database.GetOrderByID, func(order *database.Order) error {
			if err := database.UpdateOrder(order); err != nil {
				return err
			}
			s.Cache.Invalidate("cars")
			return nil
		})(ctx)
}

func (s *Server) reservationModal(ctx *gin.Context) {
	modalFor(s, "reservations", "Rezervacija", reservationFormFields(),
		database.GetReservationByID, database.UpdateReservation)(ctx)
}

func (s *Server) invoiceModal(ctx *gin.Context) {
	modalFor(s, "invoices", "Saskaita", invoiceFormFields(),
		database.GetInvoiceByID, database.UpdateInvoice)(ctx)
}

func (s *Server) ticketModal(ctx *gin.Context) {
	modalFor(s, "support_tickets", "Uzklausa", ticketFormFields(),
		database.GetTicketByID, database.UpdateTicket)(ctx)
}

// adminCreatePage renders the new-entity form for the table.
func (s *Server) adminCreatePage(ctx *gin.Context) {
	table := ctx.Param("table")
	fields, ok := createFieldsFor(table)
	if !ok {
		ctx.String(http.StatusNotFound, "unknown table")
		return
	}
	form := &forms.CreateForm[struct{}]{Fields: fields}
	renderPage(ctx, html.Div(
		navbar(table),
		html.Div(
			html.Class("container col-md-6"),
			html.H4(gomponents.Text("Naujas irasas")),
			forms.RenderCreateForm(form, table+"-create", "/admin/new/"+table),
		),
	))
}

func createFieldsFor(table string) ([]forms.Field, bool) {
	switch table {
	case "cars":
		return carFormFields(), true
	case "clients":
		return clientFormFields(), true
	case "employees":
		return employeeCreateFields(), true
	case "orders":
		return orderFormFields(), true
	case "reservations":
		return reservationFormFields(), true
	case "invoices":
		return invoiceFormFields(), true
	case "support_tickets":
		return ticketFormFields(), true
	}
	return nil, false
}

// adminCreateSubmit runs the posted values through the create form of
// the table and redirects back to the grid on success.
func (s *Server) adminCreateSubmit(ctx *gin.Context) {
	table := ctx.Param("table")
	values := postedValues(ctx)

	var err error
	switch table {
	case "cars":
		err = submitCreate(s, table, carFormFields(), values, func(c *database.Car) error {
			_, inserr := database.InsertCar(c)
			return inserr
		})
	case "clients":
		err = submitCreate(s, table, clientFormFields(), values, func(c *database.Client) error {
			_, inserr := database.InsertClient(c)
			return inserr
		})
	case "employees":
		err = submitCreate(s, table, employeeCreateFields(), values, func(e *database.Employee) error {
			e.PasswordHash = hashPassword(e.PasswordHash)
			_, inserr := database.InsertEmployee(e)
			return inserr
		})
	case "orders":
		err = submitCreate(s, table, orderFormFields(), values, func(o *database.Order) error {
			if _, inserr := database.InsertOrder(o); inserr != nil {
				return inserr
			}
			s.Cache.Invalidate("cars")
			return nil
		})
	case "reservations":
		err = submitCreate(s, table, reservationFormFields(), values, func(r *database.Reservation) error {
			_, inserr := database.InsertReservation(r)
			return inserr
		})
	case "invoices":
		err = submitCreate(s, table, invoiceFormFields(), values, func(i *database.Invoice) error {
			_, inserr := database.InsertInvoice(i)
			return inserr
		})
	case "support_tickets":
		err = submitCreate(s, table, ticketFormFields(), values, func(t *database.SupportTicket) error {
			if _, inserr := database.InsertTicket(t); inserr != nil {
				return inserr
			}
			if qerr := s.dispatchTicketAlert(*t); qerr != nil {
				logger.Logtype("error").Err(qerr).Msg("queue ticket notification")
			}
			return nil
		})
	default:
		ctx.String(http.StatusNotFound, "unknown table")
		return
	}

	if err != nil {
		renderFragment(ctx, html.Div(
			html.Class("alert alert-danger"),
			gomponents.Text(err.Error()),
		))
		return
	}
	ctx.Header("HX-Redirect", "/admin/table/"+table)
	ctx.Status(http.StatusOK)
}

func submitCreate[T any](s *Server, table string, fields []forms.Field,
	values map[string]string, insert func(entity *T) error,
) error {
	form := forms.NewCreateForm(fields, insert)
	if _, err := form.Submit(values); err != nil {
		return err
	}
	s.Cache.Invalidate(table)
	return nil
}

func postedValues(ctx *gin.Context) map[string]string {
	values := map[string]string{}
	if err := ctx.Request.ParseForm(); err != nil {
		return values
	}
	for key := range ctx.Request.PostForm {
		values[key] = ctx.Request.PostForm.Get(key)
	}
	return values
}

func hashPassword(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
