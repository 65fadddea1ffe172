package api

import (
	"fmt"
	"net/http"

	"github.com/dkasparas/autonuoma/cache"
	"github.com/dkasparas/autonuoma/database"
	"github.com/dkasparas/autonuoma/logger"
	"github.com/dkasparas/autonuoma/tableview"
	"github.com/gin-gonic/gin"
	"maragu.dev/gomponents"
	htmx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/html"
)

const gridPageSize = 10

// rowActions toggles the per-row buttons of a grid.
type rowActions struct {
	View   bool
	Edit   bool
	Delete bool
}

func allRowActions() rowActions { return rowActions{View: true, Edit: true, Delete: true} }

// adminTables drives the navbar and the per-table routes. Invoices are
// numbered documents and keep no delete button.
var adminTables = []struct {
	Table   string
	Label   string
	Actions rowActions
}{
	{"cars", "Automobiliai", allRowActions()},
	{"clients", "Klientai", allRowActions()},
	{"employees", "Darbuotojai", allRowActions()},
	{"orders", "Uzsakymai", allRowActions()},
	{"reservations", "Rezervacijos", allRowActions()},
	{"invoices", "Saskaitos", rowActions{View: true, Edit: true}},
	{"support_tickets", "Uzklausos", allRowActions()},
}

// tableActions looks up the visibility set of a table, everything
// visible for tables outside the registry.
func tableActions(table string) rowActions {
	for _, entry := range adminTables {
		if entry.Table == table {
			return entry.Actions
		}
	}
	return allRowActions()
}

func (s *Server) addWebRoutes(admin *gin.RouterGroup) {
	admin.GET("", s.adminDashboard)
	admin.GET("/table/:table", s.adminTablePage)
	admin.GET("/grid/:table", s.adminGridFragment)
	admin.DELETE("/grid/:table/:id", s.adminRowDelete)
	admin.GET("/data/:table", s.adminTableJSON)

	admin.GET("/cars/:id/modal", s.carModal)
	admin.POST("/cars/:id/modal", s.carModal)
	admin.GET("/clients/:id/modal", s.clientModal)
	admin.POST("/clients/:id/modal", s.clientModal)
	admin.GET("/employees/:id/modal", s.employeeModal)
	admin.POST("/employees/:id/modal", s.employeeModal)
	admin.GET("/orders/:id/modal", s.orderModal)
	admin.POST("/orders/:id/modal", s.orderModal)
	admin.GET("/reservations/:id/modal", s.reservationModal)
	admin.POST("/reservations/:id/modal", s.reservationModal)
	admin.GET("/invoices/:id/modal", s.invoiceModal)
	admin.POST("/invoices/:id/modal", s.invoiceModal)
	admin.GET("/support_tickets/:id/modal", s.ticketModal)
	admin.POST("/support_tickets/:id/modal", s.ticketModal)

	admin.GET("/new/:table", s.adminCreatePage)
	admin.POST("/new/:table", s.adminCreateSubmit)
}

// renderPage writes a full html document around body.
func renderPage(ctx *gin.Context, body gomponents.Node) {
	var headers gomponents.Node
	if sess := currentSession(ctx); sess != nil {
		headers = htmx.Headers(fmt.Sprintf(`{"X-CSRF-Token": %q}`, sess.CSRFToken))
	}
	page := html.Doctype(html.HTML(
		html.Lang("lt"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text("Autonuoma")),
			html.Link(html.Rel("stylesheet"), html.Href("https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css")),
			html.Script(html.Src("https://unpkg.com/htmx.org")),
		),
		html.Body(headers, body),
	))
	ctx.Header("Content-Type", "text/html; charset=utf-8")
	ctx.Status(http.StatusOK)
	if err := page.Render(ctx.Writer); err != nil {
		logger.Logtype("error").Err(err).Msg("render page")
	}
}

func navbar(active string) gomponents.Node {
	links := make([]gomponents.Node, 0, len(adminTables))
	for _, entry := range adminTables {
		linkClass := "nav-link"
		if entry.Table == active {
			linkClass += " active"
		}
		links = append(links, html.Li(
			html.Class("nav-item"),
			html.A(html.Class(linkClass), html.Href("/admin/table/"+entry.Table), gomponents.Text(entry.Label)),
		))
	}
	return html.Nav(
		html.Class("navbar navbar-expand-lg bg-body-tertiary mb-4"),
		html.Div(
			html.Class("container-fluid"),
			html.A(html.Class("navbar-brand"), html.Href("/admin"), gomponents.Text("Autonuoma")),
			html.Ul(html.Class("navbar-nav me-auto"), gomponents.Group(links)),
			html.A(html.Class("btn btn-outline-secondary"), html.Href("/logout"), gomponents.Text("Atsijungti")),
		),
	)
}

// adminDashboard shows record counts per table.
func (s *Server) adminDashboard(ctx *gin.Context) {
	cards := make([]gomponents.Node, 0, len(adminTables))
	for _, entry := range adminTables {
		count := len(s.gridRows(entry.Table))
		cards = append(cards, html.Div(
			html.Class("col-md-3 mb-3"),
			html.Div(
				html.Class("card"),
				html.Div(
					html.Class("card-body"),
					html.H5(html.Class("card-title"), gomponents.Text(entry.Label)),
					html.P(html.Class("card-text fs-3"), gomponents.Textf("%d", count)),
					html.A(html.Class("btn btn-sm btn-primary"), html.Href("/admin/table/"+entry.Table), gomponents.Text("Atidaryti")),
				),
			),
		))
	}
	renderPage(ctx, html.Div(
		navbar(""),
		html.Div(html.Class("container"), html.Div(html.Class("row"), gomponents.Group(cards))),
	))
}

// gridRows loads the presented columns of a table wholesale through the
// cache, tagged with the table name.
func (s *Server) gridRows(table string) []map[string]any {
	tabledefault := database.GetTableDefaults(table)
	if !tabledefault.Known() {
		return nil
	}
	return cache.Get(s.Cache, "rows:"+table, func() []map[string]any {
		return database.GetrowsMap(10000,
			"select "+tabledefault.DefaultColumns+" from "+tabledefault.Table+" order by id")
	}, table)
}

func gridColumns(table string, tabledefault *database.TableDefaults, actions rowActions) []tableview.Column[map[string]any] {
	names := tabledefault.Columns()
	columns := make([]tableview.Column[map[string]any], 0, len(names)+1)
	for _, name := range names {
		columns = append(columns, tableview.Column[map[string]any]{Header: name, Field: name})
	}
	if !actions.View && !actions.Edit && !actions.Delete {
		return columns
	}
	columns = append(columns, tableview.Column[map[string]any]{
		Header: "",
		Action: func(row *map[string]any) gomponents.Node {
			id := tableview.Stringify((*row)["id"])
			buttons := make([]gomponents.Node, 0, 3)
			if actions.View {
				buttons = append(buttons, html.Button(
					html.Type("button"),
					html.Class("btn btn-sm btn-outline-primary"),
					htmx.Get(fmt.Sprintf("/admin/%s/%s/modal", table, id)),
					htmx.Target("#modal-body"),
					gomponents.Text("Perziureti"),
				))
			}
			if actions.Edit {
				buttons = append(buttons, html.Button(
					html.Type("button"),
					html.Class("btn btn-sm btn-outline-secondary ms-1"),
					htmx.Get(fmt.Sprintf("/admin/%s/%s/modal?action=edit", table, id)),
					htmx.Target("#modal-body"),
					gomponents.Text("Redaguoti"),
				))
			}
			if actions.Delete {
				buttons = append(buttons, html.Button(
					html.Type("button"),
					html.Class("btn btn-sm btn-outline-danger ms-1"),
					htmx.Delete(fmt.Sprintf("/admin/grid/%s/%s", table, id)),
					htmx.Confirm("Ar tikrai istrinti irasa?"),
					htmx.Target("#"+table+"-grid"),
					htmx.Swap("outerHTML"),
					gomponents.Text("Istrinti"),
				))
			}
			return gomponents.Group(buttons)
		},
	})
	return columns
}

// buildGrid assembles the view for one grid request from the query
// parameters.
func (s *Server) buildGrid(ctx *gin.Context, table string) (gomponents.Node, bool) {
	tabledefault := database.GetTableDefaults(table)
	if !tabledefault.Known() {
		return nil, false
	}
	view, err := tableview.NewView(table+"-grid", gridPageSize, gridColumns(table, &tabledefault, tableActions(table)))
	if err != nil {
		return nil, false
	}
	view.Filter = tableview.Filter{
		StatusField:  tabledefault.StatusField,
		Status:       ctx.DefaultQuery("status", tableview.StatusAll),
		SearchFields: tabledefault.SearchFields,
		Search:       ctx.Query("search"),
	}
	rows := s.gridRows(table)
	view.Rows(rows)
	if page := logger.StringToInt(ctx.Query("page")); page > 0 {
		view.Paginator.SetPage(page)
	}
	return tableview.Render(view, rows, tabledefault.StatusOptions, "/admin/grid/"+table), true
}

// adminTablePage renders the full page around the grid fragment.
func (s *Server) adminTablePage(ctx *gin.Context) {
	table := ctx.Param("table")
	grid, ok := s.buildGrid(ctx, table)
	if !ok {
		ctx.String(http.StatusNotFound, "unknown table")
		return
	}
	renderPage(ctx, html.Div(
		navbar(table),
		html.Div(
			html.Class("container"),
			html.Div(
				html.Class("d-flex justify-content-between mb-3"),
				html.H4(gomponents.Text(table)),
				html.A(
					html.Class("btn btn-success"),
					html.Href("/admin/new/"+table),
					gomponents.Text("Naujas irasas"),
				),
			),
			grid,
			html.Div(html.ID("modal-body"), html.Class("mt-4")),
		),
	))
}

// adminGridFragment re-renders only the grid for htmx swaps.
func (s *Server) adminGridFragment(ctx *gin.Context) {
	grid, ok := s.buildGrid(ctx, ctx.Param("table"))
	if !ok {
		ctx.String(http.StatusNotFound, "unknown table")
		return
	}
	ctx.Header("Content-Type", "text/html; charset=utf-8")
	ctx.Status(http.StatusOK)
	if err := grid.Render(ctx.Writer); err != nil {
		logger.Logtype("error").Err(err).Msg("render grid")
	}
}

// adminRowDelete removes one record and answers with the re-rendered grid
// so the hx-swap replaces the table in place.
func (s *Server) adminRowDelete(ctx *gin.Context) {
	table := ctx.Param("table")
	tabledefault := database.GetTableDefaults(table)
	if !tabledefault.Known() {
		ctx.String(http.StatusNotFound, "unknown table")
		return
	}
	id := logger.StringToInt(ctx.Param("id"))
	if id < 1 {
		ctx.String(http.StatusBadRequest, "bad id")
		return
	}
	if err := database.DeleteByID(tabledefault.Table, uint(id)); err != nil {
		logger.Logtype("error").Err(err).Str("table", table).Msg("delete row")
		ctx.String(http.StatusInternalServerError, "delete failed")
		return
	}
	s.Cache.Invalidate(table)
	s.adminGridFragment(ctx)
}

// adminTableJSON serves the DataTables wire format over the cached
// collection: iDisplayStart/iDisplayLength window the filtered rows,
// sSearch feeds the free-text filter.
func (s *Server) adminTableJSON(ctx *gin.Context) {
	table := ctx.Param("table")
	tabledefault := database.GetTableDefaults(table)
	if !tabledefault.Known() {
		ctx.JSON(http.StatusNotFound, Jsonerror{Error: "unknown table"})
		return
	}
	rows := s.gridRows(table)

	filter := tableview.Filter{
		StatusField:  tabledefault.StatusField,
		Status:       ctx.DefaultQuery("status", tableview.StatusAll),
		SearchFields: tabledefault.SearchFields,
		Search:       ctx.Query("sSearch"),
	}
	filtered := tableview.Apply(&filter, rows)

	size := logger.StringToInt(ctx.DefaultQuery("iDisplayLength", "10"))
	if size < 1 {
		size = 10
	}
	start := logger.StringToInt(ctx.DefaultQuery("iDisplayStart", "0"))
	if start < 0 {
		start = 0
	}
	paginator, err := tableview.NewPaginator(size)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, Jsonerror{Error: err.Error()})
		return
	}
	paginator.SetTotal(len(filtered))
	paginator.SetPage(start/size + 1)
	first, last := paginator.Window()

	columns := tabledefault.Columns()
	aaData := make([][]string, 0, last-first)
	for _, row := range filtered[first:last] {
		cells := make([]string, 0, len(columns))
		for _, name := range columns {
			cells = append(cells, tableview.Stringify(row[name]))
		}
		aaData = append(aaData, cells)
	}
	ctx.JSON(http.StatusOK, gin.H{
		"sEcho":                ctx.Query("sEcho"),
		"iTotalRecords":        len(rows),
		"iTotalDisplayRecords": len(filtered),
		"aaData":               aaData,
	})
}
