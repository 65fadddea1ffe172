package tableview

import (
	"fmt"
	"strconv"

	"maragu.dev/gomponents"
	htmx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/html"
)

// Render draws the full grid fragment: filter bar, table and pager. The
// fragment carries the view name as its element id so htmx requests from
// the controls can swap it in place. endpoint is the URL the controls hit
// to re-render the fragment.
func Render[T any](v *View[T], items []T, statuses []string, endpoint string) gomponents.Node {
	rows := v.Rows(items)
	return html.Div(
		html.ID(v.Name),
		renderFilterBar(v, statuses, endpoint),
		html.Table(
			html.Class("table table-striped table-hover"),
			html.THead(html.Tr(headerCells(v)...)),
			html.TBody(bodyRows(v, rows)...),
		),
		renderPager(v, endpoint),
	)
}

func headerCells[T any](v *View[T]) []gomponents.Node {
	cells := make([]gomponents.Node, 0, len(v.Columns))
	for idx := range v.Columns {
		cells = append(cells, html.Th(gomponents.Text(v.Columns[idx].Header)))
	}
	return cells
}

func bodyRows[T any](v *View[T], rows []T) []gomponents.Node {
	if len(rows) == 0 {
		return []gomponents.Node{html.Tr(html.Td(
			html.ColSpan(strconv.Itoa(len(v.Columns))),
			html.Class("text-center text-muted"),
			gomponents.Text("Nieko nerasta"),
		))}
	}
	nodes := make([]gomponents.Node, 0, len(rows))
	for idx := range rows {
		cells := make([]gomponents.Node, 0, len(v.Columns))
		for c := range v.Columns {
			col := &v.Columns[c]
			class := gomponents.If(col.Class != "", html.Class(col.Class))
			if col.Action != nil {
				cells = append(cells, html.Td(class, col.Action(&rows[idx])))
				continue
			}
			cells = append(cells, html.Td(class, gomponents.Text(col.Value(&rows[idx]))))
		}
		nodes = append(nodes, html.Tr(cells...))
	}
	return nodes
}

func renderFilterBar[T any](v *View[T], statuses []string, endpoint string) gomponents.Node {
	statusOptions := []gomponents.Node{
		html.Option(html.Value(StatusAll), gomponents.Text("visos"),
			gomponents.If(v.Filter.Status == "" || v.Filter.Status == StatusAll, html.Selected())),
	}
	for _, status := range statuses {
		statusOptions = append(statusOptions, html.Option(
			html.Value(status), gomponents.Text(status),
			gomponents.If(v.Filter.Status == status, html.Selected()),
		))
	}
	return html.Div(
		html.Class("row mb-3"),
		html.Div(
			html.Class("col-md-3"),
			gomponents.If(len(statuses) > 0, html.Select(
				html.Class("form-select"),
				html.Name("status"),
				htmx.Get(endpoint),
				htmx.Target("#"+v.Name),
				htmx.Include("closest .row"),
				gomponents.Group(statusOptions),
			)),
		),
		html.Div(
			html.Class("col-md-4"),
			html.Input(
				html.Type("search"),
				html.Class("form-control"),
				html.Name("search"),
				html.Value(v.Filter.Search),
				html.Placeholder("Paieska"),
				htmx.Get(endpoint),
				htmx.Target("#"+v.Name),
				htmx.Trigger("input changed delay:300ms, search"),
				htmx.Include("closest .row"),
			),
		),
	)
}

func renderPager[T any](v *View[T], endpoint string) gomponents.Node {
	total := v.Paginator.TotalPages()
	if total <= 1 {
		return gomponents.Text("")
	}
	current := v.Paginator.Page()
	pages := make([]gomponents.Node, 0, total+2)
	pages = append(pages, pagerLink(v, endpoint, current-1, "Atgal", current == 1, false))
	for page := 1; page <= total; page++ {
		pages = append(pages, pagerLink(v, endpoint, page, strconv.Itoa(page), false, page == current))
	}
	pages = append(pages, pagerLink(v, endpoint, current+1, "Pirmyn", current == total, false))
	return html.Nav(html.Ul(html.Class("pagination"), gomponents.Group(pages)))
}

// pagerLink draws one pagination control. A disabled Atgal/Pirmyn at the
// boundary keeps its target anyway; SetPage drops the out-of-range page
// server side.
func pagerLink[T any](v *View[T], endpoint string, page int, label string, disabled, active bool) gomponents.Node {
	itemClass := "page-item"
	if disabled {
		itemClass += " disabled"
	}
	if active {
		itemClass += " active"
	}
	return html.Li(
		html.Class(itemClass),
		html.A(
			html.Class("page-link"),
			html.Href("#"),
			htmx.Get(fmt.Sprintf("%s?page=%d", endpoint, page)),
			htmx.Target("#"+v.Name),
			gomponents.Text(label),
		),
	)
}
