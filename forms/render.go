package forms

import (
	"maragu.dev/gomponents"
	htmx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/html"
)

// RenderModal draws the detail modal for the editor in its current mode.
// endpoint receives the edit, cancel and save posts and re-renders the
// fragment identified by id.
func RenderModal[T any](e *Editor[T], id, title, endpoint string) gomponents.Node {
	var body gomponents.Node
	var footer gomponents.Node
	if e.Editing() {
		body = renderEditBody(e)
		footer = renderEditFooter(e, id, endpoint)
	} else {
		body = renderViewBody(e)
		footer = renderViewFooter(e, id, endpoint)
	}
	return html.Div(
		html.ID(id),
		html.Class("modal-content"),
		html.Div(
			html.Class("modal-header"),
			html.H5(html.Class("modal-title"), gomponents.Text(title)),
		),
		html.Div(html.Class("modal-body"), body),
		html.Div(html.Class("modal-footer"), footer),
	)
}

func renderViewBody[T any](e *Editor[T]) gomponents.Node {
	rows := make([]gomponents.Node, 0, len(e.Fields))
	for idx := range e.Fields {
		field := &e.Fields[idx]
		rows = append(rows, html.Tr(
			html.Th(gomponents.Text(field.Label)),
			html.Td(gomponents.Text(e.Display(field.Name))),
		))
	}
	return html.Table(html.Class("table table-sm"), html.TBody(rows...))
}

func renderEditBody[T any](e *Editor[T]) gomponents.Node {
	groups := make([]gomponents.Node, 0, len(e.Fields))
	for idx := range e.Fields {
		groups = append(groups, RenderFieldGroup(&e.Fields[idx], e.Value(e.Fields[idx].Name)))
	}
	var alert gomponents.Node
	if e.SaveError() != nil {
		alert = html.Div(
			html.Class("alert alert-danger"),
			gomponents.Text(e.SaveError().Error()),
		)
	}
	return html.Form(alert, gomponents.Group(groups))
}

func renderViewFooter[T any](e *Editor[T], id, endpoint string) gomponents.Node {
	if e.ReadOnly() {
		return gomponents.Text("")
	}
	return html.Button(
		html.Type("button"),
		html.Class("btn btn-primary"),
		htmx.Post(endpoint+"?action=edit"),
		htmx.Target("#"+id),
		gomponents.Text("Redaguoti"),
	)
}

func renderEditFooter[T any](e *Editor[T], id, endpoint string) gomponents.Node {
	return gomponents.Group([]gomponents.Node{
		html.Button(
			html.Type("button"),
			html.Class("btn btn-secondary"),
			htmx.Post(endpoint+"?action=cancel"),
			htmx.Target("#"+id),
			gomponents.Text("Atsaukti"),
		),
		html.Button(
			html.Type("button"),
			html.Class("btn btn-primary"),
			htmx.Post(endpoint+"?action=save"),
			htmx.Target("#"+id),
			htmx.Include("closest .modal-content"),
			gomponents.Text("Issaugoti"),
		),
	})
}

// RenderFieldGroup draws one labelled input for the field with the given
// current value.
func RenderFieldGroup(field *Field, value string) gomponents.Node {
	var input gomponents.Node
	switch field.Type {
	case FieldTypeSelect:
		options := make([]gomponents.Node, 0, len(field.Options))
		for _, option := range field.Options {
			options = append(options, html.Option(
				html.Value(option),
				gomponents.Text(option),
				gomponents.If(option == value, html.Selected()),
			))
		}
		input = html.Select(
			html.Class("form-select"),
			html.Name(field.Name),
			gomponents.If(field.ReadOnly, html.Disabled()),
			gomponents.Group(options),
		)
	case FieldTypeTextarea:
		input = html.Textarea(
			html.Class("form-control"),
			html.Name(field.Name),
			html.Rows("4"),
			gomponents.If(field.ReadOnly, html.ReadOnly()),
			gomponents.Text(value),
		)
	default:
		input = html.Input(
			html.Type(field.Type),
			html.Class("form-control"),
			html.Name(field.Name),
			html.Value(value),
			gomponents.If(field.Required, html.Required()),
			gomponents.If(field.ReadOnly, html.ReadOnly()),
		)
	}
	return html.Div(
		html.Class("mb-3"),
		html.Label(html.Class("form-label"), html.For(field.Name), gomponents.Text(field.Label)),
		input,
	)
}

// RenderCreateForm draws the new-entity form. Password fields get a
// paired repeat input.
func RenderCreateForm[T any](c *CreateForm[T], id, endpoint string) gomponents.Node {
	groups := make([]gomponents.Node, 0, len(c.Fields)+1)
	for idx := range c.Fields {
		field := &c.Fields[idx]
		groups = append(groups, RenderFieldGroup(field, ""))
		if field.Type == FieldTypePassword {
			repeat := *field
			repeat.Name = field.Name + RepeatSuffix
			repeat.Label = field.Label + " (pakartoti)"
			groups = append(groups, RenderFieldGroup(&repeat, ""))
		}
	}
	groups = append(groups, html.Button(
		html.Type("submit"),
		html.Class("btn btn-primary"),
		gomponents.Text("Sukurti"),
	))
	return html.Form(
		html.ID(id),
		htmx.Post(endpoint),
		htmx.Target("#"+id),
		gomponents.Group(groups),
	)
}
