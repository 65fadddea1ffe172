package tableview

// View binds columns, filters and a paginator for one grid. The source
// collection is passed per call so a view can live longer than one request
// while the cache refreshes the data underneath it.
type View[T any] struct {
	Name      string
	Columns   []Column[T]
	Filter    Filter
	Paginator *Paginator
}

// NewView builds a grid over items of type T. The name doubles as the
// htmx swap target id of the rendered table.
func NewView[T any](name string, pageSize int, columns []Column[T]) (*View[T], error) {
	paginator, err := NewPaginator(pageSize)
	if err != nil {
		return nil, err
	}
	return &View[T]{Name: name, Columns: columns, Paginator: paginator}, nil
}

// SetStatus changes the status predicate and rewinds to the first page.
func (v *View[T]) SetStatus(status string) {
	v.Filter.Status = status
	v.Paginator.SetPage(1)
}

// SetSearch changes the free-text predicate and rewinds to the first page.
func (v *View[T]) SetSearch(search string) {
	v.Filter.Search = search
	v.Paginator.SetPage(1)
}

// Rows filters the collection and returns the current page window.
func (v *View[T]) Rows(items []T) []T {
	return PageOf(v.Paginator, Apply(&v.Filter, items))
}
