package tableview

import (
	"strings"

	"github.com/dkasparas/autonuoma/logger"
)

// StatusAll is the sentinel filter value that passes every status.
const StatusAll = "all"

// Filter narrows a collection before pagination. Status matches one field
// exactly, Search scans the SearchFields for a case-insensitive substring.
// Both predicates must pass when both are set.
type Filter struct {
	StatusField  string
	Status       string
	SearchFields []string
	Search       string
}

// Apply returns the items that pass both predicates. The input slice is
// never modified and a fresh slice is returned even when nothing is
// filtered out.
func Apply[T any](f *Filter, items []T) []T {
	result := make([]T, 0, len(items))
	for idx := range items {
		if f.Matches(&items[idx]) {
			result = append(result, items[idx])
		}
	}
	return result
}

// Matches reports whether item passes both predicates.
func (f *Filter) Matches(item any) bool {
	return f.matchesStatus(item) && f.matchesSearch(item)
}

func (f *Filter) matchesStatus(item any) bool {
	if f.Status == "" || f.Status == StatusAll || f.StatusField == "" {
		return true
	}
	val, ok := FieldValue(item, f.StatusField)
	if !ok {
		return false
	}
	return Stringify(val) == f.Status
}

// matchesSearch scans the space-joined SearchFields values so a query
// can span a field boundary, "toyota corolla" on marke plus modelis.
func (f *Filter) matchesSearch(item any) bool {
	if f.Search == "" {
		return true
	}
	values := make([]string, 0, len(f.SearchFields))
	for _, field := range f.SearchFields {
		val, ok := FieldValue(item, field)
		if !ok {
			continue
		}
		values = append(values, Stringify(val))
	}
	return logger.ContainsI(strings.Join(values, " "), f.Search)
}
