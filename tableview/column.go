// Package tableview implements the in-memory grid engine behind the admin
// pages. A view takes a wholesale-loaded collection, runs it through the
// status and free-text filters and hands a page window to the renderer.
package tableview

import (
	"database/sql"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"maragu.dev/gomponents"
)

// Column describes one grid column for items of type T. Exactly one of
// Field and Derived carries the cell value; Action replaces the cell with
// a rendered node (row buttons and the like). Class is applied to the
// body cells as-is.
type Column[T any] struct {
	Header  string
	Field   string
	Class   string
	Derived func(item *T) string
	Action  func(item *T) gomponents.Node
}

// Value resolves the cell text for item.
func (c *Column[T]) Value(item *T) string {
	if c.Derived != nil {
		return c.Derived(item)
	}
	val, ok := FieldValue(item, c.Field)
	if !ok {
		return ""
	}
	return Stringify(val)
}

// FieldValue looks up key on item. Maps are indexed directly, structs are
// matched by db tag, then json tag, then field name, all case-insensitive.
func FieldValue(item any, key string) (any, bool) {
	rv := reflect.ValueOf(item)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if m, ok := rv.Interface().(map[string]any); ok {
		val, ok := m[key]
		return val, ok
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		if strings.EqualFold(tagName(field), key) || strings.EqualFold(field.Name, key) {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}

func tagName(field reflect.StructField) string {
	if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
		return tag
	}
	tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if tag == "-" {
		return ""
	}
	return tag
}

// Stringify renders a cell value the way the grids show it. Zero times and
// null timestamps render empty, floats drop trailing zeros.
func Stringify(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format("2006-01-02 15:04")
	case sql.NullTime:
		if !v.Valid {
			return ""
		}
		return v.Time.Format("2006-01-02 15:04")
	case sql.NullString:
		if !v.Valid {
			return ""
		}
		return v.String
	default:
		return fmt.Sprint(val)
	}
}
