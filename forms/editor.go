package forms

import (
	"database/sql"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dkasparas/autonuoma/tableview"
	"github.com/pkg/errors"
)

// Mode is the editor lifecycle state.
type Mode int

const (
	ModeViewing Mode = iota
	ModeEditing
)

// emptyDisplay stands in for blank values in view mode.
const emptyDisplay = "—"

// Editor drives the detail modal for one entity. In view mode the loaded
// item is shown read-only. Edit copies it into a buffer, field writes go
// to the buffer only, Cancel throws the buffer away and Save hands it to
// OnSave. A failed save keeps the buffer and stays in edit mode so the
// operator can retry. A nil OnSave makes the editor read-only.
type Editor[T any] struct {
	Fields  []Field
	OnSave  func(entity *T) error
	item    T
	buffer  T
	mode    Mode
	saveErr error
}

// NewEditor builds an editor over the given field descriptors.
func NewEditor[T any](fields []Field, onSave func(entity *T) error) *Editor[T] {
	return &Editor[T]{Fields: fields, OnSave: onSave}
}

// Load replaces the shown entity and resets the editor to view mode. Any
// unsaved buffer from a previous entity is discarded.
func (e *Editor[T]) Load(item T) {
	e.item = item
	e.mode = ModeViewing
	e.saveErr = nil
}

// Item returns the last loaded (or successfully saved) entity.
func (e *Editor[T]) Item() T { return e.item }

// Mode returns the current lifecycle state.
func (e *Editor[T]) Mode() Mode { return e.mode }

// Editing reports whether the buffer is live.
func (e *Editor[T]) Editing() bool { return e.mode == ModeEditing }

// ReadOnly reports whether the editor can never enter edit mode.
func (e *Editor[T]) ReadOnly() bool { return e.OnSave == nil }

// SaveError returns the error of the last failed save, nil otherwise.
func (e *Editor[T]) SaveError() error { return e.saveErr }

// Edit copies the item into the buffer and enters edit mode. Reports
// false when the editor is read-only or already editing.
func (e *Editor[T]) Edit() bool {
	if e.ReadOnly() || e.mode == ModeEditing {
		return false
	}
	e.buffer = e.item
	e.mode = ModeEditing
	e.saveErr = nil
	return true
}

// SetField parses raw into the named buffer field. Only valid in edit
// mode and only for writable descriptor fields.
func (e *Editor[T]) SetField(name, raw string) error {
	if e.mode != ModeEditing {
		return errors.New("not editing")
	}
	field := e.fieldByName(name)
	if field == nil {
		return errors.Errorf("unknown field %s", name)
	}
	if field.ReadOnly {
		return errors.Errorf("field %s is read only", name)
	}
	return setStructField(&e.buffer, name, raw)
}

// Cancel discards the buffer and returns to view mode.
func (e *Editor[T]) Cancel() {
	if e.mode != ModeEditing {
		return
	}
	var zero T
	e.buffer = zero
	e.mode = ModeViewing
	e.saveErr = nil
}

// Save validates the buffer and hands it to OnSave exactly once. The
// editor leaves edit mode only when OnSave succeeds; on failure the
// buffer survives for a retry.
func (e *Editor[T]) Save() error {
	if e.mode != ModeEditing {
		return errors.New("not editing")
	}
	if err := e.validate(); err != nil {
		e.saveErr = err
		return err
	}
	if err := e.OnSave(&e.buffer); err != nil {
		e.saveErr = err
		return err
	}
	e.item = e.buffer
	var zero T
	e.buffer = zero
	e.mode = ModeViewing
	e.saveErr = nil
	return nil
}

func (e *Editor[T]) validate() error {
	for idx := range e.Fields {
		field := &e.Fields[idx]
		if !field.Required {
			continue
		}
		if strings.TrimSpace(e.bufferValue(field.Name)) == "" {
			return errors.Errorf("%s cannot be empty", field.Name)
		}
	}
	return nil
}

// Display renders the named field of the shown item for view mode. Blank
// values render as an em dash.
func (e *Editor[T]) Display(name string) string {
	field := e.fieldByName(name)
	val, ok := tableview.FieldValue(&e.item, name)
	if !ok {
		return emptyDisplay
	}
	var text string
	if field != nil && field.Formatter != nil {
		text = field.Formatter(val)
	} else {
		text = tableview.Stringify(val)
	}
	if text == "" {
		return emptyDisplay
	}
	return text
}

// Value returns the raw input value for the named field: the buffer while
// editing, the item otherwise.
func (e *Editor[T]) Value(name string) string {
	if e.mode == ModeEditing {
		return e.bufferValue(name)
	}
	val, ok := tableview.FieldValue(&e.item, name)
	if !ok {
		return ""
	}
	return tableview.Stringify(val)
}

func (e *Editor[T]) bufferValue(name string) string {
	val, ok := tableview.FieldValue(&e.buffer, name)
	if !ok {
		return ""
	}
	return tableview.Stringify(val)
}

func (e *Editor[T]) fieldByName(name string) *Field {
	for idx := range e.Fields {
		if e.Fields[idx].Name == name {
			return &e.Fields[idx]
		}
	}
	return nil
}

// setStructField parses raw into the struct field whose db tag, json tag
// or name matches key.
func setStructField(entity any, key, raw string) error {
	rv := reflect.ValueOf(entity).Elem()
	if rv.Kind() != reflect.Struct {
		return errors.New("entity is not a struct")
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		if !strings.EqualFold(structTagName(field), key) && !strings.EqualFold(field.Name, key) {
			continue
		}
		return assignValue(rv.Field(i), raw)
	}
	return errors.Errorf("no struct field for %s", key)
}

func structTagName(field reflect.StructField) string {
	if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
		return tag
	}
	tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if tag == "-" {
		return ""
	}
	return tag
}

func assignValue(target reflect.Value, raw string) error {
	switch target.Interface().(type) {
	case time.Time:
		parsed, err := parseTime(raw)
		if err != nil {
			return err
		}
		target.Set(reflect.ValueOf(parsed))
		return nil
	case sql.NullTime:
		if strings.TrimSpace(raw) == "" {
			target.Set(reflect.ValueOf(sql.NullTime{}))
			return nil
		}
		parsed, err := parseTime(raw)
		if err != nil {
			return err
		}
		target.Set(reflect.ValueOf(sql.NullTime{Time: parsed, Valid: true}))
		return nil
	}
	switch target.Kind() {
	case reflect.String:
		target.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return errors.Wrapf(err, "parse %q as int", raw)
		}
		target.SetInt(parsed)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parsed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return errors.Wrapf(err, "parse %q as uint", raw)
		}
		target.SetUint(parsed)
	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return errors.Wrapf(err, "parse %q as float", raw)
		}
		target.SetFloat(parsed)
	case reflect.Bool:
		target.SetBool(parseCheckboxValue(raw))
	default:
		return errors.Errorf("unsupported field kind %s", target.Kind())
	}
	return nil
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.Errorf("parse %q as time", raw)
}

func parseCheckboxValue(raw string) bool {
	switch raw {
	case "1", "true", "on", "yes":
		return true
	case "0", "false", "off", "no", "":
		return false
	default:
		parsed, _ := strconv.ParseBool(raw)
		return parsed
	}
}
