// Package forms implements the descriptor-driven entity editor behind the
// admin detail modals. A form is a list of field descriptors over one
// entity type, an editor drives the viewing and editing lifecycle on top.
package forms

const (
	FieldTypeText     = "text"
	FieldTypeNumber   = "number"
	FieldTypeSelect   = "select"
	FieldTypeTextarea = "textarea"
	FieldTypeDate     = "date"
	FieldTypePassword = "password"
	FieldTypeCheckbox = "checkbox"
)

// Field describes one editable attribute of an entity. Name is the struct
// db tag the value binds to, Formatter overrides the default display
// rendering when set.
type Field struct {
	Name      string
	Label     string
	Type      string
	Options   []string
	Required  bool
	ReadOnly  bool
	Formatter func(value any) string
}

func newField(name, label, fieldType string) Field {
	return Field{Name: name, Label: label, Type: fieldType}
}

// TextField creates a plain text field descriptor.
func TextField(name, label string) Field {
	return newField(name, label, FieldTypeText)
}

// NumberField creates a numeric field descriptor.
func NumberField(name, label string) Field {
	return newField(name, label, FieldTypeNumber)
}

// SelectField creates a dropdown field descriptor over fixed options.
func SelectField(name, label string, options []string) Field {
	field := newField(name, label, FieldTypeSelect)
	field.Options = options
	return field
}

// TextareaField creates a multi-line text field descriptor.
func TextareaField(name, label string) Field {
	return newField(name, label, FieldTypeTextarea)
}

// DateField creates a date field descriptor.
func DateField(name, label string) Field {
	return newField(name, label, FieldTypeDate)
}

// PasswordField creates a password field descriptor. The create form pairs
// it with a repeat input and refuses submission on a mismatch.
func PasswordField(name, label string) Field {
	return newField(name, label, FieldTypePassword)
}

// WithRequired marks the field as mandatory and returns it.
func (f Field) WithRequired() Field {
	f.Required = true
	return f
}

// WithReadOnly marks the field as display-only and returns it.
func (f Field) WithReadOnly() Field {
	f.ReadOnly = true
	return f
}

// WithFormatter sets a custom display renderer and returns the field.
func (f Field) WithFormatter(format func(value any) string) Field {
	f.Formatter = format
	return f
}
