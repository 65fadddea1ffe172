package forms

import (
	"strings"

	"github.com/pkg/errors"
)

// RepeatSuffix is appended to a password field name to form the repeat
// input name on create forms.
const RepeatSuffix = "_repeat"

// CreateForm builds a fresh entity from submitted values. Password fields
// must match their repeat input or the submission is refused before
// OnCreate runs.
type CreateForm[T any] struct {
	Fields   []Field
	OnCreate func(entity *T) error
}

// NewCreateForm builds a create form over the given field descriptors.
func NewCreateForm[T any](fields []Field, onCreate func(entity *T) error) *CreateForm[T] {
	return &CreateForm[T]{Fields: fields, OnCreate: onCreate}
}

// Submit parses values into a zero entity and hands it to OnCreate. It
// returns the created entity so callers can show it right away.
func (c *CreateForm[T]) Submit(values map[string]string) (T, error) {
	var entity T
	if c.OnCreate == nil {
		return entity, errors.New("create form has no handler")
	}
	for idx := range c.Fields {
		field := &c.Fields[idx]
		if field.ReadOnly {
			continue
		}
		raw := values[field.Name]
		if field.Required && strings.TrimSpace(raw) == "" {
			return entity, errors.Errorf("%s cannot be empty", field.Name)
		}
		if field.Type == FieldTypePassword {
			if raw != values[field.Name+RepeatSuffix] {
				return entity, errors.Errorf("%s does not match its repeat", field.Name)
			}
		}
		if raw == "" {
			continue
		}
		if err := setStructField(&entity, field.Name, raw); err != nil {
			return entity, err
		}
	}
	if err := c.OnCreate(&entity); err != nil {
		return entity, err
	}
	return entity, nil
}
