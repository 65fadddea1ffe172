package forms

import (
	"testing"

	"github.com/dkasparas/autonuoma/database"
)

func employeeFields() []Field {
	return []Field{
		TextField("vardas", "Vardas").WithRequired(),
		TextField("pavarde", "Pavarde").WithRequired(),
		TextField("email", "El. pastas").WithRequired(),
		PasswordField("password_hash", "Slaptazodis").WithRequired(),
	}
}

func TestCreateFormSubmit(t *testing.T) {
	tests := []struct {
		name      string
		values    map[string]string
		wantErr   bool
		wantCalls int
	}{
		{
			"valid submission",
			map[string]string{
				"vardas": "Ruta", "pavarde": "Vaitkute",
				"email":         "ruta@example.lt",
				"password_hash": "slaptas1", "password_hash_repeat": "slaptas1",
			},
			false, 1,
		},
		{
			"password mismatch blocks creation",
			map[string]string{
				"vardas": "Ruta", "pavarde": "Vaitkute",
				"email":         "ruta@example.lt",
				"password_hash": "slaptas1", "password_hash_repeat": "kitoks2",
			},
			true, 0,
		},
		{
			"missing repeat blocks creation",
			map[string]string{
				"vardas": "Ruta", "pavarde": "Vaitkute",
				"email":         "ruta@example.lt",
				"password_hash": "slaptas1",
			},
			true, 0,
		},
		{
			"missing required field",
			map[string]string{
				"vardas":        "Ruta",
				"password_hash": "slaptas1", "password_hash_repeat": "slaptas1",
			},
			true, 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			form := NewCreateForm(employeeFields(), func(e *database.Employee) error {
				calls++
				return nil
			})
			created, err := form.Submit(tt.values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Submit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("OnCreate called %d times, want %d", calls, tt.wantCalls)
			}
			if !tt.wantErr && created.Vardas != "Ruta" {
				t.Errorf("Submit() entity Vardas = %q, want Ruta", created.Vardas)
			}
		})
	}
}
