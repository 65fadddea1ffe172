package notifier

import (
	"context"
	"strings"
	"testing"

	"github.com/dkasparas/autonuoma/database"
)

func TestDisabledClientIsNoOp(t *testing.T) {
	p := NewPushoverClient("", "")
	if p.Enabled() {
		t.Error("Enabled() = true without keys")
	}
	if err := p.Send(context.Background(), "title", "message"); err != nil {
		t.Errorf("Send() error = %v on disabled client, want nil", err)
	}
	ticket := database.SupportTicket{Tema: "Neveikia", Zinute: "Masina neuzsiveda"}
	if err := p.NotifyTicket(context.Background(), &ticket); err != nil {
		t.Errorf("NotifyTicket() error = %v on disabled client, want nil", err)
	}
}

func TestSendValidation(t *testing.T) {
	p := NewPushoverClient("app-key", "user-key")
	tests := []struct {
		name    string
		title   string
		message string
	}{
		{"empty message", "title", ""},
		{"message too long", "title", strings.Repeat("a", 1100)},
		{"title too long", strings.Repeat("t", 300), "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := p.Send(context.Background(), tt.title, tt.message); err == nil {
				t.Error("Send() error = nil, want validation failure")
			}
		})
	}
}

func TestNotifyOverdueSkipsZeroCount(t *testing.T) {
	p := NewPushoverClient("app-key", "user-key")
	if err := p.NotifyOverdue(context.Background(), "rezervacijos", 0); err != nil {
		t.Errorf("NotifyOverdue() error = %v for zero count, want nil", err)
	}
}
