package api

import (
	"testing"

	"github.com/dkasparas/autonuoma/database"
	"github.com/dkasparas/autonuoma/notifier"
	"github.com/dkasparas/autonuoma/worker"
)

func TestTicketAlertQueued(t *testing.T) {
	worker.CreateWorkerPools(1)
	defer worker.StopWorkerPools()

	s := &Server{Notify: notifier.NewPushoverClient("", "")}
	ticket := database.SupportTicket{ID: 3, Tema: "Nera rakteliu", Busena: database.TicketOpen}
	if err := s.dispatchTicketAlert(ticket); err != nil {
		t.Fatalf("dispatchTicketAlert() error = %v", err)
	}
}
