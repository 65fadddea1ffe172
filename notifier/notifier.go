// Package notifier pushes operational alerts to the on-call phone via
// Pushover: new support tickets and the results of the overdue sweeps.
package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/dkasparas/autonuoma/database"
	"github.com/gregdel/pushover"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	maxMessageLength = 1024
	maxTitleLength   = 250
)

// PushoverClient sends messages to one recipient. Pushover allows few
// requests per app, the limiter keeps bursts of ticket spam in check.
type PushoverClient struct {
	apiKey    string
	recipient string
	limiter   *rate.Limiter
}

// NewPushoverClient builds a client for the given app key and recipient.
// Empty keys yield a disabled client whose sends are silent no-ops.
func NewPushoverClient(apiKey, recipient string) *PushoverClient {
	return &PushoverClient{
		apiKey:    apiKey,
		recipient: recipient,
		limiter:   rate.NewLimiter(rate.Every(10*time.Second), 3),
	}
}

// Enabled reports whether both keys are configured.
func (p *PushoverClient) Enabled() bool {
	return p.apiKey != "" && p.recipient != ""
}

// Send delivers one message. It blocks on the rate limiter until the
// context expires.
func (p *PushoverClient) Send(ctx context.Context, title, message string) error {
	if !p.Enabled() {
		return nil
	}
	if message == "" {
		return errors.New("message empty")
	}
	if len(message) > maxMessageLength {
		return errors.Errorf("message longer than %d characters", maxMessageLength)
	}
	if len(title) > maxTitleLength {
		return errors.Errorf("title longer than %d characters", maxTitleLength)
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limit wait")
	}
	app := pushover.New(p.apiKey)
	recipient := pushover.NewRecipient(p.recipient)
	if _, err := app.SendMessage(pushover.NewMessageWithTitle(message, title), recipient); err != nil {
		return errors.Wrap(err, "send pushover message")
	}
	return nil
}

// NotifyTicket alerts about a freshly opened support ticket.
func (p *PushoverClient) NotifyTicket(ctx context.Context, ticket *database.SupportTicket) error {
	message := ticket.Zinute
	if len(message) > 200 {
		message = message[:200] + "..."
	}
	return p.Send(ctx, "Nauja uzklausa: "+ticket.Tema, message)
}

// NotifyOverdue reports a sweep that flipped records to an overdue state.
func (p *PushoverClient) NotifyOverdue(ctx context.Context, kind string, count int64) error {
	if count == 0 {
		return nil
	}
	return p.Send(ctx, "Pradelsimai", fmt.Sprintf("%s: %d irasu pazymeta pradelstais", kind, count))
}
