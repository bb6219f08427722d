package workflow

import (
	"fmt"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/sirupsen/logrus"
)

const (
	RoleRawStorage    = "raw_storage"
	RoleManufacturing = "manufacturing"
)

// NotificationEvent is one outbound message addressed to an operational role
// rather than a concrete mailbox; the sender resolves the recipient.
type NotificationEvent struct {
	Role    string
	Subject string
	Body    string
}

// EmailSender abstracts the SMTP transport so tests can capture events.
type EmailSender interface {
	SendToRole(role string, subject string, body string) error
}

// SMTPRoleSender resolves role names to configured recipients and delivers
// via the shared SMTP sender.
type SMTPRoleSender struct {
	Sender *config.SMTPSender
}

func (s *SMTPRoleSender) SendToRole(role string, subject string, body string) error {
	recipient := config.RecipientForRole(role)
	if recipient == "" {
		return fmt.Errorf("no recipient configured for role %q", role)
	}
	return s.Sender.Send(recipient, subject, body)
}

// Notifier delivers notification events asynchronously on a single worker
// goroutine. Publish never blocks the optimization cycle: when the buffer is
// full the event is dropped with a warning. Delivery failures are logged and
// never affect cycle outcomes.
type Notifier struct {
	sender EmailSender
	logger *logrus.Logger
	events chan NotificationEvent
	done   chan struct{}
}

func NewNotifier(sender EmailSender, logger *logrus.Logger) *Notifier {
	n := &Notifier{
		sender: sender,
		logger: logger,
		events: make(chan NotificationEvent, 64),
		done:   make(chan struct{}),
	}
	go n.run()
	return n
}

func (n *Notifier) run() {
	defer close(n.done)
	for event := range n.events {
		if err := n.sender.SendToRole(event.Role, event.Subject, event.Body); err != nil {
			n.logger.WithFields(logrus.Fields{
				"role":    event.Role,
				"subject": event.Subject,
			}).Warnf("notification delivery failed: %v", err)
			continue
		}
		n.logger.WithField("role", event.Role).Infof("notification sent: %s", event.Subject)
	}
}

func (n *Notifier) Publish(event NotificationEvent) {
	select {
	case n.events <- event:
	default:
		n.logger.WithField("role", event.Role).Warn("notification buffer full, dropping event")
	}
}

// Close stops accepting events and waits for the worker to drain the buffer.
func (n *Notifier) Close() {
	close(n.events)
	<-n.done
}
