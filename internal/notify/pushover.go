package notify

import (
	"fmt"

	"github.com/gregdel/pushover"
	"github.com/sirupsen/logrus"
)

const (
	PriorityNormal = 0
	PriorityHigh   = 1
)

// Notifier sends operator alerts through Pushover. It is optional: when no
// credentials are configured the service simply runs without alerts.
type Notifier struct {
	app       *pushover.Pushover
	recipient *pushover.Recipient
	logger    *logrus.Logger
}

func NewNotifier(token, userKey string, logger *logrus.Logger) *Notifier {
	return &Notifier{
		app:       pushover.New(token),
		recipient: pushover.NewRecipient(userKey),
		logger:    logger,
	}
}

func (n *Notifier) Send(title, message string) error {
	return n.SendWithPriority(title, message, PriorityNormal)
}

func (n *Notifier) SendWithPriority(title, message string, priority int) error {
	msg := pushover.NewMessageWithTitle(message, title)
	msg.Priority = priority

	resp, err := n.app.SendMessage(msg, n.recipient)
	if err != nil {
		return fmt.Errorf("sending pushover notification: %w", err)
	}

	n.logger.WithFields(logrus.Fields{
		"title":      title,
		"status":     resp.Status,
		"request_id": resp.ID,
	}).Debug("notification sent")

	return nil
}

// SendUpstreamDown alerts that the RTPI site stopped answering probes.
func (n *Notifier) SendUpstreamDown(reason string) error {
	title := "RTPI Unreachable"
	body := fmt.Sprintf("The RTPI site is not answering; bus stop requests will get the error response.\n%s", reason)
	return n.SendWithPriority(title, body, PriorityHigh)
}

// SendUpstreamRecovered reports the site answering again after an outage.
func (n *Notifier) SendUpstreamRecovered() error {
	return n.Send("RTPI Recovered", "The RTPI site is answering again.")
}
