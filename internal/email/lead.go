// internal/email/lead.go
package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inteligenciarte/luxurystudio/internal/booking"
)

const leadEmailTimeout = 15 * time.Second

type Message struct {
	Subject string
	Body    string
}

// BuildLeadEmail tells the studio that someone was sent to WhatsApp with a
// booking request, in case the chat is never started.
func BuildLeadEmail(studioName string, submission booking.Submission) Message {
	studioName = strings.TrimSpace(studioName)
	if studioName == "" {
		studioName = "Studio"
	}
	name := strings.TrimSpace(submission.Request.Name)
	if name == "" {
		name = "Cliente"
	}

	lines := []string{
		fmt.Sprintf("Novo pedido de agendamento de %s.", name),
		"",
		submission.Message,
		"",
		fmt.Sprintf("Link do WhatsApp: %s", submission.URL),
	}

	return Message{
		Subject: fmt.Sprintf("Pedido de agendamento - %s - %s", name, studioName),
		Body:    strings.Join(lines, "\n"),
	}
}

// Notifier sends lead emails to the studio without blocking the caller.
type Notifier struct {
	sender    EmailSender
	recipient string
	studio    string
	timeout   time.Duration
}

func NewNotifier(sender EmailSender, recipient, studioName string) *Notifier {
	return &Notifier{
		sender:    sender,
		recipient: strings.TrimSpace(recipient),
		studio:    studioName,
		timeout:   leadEmailTimeout,
	}
}

// NotifyLead sends the lead email in the background. The returned channel
// is closed once delivery finished or failed.
func (n *Notifier) NotifyLead(submission booking.Submission, logger *zerolog.Logger) <-chan struct{} {
	done := make(chan struct{})
	if n == nil || n.sender == nil || n.recipient == "" {
		close(done)
		return done
	}

	message := BuildLeadEmail(n.studio, submission)
	go func() {
		defer close(done)
		sendCtx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.sender.Send(sendCtx, n.recipient, message.Subject, message.Body); err != nil {
			if logger != nil {
				logger.Error().Err(err).Str("recipient", n.recipient).Msg("Failed to send lead email")
			}
			return
		}
		if logger != nil {
			logger.Info().Str("recipient", n.recipient).Msg("Lead email sent")
		}
	}()
	return done
}
