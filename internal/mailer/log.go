package mailer

import (
	"context"
	"log"
)

// LogMailer is the development fallback used when SES is not configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	log.Printf("[mail] to=%v subject=%q (delivery disabled)", msg.To, msg.Subject)
	return nil
}
