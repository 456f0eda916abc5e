package mailer

import "context"

// Message is a plain outbound email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer delivers notification email. Delivery is best-effort everywhere it
// is used: a failed send never fails the operation that triggered it.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
