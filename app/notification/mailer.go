package notification

import (
	"context"
	"errors"
)

var ErrNoMessageID = errors.New("mailer returned an empty message id")

type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer delivers a rendered message and returns the id the transport assigned to it.
// An empty id is treated as a failed delivery.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}
