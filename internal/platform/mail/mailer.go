// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

// Package mail defines the outbound email abstraction.
//
// The API never blocks a request on mail delivery; callers hand a message to
// the mailer and move on. The default implementation logs messages instead of
// sending them, which is the correct behavior for development and tests and a
// deliberate placeholder until a delivery provider is wired in.
package mail

import (
	"context"
	"log/slog"
)

// Message is a plain-text email to one recipient.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers outbound messages.
type Mailer interface {
	Send(ctx context.Context, message Message) error
}

// LogMailer writes messages to the structured log instead of sending them.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a mailer that only logs.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send implements [Mailer]. Bodies may carry reset tokens, so only the
// subject and recipient are logged at Info; the body stays at Debug.
func (mailer *LogMailer) Send(ctx context.Context, message Message) error {
	mailer.logger.InfoContext(ctx, "mail_logged",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
	)
	mailer.logger.DebugContext(ctx, "mail_body", slog.String("body", message.Body))
	return nil
}
