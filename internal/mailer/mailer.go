// Package mailer models the outbound message stream: one simulated email
// per affected external user, dispatched best-effort. A failed send never
// rolls back the mutation that triggered it.
package mailer

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/turnkey-platform/turnkey-service/internal/domain"
)

// Mailer delivers a simulated message to one recipient.
type Mailer interface {
	Send(ctx context.Context, recipient domain.User, subject, body string) error
}

// logMailer writes the message to the structured log, mirroring the
// reference behavior of printing simulated emails.
type logMailer struct {
	logger *zap.Logger
	from   string
}

// NewLogMailer returns a Mailer that logs each message.
func NewLogMailer(logger *zap.Logger, from string) Mailer {
	return &logMailer{logger: logger, from: from}
}

func (m *logMailer) Send(_ context.Context, recipient domain.User, subject, body string) error {
	m.logger.Info("simulated email",
		zap.String("from", m.from),
		zap.String("to", recipient.Email),
		zap.String("name", recipient.Name),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}

// streamMailer appends messages to a Redis stream, standing in for an
// outbound email/event queue.
type streamMailer struct {
	client *redis.Client
	stream string
	from   string
}

// NewStreamMailer returns a Mailer backed by Redis Streams.
func NewStreamMailer(client *redis.Client, stream, from string) Mailer {
	return &streamMailer{client: client, stream: stream, from: from}
}

func (m *streamMailer) Send(ctx context.Context, recipient domain.User, subject, body string) error {
	return m.client.XAdd(ctx, &redis.XAddArgs{
		Stream: m.stream,
		Values: map[string]any{
			"from":    m.from,
			"to":      recipient.Email,
			"user_id": recipient.ID,
			"subject": subject,
			"body":    body,
		},
	}).Err()
}
