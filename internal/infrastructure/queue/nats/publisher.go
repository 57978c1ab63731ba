// Package nats publishes resume lifecycle events. The publisher is
// optional: with no server URL configured it becomes a no-op, and the
// pipeline runs standalone.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/gridrez/resume-parser/internal/core/domain"
)

type Publisher struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

type parsedEvent struct {
	ResumeID string    `json:"resumeId"`
	Status   string    `json:"status"`
	At       time.Time `json:"at"`
}

// New connects to the given server. An empty url yields a disabled
// publisher whose Publish calls succeed without doing anything.
func New(url, subject string, logger *slog.Logger) (*Publisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if url == "" {
		return &Publisher{subject: subject, logger: logger}, nil
	}

	conn, err := nats.Connect(
		url,
		nats.Name("resume-parser"),
		nats.Timeout(2*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(60),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Publisher{conn: conn, subject: subject, logger: logger}, nil
}

func (p *Publisher) Enabled() bool {
	return p.conn != nil
}

// PublishResumeParsed announces a terminal parse outcome. Event delivery is
// advisory; callers log failures and keep going.
func (p *Publisher) PublishResumeParsed(ctx context.Context, id string, status domain.ResumeStatus) error {
	if p.conn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(parsedEvent{
		ResumeID: id,
		Status:   string(status),
		At:       time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal parsed event: %w", err)
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("nats publish %s: %w", p.subject, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
