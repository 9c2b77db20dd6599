package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blaisecz/meal-cycle/internal/logger"
	"github.com/nats-io/nats.go"
)

// Publisher is the subset of *nats.Conn used to publish alerts.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATS publishes alerts as JSON on a subject.
type NATS struct {
	pub     Publisher
	subject string
	conn    *nats.Conn
}

// NewNATS publishes through pub on subject.
func NewNATS(pub Publisher, subject string) (*NATS, error) {
	if subject == "" {
		return nil, errNoSubject
	}
	return &NATS{pub: pub, subject: subject}, nil
}

// DialNATS connects to url and returns a notifier owning the connection.
func DialNATS(url, subject string) (*NATS, error) {
	if subject == "" {
		return nil, errNoSubject
	}
	conn, err := nats.Connect(url, nats.Name("meal-cycle"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("NATS alert publisher connected", "url", url, "subject", subject)
	return &NATS{pub: conn, subject: subject, conn: conn}, nil
}

func (n *NATS) Emit(ctx context.Context, alert Alert) {
	data, err := json.Marshal(alert)
	if err != nil {
		logger.Error("Failed to encode alert", "error", err)
		return
	}
	if err := n.pub.Publish(n.subject, data); err != nil {
		logger.Warn("Failed to publish alert", "subject", n.subject, "error", err)
		return
	}
	logger.Debug("Published alert", "subject", n.subject, "slot", alert.Slot)
}

// Close drains the owned connection, if any.
func (n *NATS) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Drain()
}
