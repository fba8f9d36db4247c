package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// subjectPrefix namespaces audit subjects so downstream consumers can
// subscribe to identity.audit.> without seeing unrelated traffic.
const subjectPrefix = "identity.audit"

// Sink receives audit events from the dispatcher
type Sink interface {
	Emit(ctx context.Context, event *domain.AuditEvent) error
}

// NATSPublisher emits audit events to a NATS subject per action
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to the NATS server at url
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// Emit implements Sink
func (p *NATSPublisher) Emit(_ context.Context, event *domain.AuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}
	return p.conn.Publish(fmt.Sprintf("%s.%s", subjectPrefix, event.Action), payload)
}

// Close closes the NATS connection
func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}
