// Package natsgath streams run events to a NATS subject.
package natsgath

import (
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/programme-lv/neetrunner/internal/gatherer"
)

// Connect dials the NATS server at url.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url, nats.Name("neetrunner"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	return nc, nil
}

// New creates a gatherer that publishes events of run runUuid to subject.
func New(nc *nats.Conn, runUuid string, subject string, log *slog.Logger) *gatherer.Publisher {
	return NewWithConn(nc, runUuid, subject, log)
}

func NewWithConn(conn Conn, runUuid string, subject string, log *slog.Logger) *gatherer.Publisher {
	return gatherer.NewPublisher(&natsSink{nc: conn, subject: subject}, runUuid, log)
}
