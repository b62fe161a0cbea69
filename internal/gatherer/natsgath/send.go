package natsgath

import (
	"context"
)

// Conn is the part of *nats.Conn the sink uses.
type Conn interface {
	Publish(subject string, data []byte) error
}

type natsSink struct {
	nc      Conn
	subject string
}

func (s *natsSink) Publish(_ context.Context, body []byte) error {
	return s.nc.Publish(s.subject, body)
}
