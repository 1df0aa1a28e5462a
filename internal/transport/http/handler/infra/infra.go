package infra

import (
	"time"
)

// Handlers holds the dependencies for infrastructure HTTP handlers.
type Handlers struct {
	Service   string
	StartTime time.Time
}

// New creates a new instance of infrastructure handlers.
func New(service string, startTime time.Time) *Handlers {
	return &Handlers{
		Service:   service,
		StartTime: startTime,
	}
}
