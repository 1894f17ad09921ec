// Package health aggregates dependency liveness for the readiness endpoint.
package health

import (
	"context"
	"sync"
	"time"
)

// Checker is one named dependency probe.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckFunc adapts a function to Checker.
type CheckFunc func(ctx context.Context) error

// Ping implements Checker.
func (f CheckFunc) Ping(ctx context.Context) error { return f(ctx) }

// Status is one health report.
type Status struct {
	Healthy    bool              `json:"healthy"`
	Components map[string]string `json:"components"`
}

// Service probes dependencies concurrently with a shared timeout.
type Service struct {
	timeout  time.Duration
	checkers map[string]Checker
}

// New creates the health service.
func New(timeout time.Duration, checkers map[string]Checker) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{timeout: timeout, checkers: checkers}
}

// Check probes every dependency and reports per-component state.
func (s *Service) Check(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		mu         sync.Mutex
		wg         sync.WaitGroup
		components = make(map[string]string, len(s.checkers))
		healthy    = true
	)

	for name, checker := range s.checkers {
		wg.Add(1)
		go func(name string, checker Checker) {
			defer wg.Done()
			state := "ok"
			if err := checker.Ping(ctx); err != nil {
				state = err.Error()
			}
			mu.Lock()
			components[name] = state
			if state != "ok" {
				healthy = false
			}
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()

	return Status{Healthy: healthy, Components: components}
}
