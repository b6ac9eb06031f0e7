package orchestrator

import "time"

// DefaultPollInterval is the tick period used when no interval is configured.
const DefaultPollInterval = 10 * time.Millisecond

// Option configures a Run.
type Option func(*Run)

// WithPollInterval sets the tick period. Non-positive values keep the default.
func WithPollInterval(d time.Duration) Option {
	return func(r *Run) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithDeadline bounds how long Await waits for pending tests.
// Zero keeps the default of waiting until every test has settled.
func WithDeadline(d time.Duration) Option {
	return func(r *Run) {
		if d >= 0 {
			r.deadline = d
		}
	}
}

// WithObserver registers a tick observer. Observers run in registration order.
func WithObserver(obs Observer) Option {
	return func(r *Run) {
		if obs != nil {
			r.observers = append(r.observers, obs)
		}
	}
}
