// Package publisher fans view state changes out to external sinks.
package publisher

import "context"

type StatePublisher interface {
	Name() string
	Publish(ctx context.Context, event *StateEvent) error
	Close(ctx context.Context) error
}

// Runner is implemented by publishers that need a background loop before they can deliver.
type Runner interface {
	Run()
}
