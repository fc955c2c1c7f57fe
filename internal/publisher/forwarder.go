package publisher

import (
	"context"
	"mars-photos/internal/domain/state"
	"mars-photos/internal/metrics"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const publishTimeout = 5 * time.Second

// Forwarder hands every state a controller enters to all publishers. Publisher failures are
// logged and counted; they never reach the controller.
type Forwarder struct {
	logger     *zap.SugaredLogger
	publishers []StatePublisher
}

func NewForwarder(logger *zap.SugaredLogger, publishers ...StatePublisher) *Forwarder {
	return &Forwarder{
		logger:     logger,
		publishers: publishers,
	}
}

func (f *Forwarder) Publishers() []StatePublisher {
	return f.publishers
}

// Forward drains updates until the channel is closed or ctx is done.
func (f *Forwarder) Forward(ctx context.Context, controllerID string, updates <-chan state.ViewState) error {
	if len(f.publishers) == 0 {
		f.logger.Warnw("Forwarding states without publishers", "controllerID", controllerID)
	}

	for {
		select {
		case st, ok := <-updates:
			if !ok {
				return nil
			}
			f.publishAll(ctx, NewStateEvent(controllerID, st))
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (f *Forwarder) publishAll(ctx context.Context, event *StateEvent) {
	var g errgroup.Group

	for _, p := range f.publishers {
		g.Go(func() error {
			pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
			defer cancel()

			if err := p.Publish(pubCtx, event); err != nil {
				metrics.RecordPublish(p.Name(), metrics.OutcomeError)
				f.logger.Warnw("Failed to publish state event", "publisher", p.Name(), "eventID", event.EventID, "status", event.Status, "err", err)
				return err
			}

			metrics.RecordPublish(p.Name(), metrics.OutcomeSuccess)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		f.logger.Warnw("State event not delivered to every publisher", "eventID", event.EventID, "controllerID", event.ControllerID)
	}
}
