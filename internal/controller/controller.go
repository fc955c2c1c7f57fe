// Package controller owns the single asynchronous photo fetch and the ViewState derived from it.
package controller

import (
	"context"
	"errors"
	"fmt"
	"mars-photos/internal/domain/data"
	"mars-photos/internal/domain/state"
	"mars-photos/internal/metrics"
	"mars-photos/internal/networker"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "mars-photos/controller"

type Option func(*FetchController)

// WithSubscriber hands fn a subscription taken before the fetch is scheduled, so it always
// observes Loading.
func WithSubscriber(fn func(*Subscription)) Option {
	return func(c *FetchController) {
		c.onStart = append(c.onStart, fn)
	}
}

func WithDecodeErrorPolicy(policy DecodeErrorPolicy) Option {
	return func(c *FetchController) {
		c.policy = policy
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *FetchController) {
		c.tracer = tracer
	}
}

// FetchController starts exactly one fetch when it is constructed. The state moves from Loading
// to Success or Error once and never goes back; build a new controller to fetch again.
type FetchController struct {
	id     string
	logger *zap.SugaredLogger
	client networker.NetworkClient
	policy DecodeErrorPolicy
	tracer trace.Tracer

	onStart []func(*Subscription)

	mu          sync.RWMutex
	state       state.ViewState
	subscribers map[*Subscription]struct{}
	settled     bool
	closed      bool
	err         error

	cancel context.CancelFunc
	done   chan struct{}
}

// New schedules the fetch and returns immediately with the state at Loading. Cancelling ctx
// tears the controller down the same way Close does.
func New(ctx context.Context, logger *zap.SugaredLogger, client networker.NetworkClient, opts ...Option) *FetchController {
	c := &FetchController{
		id:          uuid.NewString(),
		logger:      logger,
		client:      client,
		policy:      FoldIntoError,
		tracer:      otel.Tracer(tracerName),
		state:       state.Loading{},
		subscribers: make(map[*Subscription]struct{}),
		done:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	for _, fn := range c.onStart {
		fn(c.Subscribe())
	}

	taskCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	metrics.RecordStateTransition(string(state.StatusLoading))
	c.logger.Infow("Scheduling photos fetch", "controllerID", c.id, "decodeErrorPolicy", c.policy.String())

	go c.run(taskCtx)

	return c
}

func (c *FetchController) ID() string {
	return c.id
}

func (c *FetchController) State() state.ViewState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state
}

// Err is nil unless the task failed without settling into a terminal state: a propagated
// failure under the Propagate policy, or ErrClosed after an early teardown.
// It is final once Done is closed.
func (c *FetchController) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.err
}

// Done is closed when the fetch task has returned.
func (c *FetchController) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the task has returned or ctx is done.
func (c *FetchController) Wait(ctx context.Context) (state.ViewState, error) {
	select {
	case <-c.done:
		return c.State(), c.Err()
	case <-ctx.Done():
		return c.State(), ctx.Err()
	}
}

func (c *FetchController) Subscribe() *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	sub := newSubscription(c)
	sub.deliver(c.state)

	if c.settled || c.closed {
		sub.close()
		return sub
	}

	c.subscribers[sub] = struct{}{}
	return sub
}

func (c *FetchController) unsubscribe(sub *Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.subscribers[sub]; ok {
		delete(c.subscribers, sub)
		sub.close()
	}
}

// Close cancels a fetch still in flight and waits for the task to return. No state change happens
// after Close. Calling it more than once is safe.
func (c *FetchController) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		if !c.settled && c.err == nil {
			c.err = ErrClosed
		}
		c.closeSubscribersLocked()
	}
	c.mu.Unlock()

	c.cancel()
	<-c.done
}

func (c *FetchController) run(ctx context.Context) {
	defer close(c.done)

	ctx, span := c.tracer.Start(ctx, "FetchController.fetchPhotos",
		trace.WithAttributes(attribute.String("controller.id", c.id)))
	defer span.End()

	photos, err := c.fetch(ctx)

	next, taskErr := c.resolve(photos, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	c.settle(ctx, next, taskErr)
}

// fetch turns a panic inside the client into an ordinary failure so the policy decides its fate
// instead of the process dying.
func (c *FetchController) fetch(ctx context.Context) (photos []data.PhotoRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch task panicked: %v", r)
		}
	}()

	return c.client.FetchPhotos(ctx)
}

// resolve maps the fetch outcome to the next state. A nil state means the failure propagates.
func (c *FetchController) resolve(photos []data.PhotoRecord, err error) (state.ViewState, error) {
	switch {
	case err == nil:
		return state.NewSuccess(photos), nil
	case errors.Is(err, networker.ErrTransport):
		c.logger.Warnw("Photos fetch failed", "controllerID", c.id, "err", err)
		return state.Error{}, nil
	case c.policy == FoldIntoError:
		c.logger.Warnw("Photos fetch failed, folding into error state", "controllerID", c.id, "err", err)
		return state.Error{}, nil
	default:
		c.logger.Errorw("Photos fetch task failed", "controllerID", c.id, "err", err)
		return nil, err
	}
}

func (c *FetchController) settle(ctx context.Context, next state.ViewState, taskErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || ctx.Err() != nil {
		if c.err == nil {
			c.err = ErrClosed
		}
		c.closed = true
		c.closeSubscribersLocked()
		c.logger.Infow("Dropping fetch outcome after teardown", "controllerID", c.id)
		return
	}

	c.settled = true
	c.err = taskErr

	if next != nil {
		c.state = next
		metrics.RecordStateTransition(string(next.Status()))
		c.logger.Infow("Photos state changed", "controllerID", c.id, "status", next.Status())

		for sub := range c.subscribers {
			sub.deliver(next)
		}
	}

	c.closeSubscribersLocked()
}

func (c *FetchController) closeSubscribersLocked() {
	for sub := range c.subscribers {
		sub.close()
	}
	c.subscribers = make(map[*Subscription]struct{})
}
