package app

import (
	"context"
	"errors"
	"mars-photos/internal/controller"
	"mars-photos/internal/networker"
	"mars-photos/internal/presentation"
	"mars-photos/internal/publisher"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type PhotosApp struct {
	logger         *zap.SugaredLogger
	client         networker.NetworkClient
	policy         controller.DecodeErrorPolicy
	httpAddr       string
	hub            *presentation.Hub
	forwarder      *publisher.Forwarder
	tracerProvider *sdktrace.TracerProvider

	controller  *controller.FetchController
	server      *presentation.Server
	forwardDone chan struct{}
}

// NewPhotosApp expects hub to be among publishers when WebSocket viewers should get updates.
// tracerProvider may be nil.
func NewPhotosApp(logger *zap.SugaredLogger, client networker.NetworkClient, policy controller.DecodeErrorPolicy, httpAddr string, hub *presentation.Hub, publishers []publisher.StatePublisher, tracerProvider *sdktrace.TracerProvider) *PhotosApp {
	return &PhotosApp{
		logger:         logger,
		client:         client,
		policy:         policy,
		httpAddr:       httpAddr,
		hub:            hub,
		forwarder:      publisher.NewForwarder(logger, publishers...),
		tracerProvider: tracerProvider,
		forwardDone:    make(chan struct{}),
	}
}

// StartApp builds the one controller of this process, which schedules the fetch right away.
// Cancelling ctx tears the controller down.
func (app *PhotosApp) StartApp(ctx context.Context) error {
	for _, p := range app.forwarder.Publishers() {
		if runner, ok := p.(publisher.Runner); ok {
			go runner.Run()
		}
	}

	var sub *controller.Subscription
	app.controller = controller.New(ctx, app.logger, app.client,
		controller.WithDecodeErrorPolicy(app.policy),
		controller.WithSubscriber(func(s *controller.Subscription) { sub = s }),
	)

	go func() {
		defer close(app.forwardDone)

		if err := app.forwarder.Forward(context.Background(), app.controller.ID(), sub.Updates()); err != nil {
			app.logger.Warnw("State forwarding stopped", "err", err)
		}
	}()

	app.server = presentation.NewServer(app.logger, app.httpAddr, app.controller, app.hub)
	go func() {
		if err := app.server.Start(); err != nil {
			app.logger.Errorw("HTTP server stopped", "err", err)
		}
	}()

	go app.logOutcome()

	return nil
}

func (app *PhotosApp) logOutcome() {
	<-app.controller.Done()

	if err := app.controller.Err(); err != nil && !errors.Is(err, controller.ErrClosed) {
		app.logger.Errorw("Photos fetch task failed", "controllerID", app.controller.ID(), "err", err)
		return
	}

	app.logger.Infow("Photos fetch task finished", "controllerID", app.controller.ID(), "status", app.controller.State().Status())
}

func (app *PhotosApp) Controller() *controller.FetchController {
	return app.controller
}

func (app *PhotosApp) StopApp(ctx context.Context) error {
	if app.controller == nil {
		return nil
	}

	app.controller.Close()

	select {
	case <-app.forwardDone:
	case <-ctx.Done():
		app.logger.Warnw("Timed out waiting for state forwarding to finish")
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	collect := func(name string, err error) {
		if err == nil {
			return
		}
		app.logger.Errorw("Failed to stop component", "component", name, "err", err)

		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	var g errgroup.Group

	g.Go(func() error {
		collect("http", app.server.Shutdown(ctx))
		return nil
	})

	for _, p := range app.forwarder.Publishers() {
		g.Go(func() error {
			collect(p.Name(), p.Close(ctx))
			return nil
		})
	}

	if app.tracerProvider != nil {
		g.Go(func() error {
			collect("tracing", app.tracerProvider.Shutdown(ctx))
			return nil
		})
	}

	_ = g.Wait()

	return errors.Join(errs...)
}
