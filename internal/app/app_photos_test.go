package app

import (
	"context"
	"mars-photos/internal/controller"
	"mars-photos/internal/domain/data"
	"mars-photos/internal/domain/state"
	"mars-photos/internal/networker"
	"mars-photos/internal/networker/mocks"
	"mars-photos/internal/presentation"
	"mars-photos/internal/publisher"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*publisher.StateEvent
	closed bool
}

func (p *recordingPublisher) Name() string { return "recording" }

func (p *recordingPublisher) Publish(_ context.Context, event *publisher.StateEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *recordingPublisher) statuses() []state.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]state.Status, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Status)
	}
	return out
}

func newTestApp(t *testing.T, client networker.NetworkClient, policy controller.DecodeErrorPolicy) (*PhotosApp, *recordingPublisher) {
	t.Helper()

	logger := zap.NewNop().Sugar()
	hub := presentation.NewHub(logger)
	rec := &recordingPublisher{}

	return NewPhotosApp(logger, client, policy, "127.0.0.1:0", hub, []publisher.StatePublisher{hub, rec}, nil), rec
}

func TestPhotosApp_ForwardsStatesAndStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockNetworkClient(ctrl)

	release := make(chan struct{})
	photo, err := data.NewPhotoRecord("1", "https://example.com/1.jpg")
	require.NoError(t, err)

	client.EXPECT().FetchPhotos(gomock.Any()).DoAndReturn(func(context.Context) ([]data.PhotoRecord, error) {
		<-release
		return []data.PhotoRecord{photo}, nil
	})

	app, rec := newTestApp(t, client, controller.FoldIntoError)
	require.NoError(t, app.StartApp(context.Background()))

	close(release)

	assert.Eventually(t, func() bool {
		return len(rec.statuses()) == 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []state.Status{state.StatusLoading, state.StatusSuccess}, rec.statuses())

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, app.StopApp(stopCtx))

	assert.True(t, rec.closed)
	assert.Equal(t, state.StatusSuccess, app.Controller().State().Status())
}

func TestPhotosApp_StopBeforeSettle(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockNetworkClient(ctrl)
	client.EXPECT().FetchPhotos(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]data.PhotoRecord, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	app, rec := newTestApp(t, client, controller.FoldIntoError)
	require.NoError(t, app.StartApp(context.Background()))

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, app.StopApp(stopCtx))

	assert.Equal(t, state.Loading{}, app.Controller().State())
	assert.ErrorIs(t, app.Controller().Err(), controller.ErrClosed)
	assert.Equal(t, []state.Status{state.StatusLoading}, rec.statuses())
}

func TestPhotosApp_StopWithoutStart(t *testing.T) {
	app, _ := newTestApp(t, mocks.NewMockNetworkClient(gomock.NewController(t)), controller.FoldIntoError)
	assert.NoError(t, app.StopApp(context.Background()))
}
