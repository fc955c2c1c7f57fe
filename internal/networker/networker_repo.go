package networker

import (
	"context"
	"errors"
	"io"
	"mars-photos/internal/domain/data"
	"mars-photos/internal/metrics"
	"mars-photos/internal/utils"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	maxErrorBodyBytes = 4 << 10
	maxBodyBytes      = 8 << 20
)

type NetworkWorker struct {
	Logger *zap.SugaredLogger
	Client *http.Client

	photosURL    string
	maxBodyBytes int64
}

func NewNetworker(logger *zap.SugaredLogger, baseURL string, timeout time.Duration) *NetworkWorker {
	return NewNetworkerWithClient(logger, baseURL, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

func NewNetworkerWithClient(logger *zap.SugaredLogger, baseURL string, client *http.Client) *NetworkWorker {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &NetworkWorker{
		Logger:       logger,
		Client:       client,
		photosURL:    utils.JoinURLPath(utils.CorrectURLScheme(baseURL), PhotosPath),
		maxBodyBytes: maxBodyBytes,
	}
}

func (repo *NetworkWorker) FetchPhotos(ctx context.Context) ([]data.PhotoRecord, error) {
	start := time.Now()

	photos, err := repo.fetchPhotos(ctx)
	metrics.RecordFetch(fetchOutcome(err), time.Since(start), len(photos))

	return photos, err
}

func (repo *NetworkWorker) fetchPhotos(ctx context.Context) ([]data.PhotoRecord, error) {
	body, err := repo.fetch(ctx)
	if err != nil {
		return nil, err
	}

	photos, err := decodePhotos(body)
	if err != nil {
		repo.Logger.Warnw("Failed to decode photos payload", "url", repo.photosURL, "bytes", len(body), "err", err)
		return nil, err
	}

	repo.Logger.Infow("Fetched photos", "url", repo.photosURL, "count", len(photos))
	return photos, nil
}

func (repo *NetworkWorker) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, repo.photosURL, nil)
	if err != nil {
		return nil, &TransportError{URL: repo.photosURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	repo.Logger.Infow("fetch url", "url", repo.photosURL)

	resp, err := repo.Client.Do(req)
	if err != nil {
		repo.Logger.Warnw("fetch url error", "url", repo.photosURL, "err", err)
		return nil, &TransportError{URL: repo.photosURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		repo.Logger.Warnw("bad status", "url", repo.photosURL, "status", resp.StatusCode, "body", string(snippet))
		return nil, &TransportError{URL: repo.photosURL, StatusCode: resp.StatusCode, Err: ErrBadStatus}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, repo.maxBodyBytes+1))
	if err != nil {
		repo.Logger.Warnw("read body error", "url", repo.photosURL, "err", err)
		return nil, &TransportError{URL: repo.photosURL, StatusCode: resp.StatusCode, Err: err}
	}

	if int64(len(body)) > repo.maxBodyBytes {
		repo.Logger.Warnw("body too large", "url", repo.photosURL, "limit", repo.maxBodyBytes)
		return nil, &DecodeError{Index: payloadLevel, Err: ErrBodyTooLarge}
	}

	return body, nil
}

func fetchOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrTransport):
		return metrics.OutcomeTransportError
	case errors.Is(err, ErrDecode):
		return metrics.OutcomeDecodeError
	default:
		return metrics.OutcomeError
	}
}
