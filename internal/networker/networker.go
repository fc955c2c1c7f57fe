package networker

import (
	"context"
	"mars-photos/internal/domain/data"
)

//go:generate mockgen -source=networker.go -destination=mocks/mock_networker.go -package=mocks

const (
	DefaultBaseURL = "https://android-kotlin-fun-mars-server.appspot.com"
	PhotosPath     = "/photos"
)

// NetworkClient retrieves the remote photo list. Every call performs exactly one request and
// returns the records in server order. Failures are *TransportError or *DecodeError.
type NetworkClient interface {
	FetchPhotos(ctx context.Context) ([]data.PhotoRecord, error)
}
