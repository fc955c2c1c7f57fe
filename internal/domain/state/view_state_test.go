package state

import (
	"encoding/json"
	"mars-photos/internal/domain/data"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPhoto(t *testing.T, id, url string) data.PhotoRecord {
	t.Helper()
	p, err := data.NewPhotoRecord(id, url)
	require.NoError(t, err)
	return p
}

func TestViewState_Status(t *testing.T) {
	assert.Equal(t, StatusLoading, Loading{}.Status())
	assert.Equal(t, StatusSuccess, NewSuccess(nil).Status())
	assert.Equal(t, StatusError, Error{}.Status())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(Loading{}))
	assert.True(t, IsTerminal(NewSuccess(nil)))
	assert.True(t, IsTerminal(Error{}))
}

func TestSuccess_PhotosAreCopied(t *testing.T) {
	photos := []data.PhotoRecord{
		mustPhoto(t, "1", "https://example.com/1.jpg"),
		mustPhoto(t, "2", "https://example.com/2.jpg"),
	}

	s := NewSuccess(photos)
	photos[0] = mustPhoto(t, "changed", "https://example.com/x.jpg")

	got := s.Photos()
	assert.Equal(t, "1", got[0].ID())

	got[1] = mustPhoto(t, "changed", "https://example.com/x.jpg")
	assert.Equal(t, "2", s.Photos()[1].ID())
	assert.Equal(t, 2, s.Len())
}

func TestSuccess_EmptyIsNotNil(t *testing.T) {
	s := NewSuccess(nil)
	assert.NotNil(t, s.Photos())
	assert.Empty(t, s.Photos())
}

func TestViewState_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		state ViewState
		want  string
	}{
		{
			name:  "loading",
			state: Loading{},
			want:  `{"status":"loading"}`,
		},
		{
			name:  "error",
			state: Error{},
			want:  `{"status":"error"}`,
		},
		{
			name:  "empty success keeps photos array",
			state: NewSuccess(nil),
			want:  `{"status":"success","photos":[]}`,
		},
		{
			name: "success in order",
			state: NewSuccess([]data.PhotoRecord{
				mustPhoto(t, "2", "https://example.com/2.jpg"),
				mustPhoto(t, "1", "https://example.com/1.jpg"),
			}),
			want: `{"status":"success","photos":[{"id":"2","img_src":"https://example.com/2.jpg"},{"id":"1","img_src":"https://example.com/1.jpg"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.state)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}
