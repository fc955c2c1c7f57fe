package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrectURLScheme(t *testing.T) {
	assert.Equal(t, "https://example.com", CorrectURLScheme("example.com"))
	assert.Equal(t, "http://127.0.0.1:8080", CorrectURLScheme("http://127.0.0.1:8080"))
	assert.Equal(t, "https://android-kotlin-fun-mars-server.appspot.com", CorrectURLScheme(" https://android-kotlin-fun-mars-server.appspot.com "))
}

func TestJoinURLPath(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"https://example.com", "/photos", "https://example.com/photos"},
		{"https://example.com/", "/photos", "https://example.com/photos"},
		{"https://example.com", "photos", "https://example.com/photos"},
		{"https://example.com/api/", "photos", "https://example.com/api/photos"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, JoinURLPath(tt.base, tt.path))
	}
}

func TestIsAbsoluteURL(t *testing.T) {
	assert.True(t, IsAbsoluteURL("https://example.com"))
	assert.False(t, IsAbsoluteURL("/photos"))
	assert.False(t, IsAbsoluteURL("://bad"))
}
