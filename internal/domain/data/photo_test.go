package data

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhotoRecord(t *testing.T) {
	p, err := NewPhotoRecord("424905", "https://mars.jpl.nasa.gov/msl-raw-images/fcam/FLB_486265257.JPG")
	require.NoError(t, err)

	assert.Equal(t, "424905", p.ID())
	assert.Equal(t, "https://mars.jpl.nasa.gov/msl-raw-images/fcam/FLB_486265257.JPG", p.ImageURL())
}

func TestNewPhotoRecord_EmptyID(t *testing.T) {
	_, err := NewPhotoRecord("", "https://example.com/1.jpg")
	assert.ErrorIs(t, err, ErrEmptyPhotoID)
}

func TestPhotoRecord_ImageURLNotValidated(t *testing.T) {
	p, err := NewPhotoRecord("1", "not a url at all")
	require.NoError(t, err)
	assert.Equal(t, "not a url at all", p.ImageURL())
}

func TestPhotoRecord_FieldEquality(t *testing.T) {
	a, _ := NewPhotoRecord("1", "https://example.com/1.jpg")
	b, _ := NewPhotoRecord("1", "https://example.com/1.jpg")
	c, _ := NewPhotoRecord("1", "https://example.com/2.jpg")

	assert.True(t, a == b)
	assert.False(t, a == c)
}

func TestPhotoRecord_MarshalJSON(t *testing.T) {
	p, _ := NewPhotoRecord("1", "https://example.com/1.jpg")

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","img_src":"https://example.com/1.jpg"}`, string(b))
}
