package data

import (
	"encoding/json"
	"errors"
)

var (
	ErrEmptyPhotoID = errors.New("photo id is empty")
)

// PhotoRecord is one remote photo. Fields are unexported so a record can't change after decoding;
// two records are equal when both fields are equal.
type PhotoRecord struct {
	id       string
	imageURL string
}

func NewPhotoRecord(id, imageURL string) (PhotoRecord, error) {
	if id == "" {
		return PhotoRecord{}, ErrEmptyPhotoID
	}

	return PhotoRecord{
		id:       id,
		imageURL: imageURL,
	}, nil
}

func (p PhotoRecord) ID() string {
	return p.id
}

// ImageURL is opaque: it is never validated or dereferenced here.
func (p PhotoRecord) ImageURL() string {
	return p.imageURL
}

type photoJSON struct {
	ID     string `json:"id"`
	ImgSrc string `json:"img_src"`
}

// MarshalJSON writes the record in the same shape the photos endpoint serves it.
func (p PhotoRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(photoJSON{
		ID:     p.id,
		ImgSrc: p.imageURL,
	})
}
