package networker

import (
	"encoding/json"
	"errors"
	"mars-photos/internal/domain/data"
)

// photoPayload uses pointers so a missing or null field can be told apart from an empty string.
type photoPayload struct {
	ID     *string `json:"id"`
	ImgSrc *string `json:"img_src"`
}

func decodePhotos(body []byte) ([]data.PhotoRecord, error) {
	var payload []*photoPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &DecodeError{Index: payloadLevel, Err: err}
	}

	// json.Unmarshal accepts a bare null for a slice.
	if payload == nil {
		return nil, &DecodeError{Index: payloadLevel, Err: ErrNotArray}
	}

	photos := make([]data.PhotoRecord, 0, len(payload))
	for i, item := range payload {
		if item == nil {
			return nil, &DecodeError{Index: i, Err: errors.New("element is null")}
		}
		if item.ID == nil {
			return nil, &DecodeError{Index: i, Field: "id", Err: ErrMissingField}
		}
		if item.ImgSrc == nil {
			return nil, &DecodeError{Index: i, Field: "img_src", Err: ErrMissingField}
		}

		photo, err := data.NewPhotoRecord(*item.ID, *item.ImgSrc)
		if err != nil {
			return nil, &DecodeError{Index: i, Field: "id", Err: err}
		}

		photos = append(photos, photo)
	}

	return photos, nil
}
