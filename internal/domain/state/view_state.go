// Package state holds the tri-state model the presentation layer renders from.
package state

import (
	"encoding/json"
	"mars-photos/internal/domain/data"
)

type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ViewState is closed: only Loading, Success and Error implement it.
type ViewState interface {
	Status() Status
	isViewState()
}

type Loading struct{}

func (Loading) Status() Status { return StatusLoading }
func (Loading) isViewState()   {}

func (Loading) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireState{Status: StatusLoading})
}

// Success carries the decoded photos in server order. The slice is copied in and out.
type Success struct {
	photos []data.PhotoRecord
}

func NewSuccess(photos []data.PhotoRecord) Success {
	return Success{photos: clonePhotos(photos)}
}

func (Success) Status() Status { return StatusSuccess }
func (Success) isViewState()   {}

func (s Success) Photos() []data.PhotoRecord {
	return clonePhotos(s.photos)
}

func (s Success) Len() int {
	return len(s.photos)
}

func (s Success) MarshalJSON() ([]byte, error) {
	return json.Marshal(successWireState{
		Status: StatusSuccess,
		Photos: clonePhotos(s.photos),
	})
}

// Error deliberately carries no detail about the failure.
type Error struct{}

func (Error) Status() Status { return StatusError }
func (Error) isViewState()   {}

func (Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireState{Status: StatusError})
}

func IsTerminal(v ViewState) bool {
	switch v.(type) {
	case Success, Error:
		return true
	default:
		return false
	}
}

type wireState struct {
	Status Status `json:"status"`
}

type successWireState struct {
	Status Status             `json:"status"`
	Photos []data.PhotoRecord `json:"photos"`
}

func clonePhotos(photos []data.PhotoRecord) []data.PhotoRecord {
	out := make([]data.PhotoRecord, len(photos))
	copy(out, photos)
	return out
}
