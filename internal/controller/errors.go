package controller

import "errors"

var (
	ErrClosed        = errors.New("fetch controller closed before the fetch settled")
	ErrUnknownPolicy = errors.New("unknown decode error policy")
)
