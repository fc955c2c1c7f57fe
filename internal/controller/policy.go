package controller

import (
	"fmt"
	"strings"
)

// DecodeErrorPolicy decides what happens when the fetch fails with anything other than a
// transport error. Transport errors always become state.Error.
type DecodeErrorPolicy int

const (
	// FoldIntoError turns every failure into state.Error.
	FoldIntoError DecodeErrorPolicy = iota
	// Propagate leaves the state at Loading and reports the failure through Err.
	Propagate
)

func (p DecodeErrorPolicy) String() string {
	switch p {
	case FoldIntoError:
		return "fold"
	case Propagate:
		return "propagate"
	default:
		return fmt.Sprintf("DecodeErrorPolicy(%d)", int(p))
	}
}

func ParseDecodeErrorPolicy(s string) (DecodeErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fold":
		return FoldIntoError, nil
	case "propagate":
		return Propagate, nil
	default:
		return FoldIntoError, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}
