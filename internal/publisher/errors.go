package publisher

import "errors"

var ErrNilEvent = errors.New("nil state event")
