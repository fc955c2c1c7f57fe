package presentation

import "errors"

var ErrHubClosed = errors.New("websocket hub is closed")
