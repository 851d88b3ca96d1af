package mqtt

import "errors"

// ErrNotConnected is returned when publishing without an open broker connection.
var ErrNotConnected = errors.New("mqtt client not connected")
