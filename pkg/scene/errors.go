package scene

import "errors"

// ErrCapacityExceeded is returned when adding a shape or light to a full World
var ErrCapacityExceeded = errors.New("scene: capacity exceeded")
