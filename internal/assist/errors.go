package assist

import "errors"

// ErrInvalidInput marks requests the service refuses to send to the model.
var ErrInvalidInput = errors.New("invalid input")
