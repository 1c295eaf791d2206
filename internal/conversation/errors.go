package conversation

import "errors"

var ErrInvalidMessage = errors.New("message role is required")
