package telegram

import "errors"

var errInvalidSecret = errors.New("invalid telegram secret token")
