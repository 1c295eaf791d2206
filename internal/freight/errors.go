package freight

import "errors"

var (
	ErrInvalidRegion   = errors.New("invalid region code")
	ErrInvalidQuantity = errors.New("invalid product quantity")
)
