package chat

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuestion  = errors.New("question is empty")
	ErrMissingSession = errors.New("session id is empty")
)

// Kind classifies a flow failure.
type Kind string

const (
	KindExtraction  Kind = "extraction"
	KindGateway     Kind = "gateway"
	KindComputation Kind = "computation"
	KindInternal    Kind = "internal"
)

// FlowError tags a failure inside a chat flow with its kind.
type FlowError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first FlowError in err's chain, or an empty Kind.
func KindOf(err error) Kind {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
