package service

import (
	"errors"
	"fmt"
)

// ErrOperatorNotFound rejects a record whose operator_id does not reference
// an existing user.
var ErrOperatorNotFound = errors.New("operator does not exist")

// PayloadError marks an upload that failed size or format validation.
type PayloadError struct {
	Msg string
}

func (e *PayloadError) Error() string {
	return e.Msg
}

func payloadErrorf(format string, args ...interface{}) *PayloadError {
	return &PayloadError{Msg: fmt.Sprintf(format, args...)}
}
