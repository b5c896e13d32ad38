package types

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrRecordClosed   = errors.New("record is already closed")
	ErrRecordExists   = errors.New("record already exists")
	ErrEmptyRecordID  = errors.New("empty record id provided")
	ErrEmptySubject   = errors.New("record subject must not be empty")
)

// RemoteError is a failure reported by the record service itself,
// as opposed to a transport failure on the way to it.
type RemoteError struct {
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("rpc error: code=%d message='%s'", e.Code, e.Message)
}

// ErrorMessage returns the text to show to a user for err: the server
// message for remote failures, the error text otherwise.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Message
	}
	return err.Error()
}
