package stack

import (
	"errors"
	"strings"

	"github.com/redis/go-redis-stack/internal/args"
)

var (
	// ErrNotReady is returned when a command result is read before the
	// command was resolved, e.g. before Pipeline.Exec or Cmd.Wait.
	ErrNotReady = errors.New("redis-stack: command is not resolved yet")

	// ErrPipelineFlushed is returned when a pipeline is used after Exec.
	ErrPipelineFlushed = errors.New("redis-stack: pipeline is already flushed")

	// ErrNoRows is returned by GraphResult.Row and GraphResult.Rows when the
	// query returned no row.
	ErrNoRows = errors.New("redis-stack: graph result has no rows")

	// ErrUnexpectedReply is wrapped by every DecodeError.
	ErrUnexpectedReply = errors.New("redis-stack: unexpected reply")

	// ErrInvalidArgument is wrapped by every ArgumentError.
	ErrInvalidArgument = args.ErrInvalid

	// ErrUnsupportedValue is wrapped by ArgumentErrors caused by an enum
	// value without a wire token.
	ErrUnsupportedValue = args.ErrUnsupported
)

// ArgumentError is returned when a command cannot be built from the
// parameters it was given. Nothing is sent to the server in that case.
type ArgumentError = args.Error

// DecodeError is returned when the shape of a reply does not match what the
// command promises.
type DecodeError struct {
	Cmd string
	Err error
}

func (e *DecodeError) Error() string {
	return "redis-stack: cannot decode " + e.Cmd + " reply: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrUnexpectedReply, e.Err}
}

// Error represents an error returned by the server. It is implemented by
// go-redis errors as well.
type Error interface {
	error

	// RedisError is a no-op function but
	// serves to distinguish types that are Redis
	// errors from ones that are not.
	RedisError()
}

// HasErrorPrefix checks if the err is a server error and the message
// contains a prefix.
func HasErrorPrefix(err error, prefix string) bool {
	var rErr Error
	if !errors.As(err, &rErr) {
		return false
	}
	msg := rErr.Error()
	msg = strings.TrimPrefix(msg, "ERR ")
	return strings.HasPrefix(msg, prefix)
}

func isRedisError(err error) bool {
	var rErr Error
	return errors.As(err, &rErr)
}
