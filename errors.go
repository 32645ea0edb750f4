package kvs

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrEmptyKey   = errors.New("kvs: key is required")
	ErrInvalidTTL = errors.New("kvs: ttl must not be negative")

	errNullDict = errors.New("decode dict: value is null")
)

// ConfigurationError reports a connection configuration that cannot be used,
// either because required parameters were not supplied or because a supplied
// value is out of range.
type ConfigurationError struct {
	Missing []string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) > 0 {
		return "kvs: missing required parameter: " + strings.Join(e.Missing, ", ")
	}
	return "kvs: invalid configuration: " + e.Reason
}

// SerializationError is returned by SetDict when the value cannot be encoded
// as JSON. Nothing is written to the store in that case.
type SerializationError struct {
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	return "kvs: serialize " + e.Key + ": " + e.Err.Error()
}

func (e *SerializationError) Unwrap() error { return e.Err }

// DeserializationError is returned by GetAsDict when the stored value is not a
// JSON object.
type DeserializationError struct {
	Key string
	Err error
}

func (e *DeserializationError) Error() string {
	return "kvs: deserialize " + e.Key + ": " + e.Err.Error()
}

func (e *DeserializationError) Unwrap() error { return e.Err }
