package eventstore

import (
	"errors"
)

// ErrConcurrencyConflict is returned by Append when events matching the filter were appended
// after the caller queried them.
var ErrConcurrencyConflict = errors.New("concurrency error, events matching the filter changed")

// MaxSequenceNumberUint is a type alias for uint, representing the maximum sequence number for a "dynamic event stream".
type MaxSequenceNumberUint = uint
