package delivery

import "errors"

var (
	// ErrItemNotFound indicates the queue holds no item with the given id.
	ErrItemNotFound = errors.New("queue item not found")

	// ErrInFlight indicates the item has a delivery attempt in progress and
	// cannot be retried until the attempt's outcome is recorded.
	ErrInFlight = errors.New("queue item has a delivery attempt in flight")

	// ErrStoreFailed indicates the queue store could not be read or written.
	ErrStoreFailed = errors.New("queue store operation failed")
)
