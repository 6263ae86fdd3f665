package sendgrid

import "errors"

// ErrMissingAPIKey indicates the adapter was constructed without an API key.
// This is fatal to the adapter's usability and is never raised per-send.
var ErrMissingAPIKey = errors.New("sendgrid: api key is required")
