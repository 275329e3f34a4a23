package booking

import "errors"

// ErrRequestFailed is returned for any non-2xx response.
// The message is fixed; the response body is never inspected.
var ErrRequestFailed = errors.New("availability request failed")
