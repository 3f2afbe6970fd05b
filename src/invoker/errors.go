package invoker

import (
	"fmt"
	"strings"
)

// MissingParameterError reports required parameters absent from a call. It is
// raised locally, before any network I/O.
type MissingParameterError struct {
	Endpoint string
	Missing  []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter(s) for %s: %s",
		e.Endpoint, strings.Join(e.Missing, ", "))
}

// RemoteError reports a failed remote call. Status 0 means the request never
// produced an HTTP response (transport failure, timeout); otherwise Status is
// the remote HTTP status and Body the raw remote error payload.
type RemoteError struct {
	Endpoint string
	Status   int
	Body     string
	Err      error
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("remote call to %s failed: %v", e.Endpoint, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("remote call to %s returned status %d: %s", e.Endpoint, e.Status, e.Body)
	}
	return fmt.Sprintf("remote call to %s returned status %d", e.Endpoint, e.Status)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// DecodeError reports a response body the adapter could not parse. It is
// distinct from RemoteError so callers can tell "the remote complained" apart
// from "the remote returned something unreadable".
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
