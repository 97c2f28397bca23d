package source

import (
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"

	"github.com/cockroachdb/errors"
)

// ErrType represents the kind of failure met while opening a label source
type ErrType string

const (
	Nil ErrType = "Nil"

	// open <path>: no such file or directory
	NotExist ErrType = "No such file"

	// no such host
	NoSuchHost ErrType = "No such host"

	// Remote server answered with non-success status
	BadStatus ErrType = "Bad status"

	// No connection could be made because the target machine actively refused it
	Refused ErrType = "Connection refused"

	// context deadline exceeded (Client.timeout exceeded while awaiting headers)
	Timeout ErrType = "Timeout"

	Unknown ErrType = "Unknown"
)

// StatusError is returned when remote source responds with non-success <Code>
type StatusError struct {
	URL  string
	Code int
}

// Error is used to satisfy golang error interface
func (e StatusError) Error() string {
	return "Unexpected status " + http.StatusText(e.Code) + " fetching " + e.URL
}

// GetErrType returns error type of <err> returned by Open.
func GetErrType(err error) ErrType {
	if err == nil {
		return Nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return NotExist
	}
	if errors.HasType(err, StatusError{}) {
		return BadStatus
	}
	for err != nil {
		if err, ok := err.(*net.DNSError); ok && err.IsNotFound {
			return NoSuchHost
		}
		if err, ok := err.(syscall.Errno); ok {
			if err == 10061 || err == syscall.ECONNREFUSED {
				return Refused
			}
		}
		if err, ok := err.(*url.Error); ok && err.Timeout() {
			return Timeout
		}
		if err, ok := err.(net.Error); ok && err.Timeout() {
			return Timeout
		}
		err = errors.UnwrapOnce(err)
	}
	return Unknown
}
