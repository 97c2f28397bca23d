package source

import (
	"crypto/tls"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/utahta/go-openuri"
)

// Stdio is a source path which reads standard input
const Stdio = "stdio"

// NewHttpClient returns new HTTP client.
//
// <timeout> is a time limit for requests made by returned client.
func NewHttpClient(timeout time.Duration) *http.Client {
	tlsCfg := &tls.Config{
		InsecureSkipVerify: true,
	}
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: tlsCfg,
		},
	}
	return client
}

// IsRemote returns true if <path> is an URL fetched over HTTP
func IsRemote(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Open returns reader for <path> which can be a local file, an URL or Stdio.
//
// Remote sources are requested with HTTP client limited by <timeout>.
func Open(path string, timeout time.Duration) (io.ReadCloser, error) {
	if path == Stdio {
		return io.NopCloser(os.Stdin), nil
	}
	if IsRemote(path) {
		resp, err := NewHttpClient(timeout).Get(path)
		if err != nil {
			return nil, errors.Wrap(err, "Request remote source")
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, StatusError{URL: path, Code: resp.StatusCode}
		}
		return resp.Body, nil
	}
	rc, err := openuri.Open(path)
	return rc, errors.Wrap(err, "Open source")
}

// ReadAll returns full content of <path>, see Open.
func ReadAll(path string, timeout time.Duration) ([]byte, error) {
	rc, err := Open(path, timeout)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	return data, errors.Wrap(err, "Read source")
}
