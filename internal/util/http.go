package util

import (
	"net/http"
	"time"
)

// NewHTTPClient returns a client with the given overall timeout.
// A zero timeout means no timeout, which is the net/http default.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
