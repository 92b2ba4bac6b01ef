// Package netx holds small HTTP client helpers.
package netx

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
)

// IsUnavailable reports whether err means the server could not be reached
// at all, as opposed to answering with an error status.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// JoinURL appends path to base, keeping any path prefix base already has
// ("http://h/api" + "/notes" gives "http://h/api/notes").
func JoinURL(base, path string, query url.Values) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", err
	}
	u.Path = u.Path + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}
