// Package transport provides the minimal capability boundary between the
// call engine and the network: one blocking HTTP POST with a per-attempt
// wall-clock budget, returning the status code and response body or a
// classified transport failure.
//
// The engine depends only on the [Doer] interface so tests can script
// outcomes without opening sockets.
package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/retroharness/vicegrip/pkg/types"
)

// Doer performs one blocking send and returns the HTTP status code and
// response body. Any failure below the JSON-RPC layer — connection refused,
// DNS failure, timeout — is returned as a [*types.TransportError].
type Doer interface {
	Post(ctx context.Context, url string, body []byte, timeout time.Duration) (status int, respBody []byte, err error)
}

// HTTPDoer is the production [Doer] backed by net/http. Each call is a
// stateless request: no connection pooling guarantees are assumed and the
// per-attempt timeout is enforced via context deadline.
type HTTPDoer struct {
	client *http.Client
}

// NewHTTPDoer returns a ready-to-use HTTPDoer. The underlying client has no
// global timeout; budgets are supplied per attempt through [HTTPDoer.Post].
func NewHTTPDoer() *HTTPDoer {
	return &HTTPDoer{client: &http.Client{}}
}

// Post sends body to url and reads the full response within timeout.
func (d *HTTPDoer) Post(ctx context.Context, url string, body []byte, timeout time.Duration) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, &types.TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, nil, &types.TransportError{Timeout: isTimeout(err), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &types.TransportError{Timeout: isTimeout(err), Err: err}
	}
	return resp.StatusCode, respBody, nil
}

// isTimeout reports whether err was caused by the attempt's deadline rather
// than a connection-level failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
