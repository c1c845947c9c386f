// Package broker exchanges external sign-in session IDs for verified
// identities at the identity broker.
package broker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Identity is the verified profile the broker returns for a session ID.
type Identity struct {
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Picture *string `json:"picture"`
}

var (
	// ErrRejected means the broker did not recognize the session ID.
	ErrRejected = errors.New("broker: session id rejected")
	// ErrTimeout means the broker did not answer within the deadline.
	ErrTimeout = errors.New("broker: exchange timed out")
)

// Client calls the identity broker over HTTPS.
type Client struct {
	http *resty.Client
	url  string
}

// NewClient builds a broker client for the given endpoint URL with a
// bounded per-exchange timeout.
func NewClient(url string, timeout time.Duration) *Client {
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: rc, url: url}
}

// Exchange resolves a session ID to an Identity. The ID travels in the
// X-Session-ID header, never in the URL.
func (c *Client) Exchange(ctx context.Context, sessionID string) (Identity, error) {
	var ident Identity
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Session-ID", sessionID).
		SetResult(&ident).
		Get(c.url)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return Identity{}, ErrTimeout
		}
		return Identity{}, fmt.Errorf("broker exchange: %w", err)
	}
	// Only a success status vouches for the ID. Any other answer,
	// including a broker-side error, rejects it.
	if !resp.IsSuccess() {
		return Identity{}, ErrRejected
	}
	if ident.Email == "" {
		return Identity{}, fmt.Errorf("broker exchange: empty identity")
	}
	return ident, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
