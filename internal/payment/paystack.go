// Package payment talks to the Paystack transaction API.  The client is
// constructed once at startup and injected wherever verification is
// needed, so tests can point it at a fake gateway.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrEmptyReference is returned before any network call when the caller
// passes a blank transaction reference.
var ErrEmptyReference = errors.New("empty payment reference")

// ErrGatewayUnreachable wraps transport-level failures (DNS, timeout,
// connection refused).  Callers treat it the same as a failed
// verification but log it separately from a gateway "failed" status.
var ErrGatewayUnreachable = errors.New("payment gateway unreachable")

// VerifyResult is the outcome of a transaction lookup.  Verified is true
// only when the gateway answered with HTTP success, a true top-level
// status flag, and an internal transaction status of "success".  Every
// other combination (transport error, non-2xx, malformed body, any other
// status string) yields Verified=false.
type VerifyResult struct {
	Verified  bool
	Amount    int64  // transaction amount as reported by the gateway (minor units)
	RawStatus string // gateway's internal transaction status, for logging
}

// Client performs server-to-server transaction lookups.  The secret is the
// server-side API credential; it is sent as a bearer token and must never
// reach a browser.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

// NewClient builds a Paystack client.  A nil httpClient gets a default
// with the supplied timeout; a zero timeout falls back to 10 seconds so a
// hung gateway cannot pin a reconciliation request forever.
func NewClient(baseURL, secret string, timeout time.Duration, httpClient *http.Client) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		http:    httpClient,
	}
}

// verifyResponse mirrors the gateway's transaction-verify payload:
// {"status": bool, "data": {"status": "success", "amount": 150000, ...}}.
type verifyResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Status string `json:"status"`
		Amount int64  `json:"amount"`
	} `json:"data"`
}

// Verify looks up a transaction reference.  The returned error is non-nil
// only for gateway-side problems (unreachable, bad response shape); a
// cleanly reported non-success status is not an error, just
// Verified=false with the raw status filled in.
func (c *Client) Verify(ctx context.Context, reference string) (VerifyResult, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return VerifyResult{}, ErrEmptyReference
	}

	endpoint := fmt.Sprintf("%s/transaction/verify/%s", c.baseURL, url.PathEscape(reference))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return VerifyResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
	}
	defer resp.Body.Close()

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return VerifyResult{}, fmt.Errorf("%w: decode response: %v", ErrGatewayUnreachable, err)
	}

	result := VerifyResult{
		Amount:    body.Data.Amount,
		RawStatus: body.Data.Status,
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, nil
	}
	if !body.Status || body.Data.Status != "success" {
		return result, nil
	}
	result.Verified = true
	return result, nil
}
