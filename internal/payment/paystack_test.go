package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "sk_test_secret", 2*time.Second, srv.Client())
}

func TestVerifySuccess(t *testing.T) {
	var gotPath, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"data":{"status":"success","amount":150000}}`))
	})

	res, err := c.Verify(context.Background(), "PSK_123")
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.Equal(t, int64(150000), res.Amount)
	assert.Equal(t, "success", res.RawStatus)
	assert.Equal(t, "/transaction/verify/PSK_123", gotPath)
	assert.Equal(t, "Bearer sk_test_secret", gotAuth)
}

func TestVerifyFailedTransaction(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":true,"data":{"status":"failed","amount":150000}}`))
	})

	res, err := c.Verify(context.Background(), "PSK_123")
	require.NoError(t, err)
	assert.False(t, res.Verified)
	assert.Equal(t, "failed", res.RawStatus)
}

func TestVerifyGatewayRejects(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":false,"message":"Transaction reference not found"}`))
	})

	res, err := c.Verify(context.Background(), "UNKNOWN_REF")
	require.NoError(t, err)
	assert.False(t, res.Verified)
}

func TestVerifyMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	})

	_, err := c.Verify(context.Background(), "PSK_123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGatewayUnreachable)
}

func TestVerifyGatewayDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewClient(srv.URL, "sk_test_secret", time.Second, srv.Client())
	srv.Close() // connection refused from here on

	_, err := c.Verify(context.Background(), "PSK_123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGatewayUnreachable)
}

func TestVerifyEmptyReference(t *testing.T) {
	c := NewClient("http://localhost:0", "sk", time.Second, nil)

	_, err := c.Verify(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyReference)
}

func TestVerifyEscapesReference(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"status":true,"data":{"status":"success","amount":1}}`))
	})

	_, err := c.Verify(context.Background(), "ref with space")
	require.NoError(t, err)
	assert.Equal(t, "/transaction/verify/ref%20with%20space", gotPath)
}
