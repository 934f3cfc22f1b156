package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"success":true,"data":[]}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	_, _, _, ok := decodePayload([]byte("short"))
	assert.False(t, ok)

	// Header length pointing past the buffer.
	bs, err := encodePayload(200, http.Header{}, nil)
	require.NoError(t, err)
	bs[7] = 0xFF
	_, _, _, ok = decodePayload(bs)
	assert.False(t, ok)
}

func TestCacheableSkipsTruncatedBody(t *testing.T) {
	assert.True(t, cacheable(http.StatusOK, 10, 100))
	assert.True(t, cacheable(http.StatusOK, 100, 100))
	// Over the capture limit means the buffer holds a cut-off body.
	assert.False(t, cacheable(http.StatusOK, 101, 100))
	assert.False(t, cacheable(http.StatusInternalServerError, 10, 100))
	// Limit zero disables truncation entirely.
	assert.True(t, cacheable(http.StatusOK, 1<<20, 0))
}

func TestCaptureWriterTruncatesAtLimit(t *testing.T) {
	cw := &captureWriter{ResponseWriter: discardWriter{}, status: http.StatusOK, limit: 8}

	_, err := cw.Write([]byte("0123456789"))
	require.NoError(t, err)

	assert.Equal(t, int64(10), cw.size, "size tracks the full response")
	assert.Equal(t, "01234567", cw.buf.String(), "buffer stops at the limit")
	assert.False(t, cacheable(cw.status, cw.size, cw.limit))
}

type discardWriter struct{}

func (discardWriter) Header() http.Header         { return http.Header{} }
func (discardWriter) Write(b []byte) (int, error) { return len(b), nil }
func (discardWriter) WriteHeader(int)             {}

func TestDecodePayloadEmptyBody(t *testing.T) {
	bs, err := encodePayload(http.StatusNoContent, http.Header{}, nil)
	require.NoError(t, err)

	status, _, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Empty(t, body)
}
