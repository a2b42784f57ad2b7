package mux

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test"

func signedHeader(t *testing.T, payload []byte, ts time.Time, secret string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyWebhookSignatureValid(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"type":"video.asset.ready"}`)
	header := signedHeader(t, payload, now, testSecret)

	err := VerifyWebhookSignature(payload, header, testSecret, now, 5*time.Minute)
	require.NoError(t, err)
}

func TestVerifyWebhookSignatureWrongSecret(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"type":"video.asset.ready"}`)
	header := signedHeader(t, payload, now, "other_secret")

	err := VerifyWebhookSignature(payload, header, testSecret, now, 5*time.Minute)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyWebhookSignatureTamperedPayload(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	header := signedHeader(t, []byte(`{"a":1}`), now, testSecret)

	err := VerifyWebhookSignature([]byte(`{"a":2}`), header, testSecret, now, 5*time.Minute)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyWebhookSignatureStaleTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{}`)
	header := signedHeader(t, payload, now.Add(-10*time.Minute), testSecret)

	err := VerifyWebhookSignature(payload, header, testSecret, now, 5*time.Minute)
	assert.ErrorIs(t, err, ErrStaleTimestamp)
}

func TestVerifyWebhookSignatureMalformedHeader(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	for _, header := range []string{"", "t=123", "v1=deadbeef", "t=notanumber,v1=deadbeef", "garbage"} {
		err := VerifyWebhookSignature([]byte(`{}`), header, testSecret, now, 0)
		assert.ErrorIs(t, err, ErrBadSignature, "header %q", header)
	}
}

func TestVerifyWebhookSignatureZeroToleranceSkipsFreshnessCheck(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{}`)
	header := signedHeader(t, payload, now.Add(-24*time.Hour), testSecret)

	err := VerifyWebhookSignature(payload, header, testSecret, now, 0)
	require.NoError(t, err)
}
