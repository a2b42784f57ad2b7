package mux

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSigningKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pemBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	return key, string(pemBytes)
}

func TestSignPlaybackTokenRoundTrip(t *testing.T) {
	key, pemStr := testSigningKey(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	signed, err := SignPlaybackToken("playback-123", "key-abc", pemStr, now, time.Hour)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	}, jwt.WithValidMethods([]string{"RS256"}), jwt.WithTimeFunc(func() time.Time { return now }))
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "playback-123", claims["sub"])
	assert.Equal(t, "v", claims["aud"])
	assert.Equal(t, float64(now.Add(time.Hour).Unix()), claims["exp"])
	assert.Equal(t, "key-abc", token.Header["kid"])
}

func TestSignPlaybackTokenAcceptsBase64WrappedPEM(t *testing.T) {
	_, pemStr := testSigningKey(t)
	wrapped := base64.StdEncoding.EncodeToString([]byte(pemStr))
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	signed, err := SignPlaybackToken("playback-123", "key-abc", wrapped, now, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
}

func TestSignPlaybackTokenMissingConfig(t *testing.T) {
	now := time.Now()

	_, err := SignPlaybackToken("", "key", "pem", now, time.Hour)
	assert.Error(t, err)

	_, err = SignPlaybackToken("playback", "", "pem", now, time.Hour)
	assert.Error(t, err)

	_, err = SignPlaybackToken("playback", "key", "", now, time.Hour)
	assert.Error(t, err)
}

func TestSignPlaybackTokenGarbageKey(t *testing.T) {
	_, err := SignPlaybackToken("playback", "key", "not a pem key", time.Now(), time.Hour)
	assert.Error(t, err)
}
