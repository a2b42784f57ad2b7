package mux

import (
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignPlaybackToken issues a short-lived RS256 JWT for a signed Mux playback
// ID, so the player can fetch the stream. privateKey is the PEM signing key
// as Mux hands it out (base64-wrapped PEM is accepted too).
func SignPlaybackToken(playbackID, keyID, privateKey string, now time.Time, ttl time.Duration) (string, error) {
	if playbackID == "" || keyID == "" || privateKey == "" {
		return "", errors.New("mux signing key not configured")
	}

	pemBytes := []byte(privateKey)
	if decoded, err := base64.StdEncoding.DecodeString(privateKey); err == nil {
		pemBytes = decoded
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": playbackID,
		"aud": "v", // video playback
		"exp": now.Add(ttl).Unix(),
		"kid": keyID,
	})
	token.Header["kid"] = keyID

	return token.SignedString(key)
}
