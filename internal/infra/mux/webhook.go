package mux

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBadSignature   = errors.New("mux signature verification failed")
	ErrStaleTimestamp = errors.New("mux webhook timestamp outside tolerance")
)

// VerifyWebhookSignature checks a Mux-Signature header against the raw
// request body. The header carries a unix timestamp and an HMAC-SHA256 of
// "{timestamp}.{body}" keyed with the webhook signing secret:
//
//	t=1565220904,v1=20c75c1180c701ee8a796e81507cfd5c932fc17cf63a4a55566fd38da3a2d3d2
func VerifyWebhookSignature(payload []byte, header, secret string, now time.Time, tolerance time.Duration) error {
	var ts string
	var sig string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts = v
		case "v1":
			sig = v
		}
	}
	if ts == "" || sig == "" {
		return ErrBadSignature
	}

	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ErrBadSignature
	}
	if tolerance > 0 {
		sent := time.Unix(unix, 0)
		if sent.Before(now.Add(-tolerance)) || sent.After(now.Add(tolerance)) {
			return ErrStaleTimestamp
		}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s.%s", ts, payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return ErrBadSignature
	}
	return nil
}
