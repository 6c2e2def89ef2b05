// File: internal/webhook/verifier.go
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Signature header names used by the identity provider's delivery service.
const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"
)

const secretPrefix = "whsec_"

// Verifier checks webhook signatures. The signed content is
// "<id>.<timestamp>.<body>" authenticated with HMAC-SHA256 under the shared
// secret; the message id and timestamp act as a nonce against replay and the
// tolerance bounds how stale a delivery may be.
type Verifier struct {
	key       []byte
	tolerance time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

// NewVerifier creates a verifier from a "whsec_"-prefixed base64 secret.
func NewVerifier(secret string, tolerance time.Duration) (*Verifier, error) {
	encoded := strings.TrimPrefix(secret, secretPrefix)
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook secret: %w", err)
	}
	if tolerance <= 0 {
		tolerance = 5 * time.Minute
	}
	return &Verifier{key: key, tolerance: tolerance, now: time.Now}, nil
}

// Verify checks the payload against the three signature header values.
// A nil return means the payload is authentic and within the replay window.
func (v *Verifier) Verify(msgID, timestamp string, payload []byte, sigHeader string) error {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid webhook timestamp: %w", err)
	}

	age := v.now().Sub(time.Unix(ts, 0))
	if age > v.tolerance || age < -v.tolerance {
		return fmt.Errorf("webhook timestamp outside of tolerance")
	}

	expected := v.sign(msgID, timestamp, payload)

	// The signature header may list several versioned signatures separated by
	// spaces; any matching v1 entry authenticates the payload.
	for _, candidate := range strings.Fields(sigHeader) {
		version, sig, found := strings.Cut(candidate, ",")
		if !found || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return fmt.Errorf("no matching webhook signature found")
}

func (v *Verifier) sign(msgID, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, v.key)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
