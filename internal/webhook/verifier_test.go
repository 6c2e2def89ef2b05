// File: internal/webhook/verifier_test.go
package webhook

import (
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("a-32-byte-test-webhook-sign-key!")

func testWebhookSecret() string {
	return secretPrefix + base64.StdEncoding.EncodeToString(testSigningKey)
}

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	v, err := NewVerifier(testWebhookSecret(), 5*time.Minute)
	require.NoError(t, err)
	return v
}

func TestNewVerifier_RejectsMalformedSecret(t *testing.T) {
	_, err := NewVerifier("whsec_!!!not-base64!!!", 5*time.Minute)
	assert.Error(t, err)
}

func TestNewVerifier_AcceptsSecretWithoutPrefix(t *testing.T) {
	v, err := NewVerifier(base64.StdEncoding.EncodeToString(testSigningKey), 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, testSigningKey, v.key)
}

func TestVerify_ValidSignature(t *testing.T) {
	v := newTestVerifier(t)
	body := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := "v1," + v.sign("msg_1", ts, body)

	assert.NoError(t, v.Verify("msg_1", ts, body, sig))
}

func TestVerify_TamperedBody(t *testing.T) {
	v := newTestVerifier(t)
	body := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := "v1," + v.sign("msg_1", ts, body)

	tampered := []byte(`{"type":"user.deleted","data":{"id":"user_1"}}`)
	assert.Error(t, v.Verify("msg_1", ts, tampered, sig))
}

func TestVerify_SignatureBoundToMessageID(t *testing.T) {
	v := newTestVerifier(t)
	body := []byte(`{}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := "v1," + v.sign("msg_1", ts, body)

	assert.Error(t, v.Verify("msg_2", ts, body, sig))
}

func TestVerify_TimestampOutsideTolerance(t *testing.T) {
	v := newTestVerifier(t)
	now := time.Now()
	v.now = func() time.Time { return now }
	body := []byte(`{}`)

	cases := []struct {
		name string
		ts   time.Time
		ok   bool
	}{
		{"fresh", now.Add(-time.Minute), true},
		{"too old", now.Add(-6 * time.Minute), false},
		{"too far in the future", now.Add(6 * time.Minute), false},
		{"slightly ahead", now.Add(time.Minute), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := strconv.FormatInt(tc.ts.Unix(), 10)
			sig := "v1," + v.sign("msg_1", ts, body)
			err := v.Verify("msg_1", ts, body, sig)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestVerify_NonNumericTimestamp(t *testing.T) {
	v := newTestVerifier(t)
	assert.Error(t, v.Verify("msg_1", "not-a-timestamp", []byte(`{}`), "v1,abc"))
}

func TestVerify_MultipleSignatureEntries(t *testing.T) {
	v := newTestVerifier(t)
	body := []byte(`{}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	good := v.sign("msg_1", ts, body)

	// Any matching v1 entry authenticates, regardless of position.
	assert.NoError(t, v.Verify("msg_1", ts, body, "v1,bogus v1,"+good))
	// Entries under other versions are skipped, not matched.
	assert.Error(t, v.Verify("msg_1", ts, body, "v2,"+good))
	assert.Error(t, v.Verify("msg_1", ts, body, "v1,bogus v1,alsobogus"))
}
