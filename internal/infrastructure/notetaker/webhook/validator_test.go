// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(body []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func TestValidateSignature(t *testing.T) {
	body := []byte(`{"id":"evt-1","type":"notetaker.updated","data":{"object":{"id":"nt-1"}}}`)
	secret := "test-secret"

	tests := []struct {
		name      string
		secret    string
		body      []byte
		signature string
		wantErr   bool
	}{
		{
			name:      "valid signature",
			secret:    secret,
			body:      body,
			signature: sign(body, secret),
			wantErr:   false,
		},
		{
			name:      "no secret configured accepts anything",
			secret:    "",
			body:      body,
			signature: "not-even-hex",
			wantErr:   false,
		},
		{
			name:      "no secret configured accepts missing signature",
			secret:    "",
			body:      body,
			signature: "",
			wantErr:   false,
		},
		{
			name:      "missing signature",
			secret:    secret,
			body:      body,
			signature: "",
			wantErr:   true,
		},
		{
			name:      "malformed signature",
			secret:    secret,
			body:      body,
			signature: "zzzz-not-hex",
			wantErr:   true,
		},
		{
			name:      "signature from wrong secret",
			secret:    secret,
			body:      body,
			signature: sign(body, "other-secret"),
			wantErr:   true,
		},
		{
			name:      "signature over different body",
			secret:    secret,
			body:      body,
			signature: sign([]byte(`{"id":"evt-2"}`), secret),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(tt.secret)
			err := v.ValidateSignature(tt.body, tt.signature)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateSignature_BodyBytesMatter(t *testing.T) {
	// The HMAC is over the delivered bytes: the same JSON with different
	// whitespace must not verify.
	secret := "test-secret"
	compact := []byte(`{"a":1}`)
	spaced := []byte(`{ "a": 1 }`)

	v := NewValidator(secret)
	require.NoError(t, v.ValidateSignature(compact, sign(compact, secret)))
	assert.Error(t, v.ValidateSignature(spaced, sign(compact, secret)))
}
