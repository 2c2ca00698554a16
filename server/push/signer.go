// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package push delivers task lifecycle events to registered webhook
// endpoints. Deliveries are authenticated with an asymmetric signature: the
// dispatcher signs a JWT over each payload with its private key, and
// receivers verify against the published JWK Set. A shared secret is never
// involved, so a compromised receiver cannot forge calls to other receivers.
package push

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// RequestBodyClaim is the JWT claim holding the hex SHA-256 digest of the
// delivery body. Receivers recompute the digest over the exact bytes they
// received and compare before trusting the payload.
const RequestBodyClaim = "request_body_sha256"

// Signer signs push delivery payloads and publishes the corresponding
// verification key.
type Signer struct {
	key    jwk.Key
	public jwk.Set
}

// NewSigner creates a Signer with a freshly generated RSA-2048 key.
func NewSigner() (*Signer, error) {
	raw, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}
	return NewSignerFromKey(raw)
}

// NewSignerFromKey creates a Signer from an existing RSA private key.
func NewSignerFromKey(raw *rsa.PrivateKey) (*Signer, error) {
	key, err := jwk.Import(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to import signing key: %w", err)
	}
	if err := key.Set(jwk.KeyIDKey, uuid.NewString()); err != nil {
		return nil, fmt.Errorf("failed to set key ID: %w", err)
	}
	if err := key.Set(jwk.AlgorithmKey, jwa.RS256()); err != nil {
		return nil, fmt.Errorf("failed to set key algorithm: %w", err)
	}
	if err := key.Set(jwk.KeyUsageKey, "sig"); err != nil {
		return nil, fmt.Errorf("failed to set key usage: %w", err)
	}

	pub, err := jwk.PublicKeyOf(key)
	if err != nil {
		return nil, fmt.Errorf("failed to derive public key: %w", err)
	}
	set := jwk.NewSet()
	if err := set.AddKey(pub); err != nil {
		return nil, fmt.Errorf("failed to build JWK set: %w", err)
	}

	return &Signer{key: key, public: set}, nil
}

// Sign produces a compact JWT over the payload bytes, carrying the issue time
// and the payload digest.
func (s *Signer) Sign(payload []byte) (string, error) {
	sum := sha256.Sum256(payload)
	token, err := jwt.NewBuilder().
		IssuedAt(time.Now().UTC()).
		Claim(RequestBodyClaim, hex.EncodeToString(sum[:])).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build push token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256(), s.key))
	if err != nil {
		return "", fmt.Errorf("failed to sign push token: %w", err)
	}
	return string(signed), nil
}

// JWKS returns the public verification keys for publication, typically at a
// well-known HTTP endpoint.
func (s *Signer) JWKS() jwk.Set {
	return s.public
}

// Verify checks a delivery token against a published key set and the exact
// body bytes of the delivery. Receivers call this before trusting a payload.
func Verify(token string, keys jwk.Set, payload []byte) error {
	parsed, err := jwt.Parse([]byte(token), jwt.WithKeySet(keys))
	if err != nil {
		return fmt.Errorf("failed to verify push token: %w", err)
	}

	var digest string
	if err := parsed.Get(RequestBodyClaim, &digest); err != nil {
		return fmt.Errorf("push token missing %s claim: %w", RequestBodyClaim, err)
	}

	sum := sha256.Sum256(payload)
	if digest != hex.EncodeToString(sum[:]) {
		return fmt.Errorf("push payload digest mismatch")
	}
	return nil
}
