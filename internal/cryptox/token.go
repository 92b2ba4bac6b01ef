// Package cryptox holds the hashing helpers used for personal access tokens.
//
// Tokens handed to clients have the form "<id>|<secret>". Only the SHA-256
// digest of the secret is persisted, so a leaked token table cannot be
// replayed as bearer credentials.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/dmitrijs2005/notely/internal/common"
)

// TokenSeparator splits the token id from its secret.
const TokenSeparator = "|"

// SecretSize is the number of random bytes in a token secret.
const SecretSize = 32

// HashToken returns the hex-encoded SHA-256 digest of a token secret.
func HashToken(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// CompareTokenHash reports whether secret hashes to the stored digest.
// The comparison runs in constant time.
func CompareTokenHash(hash, secret string) bool {
	return subtle.ConstantTimeCompare([]byte(hash), []byte(HashToken(secret))) == 1
}

// NewTokenSecret returns a fresh random secret of 2*SecretSize hex characters.
func NewTokenSecret() (string, error) {
	return common.MakeRandHexString(SecretSize)
}

// FormatToken joins a token id and its secret into the bearer string.
func FormatToken(id, secret string) string {
	return id + TokenSeparator + secret
}

// ParseToken splits a bearer string into its id and secret parts.
// It fails with common.ErrInvalidToken when either part is missing or the
// secret is not the expected hex string.
func ParseToken(token string) (id string, secret string, err error) {
	id, secret, ok := strings.Cut(token, TokenSeparator)
	if !ok || id == "" || secret == "" {
		return "", "", common.ErrInvalidToken
	}
	if len(secret) != 2*SecretSize {
		return "", "", common.ErrInvalidToken
	}
	if _, err := hex.DecodeString(secret); err != nil {
		return "", "", common.ErrInvalidToken
	}
	return id, secret, nil
}
