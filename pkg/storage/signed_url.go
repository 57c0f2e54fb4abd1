package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignedURLSigner mints and verifies expiring download tokens for
// stored exports. Tokens are self contained so no server side state
// is needed to validate them.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewSignedURLSigner builds a signer with the given secret and token lifetime.
func NewSignedURLSigner(secret string, ttl time.Duration) (*SignedURLSigner, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("signed url secret is required")
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &SignedURLSigner{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (s *SignedURLSigner) TTL() time.Duration {
	return s.ttl
}

// Generate returns a token of the form "<expiry>.<encodedPath>.<sig>".
func (s *SignedURLSigner) Generate(relPath string, now time.Time) string {
	expiry := now.Add(s.ttl).Unix()
	encodedPath := base64.RawURLEncoding.EncodeToString([]byte(relPath))
	payload := fmt.Sprintf("%d.%s", expiry, encodedPath)
	return payload + "." + s.sign(payload)
}

// Parse validates a token and returns the stored path it authorizes.
func (s *SignedURLSigner) Parse(token string, now time.Time) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("malformed token")
	}
	payload := parts[0] + "." + parts[1]
	expected := s.sign(payload)
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return "", fmt.Errorf("invalid token signature")
	}

	expiry, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return "", fmt.Errorf("malformed token expiry")
	}
	if now.Unix() > expiry {
		return "", fmt.Errorf("token expired")
	}

	pathBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("malformed token path")
	}
	return string(pathBytes), nil
}

func (s *SignedURLSigner) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
