package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedURLRoundTrip(t *testing.T) {
	signer, err := NewSignedURLSigner("test-secret", 10*time.Minute)
	require.NoError(t, err)

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	token := signer.Generate("exports/sheet-1.xlsx", now)

	path, err := signer.Parse(token, now.Add(5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "exports/sheet-1.xlsx", path)
}

func TestSignedURLExpired(t *testing.T) {
	signer, err := NewSignedURLSigner("test-secret", time.Minute)
	require.NoError(t, err)

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	token := signer.Generate("exports/sheet-1.csv", now)

	_, err = signer.Parse(token, now.Add(2*time.Minute))
	assert.ErrorContains(t, err, "expired")
}

func TestSignedURLTamperedSignature(t *testing.T) {
	signer, err := NewSignedURLSigner("test-secret", time.Minute)
	require.NoError(t, err)

	token := signer.Generate("exports/sheet-1.csv", time.Now())
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("0", len(parts[2]))

	_, err = signer.Parse(tampered, time.Now())
	assert.ErrorContains(t, err, "signature")
}

func TestSignedURLMalformed(t *testing.T) {
	signer, err := NewSignedURLSigner("test-secret", time.Minute)
	require.NoError(t, err)

	_, err = signer.Parse("not-a-token", time.Now())
	assert.Error(t, err)
}
