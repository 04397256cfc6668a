package utils

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("segredo123")
	require.NoError(t, err)
	assert.NotEqual(t, "segredo123", hash)

	assert.True(t, CheckPasswordHash("segredo123", hash))
	assert.False(t, CheckPasswordHash("errado", hash))
	assert.False(t, CheckPasswordHash("segredo123", "not-a-hash"))
}

func TestGenerateInviteCode(t *testing.T) {
	const charset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

	code := GenerateInviteCode(6)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(charset, r), "unexpected rune %q", r)
	}

	// Two codes colliding is possible but vanishingly unlikely.
	other := GenerateInviteCode(6)
	assert.NotEqual(t, code, other)
}

func TestDecodeBase64Image(t *testing.T) {
	payload := []byte("fake-png-bytes")
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	raw, contentType, err := DecodeBase64Image(uri)
	require.NoError(t, err)
	assert.Equal(t, payload, raw)
	assert.Equal(t, "image/png", contentType)
}

func TestDecodeBase64ImageErrors(t *testing.T) {
	cases := []string{
		"no comma here",
		"justdata,butnometa",
		"data:image/png;base64,%%%not-base64%%%",
	}
	for _, in := range cases {
		_, _, err := DecodeBase64Image(in)
		assert.Error(t, err, in)
	}
}
