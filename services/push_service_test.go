package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformArnRouting(t *testing.T) {
	p := &PushService{fcmPlatformArn: "arn:fcm", apnsPlatformArn: "arn:apns"}

	arn, err := p.platformArn("android")
	require.NoError(t, err)
	assert.Equal(t, "arn:fcm", arn)

	arn, err = p.platformArn("iOS")
	require.NoError(t, err)
	assert.Equal(t, "arn:apns", arn)

	_, err = p.platformArn("web")
	assert.Error(t, err)
}

func TestPlatformArnUnconfigured(t *testing.T) {
	p := &PushService{}

	_, err := p.platformArn("android")
	assert.Error(t, err)

	_, err = p.platformArn("ios")
	assert.Error(t, err)
}

func TestTokenHash(t *testing.T) {
	p := &PushService{}

	h := p.tokenHash("device-token-a")
	assert.Len(t, h, 64)
	assert.Equal(t, h, p.tokenHash("device-token-a"))
	assert.NotEqual(t, h, p.tokenHash("device-token-b"))
}
