package security

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnsubscribeToken_RoundTrip(t *testing.T) {
	token, err := GenerateUnsubscribeToken(42, 7, time.Hour, "secret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := VerifyUnsubscribeToken(token, "secret")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.SubscriberID)
	assert.Equal(t, uint(7), claims.SubscriptionID)
}

func TestUnsubscribeToken_WrongSecret(t *testing.T) {
	token, err := GenerateUnsubscribeToken(42, 7, time.Hour, "secret")
	assert.NoError(t, err)

	_, err = VerifyUnsubscribeToken(token, "other")
	assert.Error(t, err)
}

func TestUnsubscribeToken_Expired(t *testing.T) {
	token, err := GenerateUnsubscribeToken(42, 7, -time.Minute, "secret")
	assert.NoError(t, err)

	_, err = VerifyUnsubscribeToken(token, "secret")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestUnsubscribeToken_Tampered(t *testing.T) {
	token, err := GenerateUnsubscribeToken(42, 7, time.Hour, "secret")
	assert.NoError(t, err)

	parts := strings.SplitN(token, ".", 2)
	tampered := parts[0] + "x." + parts[1]

	_, err = VerifyUnsubscribeToken(tampered, "secret")
	assert.Error(t, err)
}

func TestUnsubscribeToken_NoSecret(t *testing.T) {
	_, err := GenerateUnsubscribeToken(1, 1, time.Hour, "")
	assert.Error(t, err)

	_, err = VerifyUnsubscribeToken("a.b", "")
	assert.Error(t, err)
}
