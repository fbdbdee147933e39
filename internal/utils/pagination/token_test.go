package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCursorToken(t *testing.T) {
	createdAt := time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeCursorToken(createdAt, "payment-123")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedCreatedAt, decodedID, err := DecodeCursorToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, "payment-123", decodedID, "ID should match after decode")
}

func TestDecodeCursorTokenInvalid(t *testing.T) {
	_, _, err := DecodeCursorToken("not-base64!!!")
	assert.Error(t, err, "Non-base64 token should fail to decode")

	_, _, err = DecodeCursorToken("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.Error(t, err, "Token without a separator should fail to decode")
}

func TestEncodeDecodeDateBasedToken(t *testing.T) {
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	token := EncodeDateBasedToken(date)
	decoded, err := DecodeDateBasedToken(token)
	assert.NoError(t, err)
	assert.Equal(t, date, decoded)
}
