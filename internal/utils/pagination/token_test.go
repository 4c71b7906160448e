package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Standard values
	ts := time.Date(2025, 5, 14, 10, 30, 45, 123456789, time.UTC)
	token := EncodeToken(ts, "01HXAMPLEULID")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedTS, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.True(t, ts.Equal(decodedTS), "Timestamp should match after decode")
	assert.Equal(t, "01HXAMPLEULID", decodedID)

	// Non-UTC input is normalized
	local := time.Date(2025, 5, 14, 12, 30, 45, 0, time.FixedZone("CEST", 2*3600))
	decodedLocal, _, err := DecodeToken(EncodeToken(local, "x"))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decodedLocal))

	// Ids may contain the separator
	_, id, err := DecodeToken(EncodeToken(ts, "a|b"))
	assert.NoError(t, err)
	assert.Equal(t, "a|b", id)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.RawURLEncoding.EncodeToString([]byte("2025-05-14T10:30:45Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	emptyID := base64.RawURLEncoding.EncodeToString([]byte("2025-05-14T10:30:45Z|"))
	_, _, err = DecodeToken(emptyID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.RawURLEncoding.EncodeToString([]byte("notadate|abc"))
	_, _, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp parse")
}
