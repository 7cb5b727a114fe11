package pagination_test

import (
	"testing"
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	id := "txn-42"

	token := pagination.EncodeToken(createdAt, id)
	require.NotEmpty(t, token)

	gotTime, gotID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_IDWithSeparator(t *testing.T) {
	createdAt := time.Now().UTC().Truncate(time.Microsecond)
	id := "prefix|suffix"

	token := pagination.EncodeToken(createdAt, id)
	_, gotID, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("bm90LWEtdGltZXxpZA==") // "not-a-time|id"
	assert.Error(t, err)
}
