package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflakeIDMarshalsAsString(t *testing.T) {
	id := SnowflakeID(1877594859127291904)
	b, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"1877594859127291904"`, string(b))
}

func TestSnowflakeIDUnmarshalAcceptsStringAndNumber(t *testing.T) {
	var fromString SnowflakeID
	require.NoError(t, json.Unmarshal([]byte(`"1877594859127291904"`), &fromString))
	assert.Equal(t, SnowflakeID(1877594859127291904), fromString)

	var fromNumber SnowflakeID
	require.NoError(t, json.Unmarshal([]byte(`1877594859127291904`), &fromNumber))
	assert.Equal(t, SnowflakeID(1877594859127291904), fromNumber)

	var bad SnowflakeID
	assert.Error(t, json.Unmarshal([]byte(`"not-a-number"`), &bad))
}

func TestSnowflakeIDScan(t *testing.T) {
	var id SnowflakeID
	require.NoError(t, id.Scan(int64(7)))
	assert.Equal(t, SnowflakeID(7), id)

	require.NoError(t, id.Scan([]byte("42")))
	assert.Equal(t, SnowflakeID(42), id)

	assert.Error(t, id.Scan(3.14))
}
