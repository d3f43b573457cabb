package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestWorkingDaysRoundTrip(t *testing.T) {
	encoded, err := EncodeWorkingDays([]string{Monday, Tuesday})
	require.NoError(t, err)
	assert.JSONEq(t, `["MON","TUE"]`, string(encoded))

	decoded, err := DecodeWorkingDays(encoded)
	require.NoError(t, err)
	assert.Equal(t, []string{"MON", "TUE"}, decoded)
}

func TestWorkingDaysKeepOrder(t *testing.T) {
	encoded, err := EncodeWorkingDays([]string{Friday, Monday, Wednesday})
	require.NoError(t, err)

	decoded, err := DecodeWorkingDays(encoded)
	require.NoError(t, err)
	assert.Equal(t, []string{"FRI", "MON", "WED"}, decoded)
}

func TestEncodeWorkingDaysNil(t *testing.T) {
	encoded, err := EncodeWorkingDays(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(encoded))
}

func TestDecodeWorkingDaysEmpty(t *testing.T) {
	for _, raw := range []datatypes.JSON{nil, datatypes.JSON("null")} {
		decoded, err := DecodeWorkingDays(raw)
		require.NoError(t, err)
		assert.Empty(t, decoded)
		assert.NotNil(t, decoded)
	}
}

func TestDecodeWorkingDaysMalformed(t *testing.T) {
	_, err := DecodeWorkingDays(datatypes.JSON(`{"MON":true}`))
	assert.Error(t, err)
}
