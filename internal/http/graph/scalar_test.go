package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalUnmarshalGraphQL(t *testing.T) {
	t.Run("Should accept values within range", func(t *testing.T) {
		for _, tc := range []struct {
			input any
			want  string
		}{
			{input: "19.99", want: "19.99"},
			{input: "0.000000000000000001", want: "0.000000000000000001"},
			{input: "99999999999999999999999999999999999999", want: "99999999999999999999999999999999999999"},
			{input: "1e37", want: "10000000000000000000000000000000000000"},
			{input: "0e99999999", want: "0"},
			{input: int32(5), want: "5"},
			{input: 19.99, want: "19.99"},
		} {
			var d Decimal
			require.NoError(t, d.UnmarshalGraphQL(tc.input), "%v", tc.input)
			assert.Equal(t, tc.want, d.String())
		}
	})

	t.Run("Should reject values out of range", func(t *testing.T) {
		for _, input := range []any{
			"1e50000000",
			"-1e50000000",
			"1e-50000000",
			"1e38",
			"0.0000000000000000001",
			"123456789012345678901234567890123456789",
			1e300,
		} {
			var d Decimal
			err := d.UnmarshalGraphQL(input)
			assert.ErrorIs(t, err, errDecimalOutOfRange, "%v", input)
			assert.True(t, d.IsZero())
		}
	})

	t.Run("Should reject oversized input before parsing", func(t *testing.T) {
		var d Decimal
		err := d.UnmarshalGraphQL("1" + string(make([]byte, decimalMaxLen)))
		assert.ErrorIs(t, err, errDecimalOutOfRange)
	})
}
