package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 5, ToInt(5))
	assert.Equal(t, 7, ToInt(int64(7)))
	assert.Equal(t, 3, ToInt(3.9))
	assert.Equal(t, 42, ToInt("42"))
	assert.Equal(t, 0, ToInt("abc"))
	assert.Equal(t, 12, ToInt([]byte("12")))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "x", ToString("x"))
	assert.Equal(t, "y", ToString([]byte("y")))
	assert.Equal(t, "12", ToString(12))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool(float64(1)))
	assert.False(t, ToBool(float64(0)))
	assert.False(t, ToBool("0"))
	assert.False(t, ToBool(nil))
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{1000000000, 1e9, true},
		{"100", 100, true},
		{" 2.5 ", 2.5, true},
		{"fast", 0, false},
		{nil, 0, false},
		{float32(1.5), 1.5, true},
	}
	for _, tt := range tests {
		got, ok := ToFloat(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}
