package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecodeErrorPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want DecodeErrorPolicy
	}{
		{"", FoldIntoError},
		{"fold", FoldIntoError},
		{" FOLD ", FoldIntoError},
		{"propagate", Propagate},
		{"Propagate", Propagate},
	}

	for _, tt := range tests {
		got, err := ParseDecodeErrorPolicy(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseDecodeErrorPolicy_Unknown(t *testing.T) {
	_, err := ParseDecodeErrorPolicy("retry")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestDecodeErrorPolicy_String(t *testing.T) {
	assert.Equal(t, "fold", FoldIntoError.String())
	assert.Equal(t, "propagate", Propagate.String())
	assert.Equal(t, "DecodeErrorPolicy(7)", DecodeErrorPolicy(7).String())
}
