package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"33.333", "R$ 33,33"},
		{"1234.5", "R$ 1.234,50"},
		{"1234567.89", "R$ 1.234.567,89"},
		{"-50", "-R$ 50,00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBRL(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestShortCode(t *testing.T) {
	id := uuid.MustParse("3f2a9c1e-0000-4000-8000-000000000000")
	assert.Equal(t, "3F2A9C1E", ShortCode(id))
}

func TestParseUUIDTrims(t *testing.T) {
	id, err := ParseUUID(" 3f2a9c1e-0000-4000-8000-000000000000 ")
	require.NoError(t, err)
	assert.Equal(t, "3f2a9c1e-0000-4000-8000-000000000000", id.String())
}
