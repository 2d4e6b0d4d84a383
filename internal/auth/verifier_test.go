package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		given     string
		family    string
		full      string
		email     string
		wantFirst string
		wantLast  string
	}{
		{
			name:  "given and family present",
			given: "Ada", family: "Lovelace",
			wantFirst: "Ada", wantLast: "Lovelace",
		},
		{
			name: "full name split",
			full: "Ada Augusta Lovelace",
			wantFirst: "Ada", wantLast: "Augusta Lovelace",
		},
		{
			name:  "single word full name",
			full:  "Ada",
			wantFirst: "Ada", wantLast: "Ada",
		},
		{
			name:  "email local part fallback",
			email: "shopper@example.com",
			wantFirst: "shopper", wantLast: "shopper",
		},
		{
			name:  "given without family falls back to full remainder",
			given: "Ada", full: "Ada Lovelace",
			wantFirst: "Ada", wantLast: "Ada",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			first, last := claimName(tt.given, tt.family, tt.full, tt.email)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}
