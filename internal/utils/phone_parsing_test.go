package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		name        string
		phoneString string
		want        string
		wantErr     bool
	}{
		{
			name:        "US number with country code",
			phoneString: "+12025550123",
			want:        "+12025550123",
		},
		{
			name:        "US number without country code",
			phoneString: "2025550123",
			want:        "+12025550123",
		},
		{
			name:        "US number with formatting",
			phoneString: "(202) 555-0123",
			want:        "+12025550123",
		},
		{
			name:        "US number with dashes",
			phoneString: "202-555-0123",
			want:        "+12025550123",
		},
		{
			name:        "international number",
			phoneString: "+447911123456",
			want:        "+447911123456",
		},
		{
			name:        "surrounding whitespace",
			phoneString: "  +12025550123  ",
			want:        "+12025550123",
		},
		{
			name:        "empty string",
			phoneString: "",
			wantErr:     true,
		},
		{
			name:        "not a number",
			phoneString: "call me maybe",
			wantErr:     true,
		},
		{
			name:        "too short",
			phoneString: "12345",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhoneNumber(tt.phoneString)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
