package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid", "TestPass123!", nil},
		{"valid minimal", "Aa1!aaaa", nil},
		{"too short", "weak", ErrPasswordTooShort},
		{"too short but complex", "Aa1!", ErrPasswordTooShort},
		{"no uppercase", "alllowercase1!", ErrPasswordNoUpper},
		{"no digit", "NoDigitsHere!", ErrPasswordNoDigit},
		{"no special", "NoSpecial123", ErrPasswordNoSpecial},
		{"empty", "", ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPolicy(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.True(t, MeetsPolicy(tt.password))
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, MeetsPolicy(tt.password))
			}
		})
	}
}
