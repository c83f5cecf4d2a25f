package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDisplayName(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       string
	}{
		{"camel case", "loginButton", "Login Button"},
		{"single word", "submit", "Submit"},
		{"empty string", "", ""},
		{"leading upper", "LoginButton", "Login Button"},
		{"all upper", "ABC", "A B C"},
		{"multiple humps", "emailFieldHintText", "Email Field Hint Text"},
		{"single rune", "a", "A"},
		{"single upper rune", "A", "A"},
		{"digits pass through", "page2Button", "Page2 Button"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDisplayName(tt.identifier))
		})
	}
}

func TestFormatDisplayName_Deterministic(t *testing.T) {
	assert.Equal(t, FormatDisplayName("loginButton"), FormatDisplayName("loginButton"))
}
