package core

import "testing"

func TestColorANSI(t *testing.T) {
	tests := []struct {
		color    Color
		expected string
	}{
		{ColorDefault, ""},
		{ColorRed, "1"},
		{ColorBrightWhite, "15"},
		{ColorGray, "240"},
		{ColorPink, "213"},
		{ColorPurple, "135"},
		{Color(200), ""},
	}

	for _, tt := range tests {
		if got := tt.color.ANSI(); got != tt.expected {
			t.Errorf("Color(%d).ANSI() = %q, expected %q", tt.color, got, tt.expected)
		}
	}
}
