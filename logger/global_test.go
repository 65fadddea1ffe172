package logger

import (
	"testing"
)

func TestStringToSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty string", "", ""},
		{"Simple string", "hello world", "hello-world"},
		{"Special characters", "Hello & World!", "hello-and-world"},
		{"Multiple spaces", "hello   world", "hello-world"},
		{"German umlauts", "München Straße", "muenchen-strasse"},
		{"Lithuanian letters", "Žalgirio gatvė", "zalgirio-gatve"},
		{"Multiple hyphens", "hello---world", "hello-world"},
		{"Leading/trailing hyphens", "-hello world-", "hello-world"},
		{"Unicode characters", "café", "cafe"},
		{"Plate number", "Toyota Corolla 2019", "toyota-corolla-2019"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StringToSlug(tt.input)
			if result != tt.expected {
				t.Errorf("StringToSlug(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestContainsI(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		substr   string
		expected bool
	}{
		{"Exact match", "Corolla", "Corolla", true},
		{"Case insensitive", "Toyota Corolla", "corolla", true},
		{"No match", "Toyota Corolla", "zzz", false},
		{"Empty substring", "Toyota", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsI(tt.s, tt.substr); got != tt.expected {
				t.Errorf("ContainsI(%q, %q) = %v, expected %v", tt.s, tt.substr, got, tt.expected)
			}
		})
	}
}

func TestStringToInt(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"42", 42},
		{" 7 ", 7},
		{"", 0},
		{"abc", 0},
		{"-3", -3},
	}

	for _, tt := range tests {
		if got := StringToInt(tt.input); got != tt.expected {
			t.Errorf("StringToInt(%q) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}
