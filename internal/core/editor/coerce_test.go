package editor

import (
	"encoding/json"
	"math"
	"testing"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected bool
	}{
		{"nil", nil, false},
		{"true", true, true},
		{"false", false, false},
		{"empty string", "", false},
		{"non-empty string", "x", true},
		{"string false is truthy", "false", true},
		{"string zero is truthy", "0", true},
		{"zero", 0.0, false},
		{"nan", math.NaN(), false},
		{"negative", -1.0, true},
		{"int zero", 0, false},
		{"int one", 1, true},
		{"json number zero", json.Number("0"), false},
		{"object", map[string]any{}, true},
		{"list", []any{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truthy(tt.raw); got != tt.expected {
				t.Errorf("truthy(%#v) = %v, expected %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected *float64
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"garbage", "abc", nil},
		{"nan text", "NaN", nil},
		{"inf text", "Inf", nil},
		{"nan value", math.NaN(), nil},
		{"bool", true, nil},
		{"nil", nil, nil},
		{"integer text", "30", ptr(30)},
		{"padded text", " 2.5 ", ptr(2.5)},
		{"negative", "-1", ptr(-1)},
		{"float", 12.0, ptr(12)},
		{"int", 7, ptr(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseNumber(tt.raw)
			switch {
			case tt.expected == nil && got != nil:
				t.Errorf("expected absent, got %v", *got)
			case tt.expected != nil && got == nil:
				t.Errorf("expected %v, got absent", *tt.expected)
			case tt.expected != nil && *got != *tt.expected:
				t.Errorf("expected %v, got %v", *tt.expected, *got)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	if got := parseInt("5"); got == nil || *got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
	if got := parseInt("2.5"); got != nil {
		t.Errorf("expected absent for fractional input, got %v", *got)
	}
	if got := parseInt(""); got != nil {
		t.Errorf("expected absent for empty input, got %v", *got)
	}
}

func ptr(f float64) *float64 { return &f }
