package model

import "testing"

// TestNormalizeStatus tests status normalization.
func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		raw      string
		expected Status
	}{
		{"Alive", StatusAlive},
		{"alive", StatusAlive},
		{"ALIVE", StatusAlive},
		{"  Alive ", StatusAlive},
		{"Dead", StatusDead},
		{"DEAD", StatusDead},
		{"unknown", StatusUnknown},
		{"Unknown", StatusUnknown},
		{"", StatusOther},
		{"Presumed Dead", StatusOther},
		{"zombie", StatusOther},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeStatus(tc.raw); got != tc.expected {
				t.Errorf("NormalizeStatus(%q) = %q, expected %q", tc.raw, got, tc.expected)
			}
		})
	}
}

// TestStatusColor tests the status to display color mapping.
func TestStatusColor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		raw      string
		expected Color
	}{
		{"Alive", ColorAffirmative},
		{"dead", ColorNegative},
		{"unknown", ColorNeutral},
		{"something else", ColorNeutral},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			if got := StatusColor(tc.raw); got != tc.expected {
				t.Errorf("StatusColor(%q) = %q, expected %q", tc.raw, got, tc.expected)
			}
		})
	}
}

// TestStatusLabel tests title-cased status labels.
func TestStatusLabel(t *testing.T) {
	t.Parallel()

	if got := StatusAlive.Label(); got != "Alive" {
		t.Errorf("expected 'Alive', got %q", got)
	}
	if got := StatusUnknown.Label(); got != "Unknown" {
		t.Errorf("expected 'Unknown', got %q", got)
	}
}
