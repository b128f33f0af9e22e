package util

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.1, 0.5},
		{0.5, 0.5},
		{4, 4},
		{8, 8},
		{12, 8},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in, 0.5, 8); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	if got := Wrap(5, 3); got != 2 {
		t.Errorf("Wrap(5, 3) = %d, want 2", got)
	}
	if got := Wrap(-1, 3); got != 2 {
		t.Errorf("Wrap(-1, 3) = %d, want 2", got)
	}
}

func TestIsSupported(t *testing.T) {
	for name, want := range map[string]bool{
		"a.jpg":  true,
		"b.PNG":  true,
		"c.webp": true,
		"d.gif":  false,
		"e":      false,
	} {
		if got := IsSupported(name); got != want {
			t.Errorf("IsSupported(%q) = %v, want %v", name, got, want)
		}
	}
}
