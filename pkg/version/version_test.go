package version

import (
	"errors"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		major uint16
		minor uint16
	}{
		{"1.0", 1, 0},
		{"1.1", 1, 1},
		{"2.0", 2, 0},
		{"10.23", 10, 23},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if v.Major != tt.major || v.Minor != tt.minor {
				t.Errorf("Parse(%q) = %d.%d, want %d.%d", tt.input, v.Major, v.Minor, tt.major, tt.minor)
			}
			if v.String() != tt.input {
				t.Errorf("String() = %q, want %q", v.String(), tt.input)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "1", "abc", "1.0.0", "1.x", "-1.0", ".1", "1."} {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) should return error", input)
			}
		})
	}
}

func TestCompatible(t *testing.T) {
	v := MustParse("1.0")
	if !v.Compatible(MustParse("1.7")) {
		t.Error("1.0 should be compatible with 1.7")
	}
	if v.Compatible(MustParse("2.0")) {
		t.Error("1.0 should not be compatible with 2.0")
	}
}

func TestCheckPeer(t *testing.T) {
	if _, err := CheckPeer("1.3"); err != nil {
		t.Errorf("CheckPeer(1.3) error = %v", err)
	}
	if _, err := CheckPeer("2.0"); !errors.Is(err, ErrIncompatible) {
		t.Errorf("CheckPeer(2.0) error = %v, want %v", err, ErrIncompatible)
	}
	if _, err := CheckPeer("bogus"); err == nil || errors.Is(err, ErrIncompatible) {
		t.Errorf("CheckPeer(bogus) error = %v, want parse error", err)
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse(bad) did not panic")
		}
	}()
	MustParse("bad")
}
