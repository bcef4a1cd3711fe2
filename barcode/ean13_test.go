package barcode

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"twelve digits", "622300123456", "6223001234562"},
		{"second product", "622300654321", "6223006543218"},
		{"wrong check digit replaced", "6223001234569", "6223001234562"},
		{"separators stripped", "622-300 123.456", "6223001234562"},
		{"short input padded", "12345", "1234500000003"},
		{"long input truncated", "62230012345699999", "6223001234562"},
		{"single digit", "7", "7000000000003"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize(%q) error: %v", tt.raw, err)
			}
			if got.String() != tt.want {
				t.Errorf("Normalize(%q) = %s, want %s", tt.raw, got, tt.want)
			}
			if !Valid(got.String()) {
				t.Errorf("Normalize(%q) produced invalid code %s", tt.raw, got)
			}
		})
	}
}

func TestNormalizeRejectsNoDigits(t *testing.T) {
	for _, raw := range []string{"", "abc", "---", "٦٢٢"} {
		if _, err := Normalize(raw); !errors.Is(err, ErrInvalidDigits) {
			t.Errorf("Normalize(%q) error = %v, want ErrInvalidDigits", raw, err)
		}
	}
}

// weightedCheck is the EAN-13 check digit computed by hand: weight 1 at
// even indices, 3 at odd ones.
func weightedCheck(payload string) int {
	sum := 0
	for i := 0; i < len(payload); i++ {
		d := int(payload[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

func TestChecksum(t *testing.T) {
	payloads := []string{
		"622300123456", "622300654321", "400638133393", "000000000000",
		"999999999999", "501234567890", "978020137962", "700000000000",
	}
	for _, p := range payloads {
		got, err := Checksum(p)
		if err != nil {
			t.Fatalf("Checksum(%q) error: %v", p, err)
		}
		if want := weightedCheck(p); got != want {
			t.Errorf("Checksum(%q) = %d, want %d", p, got, want)
		}
		e, err := Normalize(p)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", p, err)
		}
		if e.CheckDigit() != got {
			t.Errorf("Normalize(%q) check digit = %d, Checksum = %d", p, e.CheckDigit(), got)
		}
	}
}

func TestChecksumRejectsBadPayload(t *testing.T) {
	for _, p := range []string{"", "12345", "6223001234562", "62230012345a"} {
		if _, err := Checksum(p); !errors.Is(err, ErrInvalidDigits) {
			t.Errorf("Checksum(%q) error = %v, want ErrInvalidDigits", p, err)
		}
	}
}

func TestAccessors(t *testing.T) {
	e, err := Normalize("622300123456")
	if err != nil {
		t.Fatal(err)
	}
	if e.Payload() != "622300123456" {
		t.Errorf("Payload() = %s", e.Payload())
	}
	if e.CheckDigit() != 2 {
		t.Errorf("CheckDigit() = %d, want 2", e.CheckDigit())
	}
	if e.IsZero() {
		t.Error("IsZero() = true for a normalized code")
	}
	if !(EAN13{}).IsZero() {
		t.Error("zero value should report IsZero")
	}
	if Width(2) != 190 {
		t.Errorf("Width(2) = %d, want 190", Width(2))
	}
}

func TestValid(t *testing.T) {
	tests := map[string]bool{
		"6223001234562": true,
		"6223001234563": false,
		"622300123456":  false,
		"62230012345a2": false,
	}
	for s, want := range tests {
		if got := Valid(s); got != want {
			t.Errorf("Valid(%q) = %v, want %v", s, got, want)
		}
	}
}
