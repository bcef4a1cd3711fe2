// Package barcode normalizes product codes into valid EAN-13 symbols.
package barcode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/boombuler/barcode/ean"
)

// Modules is the width of an EAN-13 symbol in modules, guards included.
const Modules = 95

// LeadModules is the space the human-readable first digit takes left of the
// start guard.
const LeadModules = 7

// ErrInvalidDigits is returned when a code contains no usable digits.
var ErrInvalidDigits = errors.New("barcode: no digits in code")

// EAN13 is a 13-digit code whose last digit is the check digit of the first
// twelve.
type EAN13 struct {
	digits [13]byte
}

// Normalize builds an EAN13 from raw. Non-digit characters are discarded.
// The first twelve digits are kept; shorter inputs are padded on the right
// with '0'. A check digit present in raw is ignored and recomputed.
func Normalize(raw string) (EAN13, error) {
	var payload []byte
	for i := 0; i < len(raw) && len(payload) < 12; i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			payload = append(payload, c)
		}
	}
	if len(payload) == 0 {
		return EAN13{}, fmt.Errorf("%w: %q", ErrInvalidDigits, raw)
	}
	for len(payload) < 12 {
		payload = append(payload, '0')
	}

	code, err := ean.Encode(string(payload))
	if err != nil {
		return EAN13{}, fmt.Errorf("%w: %q: %w", ErrInvalidDigits, raw, err)
	}
	var e EAN13
	copy(e.digits[:], code.Content())
	return e, nil
}

// Checksum returns the EAN-13 check digit of a 12-digit payload.
func Checksum(payload string) (int, error) {
	if len(payload) != 12 || !allDigits(payload) {
		return 0, fmt.Errorf("%w: payload %q is not 12 digits", ErrInvalidDigits, payload)
	}
	// Content carries the appended digit; CheckSum() is not reliable for
	// 12-digit input.
	code, err := ean.Encode(payload)
	if err != nil {
		return 0, err
	}
	return int(code.Content()[12] - '0'), nil
}

func allDigits(s string) bool {
	return strings.Trim(s, "0123456789") == ""
}

// String returns all 13 digits.
func (e EAN13) String() string { return string(e.digits[:]) }

// Payload returns the first 12 digits.
func (e EAN13) Payload() string { return string(e.digits[:12]) }

// CheckDigit returns the last digit.
func (e EAN13) CheckDigit() int { return int(e.digits[12] - '0') }

// IsZero reports whether e is the zero value.
func (e EAN13) IsZero() bool { return e.digits[0] == 0 }

// Valid reports whether s is 13 digits with a correct check digit.
func Valid(s string) bool {
	if len(s) != 13 || !allDigits(s) {
		return false
	}
	_, err := ean.Encode(s)
	return err == nil
}

// Width returns the printed width of the bars for the given narrow bar width
// in dots.
func Width(narrow int) int { return Modules * narrow }
