// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/luxfi/payments/utils/math"
)

// Amount is an exact fixed-point monetary value: a signed 64-bit count of
// ten-thousandths (1/10000) of a monetary unit. All arithmetic on it is
// integer arithmetic, so no rounding ever occurs.
type Amount int64

const (
	// AmountDecimals is the number of fractional digits carried by an Amount.
	AmountDecimals = 4

	// AmountScale is the number of Amount units per monetary unit.
	AmountScale = 10000
)

// ParseAmount parses a decimal string into an Amount. The accepted shape is
// an optional leading minus, an integer part and at most four fractional
// digits: "-?digits(.digits{0,4})?". The empty string parses to zero, which
// is how amount-less lifecycle records are carried on the wire. A lone sign,
// a leading dot, excess fractional digits or a value outside the 64-bit
// range is an error.
func ParseAmount(s string) (Amount, error) {
	if s == "" {
		return 0, nil
	}
	rest := s
	neg := false
	if rest[0] == '-' {
		neg = true
		rest = rest[1:]
	}
	intPart := rest
	fracPart := ""
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		intPart, fracPart = rest[:i], rest[i+1:]
	}
	if intPart == "" {
		return 0, fmt.Errorf("invalid amount format %q", s)
	}
	if len(fracPart) > AmountDecimals {
		return 0, fmt.Errorf("invalid amount format %q: more than %d fractional digits", s, AmountDecimals)
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return 0, fmt.Errorf("invalid amount format %q", s)
	}
	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if whole > math.MaxInt64/AmountScale {
		return 0, fmt.Errorf("invalid amount %q: value out of range", s)
	}
	var frac int64
	if fracPart != "" {
		padded := fracPart + strings.Repeat("0", AmountDecimals-len(fracPart))
		frac, err = strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
	}
	v, overflow := math.SafeAdd(whole*AmountScale, frac)
	if overflow {
		return 0, fmt.Errorf("invalid amount %q: value out of range", s)
	}
	if neg {
		v = -v
	}
	return Amount(v), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String renders the amount as "{int}.{frac}" with the fractional side
// trimmed to the shortest form that still carries a digit: 0 is "0.0",
// 1 is "0.0001" and 10000 is "1.0". Exactly one dot is always present.
func (a Amount) String() string {
	v := int64(a)
	sign := ""
	u := uint64(v)
	if v < 0 {
		sign = "-"
		u = uint64(-v)
	}
	whole := u / AmountScale
	frac := u % AmountScale
	fs := fmt.Sprintf("%04d", frac)
	for len(fs) > 1 && fs[len(fs)-1] == '0' {
		fs = fs[:len(fs)-1]
	}
	return sign + strconv.FormatUint(whole, 10) + "." + fs
}

// MarshalText implements encoding.TextMarshaler.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Amount) UnmarshalText(text []byte) error {
	v, err := ParseAmount(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
