// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package math provides integer helpers with explicit overflow reporting.
package math

// Integer limit values.
const (
	MaxInt64 = 1<<63 - 1
	MinInt64 = -1 << 63
)

// SafeAdd returns x+y and reports whether the signed addition overflowed.
func SafeAdd(x, y int64) (int64, bool) {
	sum := x + y
	overflow := (x > 0 && y > 0 && sum < 0) || (x < 0 && y < 0 && sum >= 0)
	return sum, overflow
}

// SafeSub returns x-y and reports whether the signed subtraction overflowed.
func SafeSub(x, y int64) (int64, bool) {
	diff := x - y
	overflow := (x >= 0 && y < 0 && diff < 0) || (x < 0 && y > 0 && diff >= 0)
	return diff, overflow
}
