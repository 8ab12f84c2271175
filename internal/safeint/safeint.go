// Copyright 2026 The fpta-go Authors
// This file is part of fpta-go.
//
// fpta-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fpta-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with fpta-go. If not, see <http://www.gnu.org/licenses/>.

// Package safeint carries the small set of overflow-aware integer helpers
// fpta needs for sizing and version-counter arithmetic: a byte-budget to
// slot-count conversion, and a checked increment of a schema
// change-sequence number. Adapted from erigon-lib/common/math's
// SafeAdd/CeilDiv (the rest of that file — hex/decimal marshaling,
// RandInt64 — has no fpta caller and was dropped rather than carried
// along unused).
package safeint

import "math/bits"

// SafeAdd returns x+y and whether the addition overflowed uint64.
func SafeAdd(x, y uint64) (sum uint64, overflow bool) {
	sum, carry := bits.Add64(x, y, 0)
	return sum, carry != 0
}

// CeilDiv returns ceil(x/y) for non-negative x and positive y; zero if y
// is zero.
func CeilDiv(x, y int) int {
	if y <= 0 {
		return 0
	}
	return (x + y - 1) / y
}
