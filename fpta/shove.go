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

package fpta

import (
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/fpta-go/fpta/config"
)

// Shove is the 64-bit packed identifier described in spec.md §3: a
// case-folded name hash in the high bits, a table/column role bit, and (for
// column shoves) a data type and index type in the low bits.
//
// Bit layout (this module's own choice — spec.md only mandates the
// base64 rendering in ShoveToDBIName as wire-level; see SPEC_FULL.md):
//
//	bits 63..12  name hash (52 bits, case-folded, xxhash-derived)
//	bit  11      table-role flag
//	bits 10..5   data type (6 bits)
//	bits  4..0   index type (5 bits)
//
// A pure name shove (role-only, as produced by ShoveName) has bits 10..0
// all zero; besides the name hash, only the table-role flag (bit 11) may be
// set — this is what lets DbiShove derive
// a sub-DB naming key by simple bit arithmetic on the table shove.
type Shove uint64

const (
	indexTypeFieldBits = 5
	indexTypeFieldMask = Shove(1)<<indexTypeFieldBits - 1

	dataTypeShift      = indexTypeFieldBits
	dataTypeFieldBits  = 6
	dataTypeFieldMask  = (Shove(1)<<dataTypeFieldBits - 1) << dataTypeShift

	tableFlagShift = dataTypeShift + dataTypeFieldBits // 11
	tableFlag      = Shove(1) << tableFlagShift

	nameHashShift = tableFlagShift + 1 // 12
	nameHashMask  = (Shove(1)<<(64-nameHashShift) - 1) << nameHashShift
)

// Role selects which half of the name-shove namespace (table or column) a
// name is hashed into — the same name used for a table and a column never
// collides because the table-role flag participates in name-equality.
type Role uint8

const (
	RoleColumn Role = iota
	RoleTable
)

// ValidateName implements spec.md §4.1 validate_name: non-empty, in-range
// length, alphabetic-or-underscore first character, alnum/underscore (and
// '.' when config.AllowDot is set) thereafter, and a non-degenerate hash.
func ValidateName(s string) bool {
	n := len(s)
	if n < config.MinLen || n > config.MaxLen {
		return false
	}
	if !isNameStart(s[0]) {
		return false
	}
	for i := 1; i < n; i++ {
		if !isNameCont(s[i]) {
			return false
		}
	}
	// Guards against a degenerate name whose hash field collapses to zero
	// (spec.md §4.1, §8 round-trip property).
	return ShoveName(s, RoleColumn)>>nameHashShift != 0
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isNameCont(c byte) bool {
	if isNameStart(c) || (c >= '0' && c <= '9') {
		return true
	}
	return config.AllowDot && c == '.'
}

// ShoveName computes a pure name shove: the case-folded 64-bit hash of s,
// shifted into the name-hash field, with the table-role flag set iff
// role == RoleTable. Every other bit is zero.
func ShoveName(s string, role Role) Shove {
	upper := strings.ToUpper(s)
	h := Shove(xxhash.Sum64String(upper))
	shove := (h << nameHashShift) & nameHashMask
	if role == RoleTable {
		shove |= tableFlag
	}
	return shove
}

// NameEqual reports whether a and b identify the same table or column name
// — same hash field, same role bit — regardless of data type or index
// payload (spec.md §3).
func NameEqual(a, b Shove) bool {
	return (a&nameHashMask) == (b&nameHashMask) && (a&tableFlag) == (b&tableFlag)
}

// IsTableShove reports whether shove carries the table-role bit.
func IsTableShove(shove Shove) bool { return shove&tableFlag != 0 }

// ColumnShove combines a pure column name-shove (from ShoveName(s,
// RoleColumn)) with a data type and index type into a full column shove.
func ColumnShove(nameShove Shove, dt DataType, it IndexType) Shove {
	return (nameShove &^ (dataTypeFieldMask | indexTypeFieldMask)) |
		(Shove(dt)<<dataTypeShift)&dataTypeFieldMask |
		Shove(it)&indexTypeFieldMask
}

// Shove2Type extracts the data type field of a column shove.
func Shove2Type(shove Shove) DataType {
	return DataType((shove & dataTypeFieldMask) >> dataTypeShift)
}

// Shove2Index extracts the index type field of a column shove.
func Shove2Index(shove Shove) IndexType {
	return IndexType(shove & indexTypeFieldMask)
}

// DbiShove derives the sub-database naming key for column ordinal `i` of
// table tableShove: the table-role bit is stripped and the ordinal (0 =
// the table's own primary storage, 1..N = secondary indexes) takes its
// place in the low bits (spec.md §3 "DbiShove").
func DbiShove(tableShove Shove, ordinal int) Shove {
	return (tableShove &^ tableFlag) | Shove(ordinal)&indexTypeFieldMask
}

// dbiNameAlphabet is a wire-level requirement (spec.md §4.1, §6): changing
// either the character set or the least-significant-group-first order
// breaks every existing database.
const dbiNameAlphabet = "@0123456789qwertyuiopasdfghjklzxcvbnmQWERTYUIOPASDFGHJKLZXCVBNM_"

// ShoveToDBIName renders shove as a short textual sub-database name: base-64
// in the fixed alphabet above, least-significant 6-bit group first,
// terminated as soon as the remaining value is zero. Injective on uint64;
// result length is at most 11 characters (spec.md §4.1, §8).
func ShoveToDBIName(shove Shove) string {
	if shove == 0 {
		return string(dbiNameAlphabet[0])
	}
	var buf [11]byte
	n := 0
	v := uint64(shove)
	for v != 0 {
		buf[n] = dbiNameAlphabet[v&63]
		v >>= 6
		n++
	}
	return string(buf[:n])
}
