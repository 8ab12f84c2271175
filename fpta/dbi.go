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

import "github.com/fpta-go/fpta/kv"

// DBIFlags derives the kv.TableFlags an indexed column's sub-database must
// be opened with: DupSort whenever duplicate keys are permitted (any
// "WithDups" index, since a non-unique index stores one entry per row
// sharing a key), IntegerKey for the fixed-width numeric types the
// reference treats as native-integer-keyed, matching
// erigon-lib/kv/tables.go's TableCfgItem.Flags field.
func DBIFlags(shove Shove) kv.TableFlags {
	it := Shove2Index(shove)
	dt := Shove2Type(shove)

	var flags kv.TableFlags
	if IsIndexed(it) && !IsUnique(it) {
		flags |= kv.DupSort
	}
	if isIntegerKeyed(dt) {
		flags |= kv.IntegerKey
		if flags&kv.DupSort != 0 {
			flags |= kv.IntegerDup
		}
	}
	if IsReverse(it) {
		flags |= kv.ReverseKey
		if flags&kv.DupSort != 0 {
			flags |= kv.ReverseDup
		}
	}
	return flags
}

// isIntegerKeyed reports whether dt's natural encoding is a fixed-width
// machine integer the KVS can compare without a custom comparator.
func isIntegerKeyed(dt DataType) bool {
	switch dt {
	case TypeUint16, TypeUint32, TypeInt32, TypeUint64, TypeInt64, TypeDatetime:
		return true
	default:
		return false
	}
}

// Comparator selects the key-ordering comparator OpenDBI/CreateDBI must
// agree on for shove's sub-database: Integer for native machine-width
// types, Reverse for a reverse-ordered index over a non-integer-keyed
// type, Default (memcmp/lexicographic) otherwise.
func Comparator(shove Shove) kv.Comparator {
	it := Shove2Index(shove)
	dt := Shove2Type(shove)
	switch {
	case isIntegerKeyed(dt):
		return kv.ComparatorInteger
	case IsReverse(it):
		return kv.ComparatorReverse
	default:
		return kv.ComparatorDefault
	}
}
