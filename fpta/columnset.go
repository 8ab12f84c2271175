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
	"sort"

	"github.com/fpta-go/fpta/config"
)

// ColumnSet accumulates column definitions (DescribeColumn) ahead of
// ValidateSet ordering them and checking the cross-column invariants
// CreateTable relies on — spec.md §4.4 "SchemaBuilder".
type ColumnSet struct {
	defs []Shove
}

// Columns returns the set's current column shoves in their present order
// (declaration order before ValidateSet; canonical order after).
func (s *ColumnSet) Columns() []Shove { return s.defs }

// Reset empties s so it can be reused for another table definition.
func (s *ColumnSet) Reset() { s.defs = s.defs[:0] }

// DescribeColumn validates one column definition and appends it to set —
// spec.md §4.4 "fpta_column_describe". Rejects: a malformed name, a name
// already present in set, an out-of-enumeration IndexType or DataType, a
// reverse index that fails validateReverseIndex, exceeding config.MaxCols, a
// second primary column (ErrAlreadyExists), or a secondary column over an
// already-described non-unique primary (ErrInvalidArg).
func DescribeColumn(name string, dt DataType, it IndexType, set *ColumnSet) error {
	if set == nil {
		return ErrInvalidArg
	}
	if !ValidateName(name) {
		return ErrInvalidArg
	}
	if !validIndexType(it) {
		return ErrInvalidArg
	}
	// This is the pinned-down §9 open question: the reference's
	// fpta_column_def_validate has a bare `return false` in this exact
	// range check where every sibling arm returns a proper error code.
	// This module treats it as the typo it is and returns ErrInvalidArg.
	if !validateDataType(dt) {
		return ErrInvalidArg
	}
	if !validateReverseIndex(dt, it) {
		return ErrInvalidArg
	}
	if len(set.defs) >= config.MaxCols {
		return ErrTooManyColumns
	}

	// Placement checks the original enforces immediately rather than
	// deferring to ValidateSet (schema.cxx:433-446): a set already has at
	// most one primary column, and a secondary is only describable once the
	// primary known so far is unique.
	if primary, found := findPrimary(set.defs); found {
		if IsPrimary(it) {
			return ErrAlreadyExists
		}
		if IsSecondary(it) && !IsUnique(Shove2Index(primary)) {
			return ErrInvalidArg
		}
	}

	nameShove := ShoveName(name, RoleColumn)
	for _, existing := range set.defs {
		if NameEqual(existing, nameShove) {
			return ErrAlreadyExists
		}
	}

	set.defs = append(set.defs, ColumnShove(nameShove, dt, it))
	return nil
}

// findPrimary returns the primary-indexed column already in defs, if any.
func findPrimary(defs []Shove) (Shove, bool) {
	for _, d := range defs {
		if IsPrimary(Shove2Index(d)) {
			return d, true
		}
	}
	return 0, false
}

// weight orders columns the way the reference's fpta_column_set_validate
// stable-sorts them ahead of the positional checks: indexed columns sort
// first (weight 3), then nullable non-indexed columns (weight 1), then
// plain non-nullable columns (weight 0). A stable sort preserves
// declaration order within each weight class. ValidateSet applies this only
// to positions [1:] — position 0 is reserved for the primary column, which
// it relocates there itself regardless of declaration order.
func weight(shove Shove) int {
	it := Shove2Index(shove)
	switch {
	case IsIndexed(it):
		return 3
	case IsNullable(it):
		return 1
	default:
		return 0
	}
}

// ValidateSet canonicalizes set's column order and checks the invariants
// CreateTable depends on (spec.md §4.4, §8):
//
//   - exactly one primary-indexed column, and it ends up at position 0;
//   - every indexed column precedes every non-indexed column;
//   - a secondary index is only valid when the primary key is unique.
func ValidateSet(set *ColumnSet) error {
	if set == nil || len(set.defs) == 0 {
		return ErrInvalidArg
	}
	// Slot 0 is reserved for the primary column regardless of declaration
	// order (schema.cxx:433-446): find it wherever DescribeColumn left it
	// and move it to the front, shifting the columns before it one place
	// right so they keep their declaration order, before sorting the rest.
	for i, d := range set.defs {
		if IsPrimary(Shove2Index(d)) {
			if i != 0 {
				copy(set.defs[1:i+1], set.defs[:i])
				set.defs[0] = d
			}
			break
		}
	}
	if len(set.defs) > 1 {
		rest := set.defs[1:]
		sort.SliceStable(rest, func(i, j int) bool {
			return weight(rest[i]) > weight(rest[j])
		})
	}
	return validateDefs(set.defs)
}

// validateDefs checks the positional invariants above against an
// already-weight-sorted column slice.
func validateDefs(defs []Shove) error {
	if len(defs) == 0 || len(defs) > config.MaxCols {
		return ErrInvalidArg
	}

	var primaryCount, indexedCount int
	var primaryUnique bool
	sawNonIndexed := false

	for i, d := range defs {
		it := Shove2Index(d)
		if IsIndexed(it) {
			if sawNonIndexed {
				return ErrInvalidArg // indexed-columns-precede-non-indexed
			}
			indexedCount++
			if IsPrimary(it) {
				primaryCount++
				if i != 0 {
					return ErrInvalidArg // primary-key-at-position-0
				}
				primaryUnique = IsUnique(it)
			}
		} else {
			sawNonIndexed = true
		}
	}

	if primaryCount != 1 {
		return ErrInvalidArg
	}
	if indexedCount > config.MaxIndexes {
		return ErrTooManyIndexes
	}
	if indexedCount > 1 && !primaryUnique {
		return ErrInvalidArg // secondary-index-requires-unique-primary
	}
	return nil
}
