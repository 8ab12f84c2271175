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

// IndexType and DataType are the closed, pure predicate/constructor algebra
// spec.md §1 calls "fpta_index_*, fpta_column_shove" — out of scope as a
// general row-serialization concern, but needed here in concrete form so
// SchemaBuilder and SchemaManager have something to validate and derive DBI
// flags from. The enumeration below is grounded on the exhaustive `case`
// list in original_source/src/schema.cxx's fpta_column_describe /
// fpta_column_def_validate; any IndexType not named here is invalid by
// construction (validIndexType, which DescribeColumn checks, rejects every
// value at or past indexTypeCount).
type IndexType uint8

const (
	IndexNone      IndexType = iota // no index on this column
	NoIndexNullable                 // no index, column may be absent from a row

	PrimaryWithDupsOrderedObverse
	PrimaryWithDupsOrderedObverseNullable
	PrimaryWithDupsOrderedReverse
	PrimaryWithDupsOrderedReverseNullable

	PrimaryUniqueOrderedObverse
	PrimaryUniqueOrderedObverseNullable
	PrimaryUniqueOrderedReverse
	PrimaryUniqueOrderedReverseNullable

	PrimaryUniqueUnordered
	PrimaryUniqueUnorderedNullableObverse
	PrimaryUniqueUnorderedNullableReverse

	PrimaryWithDupsUnordered
	PrimaryWithDupsUnorderedNullableObverse
	// PrimaryWithDupsUnorderedNullableReverse is not representable: its bit
	// pattern would collide with NoIndexNullable (see original comment in
	// fpta_column_describe).

	SecondaryWithDupsOrderedObverse
	SecondaryWithDupsOrderedObverseNullable
	SecondaryWithDupsOrderedReverse
	SecondaryWithDupsOrderedReverseNullable

	SecondaryUniqueOrderedObverse
	SecondaryUniqueOrderedObverseNullable
	SecondaryUniqueOrderedReverse
	SecondaryUniqueOrderedReverseNullable

	SecondaryUniqueUnordered
	SecondaryUniqueUnorderedNullableObverse
	SecondaryUniqueUnorderedNullableReverse

	SecondaryWithDupsUnordered
	SecondaryWithDupsUnorderedNullableObverse
	SecondaryWithDupsUnorderedNullableReverse

	indexTypeCount
)

type indexTypeInfo struct {
	primary, secondary, unique, ordered, reverse, nullable bool
}

var indexTypeTable = [indexTypeCount]indexTypeInfo{
	IndexNone:       {},
	NoIndexNullable: {nullable: true},

	PrimaryWithDupsOrderedObverse:         {primary: true, ordered: true},
	PrimaryWithDupsOrderedObverseNullable: {primary: true, ordered: true, nullable: true},
	PrimaryWithDupsOrderedReverse:         {primary: true, ordered: true, reverse: true},
	PrimaryWithDupsOrderedReverseNullable: {primary: true, ordered: true, reverse: true, nullable: true},

	PrimaryUniqueOrderedObverse:         {primary: true, unique: true, ordered: true},
	PrimaryUniqueOrderedObverseNullable: {primary: true, unique: true, ordered: true, nullable: true},
	PrimaryUniqueOrderedReverse:         {primary: true, unique: true, ordered: true, reverse: true},
	PrimaryUniqueOrderedReverseNullable: {primary: true, unique: true, ordered: true, reverse: true, nullable: true},

	PrimaryUniqueUnordered:                 {primary: true, unique: true},
	PrimaryUniqueUnorderedNullableObverse:  {primary: true, unique: true, nullable: true},
	PrimaryUniqueUnorderedNullableReverse:  {primary: true, unique: true, nullable: true, reverse: true},

	PrimaryWithDupsUnordered:                {primary: true},
	PrimaryWithDupsUnorderedNullableObverse: {primary: true, nullable: true},

	SecondaryWithDupsOrderedObverse:         {secondary: true, ordered: true},
	SecondaryWithDupsOrderedObverseNullable: {secondary: true, ordered: true, nullable: true},
	SecondaryWithDupsOrderedReverse:         {secondary: true, ordered: true, reverse: true},
	SecondaryWithDupsOrderedReverseNullable: {secondary: true, ordered: true, reverse: true, nullable: true},

	SecondaryUniqueOrderedObverse:         {secondary: true, unique: true, ordered: true},
	SecondaryUniqueOrderedObverseNullable: {secondary: true, unique: true, ordered: true, nullable: true},
	SecondaryUniqueOrderedReverse:         {secondary: true, unique: true, ordered: true, reverse: true},
	SecondaryUniqueOrderedReverseNullable: {secondary: true, unique: true, ordered: true, reverse: true, nullable: true},

	SecondaryUniqueUnordered:                {secondary: true, unique: true},
	SecondaryUniqueUnorderedNullableObverse:  {secondary: true, unique: true, nullable: true},
	SecondaryUniqueUnorderedNullableReverse:  {secondary: true, unique: true, nullable: true, reverse: true},

	SecondaryWithDupsUnordered:                {secondary: true},
	SecondaryWithDupsUnorderedNullableObverse:  {secondary: true, nullable: true},
	SecondaryWithDupsUnorderedNullableReverse:  {secondary: true, nullable: true, reverse: true},
}

// validIndexType reports whether it is one of the enumerated constants
// above — the closed set DescribeColumn/validateDefs must reject anything
// outside of.
func validIndexType(it IndexType) bool { return it < indexTypeCount }

func info(it IndexType) indexTypeInfo {
	if !validIndexType(it) {
		return indexTypeInfo{}
	}
	return indexTypeTable[it]
}

func IsIndexed(it IndexType) bool   { i := info(it); return i.primary || i.secondary }
func IsPrimary(it IndexType) bool   { return info(it).primary }
func IsSecondary(it IndexType) bool { return info(it).secondary }
func IsUnique(it IndexType) bool    { return info(it).unique }
func IsOrdered(it IndexType) bool   { return info(it).ordered }
func IsReverse(it IndexType) bool   { return info(it).reverse }
func IsNullable(it IndexType) bool  { return info(it).nullable }

// DataType is the closed range of column value types fpta cares about for
// schema validation. Encoding/decoding the actual bytes is the fptu
// contract's job (package tuple); fpta only needs type identity and width
// class.
type DataType uint8

const (
	TypeNull DataType = iota
	TypeUint16
	TypeUint32
	TypeInt32
	TypeUint64
	TypeInt64
	TypeFp32
	TypeFp64
	TypeDatetime
	TypeFixed96
	TypeFixed128
	TypeFixed160
	TypeFixed256
	TypeCString
	TypeOpaqueBytes
	TypeNested

	dataTypeCount
)

// TypeFarray flags an otherwise-valid DataType as an array-of-T column.
// Combined with any base type it currently always fails range validation
// (see validateDataType) — arrays are accepted syntactically but rejected,
// matching the "TODO: | fptu_farray" left unfinished upstream.
const TypeFarray DataType = 1 << 5

// wideEnough reports whether dt is at least 96 bits wide — the fixed-96+
// types and every variable-length type (string/opaque/nested, which sort
// above them). original_source compares data_type >= fptu_96.
func wideEnough(dt DataType) bool { return dt >= TypeFixed96 }

// nullableReverseSensitive reports whether dt's null encoding is defined
// precisely enough to support reverse ordering when nullable. Grounded on
// the original's fpta_nullable_reverse_sensitive being consulted only for
// fixed-width types narrower than the 96-bit threshold.
func nullableReverseSensitive(dt DataType) bool {
	switch dt {
	case TypeUint16, TypeUint32, TypeInt32, TypeUint64, TypeInt64, TypeFp32, TypeFp64, TypeDatetime:
		return true
	default:
		return false
	}
}

// validateDataType enforces the range check from
// fpta_column_describe/fpta_column_def_validate: Null and any
// out-of-enumeration (including any TypeFarray combination) value is
// rejected.
func validateDataType(dt DataType) bool {
	return dt >= TypeUint16 && dt < dataTypeCount
}

// validateReverseIndex enforces spec.md §4.4: a reverse index passes when
// it is ordered over a type at least 96 bits wide; otherwise (unordered, or
// over a type narrower than 96 bits) it passes only on a nullable column
// whose null-encoding is reverse-sensitive. Equivalent to
// original_source's:
//
//	need_check := indexed && reverse && (!ordered || type < 96)
//	if need_check && !(nullable && reverse_sensitive(type)) { EINVAL }
func validateReverseIndex(dt DataType, it IndexType) bool {
	if !IsIndexed(it) || !IsReverse(it) {
		return true
	}
	if IsOrdered(it) && wideEnough(dt) {
		return true
	}
	return IsNullable(it) && nullableReverseSensitive(dt)
}
