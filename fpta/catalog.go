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
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/fpta-go/fpta/config"
)

// schemaSignature identifies this module's catalog record layout. Stored in
// every record so an old or foreign build's bytes are rejected outright
// rather than misread (spec.md §4.3); callers report such a record as
// ErrSchemaCorrupted.
const schemaSignature uint32 = 0x46505441 // "FPTA"

// schemaChecksumSeed seeds the xxhash checksum covering a stored record's
// payload — distinguishing an fpta checksum from any other seed-0 hash
// that might coincidentally collide.
const schemaChecksumSeed uint64 = 0x9e3779b97f4a7c15

// storedSchemaHeaderSize is the fixed-size prefix of an encoded record:
// signature(4) + csn(8) + columnCount(4) + checksum(8).
const storedSchemaHeaderSize = 4 + 8 + 4 + 8

// encodeStoredSchema serializes a table's column shoves into the catalog
// record format persisted under the table's name shove in the schema DBI
// (spec.md §4.3 "StoredSchema"). csn is the schema change-sequence number
// this table definition was created or last altered at.
func encodeStoredSchema(csn uint64, columns []Shove) []byte {
	buf := make([]byte, storedSchemaHeaderSize+8*len(columns))
	binary.LittleEndian.PutUint32(buf[0:4], schemaSignature)
	binary.LittleEndian.PutUint64(buf[4:12], csn)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(len(columns)))
	for i, col := range columns {
		off := storedSchemaHeaderSize + 8*i
		binary.LittleEndian.PutUint64(buf[off:off+8], uint64(col))
	}
	sum := xxhash.NewWithSeed(uint64(schemaChecksumSeed))
	sum.Write(buf[0:16])
	sum.Write(buf[storedSchemaHeaderSize:])
	binary.LittleEndian.PutUint64(buf[16:24], sum.Sum64())
	return buf
}

// validateStoredSchema reports whether raw is a well-formed, uncorrupted
// catalog record stored under key: right signature, a column count within
// bounds, a length consistent with that count, a nonzero csn, key carrying
// the table-role bit, a matching checksum, and — decoded — a column list
// that still satisfies every ColumnSet invariant (spec.md §4.3, original
// fpta_schema_validate, schema.cxx:580-618). Callers map a false result to
// ErrSchemaCorrupted.
func validateStoredSchema(key Shove, raw []byte) bool {
	if len(raw) < storedSchemaHeaderSize {
		return false
	}
	if binary.LittleEndian.Uint32(raw[0:4]) != schemaSignature {
		return false
	}
	count := binary.LittleEndian.Uint32(raw[12:16])
	if count == 0 || count > uint32(config.MaxCols) {
		return false
	}
	want := storedSchemaHeaderSize + 8*int(count)
	if len(raw) != want {
		return false
	}
	csn := binary.LittleEndian.Uint64(raw[4:12])
	if csn == 0 {
		return false
	}
	if !IsTableShove(key) {
		return false
	}
	wantSum := binary.LittleEndian.Uint64(raw[16:24])
	sum := xxhash.NewWithSeed(uint64(schemaChecksumSeed))
	sum.Write(raw[0:16])
	sum.Write(raw[storedSchemaHeaderSize:])
	if sum.Sum64() != wantSum {
		return false
	}
	_, columns := decodeStoredSchema(raw)
	return validateDefs(columns) == nil
}

// decodeStoredSchema parses a record already known (via validateStoredSchema)
// to be well-formed.
func decodeStoredSchema(raw []byte) (csn uint64, columns []Shove) {
	csn = binary.LittleEndian.Uint64(raw[4:12])
	count := binary.LittleEndian.Uint32(raw[12:16])
	columns = make([]Shove, count)
	for i := range columns {
		off := storedSchemaHeaderSize + 8*i
		columns[i] = Shove(binary.LittleEndian.Uint64(raw[off : off+8]))
	}
	return csn, columns
}

// TableSchema is the in-memory, immutable handle to one table's validated
// column set, as fetched from the catalog or freshly built by
// SchemaBuilder. It is reference-counted informally via Clone/Free the way
// the reference's fpta_table_schema is: once Free'd, the handle must not
// be used again, and this implementation poisons it to make a use-after-
// free cheap to catch in tests rather than silently reading stale data.
type TableSchema struct {
	tableShove Shove
	csn        uint64
	columns    []Shove // index 0 is always the primary key column
	freed      bool
}

// newTableSchema builds a TableSchema from an already-validated table
// name shove and ordered column list (ordering/invariants are
// ValidateSet's responsibility, not this constructor's).
func newTableSchema(tableShove Shove, csn uint64, columns []Shove) *TableSchema {
	cp := make([]Shove, len(columns))
	copy(cp, columns)
	return &TableSchema{tableShove: tableShove, csn: csn, columns: cp}
}

// TableShove returns the table's own name shove.
func (t *TableSchema) TableShove() Shove {
	if t.freed {
		return 0
	}
	return t.tableShove
}

// ColumnCount returns how many columns this table declares.
func (t *TableSchema) ColumnCount() int {
	if t.freed {
		return 0
	}
	return len(t.columns)
}

// ColumnShove returns column ordinal i's full shove (name hash, data type,
// index type folded in).
func (t *TableSchema) ColumnShove(i int) (Shove, error) {
	if t.freed {
		return 0, ErrNoData
	}
	if i < 0 || i >= len(t.columns) {
		return 0, ErrInvalidArg
	}
	return t.columns[i], nil
}

// TablePK returns the primary key column's shove — always ordinal 0
// (spec.md §4.4 invariant: primary-key-at-position-0).
func (t *TableSchema) TablePK() (Shove, error) {
	return t.ColumnShove(0)
}

// VersionCSN returns the schema change-sequence number this definition was
// last written at. NameRefresh does not consult it: it compares a Name's
// cached version against the transaction's SchemaVersion instead.
func (t *TableSchema) VersionCSN() uint64 {
	if t.freed {
		return 0
	}
	return t.csn
}

// Clone returns an independent copy of t, safe to Free separately.
func (t *TableSchema) Clone() *TableSchema {
	if t.freed {
		return nil
	}
	return newTableSchema(t.tableShove, t.csn, t.columns)
}

// Free releases t. Subsequent calls on t return zero values / ErrNoData
// rather than panicking, matching the reference's "safe to over-free"
// posture for a handle callers may hold onto past a transaction's end.
func (t *TableSchema) Free() {
	if t.freed {
		return
	}
	t.freed = true
	t.columns = nil
	t.tableShove = 0
	t.csn = 0
}
