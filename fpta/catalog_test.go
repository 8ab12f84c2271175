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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testColumns() []Shove {
	return []Shove{
		ColumnShove(ShoveName("id", RoleColumn), TypeUint64, PrimaryUniqueOrderedObverse),
		ColumnShove(ShoveName("name", RoleColumn), TypeCString, NoIndexNullable),
	}
}

func TestStoredSchemaRoundTrip(t *testing.T) {
	cols := testColumns()
	tableShove := ShoveName("widgets", RoleTable)
	raw := encodeStoredSchema(7, cols)
	require.True(t, validateStoredSchema(tableShove, raw))

	csn, decoded := decodeStoredSchema(raw)
	assert.Equal(t, uint64(7), csn)
	assert.Equal(t, cols, decoded)
}

func TestStoredSchemaRejectsCorruption(t *testing.T) {
	tableShove := ShoveName("widgets", RoleTable)
	raw := encodeStoredSchema(1, testColumns())
	raw[len(raw)-1] ^= 0xFF // flip a byte inside the last column shove
	assert.False(t, validateStoredSchema(tableShove, raw))
}

func TestStoredSchemaRejectsBadSignature(t *testing.T) {
	tableShove := ShoveName("widgets", RoleTable)
	raw := encodeStoredSchema(1, testColumns())
	raw[0] ^= 0xFF
	assert.False(t, validateStoredSchema(tableShove, raw))
}

func TestStoredSchemaRejectsTruncated(t *testing.T) {
	tableShove := ShoveName("widgets", RoleTable)
	raw := encodeStoredSchema(1, testColumns())
	assert.False(t, validateStoredSchema(tableShove, raw[:len(raw)-1]))
}

func TestStoredSchemaRejectsZeroCSN(t *testing.T) {
	tableShove := ShoveName("widgets", RoleTable)
	raw := encodeStoredSchema(0, testColumns())
	assert.False(t, validateStoredSchema(tableShove, raw))
}

func TestStoredSchemaRejectsNonTableKey(t *testing.T) {
	columnShove := ShoveName("widgets", RoleColumn)
	raw := encodeStoredSchema(1, testColumns())
	assert.False(t, validateStoredSchema(columnShove, raw))
}

func TestStoredSchemaRejectsInvalidColumnOrder(t *testing.T) {
	tableShove := ShoveName("widgets", RoleTable)
	// Two non-indexed columns: no primary key, which validateDefs rejects —
	// a checksum-valid record can still carry a corrupted column set.
	cols := []Shove{
		ColumnShove(ShoveName("a", RoleColumn), TypeUint64, NoIndexNullable),
		ColumnShove(ShoveName("b", RoleColumn), TypeUint64, NoIndexNullable),
	}
	raw := encodeStoredSchema(1, cols)
	assert.False(t, validateStoredSchema(tableShove, raw))
}

func TestTableSchemaAccessorsAndFree(t *testing.T) {
	cols := testColumns()
	tableShove := ShoveName("widgets", RoleTable)
	ts := newTableSchema(tableShove, 3, cols)

	assert.Equal(t, tableShove, ts.TableShove())
	assert.Equal(t, 2, ts.ColumnCount())
	assert.Equal(t, uint64(3), ts.VersionCSN())

	pk, err := ts.TablePK()
	require.NoError(t, err)
	assert.Equal(t, cols[0], pk)

	ts.Free()
	assert.Equal(t, 0, ts.ColumnCount())
	_, err = ts.ColumnShove(0)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestTableSchemaCloneIsIndependent(t *testing.T) {
	cols := testColumns()
	ts := newTableSchema(ShoveName("widgets", RoleTable), 1, cols)
	clone := ts.Clone()
	ts.Free()

	assert.Equal(t, 2, clone.ColumnCount())
	clone.Free()
}
