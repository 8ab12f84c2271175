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

	"github.com/fpta-go/fpta/config"
	"github.com/fpta-go/fpta/kv"
	"github.com/fpta-go/fpta/kv/kvtest"
)

func newTestDatabase(t *testing.T) (*kvtest.Env, *Database) {
	t.Helper()
	env := kvtest.NewEnv()
	txn := env.Begin(kv.Schema)
	schemaDBI, err := OpenSchemaDBI(txn)
	require.NoError(t, err)
	txn.Commit()
	return env, NewDatabase(schemaDBI, config.Geometry{}, nil)
}

func ordersColumnSet(t *testing.T) *ColumnSet {
	t.Helper()
	var set ColumnSet
	require.NoError(t, DescribeColumn("id", TypeUint64, PrimaryUniqueOrderedObverse, &set))
	require.NoError(t, DescribeColumn("customer", TypeCString, SecondaryWithDupsOrderedObverse, &set))
	require.NoError(t, ValidateSet(&set))
	return &set
}

func ordersWithNoteColumnSet(t *testing.T) *ColumnSet {
	t.Helper()
	var set ColumnSet
	require.NoError(t, DescribeColumn("id", TypeUint64, PrimaryUniqueOrderedObverse, &set))
	require.NoError(t, DescribeColumn("customer", TypeCString, SecondaryWithDupsOrderedObverse, &set))
	require.NoError(t, DescribeColumn("note", TypeCString, NoIndexNullable, &set))
	require.NoError(t, ValidateSet(&set))
	return &set
}

// TestCreateDropWithNonIndexedColumn guards against a non-indexed trailing
// column (which owns no sub-database of its own — its value lives inline in
// the primary storage's row) being mistaken for an indexed one during
// CreateTable/DropTable's sub-database open/drop passes.
func TestCreateDropWithNonIndexedColumn(t *testing.T) {
	env, db := newTestDatabase(t)

	txn := env.Begin(kv.Schema)
	schema, err := db.CreateTable(txn, "orders", ordersWithNoteColumnSet(t))
	require.NoError(t, err)
	assert.Equal(t, 3, schema.ColumnCount())
	txn.Commit()

	rtxn := env.Begin(kv.Read)
	table, err := db.OpenTable(rtxn, "orders")
	require.NoError(t, err)
	note, err := db.OpenColumn(rtxn, table, "note")
	require.NoError(t, err)
	ord, err := note.Ordinal()
	require.NoError(t, err)
	assert.Equal(t, 2, ord)
	_, err = note.DBI()
	assert.ErrorIs(t, err, ErrNoData)
	rtxn.Rollback()

	dtxn := env.Begin(kv.Schema)
	require.NoError(t, db.DropTable(dtxn, "orders"))
	dtxn.Commit()
}

func TestCreateFetchDropCycle(t *testing.T) {
	env, db := newTestDatabase(t)

	txn := env.Begin(kv.Schema)
	schema, err := db.CreateTable(txn, "orders", ordersColumnSet(t))
	require.NoError(t, err)
	assert.Equal(t, 2, schema.ColumnCount())
	txn.Commit()

	rtxn := env.Begin(kv.Read)
	info, err := db.Fetch(rtxn)
	require.NoError(t, err)
	assert.Equal(t, 1, info.TableCount())
	info.Destroy()
	rtxn.Rollback()

	dtxn := env.Begin(kv.Schema)
	require.NoError(t, db.DropTable(dtxn, "orders"))
	dtxn.Commit()

	rtxn2 := env.Begin(kv.Read)
	info2, err := db.Fetch(rtxn2)
	require.NoError(t, err)
	assert.Equal(t, 0, info2.TableCount())
	info2.Destroy()
	rtxn2.Rollback()
}

func TestCreateTableCollision(t *testing.T) {
	env, db := newTestDatabase(t)

	txn := env.Begin(kv.Schema)
	_, err := db.CreateTable(txn, "orders", ordersColumnSet(t))
	require.NoError(t, err)
	txn.Commit()

	txn2 := env.Begin(kv.Schema)
	_, err = db.CreateTable(txn2, "orders", ordersColumnSet(t))
	assert.ErrorIs(t, err, ErrAlreadyExists)
	txn2.Commit()
}

func TestDropTableNotFound(t *testing.T) {
	env, db := newTestDatabase(t)
	txn := env.Begin(kv.Schema)
	err := db.DropTable(txn, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	txn.Commit()
}

func TestCreateTableRequiresSchemaLevel(t *testing.T) {
	env, db := newTestDatabase(t)
	txn := env.Begin(kv.Read)
	_, err := db.CreateTable(txn, "orders", ordersColumnSet(t))
	assert.Error(t, err)
	txn.Rollback()
}

func TestCreateTableRejectsInvalidColumnSet(t *testing.T) {
	env, db := newTestDatabase(t)
	var set ColumnSet
	require.NoError(t, DescribeColumn("a", TypeUint64, IndexNone, &set))
	require.NoError(t, DescribeColumn("b", TypeUint64, IndexNone, &set))

	txn := env.Begin(kv.Schema)
	_, err := db.CreateTable(txn, "bad", &set)
	assert.ErrorIs(t, err, ErrInvalidArg)
	txn.Commit()
}
