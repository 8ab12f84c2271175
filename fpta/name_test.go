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

	"github.com/fpta-go/fpta/kv"
)

func TestOpenTableAndColumn(t *testing.T) {
	env, db := newTestDatabase(t)

	txn := env.Begin(kv.Schema)
	_, err := db.CreateTable(txn, "orders", ordersColumnSet(t))
	require.NoError(t, err)
	txn.Commit()

	rtxn := env.Begin(kv.Read)
	table, err := db.OpenTable(rtxn, "orders")
	require.NoError(t, err)
	assert.True(t, table.IsTable())

	column, err := db.OpenColumn(rtxn, table, "customer")
	require.NoError(t, err)
	ord, err := column.Ordinal()
	require.NoError(t, err)
	assert.Equal(t, 1, ord)
	rtxn.Rollback()
}

func TestNameRefreshAfterSchemaChange(t *testing.T) {
	env, db := newTestDatabase(t)

	txn := env.Begin(kv.Schema)
	_, err := db.CreateTable(txn, "orders", ordersColumnSet(t))
	require.NoError(t, err)
	txn.Commit()

	rtxn := env.Begin(kv.Read)
	table, err := db.OpenTable(rtxn, "orders")
	require.NoError(t, err)
	rtxn.Rollback()

	dtxn := env.Begin(kv.Schema)
	require.NoError(t, db.DropTable(dtxn, "orders"))
	dtxn.Commit()

	rtxn2 := env.Begin(kv.Read)
	err = db.NameRefresh(rtxn2, table)
	assert.ErrorIs(t, err, ErrNotFound)
	rtxn2.Rollback()
}

func TestNameRefreshIsNoopWithinSameSchemaVersion(t *testing.T) {
	env, db := newTestDatabase(t)

	txn := env.Begin(kv.Schema)
	_, err := db.CreateTable(txn, "orders", ordersColumnSet(t))
	require.NoError(t, err)
	txn.Commit()

	rtxn := env.Begin(kv.Read)
	table, err := db.OpenTable(rtxn, "orders")
	require.NoError(t, err)

	dbiBefore, err := table.DBI()
	require.NoError(t, err)

	require.NoError(t, db.NameRefresh(rtxn, table))
	dbiAfter, err := table.DBI()
	require.NoError(t, err)
	assert.Equal(t, dbiBefore, dbiAfter)
	rtxn.Rollback()
}

// TestNameRefreshFutureVersionIsSchemaChanged guards spec.md §4.6 step 2: a
// Name resolved against a schema version newer than what the current
// transaction observes (the post-rollback case a concurrent writer can leave
// behind) must never be silently re-resolved against the older snapshot.
func TestNameRefreshFutureVersionIsSchemaChanged(t *testing.T) {
	env, db := newTestDatabase(t)

	txn := env.Begin(kv.Schema)
	_, err := db.CreateTable(txn, "orders", ordersColumnSet(t))
	require.NoError(t, err)
	txn.Commit()

	rtxn := env.Begin(kv.Read)
	table, err := db.OpenTable(rtxn, "orders")
	require.NoError(t, err)
	rtxn.Rollback()

	table.resolvedAt++ // simulate a token bound ahead of this transaction's view

	rtxn2 := env.Begin(kv.Read)
	err = db.NameRefresh(rtxn2, table)
	assert.ErrorIs(t, err, ErrSchemaChanged)
	_, err = table.Ordinal()
	assert.ErrorIs(t, err, ErrSchemaChanged)
	rtxn2.Rollback()
}

func TestOpenSecondaries(t *testing.T) {
	env, db := newTestDatabase(t)

	txn := env.Begin(kv.Schema)
	_, err := db.CreateTable(txn, "orders", ordersColumnSet(t))
	require.NoError(t, err)
	txn.Commit()

	rtxn := env.Begin(kv.Read)
	table, err := db.OpenTable(rtxn, "orders")
	require.NoError(t, err)

	secondaries, err := db.OpenSecondaries(rtxn, table)
	require.NoError(t, err)
	require.Len(t, secondaries, 1)
	ord, err := secondaries[0].Ordinal()
	require.NoError(t, err)
	assert.Equal(t, 1, ord)
	rtxn.Rollback()
}

func TestTableColumnGet(t *testing.T) {
	cols := testColumns()
	schema := newTableSchema(ShoveName("widgets", RoleTable), 1, cols)
	defer schema.Free()

	column, err := ColumnInit(&Name{shove: schema.TableShove(), tableShove: schema.TableShove()}, "name")
	require.NoError(t, err)

	ord, err := TableColumnGet(schema, column)
	require.NoError(t, err)
	assert.Equal(t, 1, ord)

	missing, err := ColumnInit(&Name{shove: schema.TableShove(), tableShove: schema.TableShove()}, "bogus")
	require.NoError(t, err)
	_, err = TableColumnGet(schema, missing)
	assert.ErrorIs(t, err, ErrColumnMissing)
}
