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

// Name is a caller-held token naming a table or a column of a table,
// lazily bound to a concrete kv.DBI — spec.md §4.6 "NameBinding". A
// table-level Name is its own parent (tableShove == shove), the
// self-parent sentinel ColumnInit uses to tell a bare table Name from a
// column Name at a glance.
//
// A Name is not threadsafe and is meant to be held by one goroutine across
// a sequence of transactions, re-resolving itself against each one via
// Refresh — the whole point being that a caller can cache a Name across
// many short transactions without re-parsing the column's string name
// every time.
type Name struct {
	shove      Shove
	tableShove Shove
	ordinal    int
	resolvedAt uint64
	valid      bool
	hasDBI     bool
	dbi        kv.DBI
}

// TableInit parses name into a table-level Name. The Name is not yet bound
// to a DBI; call Database.NameRefresh (or OpenTable) before using it
// against a transaction.
func TableInit(name string) (*Name, error) {
	if !ValidateName(name) {
		return nil, ErrInvalidArg
	}
	s := ShoveName(name, RoleTable)
	return &Name{shove: s, tableShove: s}, nil
}

// ColumnInit parses columnName into a Name scoped to table — table must
// already be a successfully-initialized table-level Name.
func ColumnInit(table *Name, columnName string) (*Name, error) {
	if table == nil || table.shove != table.tableShove {
		return nil, ErrInvalidArg
	}
	if !ValidateName(columnName) {
		return nil, ErrInvalidArg
	}
	s := ShoveName(columnName, RoleColumn)
	return &Name{shove: s, tableShove: table.tableShove}, nil
}

// NameDestroy releases n. n must not be used again afterward.
func NameDestroy(n *Name) {
	if n == nil {
		return
	}
	*n = Name{}
}

// IsTable reports whether n names a table rather than a column.
func (n *Name) IsTable() bool { return n.shove == n.tableShove }

// Ordinal returns the column's position within its table's schema (0 is
// always the primary key). Valid only after a successful Refresh.
func (n *Name) Ordinal() (int, error) {
	if !n.valid {
		return 0, ErrSchemaChanged
	}
	return n.ordinal, nil
}

// DBI returns n's resolved sub-database handle. Valid only after a
// successful Refresh against the transaction the caller is about to use
// it with. A Name bound to a non-indexed column has no sub-database of its
// own (its value lives inline in the primary storage's row) and DBI always
// returns ErrNoData for it.
func (n *Name) DBI() (kv.DBI, error) {
	if !n.valid {
		return 0, ErrSchemaChanged
	}
	if !n.hasDBI {
		return 0, ErrNoData
	}
	return n.dbi, nil
}

func (db *Database) lookupTable(txn kv.Tx, tableShove Shove) (csn uint64, columns []Shove, err error) {
	raw, err := txn.Get(db.schemaDBI, keyBytes(tableShove))
	if err == kv.ErrNotFound {
		return 0, nil, ErrNotFound
	}
	if err != nil {
		return 0, nil, err
	}
	if !validateStoredSchema(tableShove, raw) {
		return 0, nil, ErrSchemaCorrupted
	}
	csn, columns = decodeStoredSchema(raw)
	return csn, columns, nil
}

func (db *Database) resolveDBI(txn kv.Tx, dbiShove Shove, col Shove) (kv.DBI, error) {
	return db.cache.Resolve(dbiShove, func() (kv.DBI, error) {
		return txn.OpenDBI(ShoveToDBIName(dbiShove), DBIFlags(col), Comparator(col), kv.ComparatorDefault)
	})
}

// NameRefresh implements spec.md §4.6's versioned refresh protocol: if n
// was already resolved as of txn's current schema version, this is a
// no-op; otherwise n is re-resolved against the table's current catalog
// record. A table or column that is absent from the catalog as of txn
// (dropped since n was last resolved, or never created) yields
// ErrNotFound; a Name resolved against a schema version newer than txn
// observes yields ErrSchemaChanged.
func (db *Database) NameRefresh(txn kv.Tx, n *Name) error {
	if n == nil {
		return ErrInvalidArg
	}
	if n.resolvedAt > txn.SchemaVersion() {
		// n was resolved against a schema version this transaction cannot
		// see (e.g. a concurrent writer's change was rolled back after n
		// was bound) — never silently re-resolve against the older snapshot.
		n.valid = false
		return ErrSchemaChanged
	}
	if n.valid && n.resolvedAt == txn.SchemaVersion() {
		return nil
	}

	_, columns, err := db.lookupTable(txn, n.tableShove)
	if err != nil {
		n.valid = false
		return err
	}
	ver := txn.SchemaVersion()

	if n.IsTable() {
		if len(columns) == 0 {
			n.valid = false
			return ErrSchemaCorrupted
		}
		// The primary index IS the table itself (spec.md §4.6): ordinal 0
		// always owns a sub-database, regardless of how the PK is indexed.
		dbiShove := DbiShove(n.tableShove, 0)
		dbi, err := db.resolveDBI(txn, dbiShove, columns[0])
		if err != nil {
			n.valid = false
			return err
		}
		n.dbi, n.hasDBI, n.ordinal, n.resolvedAt, n.valid = dbi, true, 0, ver, true
		return nil
	}

	for i, col := range columns {
		if !NameEqual(col, n.shove) {
			continue
		}
		n.shove = col // pick up a changed data/index type for the same name
		if !IsIndexed(Shove2Index(col)) {
			// A plain, non-indexed column has no sub-database of its own —
			// its value lives inline in the primary storage's row tuple.
			n.dbi, n.hasDBI, n.ordinal, n.resolvedAt, n.valid = 0, false, i, ver, true
			return nil
		}
		dbiShove := DbiShove(n.tableShove, i)
		dbi, err := db.resolveDBI(txn, dbiShove, col)
		if err != nil {
			n.valid = false
			return err
		}
		n.dbi, n.hasDBI, n.ordinal, n.resolvedAt, n.valid = dbi, true, i, ver, true
		return nil
	}

	n.valid = false
	return ErrNotFound
}

// RefreshCouple refreshes a column Name together with its owning table
// Name in one call — the common case of resolving both before a row
// operation that needs the table's primary DBI and one column's DBI
// against the same transaction snapshot.
func (db *Database) RefreshCouple(txn kv.Tx, table, column *Name) error {
	if err := db.NameRefresh(txn, table); err != nil {
		return err
	}
	if column != nil {
		if err := db.NameRefresh(txn, column); err != nil {
			return err
		}
	}
	return nil
}

// OpenTable initializes and refreshes a table-level Name in one call.
func (db *Database) OpenTable(txn kv.Tx, name string) (*Name, error) {
	n, err := TableInit(name)
	if err != nil {
		return nil, err
	}
	if err := db.NameRefresh(txn, n); err != nil {
		return nil, err
	}
	return n, nil
}

// OpenColumn initializes and refreshes a column-level Name scoped to
// table in one call.
func (db *Database) OpenColumn(txn kv.Tx, table *Name, columnName string) (*Name, error) {
	n, err := ColumnInit(table, columnName)
	if err != nil {
		return nil, err
	}
	if err := db.NameRefresh(txn, n); err != nil {
		return nil, err
	}
	return n, nil
}

// OpenSecondaries resolves a Name for every secondary index table declares,
// in schema-declaration order. table must already be a refreshed
// table-level Name.
func (db *Database) OpenSecondaries(txn kv.Tx, table *Name) ([]*Name, error) {
	if !table.valid || table.resolvedAt != txn.SchemaVersion() {
		if err := db.NameRefresh(txn, table); err != nil {
			return nil, err
		}
	}
	_, columns, err := db.lookupTable(txn, table.tableShove)
	if err != nil {
		return nil, err
	}

	var out []*Name
	for i, col := range columns {
		if i == 0 || !IsIndexed(Shove2Index(col)) {
			continue
		}
		dbiShove := DbiShove(table.tableShove, i)
		dbi, err := db.resolveDBI(txn, dbiShove, col)
		if err != nil {
			return nil, err
		}
		out = append(out, &Name{
			shove:      col,
			tableShove: table.tableShove,
			ordinal:    i,
			resolvedAt: table.resolvedAt,
			valid:      true,
			hasDBI:     true,
			dbi:        dbi,
		})
	}
	return out, nil
}

// TableColumnGet returns the column ordinal within schema matching the
// name-equality half of column's shove — it translates a Name into the
// ordinal that package tuple's Row.Lookup takes, without needing a live
// transaction.
func TableColumnGet(schema *TableSchema, column *Name) (int, error) {
	if schema == nil || column == nil {
		return 0, ErrInvalidArg
	}
	for i := 0; i < schema.ColumnCount(); i++ {
		col, err := schema.ColumnShove(i)
		if err != nil {
			return 0, err
		}
		if NameEqual(col, column.shove) {
			return i, nil
		}
	}
	return 0, ErrColumnMissing
}
