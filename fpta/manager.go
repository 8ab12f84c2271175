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
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fpta-go/fpta/config"
	"github.com/fpta-go/fpta/internal/safeint"
	"github.com/fpta-go/fpta/kv"
)

// Database is the process-local handle-cache core bound to one KVS
// environment's schema sub-database — spec.md §4.2/§4.5. It owns the
// HandleCache and the schema DBI handle; callers pass it a transaction
// for every operation rather than it owning one itself, matching
// erigon-lib/kv's Tx-per-call style (other_examples kv_interface.go).
type Database struct {
	schemaDBI kv.DBI
	cache     *HandleCache
	log       logrus.FieldLogger
}

// NewDatabase wires up a Database over an already-open schema DBI. geo
// sizes the HandleCache (spec.md §6); log is used only at the operation
// boundaries named in SPEC_FULL.md's logging section, never on a cache
// hit path.
func NewDatabase(schemaDBI kv.DBI, geo config.Geometry, log logrus.FieldLogger) *Database {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Database{
		schemaDBI: schemaDBI,
		cache:     NewHandleCache(geo.CacheSize(), log),
		log:       log,
	}
}

// catalogDBIName is the rendering of the zero shove — spec.md §6's "named
// by the rendering of the zero shove (yielding \"@\")" requirement for the
// catalog sub-database.
const catalogDBIName = "@"

// OpenSchemaDBI opens (creating if absent) the one distinguished catalog
// sub-database a Database is built over — integer-keyed, per spec.md §6.
// txn must be at schema level when the catalog does not yet exist.
func OpenSchemaDBI(txn kv.RwTx) (kv.DBI, error) {
	return txn.CreateDBI(catalogDBIName, kv.IntegerKey, kv.ComparatorInteger, kv.ComparatorDefault)
}

func keyBytes(shove Shove) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(shove))
	return b[:]
}

func shoveFromKey(k []byte) (Shove, error) {
	if len(k) != 8 {
		return 0, ErrSchemaCorrupted
	}
	return Shove(binary.LittleEndian.Uint64(k)), nil
}

// indexedPrefixLen returns how many of columns' leading entries are indexed
// (primary or secondary) — by the validate_defs invariant (spec.md §3/§4.4)
// these always form a prefix, so only they own a sub-database; the
// remaining, non-indexed columns live inline in the primary storage's row
// tuple and never get a DbiShove of their own.
func indexedPrefixLen(columns []Shove) int {
	n := 0
	for _, col := range columns {
		if !IsIndexed(Shove2Index(col)) {
			break
		}
		n++
	}
	return n
}

// CreateTable implements spec.md §4.5's create protocol: an existence
// pre-check pass over every indexed column's sub-database name, then a
// create pass that opens one sub-database per indexed column (ordinal 0 is
// the table's own primary storage, 1..N its secondary indexes), persists
// the catalog record, and advances the schema version. Any failure during
// the create pass unwinds everything already created and returns an
// internalAbort-wrapped error — callers never observe a half-created table.
func (db *Database) CreateTable(txn kv.RwTx, name string, set *ColumnSet) (*TableSchema, error) {
	if txn.Level() < kv.Schema {
		return nil, fmt.Errorf("fpta: CreateTable requires a schema-level transaction: %w", ErrInvalidArg)
	}
	if !ValidateName(name) {
		return nil, ErrInvalidArg
	}
	if err := ValidateSet(set); err != nil {
		return nil, err
	}

	tableShove := ShoveName(name, RoleTable)
	if _, err := txn.Get(db.schemaDBI, keyBytes(tableShove)); err == nil {
		return nil, ErrAlreadyExists
	} else if err != kv.ErrNotFound {
		return nil, err
	}

	columns := set.Columns()
	indexed := indexedPrefixLen(columns)

	for i := 0; i < indexed; i++ {
		dbiShove := DbiShove(tableShove, i)
		if _, err := txn.OpenDBI(ShoveToDBIName(dbiShove), DBIFlags(columns[i]), Comparator(columns[i]), kv.ComparatorDefault); err != kv.ErrNotFound {
			if err == nil {
				return nil, ErrAlreadyExists
			}
			return nil, err
		}
	}

	opened := make([]kv.DBI, 0, indexed)

	rollback := func(cause error) error {
		for i, dbi := range opened {
			db.cache.Remove(DbiShove(tableShove, i))
			if dropErr := txn.DropDBI(dbi); dropErr != nil {
				db.log.WithError(dropErr).Warn("fpta: CreateTable rollback failed to drop sub-database")
			}
		}
		return internalAbort(cause, "CreateTable")
	}

	for i := 0; i < indexed; i++ {
		col := columns[i]
		dbiShove := DbiShove(tableShove, i)
		dbi, err := txn.CreateDBI(ShoveToDBIName(dbiShove), DBIFlags(col), Comparator(col), kv.ComparatorDefault)
		if err != nil {
			return nil, rollback(err)
		}
		opened = append(opened, dbi)
		db.cache.Update(dbiShove, dbi)
	}

	csn, overflow := safeint.SafeAdd(txn.SchemaVersion(), 1)
	if overflow {
		return nil, internalAbort(ErrInternal, "CreateTable: schema version counter exhausted")
	}
	record := encodeStoredSchema(csn, columns)
	if err := txn.Put(db.schemaDBI, keyBytes(tableShove), record, true); err != nil {
		return nil, rollback(err)
	}
	txn.SetSchemaVersion(csn)

	db.log.WithFields(logrus.Fields{"table": name, "columns": len(columns), "csn": csn}).Info("fpta: table created")
	return newTableSchema(tableShove, csn, columns), nil
}

// DropTable implements spec.md §4.5's drop protocol: drop every indexed
// column's sub-database (primary storage plus secondaries), remove the
// catalog record, evict every affected shove from the HandleCache, and
// advance the schema version.
func (db *Database) DropTable(txn kv.RwTx, name string) error {
	if txn.Level() < kv.Schema {
		return fmt.Errorf("fpta: DropTable requires a schema-level transaction: %w", ErrInvalidArg)
	}
	if !ValidateName(name) {
		return ErrInvalidArg
	}

	tableShove := ShoveName(name, RoleTable)
	raw, err := txn.Get(db.schemaDBI, keyBytes(tableShove))
	if err == kv.ErrNotFound {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	if !validateStoredSchema(tableShove, raw) {
		return ErrSchemaCorrupted
	}
	_, columns := decodeStoredSchema(raw)
	indexed := indexedPrefixLen(columns)

	for i := 0; i < indexed; i++ {
		col := columns[i]
		dbiShove := DbiShove(tableShove, i)
		dbi, lookupErr := db.cache.Lookup(dbiShove)
		if !lookupErr {
			dbi, err = txn.OpenDBI(ShoveToDBIName(dbiShove), DBIFlags(col), Comparator(col), kv.ComparatorDefault)
			if err == kv.ErrNotFound {
				// Already absent — spec.md §4.5 step 3 treats this as fine,
				// not a corrupted catalog.
				db.cache.Remove(dbiShove)
				continue
			}
			if err != nil {
				return internalAbort(err, "DropTable")
			}
		}
		if err := txn.DropDBI(dbi); err != nil {
			return internalAbort(err, "DropTable")
		}
		db.cache.Remove(dbiShove)
	}

	if err := txn.Delete(db.schemaDBI, keyBytes(tableShove)); err != nil {
		return internalAbort(err, "DropTable")
	}
	nextCSN, overflow := safeint.SafeAdd(txn.SchemaVersion(), 1)
	if overflow {
		return internalAbort(ErrInternal, "DropTable: schema version counter exhausted")
	}
	txn.SetSchemaVersion(nextCSN)

	db.log.WithField("table", name).Info("fpta: table dropped")
	return nil
}

// SchemaInfo is a snapshot of every table currently in the catalog, as
// fetched by Fetch. Destroy releases every TableSchema it holds.
type SchemaInfo struct {
	tables []*TableSchema
}

// TableCount returns how many tables the snapshot holds.
func (si *SchemaInfo) TableCount() int { return len(si.tables) }

// Table returns the i'th table's schema handle.
func (si *SchemaInfo) Table(i int) (*TableSchema, error) {
	if i < 0 || i >= len(si.tables) {
		return nil, ErrInvalidArg
	}
	return si.tables[i], nil
}

// Destroy frees every TableSchema held by si. si must not be used again
// afterward.
func (si *SchemaInfo) Destroy() {
	for _, t := range si.tables {
		t.Free()
	}
	si.tables = nil
}

// Fetch walks the schema DBI and decodes every table's catalog record into
// a SchemaInfo snapshot — spec.md §4.3/§4.5. More than config.MaxTables
// records is treated as a corrupted catalog rather than an unbounded read.
func (db *Database) Fetch(txn kv.Tx) (*SchemaInfo, error) {
	cur, err := txn.Cursor(db.schemaDBI)
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	info := &SchemaInfo{}
	k, v, err := cur.First()
	for k != nil && err == nil {
		if len(info.tables) >= config.MaxTables {
			info.Destroy()
			return nil, ErrSchemaCorrupted
		}
		tableShove, kerr := shoveFromKey(k)
		if kerr != nil {
			info.Destroy()
			return nil, ErrSchemaCorrupted
		}
		if !validateStoredSchema(tableShove, v) {
			info.Destroy()
			return nil, ErrSchemaCorrupted
		}
		csn, columns := decodeStoredSchema(v)
		info.tables = append(info.tables, newTableSchema(tableShove, csn, columns))
		k, v, err = cur.Next()
	}
	if err != nil {
		info.Destroy()
		return nil, err
	}
	return info, nil
}
