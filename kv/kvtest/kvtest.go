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

// Package kvtest is an in-memory fake of package kv, good enough to drive
// package fpta's tests without a real MDBX environment — the test-tooling
// counterpart SPEC_FULL.md's ambient stack section calls for, grounded on
// erigon-lib/kv's own mdbx/memdb split (a real backend and a lightweight
// in-memory one sharing the same Tx/RwTx contract).
package kvtest

import (
	"bytes"
	"sort"
	"sync"

	"github.com/fpta-go/fpta/kv"
)

type table struct {
	name  string
	flags kv.TableFlags
	keyCmp, dataCmp kv.Comparator
	rows  map[string][]byte
}

// Env is an in-memory environment: a set of named sub-databases plus the
// schema/db version counters a real MDBX environment would track.
//
// writerMu enforces single-writer-at-a-time and is held for the lifetime
// of a Write/Schema transaction; dataMu separately guards the tables/
// dbiNames maps against the (rare, test-only) concurrent reader. The two
// are distinct because a write transaction's own calls must be able to
// take dataMu repeatedly without deadlocking against the lock it took at
// Begin.
type Env struct {
	writerMu sync.Mutex
	dataMu   sync.Mutex

	tables        map[string]*table
	nextDBI       kv.DBI
	dbiNames      map[kv.DBI]string
	dbVersion     uint64
	schemaVersion uint64
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{
		tables:   make(map[string]*table),
		dbiNames: make(map[kv.DBI]string),
		nextDBI:  1,
	}
}

// Begin starts a new transaction at the given privilege level. Only one
// write-level (Write or Schema) transaction may be open at a time; Begin
// blocks until any prior one has ended via Commit/Rollback.
func (e *Env) Begin(level kv.TxLevel) *Tx {
	if level >= kv.Write {
		e.writerMu.Lock()
	}
	e.dataMu.Lock()
	e.dbVersion++
	dbVer := e.dbVersion
	schemaVer := e.schemaVersion
	e.dataMu.Unlock()
	return &Tx{env: e, level: level, dbVer: dbVer, schemaVer: schemaVer}
}

// Tx is an in-memory transaction. Writes are applied directly to the
// environment's tables (no isolation/MVCC — this fake is for exercising
// package fpta's logic, not for testing concurrency semantics).
type Tx struct {
	env       *Env
	level     kv.TxLevel
	dbVer     uint64
	schemaVer uint64
	ended     bool
}

var _ kv.Tx = (*Tx)(nil)
var _ kv.RwTx = (*Tx)(nil)

func (t *Tx) Level() kv.TxLevel     { return t.level }
func (t *Tx) DbVersion() uint64     { return t.dbVer }
func (t *Tx) SchemaVersion() uint64 { return t.schemaVer }

// SetSchemaVersion advances the schema version that later transactions
// will observe once this one Commits.
func (t *Tx) SetSchemaVersion(v uint64) { t.schemaVer = v }

// Commit ends a write-level transaction, publishing its schema version.
func (t *Tx) Commit() {
	if t.ended {
		return
	}
	t.ended = true
	if t.level >= kv.Write {
		t.env.dataMu.Lock()
		t.env.schemaVersion = t.schemaVer
		t.env.dataMu.Unlock()
		t.env.writerMu.Unlock()
	}
}

// Rollback ends a write-level transaction without publishing its changes
// to table membership's schema version counter. Row mutations already
// applied to the shared maps are NOT undone by this fake; package fpta
// never relies on row-level rollback, only on its own explicit
// create/drop unwinding.
func (t *Tx) Rollback() {
	if t.ended {
		return
	}
	t.ended = true
	if t.level >= kv.Write {
		t.env.writerMu.Unlock()
	}
}

func (t *Tx) find(name string) (*table, kv.DBI, bool) {
	t.env.dataMu.Lock()
	defer t.env.dataMu.Unlock()
	tb, ok := t.env.tables[name]
	if !ok {
		return nil, 0, false
	}
	for dbi, n := range t.env.dbiNames {
		if n == name {
			return tb, dbi, true
		}
	}
	return nil, 0, false
}

func (t *Tx) byDBI(dbi kv.DBI) (*table, bool) {
	t.env.dataMu.Lock()
	defer t.env.dataMu.Unlock()
	name, ok := t.env.dbiNames[dbi]
	if !ok {
		return nil, false
	}
	tb := t.env.tables[name]
	return tb, tb != nil
}

func (t *Tx) OpenDBI(name string, flags kv.TableFlags, keyCmp, dataCmp kv.Comparator) (kv.DBI, error) {
	_, dbi, ok := t.find(name)
	if !ok {
		return 0, kv.ErrNotFound
	}
	return dbi, nil
}

func (t *Tx) CreateDBI(name string, flags kv.TableFlags, keyCmp, dataCmp kv.Comparator) (kv.DBI, error) {
	t.env.dataMu.Lock()
	defer t.env.dataMu.Unlock()
	if _, ok := t.env.tables[name]; ok {
		for dbi, n := range t.env.dbiNames {
			if n == name {
				return dbi, nil
			}
		}
	}
	dbi := t.env.nextDBI
	t.env.nextDBI++
	t.env.tables[name] = &table{name: name, flags: flags, keyCmp: keyCmp, dataCmp: dataCmp, rows: make(map[string][]byte)}
	t.env.dbiNames[dbi] = name
	return dbi, nil
}

func (t *Tx) DropDBI(dbi kv.DBI) error {
	t.env.dataMu.Lock()
	defer t.env.dataMu.Unlock()
	name, ok := t.env.dbiNames[dbi]
	if !ok {
		return kv.ErrNotFound
	}
	delete(t.env.tables, name)
	delete(t.env.dbiNames, dbi)
	return nil
}

func (t *Tx) Get(dbi kv.DBI, key []byte) ([]byte, error) {
	tb, ok := t.byDBI(dbi)
	if !ok {
		return nil, kv.ErrNotFound
	}
	t.env.dataMu.Lock()
	defer t.env.dataMu.Unlock()
	v, ok := tb.rows[string(key)]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return v, nil
}

func (t *Tx) Put(dbi kv.DBI, key, value []byte, noOverwrite bool) error {
	tb, ok := t.byDBI(dbi)
	if !ok {
		return kv.ErrNotFound
	}
	t.env.dataMu.Lock()
	defer t.env.dataMu.Unlock()
	if noOverwrite {
		if _, exists := tb.rows[string(key)]; exists {
			return kv.ErrKeyExists
		}
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	tb.rows[string(key)] = cp
	return nil
}

func (t *Tx) Delete(dbi kv.DBI, key []byte) error {
	tb, ok := t.byDBI(dbi)
	if !ok {
		return kv.ErrNotFound
	}
	t.env.dataMu.Lock()
	defer t.env.dataMu.Unlock()
	delete(tb.rows, string(key))
	return nil
}

func (t *Tx) Cursor(dbi kv.DBI) (kv.Cursor, error) {
	tb, ok := t.byDBI(dbi)
	if !ok {
		return nil, kv.ErrNotFound
	}
	t.env.dataMu.Lock()
	keys := make([]string, 0, len(tb.rows))
	for k := range tb.rows {
		keys = append(keys, k)
	}
	t.env.dataMu.Unlock()
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare([]byte(keys[i]), []byte(keys[j])) < 0 })
	return &cursor{tb: tb, keys: keys, pos: -1}, nil
}

type cursor struct {
	tb   *table
	keys []string
	pos  int
}

func (c *cursor) First() ([]byte, []byte, error) {
	c.pos = 0
	return c.current()
}

func (c *cursor) Next() ([]byte, []byte, error) {
	c.pos++
	return c.current()
}

func (c *cursor) current() ([]byte, []byte, error) {
	if c.pos < 0 || c.pos >= len(c.keys) {
		return nil, nil, nil
	}
	k := c.keys[c.pos]
	return []byte(k), c.tb.rows[k], nil
}

func (c *cursor) Close() {}
