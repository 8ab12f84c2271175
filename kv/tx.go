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

package kv

// Tx is a read-only (or read-level) transaction: a snapshot of the
// environment at a given db version. Tx is not threadsafe and must only be
// used by the goroutine that created it.
type Tx interface {
	// Level returns this transaction's privilege level (spec §5).
	Level() TxLevel

	// DbVersion is the environment's change-sequence number this
	// transaction observes — the snapshot identifier.
	DbVersion() uint64

	// SchemaVersion is the schema change-sequence number last committed
	// as of this transaction's snapshot. NameBinding.Refresh compares a
	// Name's cached version against this value.
	SchemaVersion() uint64

	// OpenDBI opens an existing sub-database by name. It never creates:
	// ErrNotFound is returned when no such sub-database exists. keyCmp and
	// dataCmp pin down the comparator the sub-database's ordering must
	// match; a mismatch against an already-open handle is a backend error.
	OpenDBI(name string, flags TableFlags, keyCmp, dataCmp Comparator) (DBI, error)

	// Get fetches the value stored under key in dbi. ErrNotFound if absent.
	Get(dbi DBI, key []byte) ([]byte, error)

	// Cursor opens a read cursor over dbi.
	Cursor(dbi DBI) (Cursor, error)
}

// RwTx is a read-write transaction. Only one RwTx may be open on an
// environment at a time; a Schema-level RwTx is additionally the
// environment's sole schema writer (spec §5).
type RwTx interface {
	Tx

	// CreateDBI opens or creates a sub-database by name. Equivalent to
	// OpenDBI with the Create flag folded into flags.
	CreateDBI(name string, flags TableFlags, keyCmp, dataCmp Comparator) (DBI, error)

	// DropDBI removes dbi and all of its data from the environment.
	DropDBI(dbi DBI) error

	// Put inserts or overwrites key -> value in dbi. noOverwrite requests
	// MDBX_NOOVERWRITE semantics: return an error (not overwrite) if key
	// already exists.
	Put(dbi DBI, key, value []byte, noOverwrite bool) error

	// Delete removes key from dbi. Deleting an absent key is not an error.
	Delete(dbi DBI, key []byte) error

	// SetSchemaVersion advances the schema version visible to later
	// transactions once this one commits. Only valid on a Schema-level tx.
	SetSchemaVersion(v uint64)
}

// Cursor walks a sub-database in key order. First/Next return (nil, nil,
// nil) once iteration is exhausted; an error return leaves k/v unspecified.
type Cursor interface {
	First() (k, v []byte, err error)
	Next() (k, v []byte, err error)
	Close()
}
