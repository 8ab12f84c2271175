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

// Package kv is the contract fpta programs against: a named-sub-database,
// cursor-based, multi-version ordered key/value store with user-supplied
// comparators. It is the MDBX-shaped collaborator that the schema core sits
// on top of — no implementation lives in this module; a real backend (MDBX,
// an in-memory fake for tests, ...) satisfies these interfaces.
//
// Naming follows erigon-lib/kv: Tx is a read-only transaction, RwTx is a
// read-write one, DBI is a sub-database handle opened within an Env.
package kv

import "errors"

// ErrNotFound is returned by Get/OpenDBI when the requested key or
// sub-database does not exist. Backends must map their own not-found
// condition (MDBX_NOTFOUND and friends) onto this sentinel.
var ErrNotFound = errors.New("kv: not found")

// ErrKeyExists is returned by Put when noOverwrite is set and key is
// already present (MDBX_KEYEXIST and friends).
var ErrKeyExists = errors.New("kv: key already exists")

// DBI is a sub-database handle within an environment, opaque to callers
// beyond equality comparison. Zero is never a valid open handle.
type DBI uint32

// TableFlags mirrors the handful of MDBX open-time flags fpta needs to
// request when materializing a table or secondary index. Bit values follow
// erigon-lib/kv's TableFlags (itself a thin restatement of the MDBX_db
// flags) so that a real MDBX backend can pass them straight through.
type TableFlags uint

const (
	Default    TableFlags = 0x00
	ReverseKey TableFlags = 0x02
	DupSort    TableFlags = 0x04
	IntegerKey TableFlags = 0x08
	DupFixed   TableFlags = 0x10
	IntegerDup TableFlags = 0x20
	ReverseDup TableFlags = 0x40
	Create     TableFlags = 0x40000
)

// Comparator identifies a key/value ordering function a sub-database was
// (or must be) opened with. Two sub-databases disagreeing on Comparator for
// the same data are not wire-compatible even if their TableFlags match.
type Comparator uint8

const (
	ComparatorDefault Comparator = iota
	ComparatorReverse
	ComparatorInteger
)

// TxLevel is the total order of transaction privilege: Read < Write <
// Schema. Only a Schema-level transaction may create or drop tables; it is
// also the sole schema writer. HandleCache in package fpta does not look at
// the level: it takes its mutex for every write, whatever the transaction.
type TxLevel uint8

const (
	Read TxLevel = iota
	Write
	Schema
)

func (l TxLevel) String() string {
	switch l {
	case Read:
		return "read"
	case Write:
		return "write"
	case Schema:
		return "schema"
	default:
		return "unknown"
	}
}
