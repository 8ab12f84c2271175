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

// Package fpta is the schema and handle-cache core of a typed table
// library layered on top of an ordered, MDBX-shaped key/value store
// (package kv). It covers:
//
//   - name encoding and fingerprinting into a packed Shove identifier,
//     and the fixed-alphabet rendering of a Shove into a sub-database
//     name (shove.go);
//   - the closed IndexType/DataType algebra describing what index and
//     value-type combinations a column may declare (indextype.go);
//   - deriving a column's kv.TableFlags and comparator from its shove
//     (dbi.go);
//   - a process-local HandleCache mapping shoves to open kv.DBI handles
//     (cache.go);
//   - the on-disk catalog record format and its integrity checking
//     (catalog.go);
//   - ColumnSet, the schema-definition and validation protocol a caller
//     builds a table definition with (columnset.go);
//   - Database, the SchemaManager create/drop/fetch protocol
//     (manager.go);
//   - Name, the versioned name-binding refresh protocol that lets a
//     caller hold a table/column handle across many short transactions
//     (name.go).
//
// Row encoding/decoding and the underlying KVS implementation are both
// out of scope; see package tuple and package kv respectively for their
// contracts.
package fpta
