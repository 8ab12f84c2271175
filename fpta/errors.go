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
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors implementing the §7 taxonomy. Callers compare with
// errors.Is; wrapped occurrences (via fmt.Errorf "%w" or internalAbort)
// still match.
var (
	// ErrInvalidArg covers malformed names, out-of-range IndexType/DataType
	// combinations, and the pinned-down §9 open question (the reference's
	// stray `return false` in fpta_column_def_validate's data-type range
	// check, which this module maps to ErrInvalidArg rather than silently
	// accepting).
	ErrInvalidArg = errors.New("fpta: invalid argument")

	// ErrNotFound is returned when a named table or column does not exist
	// in the schema current as of the calling transaction.
	ErrNotFound = errors.New("fpta: not found")

	// ErrAlreadyExists is returned by CreateTable when the name collides
	// with an existing table or one of its sub-databases already exists,
	// and by DescribeColumn for a duplicate column name or a second primary
	// column.
	ErrAlreadyExists = errors.New("fpta: already exists")

	// ErrTooManyColumns/ErrTooManyIndexes are returned by the SchemaBuilder
	// when config.MaxCols/config.MaxIndexes is exceeded.
	ErrTooManyColumns = errors.New("fpta: too many columns")
	ErrTooManyIndexes = errors.New("fpta: too many indexes")

	// ErrNoData is returned by a value-returning accessor on a schema
	// handle that has been freed (TableSchema.ColumnShove after Free), and
	// by Name.DBI for a column that owns no sub-database.
	ErrNoData = errors.New("fpta: no data")

	// ErrColumnMissing is returned by the not-indexed-column presence
	// check when a row lacks a column the schema declares non-nullable.
	ErrColumnMissing = errors.New("fpta: required column missing from row")

	// ErrSchemaChanged is returned by NameRefresh when a Name was resolved
	// against a schema version newer than the calling transaction observes,
	// and by Name.Ordinal/Name.DBI when the Name's last refresh failed.
	ErrSchemaChanged = errors.New("fpta: schema changed, name no longer resolvable")

	// ErrSchemaCorrupted is returned by the CatalogStore when a stored
	// schema record fails signature/checksum validation.
	ErrSchemaCorrupted = errors.New("fpta: schema record corrupted")

	// ErrIncompatibleDB is the kind for a database format the KVS reports
	// as incompatible. No function of this package returns it; a catalog
	// record whose signature does not match is reported as
	// ErrSchemaCorrupted.
	ErrIncompatibleDB = errors.New("fpta: incompatible database format")

	// ErrInternal covers invariant violations this module treats as a bug
	// rather than caller error (e.g. internalAbort's rollback path).
	ErrInternal = errors.New("fpta: internal error")
)

// internalAbort wraps an unexpected failure encountered while unwinding a
// partially applied SchemaManager operation (spec.md §4.5 "rollback on
// failure"), preserving a stack trace the way the reference's assert/abort
// path would via pkg/errors — this is the one place this module reaches
// for stack-carrying wraps, since everywhere else the failure is an
// ordinary, expected caller error.
func internalAbort(cause error, during string) error {
	return pkgerrors.Wrapf(cause, "fpta: internal abort during %s", during)
}
