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

// Package tuple is the contract for the row serialization format (the
// reference calls it fptu) that fpta treats as opaque: a typed tuple with a
// single lookup-by-column-index operation. Encoding/decoding rows is out of
// scope for the schema core; this package only carries the one operation
// CheckNotIndexedColumns (spec.md §EXTERNAL / original fpta_check_notindexed_cols)
// needs.
package tuple

// Row is an opaque encoded tuple a caller hands the schema core to check
// for required-column presence. It is never decoded here.
type Row interface {
	// Lookup returns the field at the given column ordinal, and whether it
	// was present at all. fpta never interprets the value itself.
	Lookup(columnOrdinal int) (value []byte, ok bool)
}
