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

import "github.com/fpta-go/fpta/tuple"

// CheckNotIndexedColumns implements the original's fpta_check_notindexed_cols
// (schema.cxx:1111): every non-indexed, non-nullable column of schema must be
// present in row — a nullable non-indexed column may be absent, but a plain
// one may not. Indexed columns are never checked here; their presence is
// enforced by the index itself, not by this row-level scan.
func CheckNotIndexedColumns(schema *TableSchema, row tuple.Row) error {
	if schema == nil || row == nil {
		return ErrInvalidArg
	}
	for i := 0; i < schema.ColumnCount(); i++ {
		col, err := schema.ColumnShove(i)
		if err != nil {
			return err
		}
		it := Shove2Index(col)
		if IsIndexed(it) || IsNullable(it) {
			continue
		}
		if _, ok := row.Lookup(i); !ok {
			return ErrColumnMissing
		}
	}
	return nil
}
