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

	"github.com/fpta-go/fpta/kv"
)

func TestDBIFlagsUniquePrimaryNoDupSort(t *testing.T) {
	col := ColumnShove(ShoveName("id", RoleColumn), TypeUint64, PrimaryUniqueOrderedObverse)
	flags := DBIFlags(col)
	assert.Equal(t, kv.TableFlags(0), flags&kv.DupSort)
	assert.NotEqual(t, kv.TableFlags(0), flags&kv.IntegerKey)
}

func TestDBIFlagsSecondaryWithDupsSetsDupSort(t *testing.T) {
	col := ColumnShove(ShoveName("customer", RoleColumn), TypeCString, SecondaryWithDupsOrderedObverse)
	flags := DBIFlags(col)
	assert.NotEqual(t, kv.TableFlags(0), flags&kv.DupSort)
	assert.Equal(t, kv.TableFlags(0), flags&kv.IntegerKey)
}

func TestDBIFlagsIntegerDupCombination(t *testing.T) {
	col := ColumnShove(ShoveName("bucket", RoleColumn), TypeUint32, SecondaryWithDupsOrderedObverse)
	flags := DBIFlags(col)
	assert.NotEqual(t, kv.TableFlags(0), flags&kv.DupSort)
	assert.NotEqual(t, kv.TableFlags(0), flags&kv.IntegerKey)
	assert.NotEqual(t, kv.TableFlags(0), flags&kv.IntegerDup)
}

func TestComparatorSelection(t *testing.T) {
	intCol := ColumnShove(ShoveName("id", RoleColumn), TypeUint64, PrimaryUniqueOrderedObverse)
	assert.Equal(t, kv.ComparatorInteger, Comparator(intCol))

	reverseStringCol := ColumnShove(ShoveName("name", RoleColumn), TypeCString, SecondaryUniqueOrderedReverse)
	assert.Equal(t, kv.ComparatorReverse, Comparator(reverseStringCol))

	plainStringCol := ColumnShove(ShoveName("name", RoleColumn), TypeCString, SecondaryUniqueOrderedObverse)
	assert.Equal(t, kv.ComparatorDefault, Comparator(plainStringCol))
}
