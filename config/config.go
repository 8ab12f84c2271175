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

// Package config carries fpta's build constants (spec.md §6) and the one
// caller-facing knob, the handle-cache byte budget, expressed with
// datasize.ByteSize the way the rest of the erigon stack sizes caches and
// map geometries.
package config

import (
	"github.com/c2h5oh/datasize"

	"github.com/fpta-go/fpta/internal/safeint"
)

// Build constants (spec.md §6). Values are this module's own choice where
// the distilled spec and the filtered original_source leave them
// unspecified; see DESIGN.md for the record of that choice.
const (
	// MinLen/MaxLen bound a validated identifier's length (spec.md §4.1).
	MinLen = 1
	MaxLen = 64

	// MaxCols is the largest column count a ColumnSet may hold.
	MaxCols = 63

	// MaxIndexes is the largest number of indexed columns (primary +
	// secondaries) a single table may declare.
	MaxIndexes = 8

	// MaxTables bounds how many rows SchemaManager.Fetch will return
	// before treating the catalog as corrupted (spec.md §4.5).
	MaxTables = 1024

	// handleCacheEntrySize approximates the in-memory footprint of one
	// HandleCache slot, used only to translate a Geometry.CacheBudget byte
	// count into a slot count.
	handleCacheEntrySize = 16
)

// AllowDot mirrors the reference's compile-time FPTA_ALLOW_DOT4NAMES flag:
// whether '.' is accepted in identifiers after the first character. It
// defaults to false (dotted names disabled) and is a package variable
// rather than a const only so tests can flip it.
var AllowDot = false

// DefaultCacheSize is the HandleCache slot count used when a Geometry's
// CacheBudget is zero.
const DefaultCacheSize = 64

// Geometry holds the one piece of environment-level configuration the
// schema core needs: how much memory the per-database HandleCache may use.
// Everything else about the underlying KVS environment (map size, OS
// flags, durability mode) is the KVS's own out-of-scope concern.
type Geometry struct {
	// CacheBudget bounds the HandleCache's memory footprint. Zero selects
	// DefaultCacheSize slots.
	CacheBudget datasize.ByteSize
}

// CacheSize returns the HandleCache slot count implied by g, never less
// than 1.
func (g Geometry) CacheSize() int {
	if g.CacheBudget == 0 {
		return DefaultCacheSize
	}
	n := safeint.CeilDiv(int(g.CacheBudget), handleCacheEntrySize)
	if n < 1 {
		return 1
	}
	return n
}
