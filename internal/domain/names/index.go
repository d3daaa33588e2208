// Package names tracks applicant-name uniqueness within one worksheet.
//
// The spreadsheet has no surrogate id column: the applicant name is the
// de-facto key for every position-based write. The index resolves a name to
// its first row position and flags collisions so callers can reject writes
// that would make a name ambiguous.
package names

import "sync"

// Index maps applicant names to their first row position in a worksheet
// snapshot. Safe for concurrent use.
type Index struct {
	mu    sync.RWMutex
	first map[string]int
	dups  []string
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{first: make(map[string]int)}
}

// Record registers name at the given row position. Returns true if the name
// was already present, in which case the earlier position is kept and the
// name is remembered as a duplicate.
func (i *Index) Record(name string, row int) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, seen := i.first[name]; seen {
		i.dups = append(i.dups, name)
		return true
	}
	i.first[name] = row
	return false
}

// Lookup returns the first row position recorded for name.
func (i *Index) Lookup(name string) (int, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	row, ok := i.first[name]
	return row, ok
}

// Has reports whether name is present in the worksheet.
func (i *Index) Has(name string) bool {
	_, ok := i.Lookup(name)
	return ok
}

// Duplicates returns the names recorded more than once, in record order.
func (i *Index) Duplicates() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]string, len(i.dups))
	copy(out, i.dups)
	return out
}

// Size returns the number of distinct names recorded.
func (i *Index) Size() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.first)
}
