package searcher

import "homeworlds/game"

type Bound int8

const (
	Exact Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	}
	return "unknown"
}

// Entry is a search result for a position, valid for searches no deeper
// than Depth.
type Entry struct {
	Value int
	Depth int
	Bound Bound
}

// Table caches search results by position. It is not safe for concurrent
// use; each search owns its table.
type Table struct {
	entries map[game.StateKey]Entry
}

func NewTable() *Table {
	return &Table{entries: map[game.StateKey]Entry{}}
}

func (t *Table) Probe(key game.StateKey) (Entry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// Store replaces any previous entry for the position.
func (t *Table) Store(key game.StateKey, e Entry) {
	t.entries[key] = e
}

func (t *Table) Len() int {
	return len(t.entries)
}

// value is the cached score used for move ordering, 0 when unknown.
func (t *Table) value(key game.StateKey) int {
	return t.entries[key].Value
}
