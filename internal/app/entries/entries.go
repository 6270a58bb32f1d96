// Package entries holds the committed (name, location) rows shown under the form.
package entries

// Entry is one committed row. Two entries are equal when both fields match exactly.
type Entry struct {
	Name     string
	Location string
}

// Table is an insertion-ordered list of entries. The zero value is empty and ready to use.
// Duplicates are refused by Add; there is no other way in.
type Table struct {
	rows []Entry
}

// Add appends e unless an equal entry is already present.
// It reports whether the entry was appended.
func (t *Table) Add(e Entry) bool {
	if t.Contains(e) {
		return false
	}
	t.rows = append(t.rows, e)
	return true
}

// Contains reports whether an entry equal to e exists.
func (t *Table) Contains(e Entry) bool {
	for _, row := range t.rows {
		if row == e {
			return true
		}
	}
	return false
}

// Rows returns a copy of the entries in insertion order.
func (t *Table) Rows() []Entry {
	out := make([]Entry, len(t.rows))
	copy(out, t.rows)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.rows)
}

// Reset removes every entry.
func (t *Table) Reset() {
	t.rows = nil
}
