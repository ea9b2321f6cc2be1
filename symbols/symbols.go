// Package symbols maps the names of first-order variables, constants and
// propositional variables to integer indices, and back.
//
// A name beginning with a lowercase letter denotes a variable symbol, a name
// beginning with an uppercase letter a constant symbol. Names beginning with
// the reserved marker '_' denote auxiliary symbols minted internally; they
// cannot be registered through LookupIndex.
//
// A Table is one solving session's registry. It is shared mutable state for
// every component built on top of it and provides no synchronization; callers
// running sessions concurrently must use one Table per session.
package symbols

import "fmt"

// auxMarker is the reserved leading character of auxiliary symbol names.
const auxMarker = '_'

// A NameError reports a misuse of the registry by name: looking up a
// reserved auxiliary-style name, or passing a symbol of the wrong kind.
type NameError struct {
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("name %q: %s", e.Name, e.Reason)
}

// An IndexError reports an index with no registered name.
type IndexError struct {
	Index int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("no name is linked to index %d", e.Index)
}

// A Table interns symbol names to indices starting at 1.
type Table struct {
	indices map[string]int
	names   []string
}

// NewTable returns an empty symbol table.
func NewTable() *Table {
	return &Table{indices: make(map[string]int)}
}

// LookupIndex returns the index of name, registering it on first use.
// An auxiliary-style name (leading '_') can be looked up only if it was
// already minted by NewAuxIndex.
func (t *Table) LookupIndex(name string) (int, error) {
	if name == "" {
		return 0, &NameError{Name: name, Reason: "empty name"}
	}
	if name[0] == auxMarker {
		if idx, ok := t.indices[name]; ok {
			return idx, nil
		}
		return 0, &NameError{Name: name, Reason: "reserved auxiliary name"}
	}
	if !isAlpha(name[0]) {
		return 0, &NameError{Name: name, Reason: "leading character must be alphabetic"}
	}
	if idx, ok := t.indices[name]; ok {
		return idx, nil
	}
	t.names = append(t.names, name)
	t.indices[name] = len(t.names)
	return len(t.names), nil
}

// LookupName returns the name registered for index.
func (t *Table) LookupName(index int) (string, error) {
	if index < 1 || index > len(t.names) {
		return "", &IndexError{Index: index}
	}
	return t.names[index-1], nil
}

// HasIndex reports whether name is registered.
func (t *Table) HasIndex(name string) bool {
	_, ok := t.indices[name]
	return ok
}

// HasName reports whether index has a registered name.
func (t *Table) HasName(index int) bool {
	return 0 < index && index <= len(t.names)
}

// IsVariable reports whether index names a variable symbol.
// It returns false for unknown indices.
func (t *Table) IsVariable(index int) bool {
	if !t.HasName(index) {
		return false
	}
	c := t.names[index-1][0]
	return 'a' <= c && c <= 'z'
}

// IsConstant reports whether index names a constant symbol.
// It returns false for unknown indices.
func (t *Table) IsConstant(index int) bool {
	if !t.HasName(index) {
		return false
	}
	c := t.names[index-1][0]
	return 'A' <= c && c <= 'Z'
}

// IsAuxiliary reports whether index names an auxiliary symbol minted by
// NewAuxIndex. It returns false for unknown indices.
func (t *Table) IsAuxiliary(index int) bool {
	return t.HasName(index) && t.names[index-1][0] == auxMarker
}

// NewAuxIndex mints a fresh auxiliary symbol and returns its index.
// The synthetic name carries the reserved marker so it can never collide
// with a registered name.
func (t *Table) NewAuxIndex() int {
	name := fmt.Sprintf("_%d", len(t.names)+1)
	t.names = append(t.names, name)
	t.indices[name] = len(t.names)
	return len(t.names)
}

// Clear drops all entries. Indices issued before the call are invalid
// afterwards, as are all formulas referencing them.
func (t *Table) Clear() {
	t.indices = make(map[string]int)
	t.names = t.names[:0]
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
