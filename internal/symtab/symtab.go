// Package symtab implements the insertion-ordered name interning table
// described in spec §4.1: an ordered list of UTF-8 names, each mapped to a
// stable zero-based index, with no duplicates within a namespace.
package symtab

import (
	"strconv"
	"strings"

	"github.com/P4UL-M/copper/internal/diagnostics"
)

// Table interns names to small integer indices. A Table is created empty
// and grows only through InternNew/InternOrGet and, for binary programs,
// EnsureLen; indices are stable for the
// lifetime of the program (spec §3, Symbol Table invariants).
type Table struct {
	names   []string
	indices map[string]int
	bits    int // width of the index space; indices must fit in this many bits.
}

// New creates an empty Table whose indices must fit in bits bits (3 for
// labels, 10 for variables per spec §3).
func New(bits int) *Table {
	return &Table{indices: make(map[string]int), bits: bits}
}

// Len returns the number of interned names.
func (t *Table) Len() int { return len(t.names) }

// Name returns the name interned at index i.
func (t *Table) Name(i int) string { return t.names[i] }

// Names returns the interned names in insertion order.
func (t *Table) Names() []string { return t.names }

func (t *Table) capacity() int { return 1 << uint(t.bits) }

// InternNew interns a brand-new name, failing with DuplicateName if it
// already exists and Overflow if the resulting index would not fit in the
// table's bit width. Validation of the name's shape (e.g. variable naming
// rules) is the caller's responsibility — this is the generic half shared
// by both the variable and label namespaces.
func (t *Table) InternNew(name string, loc diagnostics.Location) (int, error) {
	if _, exists := t.indices[name]; exists {
		return 0, diagnostics.New(diagnostics.DuplicateName, loc, "name %q already defined", name)
	}
	if len(t.names) >= t.capacity() {
		return 0, diagnostics.New(diagnostics.Overflow, loc, "too many names (limit %d)", t.capacity())
	}
	idx := len(t.names)
	t.names = append(t.names, name)
	t.indices[name] = idx
	return idx, nil
}

// InternOrGet returns the existing index for name, or interns it fresh if
// this is the first reference. Used for labels, which may be referenced
// before their defining line is seen (spec §4.1, forward references).
func (t *Table) InternOrGet(name string, loc diagnostics.Location) (int, error) {
	if idx, exists := t.indices[name]; exists {
		return idx, nil
	}
	return t.InternNew(name, loc)
}

// Lookup returns the index of an already-interned name, failing with
// Undefined if it has never been interned.
func (t *Table) Lookup(name string, loc diagnostics.Location) (int, error) {
	idx, exists := t.indices[name]
	if !exists {
		return 0, diagnostics.New(diagnostics.Undefined, loc, "undefined name %q", name)
	}
	return idx, nil
}

// EnsureLen grows the table with placeholder names (produced by namer)
// until it has at least n entries, bypassing the usual duplicate checks.
// Used when loading a binary program, which carries no names — only the
// resolved indices — but the Interpreter still wants something to print
// for diagnostic formatting (spec §4.6).
func (t *Table) EnsureLen(n int, namer func(i int) string) {
	for len(t.names) < n {
		i := len(t.names)
		name := namer(i)
		t.names = append(t.names, name)
		t.indices[name] = i
	}
}

// Has reports whether name has been interned.
func (t *Table) Has(name string) bool {
	_, exists := t.indices[name]
	return exists
}

// IsAlphanumeric reports whether name consists only of ASCII letters and
// digits, the variable-naming rule of spec §4.1.
func IsAlphanumeric(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// SyntheticArrayName returns the name the loader interns for the array
// element whose VarId is varID (spec §9, array allocation): the decimal
// representation of that VarId, so that base+offset arithmetic yields a
// valid VarId. All-digit names are also accepted for user variables, so a
// user name such as "2" collides with a synthetic one (DuplicateName).
func SyntheticArrayName(varID int) string {
	return strconv.Itoa(varID)
}

// LooksLikeRegister reports whether name matches one of the four register
// names (case-insensitive), used by variable-name validation (spec §4.1:
// "must not match a register name").
func LooksLikeRegister(name string) bool {
	switch strings.ToUpper(name) {
	case "T0", "T1", "T2", "T3":
		return true
	default:
		return false
	}
}
