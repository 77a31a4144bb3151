// Package symtab implements the symbol table that the event interpreter
// (package engine) maintains while ingesting a FlatZinc-style declaration
// stream: a mapping from variable name to VarInfo record, with alias
// resolution, array-element synthesis, and a degree-zero-safe lookup.
//
// Borrows the dense-integer-id allocation of the lvlath graph library's
// core.Graph. Lookup returns a sentinel instead of panicking on a miss;
// inserting a name twice is an error (ErrAlreadyDeclared), not a no-op.
package symtab

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/katalvlaran/mzfeat/expr"
)

// Kind is the declared type of a variable.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindSet:
		return "set"
	default:
		return "unknown"
	}
}

// Sentinel errors. Callers should use errors.Is to branch on semantics;
// sentinels are never wrapped with formatted strings at the definition
// site (context, if any, is attached with %w at the call site).
var (
	// ErrEmptyName indicates a VarInfo with an empty Name was inserted.
	ErrEmptyName = errors.New("symtab: variable name is empty")

	// ErrAlreadyDeclared indicates insert_variable was called for a name
	// already present in the table.
	ErrAlreadyDeclared = errors.New("symtab: variable already declared")
)

// VarInfo describes one declared (or synthesized array-element) variable.
type VarInfo struct {
	Name     string       // fully-qualified identifier; arrays produce "A[i]" children
	Kind     Kind         // Bool, Int, Float, Set
	DomSize  float64      // positive; math.Inf(1) allowed for unbounded
	Degree   int          // distinct non-alias constraints referencing this variable
	Assigned bool         // fixed to a constant or to another variable
	Alias    *VarInfo     // resolved target; nil unless aliased. Never more than one hop.
	IsArray  bool         // true if this record is the array header, not an element
	Begin    int          // inclusive index range when IsArray
	End      int          // inclusive index range when IsArray
	Anns     []expr.Value // annotation expressions attached at declaration
	ID       int          // dense graph-vertex id; -1 if assigned or unknown
}

// unknownVarInfo is the sentinel returned by Lookup for an undeclared name, so
// that constraint ingestion can treat unknown references as a harmless
// non-variable argument instead of panicking.
var unknownVarInfo = VarInfo{ID: -1, Assigned: true}

// Table is the symbol table. Not safe for concurrent use — the engine
// that owns it is single-threaded per-instance (spec §5).
type Table struct {
	vars    map[string]*VarInfo
	nextID  uint64
	aliases []*VarInfo // records that alias another variable, for lifecycle bookkeeping
}

// New returns an empty Table.
func New() *Table {
	return &Table{vars: make(map[string]*VarInfo)}
}

// Lookup returns the VarInfo for name, or a sentinel with ID=-1 and
// Assigned=true if name was never declared. It never panics: unknown
// references are a normal, expected input (constraint arguments may name
// parameters or literals that never went through insert_variable).
func (t *Table) Lookup(name string) *VarInfo {
	if vi, ok := t.vars[name]; ok {
		return vi
	}
	sentinel := unknownVarInfo
	return &sentinel
}

// Has reports whether name was declared.
func (t *Table) Has(name string) bool {
	_, ok := t.vars[name]
	return ok
}

func (t *Table) allocID() int {
	return int(atomic.AddUint64(&t.nextID, 1)) - 1
}

// InsertVariable registers a fresh, non-assigned scalar variable. It
// returns ErrAlreadyDeclared (wrapped with the name) if vi.Name is
// already present, and ErrEmptyName if vi.Name == "".
func (t *Table) InsertVariable(name string, kind Kind, domSize float64, anns []expr.Value) (*VarInfo, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, exists := t.vars[name]; exists {
		return nil, fmt.Errorf("InsertVariable(%q): %w", name, ErrAlreadyDeclared)
	}
	vi := &VarInfo{
		Name:    name,
		Kind:    kind,
		DomSize: domSize,
		Anns:    anns,
		ID:      t.allocID(),
	}
	t.vars[name] = vi
	return vi, nil
}

// InsertAssignedVariable registers a variable fixed at declaration to
// either a constant (rhs is not a String) or another variable (rhs is a
// String naming the alias target). Alias chains are resolved eagerly so
// that vi.Alias always points at a non-aliased target (single hop).
func (t *Table) InsertAssignedVariable(name string, kind Kind, domSize float64, rhs expr.Value, anns []expr.Value) (*VarInfo, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, exists := t.vars[name]; exists {
		return nil, fmt.Errorf("InsertAssignedVariable(%q): %w", name, ErrAlreadyDeclared)
	}
	vi := &VarInfo{
		Name:     name,
		Kind:     kind,
		DomSize:  domSize,
		Anns:     anns,
		Assigned: true,
		ID:       -1,
	}
	if rhs.Kind() == expr.KindString {
		target := t.resolveAlias(rhs.AsString())
		vi.Alias = target
		t.aliases = append(t.aliases, vi)
	}
	t.vars[name] = vi
	return vi, nil
}

// resolveAlias follows an existing alias chain to its final, non-aliased
// target. If the named variable is itself unresolved or unknown, the
// unresolved VarInfo is returned as-is (the caller still records the
// one-hop pointer; a later declaration of the target, if any, will not
// retroactively fix this up — per spec this is an InvariantViolation the
// engine logs and continues past).
func (t *Table) resolveAlias(name string) *VarInfo {
	vi, ok := t.vars[name]
	if !ok {
		sentinel := unknownVarInfo
		return &sentinel
	}
	if vi.Alias != nil {
		return vi.Alias
	}
	return vi
}

// InsertVarArray records the array header then synthesizes one VarInfo
// per index in [begin, end], named "name[i]", inheriting kind and domain
// size, each with a fresh id and Degree 0.
func (t *Table) InsertVarArray(name string, begin, end int, kind Kind, domSize float64, anns []expr.Value) (*VarInfo, []*VarInfo, error) {
	if name == "" {
		return nil, nil, ErrEmptyName
	}
	if _, exists := t.vars[name]; exists {
		return nil, nil, fmt.Errorf("InsertVarArray(%q): %w", name, ErrAlreadyDeclared)
	}
	header := &VarInfo{
		Name:    name,
		Kind:    kind,
		IsArray: true,
		Begin:   begin,
		End:     end,
		Anns:    anns,
		ID:      -1,
	}
	t.vars[name] = header

	elems := make([]*VarInfo, 0, end-begin+1)
	for i := begin; i <= end; i++ {
		elemName := fmt.Sprintf("%s[%d]", name, i)
		elem := &VarInfo{
			Name:    elemName,
			Kind:    kind,
			DomSize: domSize,
			Anns:    anns,
			ID:      t.allocID(),
		}
		t.vars[elemName] = elem
		elems = append(elems, elem)
	}
	return header, elems, nil
}

// InsertAssignedVarArray synthesizes one element per index in
// [begin, end]; elements whose corresponding rhs entry is a String are
// aliased (resolved through resolveAlias), the rest are treated as
// constants.
func (t *Table) InsertAssignedVarArray(name string, begin, end int, kind Kind, domSize float64, rhs []expr.Value, anns []expr.Value) (*VarInfo, []*VarInfo, error) {
	if name == "" {
		return nil, nil, ErrEmptyName
	}
	if _, exists := t.vars[name]; exists {
		return nil, nil, fmt.Errorf("InsertAssignedVarArray(%q): %w", name, ErrAlreadyDeclared)
	}
	header := &VarInfo{
		Name:    name,
		Kind:    kind,
		IsArray: true,
		Begin:   begin,
		End:     end,
		Anns:    anns,
		ID:      -1,
	}
	t.vars[name] = header

	elems := make([]*VarInfo, 0, end-begin+1)
	for idx, i := 0, begin; i <= end; idx, i = idx+1, i+1 {
		elemName := fmt.Sprintf("%s[%d]", name, i)
		elem := &VarInfo{
			Name:     elemName,
			Kind:     kind,
			DomSize:  domSize,
			Anns:     anns,
			Assigned: true,
			ID:       -1,
		}
		if idx < len(rhs) && rhs[idx].Kind() == expr.KindString {
			elem.Alias = t.resolveAlias(rhs[idx].AsString())
			t.aliases = append(t.aliases, elem)
		}
		t.vars[elemName] = elem
		elems = append(elems, elem)
	}
	return header, elems, nil
}

// IncrementDegree bumps vi.Degree by one. Exposed as a dedicated method
// (rather than direct field mutation from engine) to keep the single
// mutation point for §4.3 step 4's degree bookkeeping in one place,
// matching the teacher's pattern of dedicated mutators per field
// (core.Graph.AddVertex/AddEdge own their own invariants).
func (vi *VarInfo) IncrementDegree() {
	vi.Degree++
}

// Len returns the number of currently declared names (variables and
// array headers together), mainly for tests.
func (t *Table) Len() int { return len(t.vars) }

// Range calls fn for every declared name. Iteration order is
// unspecified; callers that need determinism must sort.
func (t *Table) Range(fn func(name string, vi *VarInfo)) {
	for name, vi := range t.vars {
		fn(name, vi)
	}
}
