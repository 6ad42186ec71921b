package scope

import (
	"fmt"

	"github.com/modsweep/modsweep/internal/intern"
)

// ScopeKind identifies what construct opened a Scope, for diagnostics and
// for deciding which scopes sit at "root" for export/import purposes.
type ScopeKind int

const (
	KindRoot ScopeKind = iota
	KindFunctionScope
	KindBlock
	KindClassScope
	KindCatch
	KindTypeIntroducer // mapped-type / conditional-type infer binder
)

// Scope is a node in the per-module scope tree. Scopes are
// created by Tree.Open, frozen by Tree.Close, and never mutated afterward.
type Scope struct {
	Parent   *Scope
	Children []*Scope
	Kind     ScopeKind

	valueBindings map[intern.Name]*Binding
	typeBindings  map[intern.Name]*Binding

	frozen bool
}

func newScope(parent *Scope, kind ScopeKind) *Scope {
	return &Scope{
		Parent:        parent,
		Kind:          kind,
		valueBindings: make(map[intern.Name]*Binding),
		typeBindings:  make(map[intern.Name]*Binding),
	}
}

func (s *Scope) mapFor(ns Namespace) map[intern.Name]*Binding {
	if ns == Type {
		return s.typeBindings
	}

	return s.valueBindings
}

// LookupLocal searches only this scope.
func (s *Scope) LookupLocal(name intern.Name, ns Namespace) *Binding {
	return s.mapFor(ns)[name]
}

// Lookup searches this scope, then each ancestor up to and including root
// It never crosses a module boundary — there is only ever
// one Scope tree per module.
func (s *Scope) Lookup(name intern.Name, ns Namespace) *Binding {
	for cur := s; cur != nil; cur = cur.Parent {
		if b := cur.mapFor(ns); b[name] != nil {
			return b[name]
		}
	}

	return nil
}

// ValueBindings and TypeBindings expose this scope's own bindings in
// declaration order is not guaranteed (maps); callers needing stable order
// sort by Binding.Loc.
func (s *Scope) ValueBindings() map[intern.Name]*Binding { return s.valueBindings }
func (s *Scope) TypeBindings() map[intern.Name]*Binding  { return s.typeBindings }

// ConflictError is returned by Tree.Declare when a binding of the same
// (name, namespace) already exists in the current scope. This is treated
// as a structural inconsistency the input is assumed not to contain;
// the analyzer turns it into a panic (see the analyzer's declare).
type ConflictError struct {
	Name      string
	Namespace Namespace
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("duplicate %s binding %q in same scope", e.Namespace, e.Name)
}

// Tree is the stateful cursor the module analyzer drives while traversing
// an AST: Open/Close push and pop the "current" scope, Declare/Lookup
// operate against it. The tree itself (Root and the Parent/Children links)
// is the passive data structure; Tree is the API surface around it.
type Tree struct {
	Root    *Scope
	current *Scope
}

// NewTree creates a tree with a single root scope as current.
func NewTree() *Tree {
	root := newScope(nil, KindRoot)
	return &Tree{Root: root, current: root}
}

// Current returns the scope the analyzer is currently inside.
func (t *Tree) Current() *Scope { return t.current }

// Open pushes a new scope as a child of current and makes it current.
func (t *Tree) Open(kind ScopeKind) *Scope {
	child := newScope(t.current, kind)
	t.current.Children = append(t.current.Children, child)
	t.current = child

	return child
}

// Close freezes current and restores its parent as current. Must pair with
// Open; closing the root is a programmer error.
func (t *Tree) Close() {
	if t.current.Parent == nil {
		panic("scope: Close called on root scope")
	}

	t.current.frozen = true
	t.current = t.current.Parent
}

// Declare inserts b into the current scope. A class/enum binding (Namespace
// Both) is written into both namespace maps atomically: Declare checks both
// slots for a conflict before writing either, so a conflict in either
// namespace leaves neither installed.
func (t *Tree) Declare(b *Binding) error {
	if t.current.frozen {
		panic("scope: Declare called on frozen scope")
	}

	b.scope = t.current

	if b.Namespace == Both {
		if t.current.valueBindings[b.Name] != nil {
			return &ConflictError{Name: b.Name.String(), Namespace: Value}
		}

		if t.current.typeBindings[b.Name] != nil {
			return &ConflictError{Name: b.Name.String(), Namespace: Type}
		}

		t.setShadow(b, Value)
		t.current.valueBindings[b.Name] = b
		t.current.typeBindings[b.Name] = b

		return nil
	}

	m := t.current.mapFor(b.Namespace)
	if m[b.Name] != nil {
		return &ConflictError{Name: b.Name.String(), Namespace: b.Namespace}
	}

	t.setShadow(b, b.Namespace)
	m[b.Name] = b

	return nil
}

// setShadow records the nearest enclosing binding of the same (name,
// namespace) as the one b shadows, walking ancestors only (not the current
// scope, which by construction has no entry yet).
func (t *Tree) setShadow(b *Binding, ns Namespace) {
	if t.current.Parent == nil {
		return
	}

	if outer := t.current.Parent.Lookup(b.Name, ns); outer != nil {
		b.Shadows = outer
	}
}

// Lookup searches current, then ancestors, for (name, ns).
func (t *Tree) Lookup(name intern.Name, ns Namespace) *Binding {
	return t.current.Lookup(name, ns)
}

// LookupLocal searches only current.
func (t *Tree) LookupLocal(name intern.Name, ns Namespace) *Binding {
	return t.current.LookupLocal(name, ns)
}
