package scope

import (
	"github.com/modsweep/modsweep/internal/intern"
	"github.com/modsweep/modsweep/jsast"
)

// Kind classifies what a Binding declares.
type Kind int

const (
	KindFunction Kind = iota
	KindConstant
	KindVariable
	KindParameter
	KindTypeAlias
	KindInterface
	KindClass
	KindEnum
	KindTypeParameter
	KindImportAlias
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindConstant:
		return "constant"
	case KindVariable:
		return "variable"
	case KindParameter:
		return "parameter"
	case KindTypeAlias:
		return "type-alias"
	case KindInterface:
		return "interface"
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	case KindTypeParameter:
		return "type-parameter"
	case KindImportAlias:
		return "import-alias"
	default:
		return "unknown"
	}
}

// Binding is a declaration in a particular scope.
type Binding struct {
	Name      intern.Name
	Namespace Namespace
	Kind      Kind
	Loc       jsast.Range

	// IsExported is true iff this binding lives in the root scope and is
	// named by some export (declaration-prefixed, specifier, or default).
	IsExported bool

	// RefCount counts intra-module references that resolved to this
	// binding. Export specifiers never increment it.
	RefCount int

	// Shadows points at the nearest enclosing binding of the same
	// (name, namespace) that this one shadows, for diagnostics only.
	Shadows *Binding

	// scope is the scope that owns this binding; used by Shadows lookups
	// and by the analyzer to confirm a resolved reference's target lives
	// in an ancestor scope of the reference.
	scope *Scope
}

// Scope returns the scope that declared this binding.
func (b *Binding) Scope() *Scope { return b.scope }

// IsLocallyUsed reports whether the binding has at least one intra-module
// reference.
func (b *Binding) IsLocallyUsed() bool { return b.RefCount > 0 }
