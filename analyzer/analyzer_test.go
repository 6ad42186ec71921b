package analyzer_test

import (
	"testing"

	"github.com/modsweep/modsweep/analyzer"
	"github.com/modsweep/modsweep/jsparser"
	"github.com/modsweep/modsweep/scope"
	"github.com/modsweep/modsweep/summary"
)

func analyze(t *testing.T, src string) *summary.ModuleSummary {
	t.Helper()

	file, errs := jsparser.ParseFile(src, "/proj/m.ts")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	return analyzer.AnalyzeFile(file)
}

// TestHoistingAsymmetry covers a central subtlety of scope resolution:
// type declarations are visible throughout their scope (hoisted), values
// are not — a reference earlier in source order than its let/const
// resolves to an outer binding or not at all, never forward to the later
// one.
func TestHoistingAsymmetry(t *testing.T) {
	sum := analyze(t, `
function useBeforeType(): Later {
  return "placeholder" as Later;
}

type Later = string;

function useBeforeValue() {
  return y;
}

const y = 1;
`)

	// "Later" is hoisted: the forward reference in useBeforeType's return
	// type and the "as Later" cast both resolve to it.
	var laterType, yValue *scope.Binding

	for _, b := range sum.RootBindings {
		switch {
		case b.Kind == scope.KindTypeAlias && b.Name.String() == "Later":
			laterType = b
		case b.Kind == scope.KindConstant && b.Name.String() == "y":
			yValue = b
		}
	}

	if laterType == nil {
		t.Fatal("expected a type-alias binding for Later")
	}

	if laterType.RefCount != 2 {
		t.Errorf("Later ref count = %d, want 2 (return type + as-cast)", laterType.RefCount)
	}

	// "y" is NOT hoisted: useBeforeValue's forward reference, evaluated
	// before y's declaration point is ever reached, must fail to resolve
	// rather than bind forward to the later const — so y's own ref count
	// stays 0.
	if yValue == nil {
		t.Fatal("expected a constant binding for y")
	}

	if yValue.RefCount != 0 {
		t.Errorf("y ref count = %d, want 0 (forward value reference must not resolve forward)", yValue.RefCount)
	}
}

// TestShadowingDoesNotLeakRefCount: an inner binding of the same (name,
// namespace) as an outer one intercepts all references made from inside
// its scope, leaving the outer binding's ref count untouched.
func TestShadowingDoesNotLeakRefCount(t *testing.T) {
	sum := analyze(t, `
type T = number;

function f(): void {
  type T = string;
  const x: T = "hi";
}
`)

	var outer *scope.Binding

	for _, b := range sum.RootBindings {
		if b.Kind == scope.KindTypeAlias && b.Name.String() == "T" {
			outer = b
		}
	}

	if outer == nil {
		t.Fatal("expected outer T binding at root scope")
	}

	if outer.RefCount != 0 {
		t.Errorf("outer T ref count = %d, want 0 (shadowed inside f)", outer.RefCount)
	}
}

// TestAmbiguousExportSpecifierEmitsBothNamespaces covers the
// "ambiguous-namespace" export specifier: a name that exists in both
// namespaces at root scope, exported via a bare specifier, yields two
// independent Export records.
func TestAmbiguousExportSpecifierEmitsBothNamespaces(t *testing.T) {
	sum := analyze(t, `
type P = number;
const P = 1;
export { P };
console.log(P);
`)

	valueIdx := sum.FindExport("P", false)
	typeIdx := sum.FindExport("P", true)

	if valueIdx < 0 {
		t.Error("expected a value export named P")
	}

	if typeIdx < 0 {
		t.Error("expected a type export named P")
	}

	if valueIdx >= 0 && typeIdx >= 0 && valueIdx == typeIdx {
		t.Error("value and type P exports should be distinct records")
	}
}

// TestExportSpecifierDoesNotMutateRefCount verifies the invariant that
// export specifiers do not mutate any binding's ref count.
func TestExportSpecifierDoesNotMutateRefCount(t *testing.T) {
	sum := analyze(t, `
const y = 2;
export { y };
`)

	var yBinding *scope.Binding

	for _, b := range sum.RootBindings {
		if b.Name.String() == "y" {
			yBinding = b
		}
	}

	if yBinding == nil {
		t.Fatal("expected a binding for y")
	}

	if yBinding.RefCount != 0 {
		t.Errorf("y ref count = %d, want 0 (only referenced by its own export)", yBinding.RefCount)
	}

	if yBinding.IsLocallyUsed() {
		t.Error("y should not be considered locally used from its own export alone")
	}
}

// TestClassDoubleBindingSharesRefCount covers an edge case: a reference
// to a class name resolves to its Both-namespace binding regardless of
// the occurrence's own namespace, and contributes to a single ref count.
func TestClassDoubleBindingSharesRefCount(t *testing.T) {
	sum := analyze(t, `
class Box {}

function wrap(): Box {
  return new Box();
}
`)

	var boxBinding *scope.Binding

	for _, b := range sum.RootBindings {
		if b.Name.String() == "Box" {
			boxBinding = b
		}
	}

	if boxBinding == nil {
		t.Fatal("expected a Box binding")
	}

	if boxBinding.Namespace != scope.Both {
		t.Errorf("Box namespace = %v, want Both", boxBinding.Namespace)
	}

	// One reference in the return-type position (Type namespace), one in
	// `new Box()` (Type namespace, since NewExpr.Callee is resolved as a
	// type reference) -- both land on the same shared binding.
	if boxBinding.RefCount != 2 {
		t.Errorf("Box ref count = %d, want 2", boxBinding.RefCount)
	}
}

// TestUnresolvedGlobalDoesNotPanic: a name absent from every ancestor
// scope is recorded as an unresolved global, not an error.
func TestUnresolvedGlobalDoesNotPanic(t *testing.T) {
	sum := analyze(t, `
export function f() {
  return someHostGlobal();
}
`)

	if sum.ParseError != nil {
		t.Errorf("unexpected parse error: %v", sum.ParseError)
	}
}

// TestDuplicateDeclarationPanics: a structural inconsistency (duplicate
// binding in the same scope and namespace) is a contract violation the
// analyzer asserts on rather than silently accepting.
func TestDuplicateDeclarationPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected a panic for a duplicate root-scope declaration")
		}
	}()

	analyze(t, `
function dup() {}
function dup() {}
`)
}

// TestDefaultExportOfInlineClassIsBoth covers a resolved design question:
// an inline `export default class` attaches the default slot
// to the class's own Both-namespace binding.
func TestDefaultExportOfInlineClassIsBoth(t *testing.T) {
	sum := analyze(t, `
export default class Foo {}
`)

	idx := sum.FindExport("default", false)
	if idx < 0 {
		t.Fatal("expected a default export")
	}

	if sum.Exports[idx].Binding == nil {
		t.Fatal("expected the default export to point at Foo's binding")
	}

	if sum.Exports[idx].Binding.Namespace != scope.Both {
		t.Errorf("default export binding namespace = %v, want Both", sum.Exports[idx].Binding.Namespace)
	}
}

// TestInterfaceMemberAnnotationIsResolved covers a type referenced only
// inside an interface body's member annotations: it must still count as a
// reference, or an exported type used only there would be falsely reported
// unused by the linker.
func TestInterfaceMemberAnnotationIsResolved(t *testing.T) {
	sum := analyze(t, `
export type Handler = () => void;

export interface Props {
  handler: Handler;
  onClick(): Handler;
}
`)

	var handlerType *scope.Binding

	for _, b := range sum.RootBindings {
		if b.Kind == scope.KindTypeAlias && b.Name.String() == "Handler" {
			handlerType = b
		}
	}

	if handlerType == nil {
		t.Fatal("expected a type-alias binding for Handler")
	}

	if handlerType.RefCount != 2 {
		t.Errorf("Handler ref count = %d, want 2 (field annotation + method return type)", handlerType.RefCount)
	}
}

// TestObjectTypeLiteralMemberAnnotationIsResolved mirrors the interface
// case for a plain object-type literal used as a type annotation.
func TestObjectTypeLiteralMemberAnnotationIsResolved(t *testing.T) {
	sum := analyze(t, `
export type Handler = () => void;

let shape: { onClick: Handler };
`)

	var handlerType *scope.Binding

	for _, b := range sum.RootBindings {
		if b.Kind == scope.KindTypeAlias && b.Name.String() == "Handler" {
			handlerType = b
		}
	}

	if handlerType == nil {
		t.Fatal("expected a type-alias binding for Handler")
	}

	if handlerType.RefCount != 1 {
		t.Errorf("Handler ref count = %d, want 1 (object-type literal member annotation)", handlerType.RefCount)
	}
}
