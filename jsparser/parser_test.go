package jsparser

import (
	"testing"

	"github.com/modsweep/modsweep/jsast"
)

func TestParseImportsAndExports(t *testing.T) {
	src := `
import defaultExport, { named as alias } from "./a";
import * as ns from "./b";
import type { OnlyType } from "./c";
import "./side-effect";

export const x = 1;
export { x as y };
export { OnlyType } from "./c";
export default function main() {}
export * from "./d";
`

	file, errs := ParseFile(src, "test.ts")
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	var gotImports, gotExports int
	for _, st := range file.Stmts {
		switch st.(type) {
		case *jsast.ImportDecl:
			gotImports++
		case *jsast.ExportNamedDecl, *jsast.ExportDeclDecl, *jsast.ExportDefaultDecl, *jsast.ExportAllDecl:
			gotExports++
		}
	}

	if gotImports != 4 {
		t.Fatalf("expected 4 import statements, got %d", gotImports)
	}

	if gotExports != 5 {
		t.Fatalf("expected 5 export statements, got %d", gotExports)
	}
}

func TestParseFunctionWithGenericsAndTypes(t *testing.T) {
	src := `
function identity<T extends object>(x: T, y: T[] = []): T {
	return x;
}
`

	file, errs := ParseFile(src, "test.ts")
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	if len(file.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(file.Stmts))
	}

	fd, ok := file.Stmts[0].(*jsast.FuncDecl)
	if !ok {
		t.Fatalf("expected *jsast.FuncDecl, got %T", file.Stmts[0])
	}

	if len(fd.TypeParams) != 1 || fd.TypeParams[0].Name.Name != "T" {
		t.Fatalf("expected one type param T, got %+v", fd.TypeParams)
	}

	if len(fd.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fd.Params))
	}
}

func TestParseClassImplementsInterface(t *testing.T) {
	src := `
interface Shape {
	area(): number;
}

class Circle implements Shape {
	radius: number = 1;

	area() {
		return this.radius;
	}
}
`

	file, errs := ParseFile(src, "test.ts")
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	if len(file.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(file.Stmts))
	}

	cd, ok := file.Stmts[1].(*jsast.ClassDecl)
	if !ok {
		t.Fatalf("expected *jsast.ClassDecl, got %T", file.Stmts[1])
	}

	if len(cd.Implements) != 1 {
		t.Fatalf("expected 1 implements clause, got %d", len(cd.Implements))
	}

	if len(cd.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(cd.Members))
	}
}

func TestParseArrowFunctionExpressionBody(t *testing.T) {
	src := `const add = (a: number, b: number) => a + b;`

	file, errs := ParseFile(src, "test.ts")
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	vd, ok := file.Stmts[0].(*jsast.VarDecl)
	if !ok {
		t.Fatalf("expected *jsast.VarDecl, got %T", file.Stmts[0])
	}

	arrow, ok := vd.Declarators[0].Init.(*jsast.ArrowFuncExpr)
	if !ok {
		t.Fatalf("expected *jsast.ArrowFuncExpr, got %T", vd.Declarators[0].Init)
	}

	if len(arrow.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(arrow.Params))
	}

	if len(arrow.Body.Stmts) != 1 {
		t.Fatalf("expected implicit-return body with 1 stmt, got %d", len(arrow.Body.Stmts))
	}
}
