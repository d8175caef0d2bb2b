package repository

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"strings"
	"testing"
)

// TestExportedDeclsDocumented keeps the repository and handler APIs
// documented: every exported declaration carries a comment.
func TestExportedDeclsDocumented(t *testing.T) {
	for _, dir := range []string{".", "../handler"} {
		fset := token.NewFileSet()
		pkgs, err := parser.ParseDir(fset, dir, func(fi fs.FileInfo) bool {
			return !strings.HasSuffix(fi.Name(), "_test.go")
		}, parser.ParseComments)
		if err != nil {
			t.Fatalf("parse %s: %v", dir, err)
		}
		for _, pkg := range pkgs {
			for _, f := range pkg.Files {
				for _, decl := range f.Decls {
					switch d := decl.(type) {
					case *ast.FuncDecl:
						if d.Name.IsExported() && d.Doc == nil {
							t.Errorf("%s: %s has no doc comment", fset.Position(d.Pos()), d.Name.Name)
						}
					case *ast.GenDecl:
						if d.Tok != token.TYPE {
							continue
						}
						for _, spec := range d.Specs {
							ts := spec.(*ast.TypeSpec)
							if ts.Name.IsExported() && d.Doc == nil && ts.Doc == nil {
								t.Errorf("%s: type %s has no doc comment", fset.Position(ts.Pos()), ts.Name.Name)
							}
						}
					}
				}
			}
		}
	}
}
