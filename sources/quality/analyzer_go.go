package quality

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// analyzeGo parses the submission with the real Go parser and walks the AST
// for structural issues. Snippets without a package clause get one prepended
// so fragments can still be analyzed.
func (x *Guard) analyzeGo(code string) []Issue {
	issues := x.analyzeLines(code, x.config.Quality.MaxLineLength, x.config.Quality.MaxFileLength)
	issues = append(issues, checkPatterns(code)...)

	source := code
	if !strings.Contains(code, "package ") {
		source = "package snippet\n\n" + code
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "snippet.go", source, parser.ParseComments)
	if err != nil {
		issues = append(issues, Issue{
			Severity: SeverityCritical,
			Rule:     "syntax-error",
			Message:  fmt.Sprintf("code does not parse: %v", err),
		})
		return issues
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		line := fset.Position(fn.Pos()).Line
		length := fset.Position(fn.End()).Line - line + 1
		if length > x.config.Quality.MaxFunctionLength {
			issues = append(issues, Issue{
				Severity: SeverityMajor,
				Rule:     "function-length",
				Message:  fmt.Sprintf("function %s is %d lines long (max %d)", fn.Name.Name, length, x.config.Quality.MaxFunctionLength),
				Line:     line,
			})
		}

		params := 0
		if fn.Type.Params != nil {
			for _, field := range fn.Type.Params.List {
				if n := len(field.Names); n > 0 {
					params += n
				} else {
					params++
				}
			}
		}
		if params > x.config.Quality.MaxParameters {
			issues = append(issues, Issue{
				Severity: SeverityMinor,
				Rule:     "parameter-count",
				Message:  fmt.Sprintf("function %s takes %d parameters (max %d)", fn.Name.Name, params, x.config.Quality.MaxParameters),
				Line:     line,
			})
		}

		if complexity := cyclomaticComplexity(fn); complexity > x.config.Quality.MaxComplexity {
			issues = append(issues, Issue{
				Severity: SeverityMajor,
				Rule:     "complexity",
				Message:  fmt.Sprintf("function %s has cyclomatic complexity %d (max %d)", fn.Name.Name, complexity, x.config.Quality.MaxComplexity),
				Line:     line,
			})
		}

		if x.config.Quality.RequireDocComments && fn.Name.IsExported() && fn.Doc == nil {
			issues = append(issues, Issue{
				Severity: SeverityMinor,
				Rule:     "missing-doc",
				Message:  fmt.Sprintf("exported function %s has no doc comment", fn.Name.Name),
				Line:     line,
			})
		}
	}

	return issues
}

// cyclomaticComplexity counts decision points plus one.
func cyclomaticComplexity(fn *ast.FuncDecl) int {
	complexity := 1
	ast.Inspect(fn, func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.IfStmt, *ast.ForStmt, *ast.RangeStmt, *ast.CaseClause, *ast.CommClause:
			complexity++
		case *ast.BinaryExpr:
			if n.Op == token.LAND || n.Op == token.LOR {
				complexity++
			}
		}
		return true
	})
	return complexity
}
