package providers

import (
	"context"
	goast "go/ast"
	"go/parser"
	"go/token"

	"go.lsp.dev/protocol"

	"github.com/RamakrishnanGH/sqlopsstudio/outline"
)

// GoOutlineProvider produces document symbols for Go source using go/parser.
type GoOutlineProvider struct{}

// NewGoOutlineProvider returns a ready-to-use provider. Register it for the
// "go" language id.
func NewGoOutlineProvider() *GoOutlineProvider {
	return &GoOutlineProvider{}
}

// ProvideDocumentSymbols parses doc.Text and emits one entry per top-level
// declaration. Methods carry their receiver type as container name.
func (p *GoOutlineProvider) ProvideDocumentSymbols(ctx context.Context, doc *outline.Document) ([]protocol.SymbolInformation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, string(doc.URI), doc.Text, 0)
	if err != nil {
		return nil, err
	}

	var symbols []protocol.SymbolInformation
	add := func(name string, kind protocol.SymbolKind, container string, pos, end token.Pos) {
		symbols = append(symbols, protocol.SymbolInformation{
			Name:          name,
			Kind:          kind,
			ContainerName: container,
			Location: protocol.Location{
				URI:   doc.URI,
				Range: rangeFor(fset, pos, end),
			},
		})
	}

	for _, decl := range file.Decls {
		switch decl := decl.(type) {
		case *goast.FuncDecl:
			kind := protocol.SymbolKindFunction
			container := ""
			if decl.Recv != nil && len(decl.Recv.List) > 0 {
				kind = protocol.SymbolKindMethod
				container = receiverName(decl.Recv.List[0].Type)
			}
			add(decl.Name.Name, kind, container, decl.Pos(), decl.End())
		case *goast.GenDecl:
			for _, spec := range decl.Specs {
				switch spec := spec.(type) {
				case *goast.TypeSpec:
					add(spec.Name.Name, typeKind(spec), "", spec.Pos(), spec.End())
				case *goast.ValueSpec:
					kind := protocol.SymbolKindVariable
					if decl.Tok == token.CONST {
						kind = protocol.SymbolKindConstant
					}
					for _, name := range spec.Names {
						if name.Name == "_" {
							continue
						}
						add(name.Name, kind, "", name.Pos(), name.End())
					}
				}
			}
		}
	}
	return symbols, nil
}

func typeKind(spec *goast.TypeSpec) protocol.SymbolKind {
	switch spec.Type.(type) {
	case *goast.StructType:
		return protocol.SymbolKindStruct
	case *goast.InterfaceType:
		return protocol.SymbolKindInterface
	default:
		return protocol.SymbolKindClass
	}
}

func receiverName(expr goast.Expr) string {
	switch expr := expr.(type) {
	case *goast.StarExpr:
		return receiverName(expr.X)
	case *goast.Ident:
		return expr.Name
	case *goast.IndexExpr:
		return receiverName(expr.X)
	case *goast.IndexListExpr:
		return receiverName(expr.X)
	default:
		return ""
	}
}

// rangeFor converts 1-based token positions into 0-based LSP positions.
func rangeFor(fset *token.FileSet, pos, end token.Pos) protocol.Range {
	start := fset.Position(pos)
	stop := fset.Position(end)
	return protocol.Range{
		Start: protocol.Position{Line: uint32(start.Line - 1), Character: uint32(start.Column - 1)},
		End:   protocol.Position{Line: uint32(stop.Line - 1), Character: uint32(stop.Column - 1)},
	}
}
