package expression

import (
	"fmt"
	"sort"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// fieldWalker collects the record fields an expression references, so a
// filter expression can be validated against a view's known columns before
// it ever touches a dataset.
type fieldWalker struct {
	fields map[string]struct{}
	err    error
}

// Functions and literals that parse as identifiers but never name a field.
func isReservedIdentifier(name string) bool {
	switch strings.ToLower(name) {
	case "null", "nil", "true", "false":
		return true
	}
	switch strings.ToUpper(name) {
	case "TODAY", "NOW", "LEN", "UPPER", "LOWER", "CONTAINS", "STARTS_WITH", "ENDS_WITH", "IF":
		return true
	}
	return false
}

// Fields parses an expression and returns the sorted set of record fields
// it references. Nested access ("user.department") is reported as a
// dot-path.
func Fields(expression string) ([]string, error) {
	tree, err := parser.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expression: %w", err)
	}

	walker := &fieldWalker{fields: make(map[string]struct{})}
	walker.walk(&tree.Node)
	if walker.err != nil {
		return nil, walker.err
	}

	out := make([]string, 0, len(walker.fields))
	for field := range walker.fields {
		out = append(out, field)
	}
	sort.Strings(out)
	return out, nil
}

func (w *fieldWalker) walk(node *ast.Node) {
	if w.err != nil {
		return
	}
	if node == nil || *node == nil {
		return
	}

	switch v := (*node).(type) {
	case *ast.IdentifierNode:
		if !isReservedIdentifier(v.Value) {
			w.fields[v.Value] = struct{}{}
		}
	case *ast.MemberNode:
		if path, ok := memberPath(v); ok {
			w.fields[path] = struct{}{}
		} else {
			w.walk(&v.Node)
			w.walk(&v.Property)
		}
	case *ast.BinaryNode:
		w.walk(&v.Left)
		w.walk(&v.Right)
	case *ast.UnaryNode:
		w.walk(&v.Node)
	case *ast.CallNode:
		// The callee names a function, not a field; only arguments count.
		for i := range v.Arguments {
			w.walk(&v.Arguments[i])
		}
	case *ast.ConditionalNode:
		w.walk(&v.Cond)
		w.walk(&v.Exp1)
		w.walk(&v.Exp2)
	case *ast.ArrayNode:
		for i := range v.Nodes {
			w.walk(&v.Nodes[i])
		}
	case *ast.IntegerNode, *ast.FloatNode, *ast.StringNode, *ast.BoolNode, *ast.NilNode:
		// Literals reference nothing.
	default:
		w.err = fmt.Errorf("unsupported node type: %T", *node)
	}
}

// memberPath flattens a chain of member accesses rooted at an identifier
// into "a.b.c". Returns false for computed access (a[b]) or non-identifier
// roots.
func memberPath(node *ast.MemberNode) (string, bool) {
	prop, ok := node.Property.(*ast.StringNode)
	if !ok {
		return "", false
	}

	switch base := node.Node.(type) {
	case *ast.IdentifierNode:
		return base.Value + "." + prop.Value, true
	case *ast.MemberNode:
		parent, ok := memberPath(base)
		if !ok {
			return "", false
		}
		return parent + "." + prop.Value, true
	default:
		return "", false
	}
}
