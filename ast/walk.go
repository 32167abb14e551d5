package ast

// Walk visits n and then its children in source order. If fn returns false
// the children of that node are skipped. Types are not nodes and are not
// visited.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	switch n := n.(type) {
	case *Program:
		for _, d := range n.Decls {
			Walk(d, fn)
		}
	case *FunctionDecl:
		for _, p := range n.Params {
			Walk(p, fn)
		}
		// A nil *Block would arrive as a non-nil Node.
		if n.Body != nil {
			Walk(n.Body, fn)
		}
	case *VarDecl:
		Walk(n.Init, fn)
	case *Block:
		for _, item := range n.Items {
			Walk(item, fn)
		}

	case *Return:
		Walk(n.Expr, fn)
	case *If:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		Walk(n.Else, fn)
	case *CompoundStmt:
		Walk(n.Block, fn)
	case *For:
		Walk(n.Init, fn)
		Walk(n.Cond, fn)
		Walk(n.Post, fn)
		Walk(n.Body, fn)
	case *InitDecl:
		Walk(n.Decl, fn)
	case *InitExpr:
		Walk(n.Expr, fn)
	case *While:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)
	case *DoWhile:
		Walk(n.Body, fn)
		Walk(n.Cond, fn)
	case *Switch:
		Walk(n.Expr, fn)
		Walk(n.Body, fn)
	case *Case:
		Walk(n.Value, fn)
		Walk(n.Body, fn)
	case *Default:
		Walk(n.Body, fn)
	case *Labeled:
		Walk(n.Body, fn)
	case *ExprStmt:
		Walk(n.Expr, fn)

	case *Cast:
		Walk(n.Expr, fn)
	case *Unary:
		Walk(n.Expr, fn)
	case *Postfix:
		Walk(n.Expr, fn)
	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Conditional:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		Walk(n.Else, fn)
	case *FunctionCall:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
	case *Subscript:
		Walk(n.Array, fn)
		Walk(n.Index, fn)
	case *AddressOf:
		Walk(n.Expr, fn)
	case *Dereference:
		Walk(n.Expr, fn)
	case *SizeOfExpr:
		Walk(n.Expr, fn)
	case *CompoundInit:
		for _, item := range n.Items {
			Walk(item, fn)
		}
	}
}
