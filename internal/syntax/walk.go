package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order, visiting children in source
// order. If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, d := range n.Decls {
			Walk(d, v)
		}

	case *PackageDecl:
		walkName(n.Name, v)

	case *ImportDecl:
		if n.Path != nil {
			Walk(n.Path, v)
		}

	case *FuncDecl:
		walkName(n.Name, v)
		for _, p := range n.Params {
			Walk(p, v)
		}
		if n.Result != nil {
			Walk(n.Result, v)
		}
		walkStmts(n.Body, v)

	case *Param:
		walkName(n.Name, v)
		if n.Type != nil {
			Walk(n.Type, v)
		}

	case *VarDecl:
		walkName(n.Name, v)
		if n.Type != nil {
			Walk(n.Type, v)
		}
		if n.Init != nil {
			Walk(n.Init, v)
		}

	case *ExprStmt:
		Walk(n.X, v)

	case *ShortDecl:
		walkName(n.Name, v)
		Walk(n.Init, v)

	case *Assign:
		walkName(n.Name, v)
		Walk(n.X, v)

	case *CompoundAssign:
		walkName(n.Name, v)
		Walk(n.X, v)

	case *IfStmt:
		Walk(n.Cond, v)
		walkStmts(n.Then, v)
		walkStmts(n.Else, v)

	case *ReturnStmt:
		if n.Result != nil {
			Walk(n.Result, v)
		}

	case *BinaryExpr:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *UnaryExpr:
		Walk(n.X, v)

	case *CallExpr:
		walkName(n.Receiver, v)
		walkName(n.Method, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	// Leaf nodes: Name, BasicLit, TypeName, EmptyStmt
	// No children to visit
	}
}

// walkName avoids passing a typed nil *Name through the Node interface.
func walkName(n *Name, v Visitor) {
	if n != nil {
		Walk(n, v)
	}
}

func walkStmts(list []Stmt, v Visitor) {
	for _, s := range list {
		Walk(s, v)
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

// CountNodes returns the number of nodes in the tree rooted at node.
func CountNodes(node Node) int {
	n := 0
	Inspect(node, func(Node) bool {
		n++
		return true
	})
	return n
}
