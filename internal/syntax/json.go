package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return map[string]interface{}{
			"type":  "Program",
			"pos":   n.pos.String(),
			"decls": mapSlice(n.Decls, toJSON),
		}

	case *PackageDecl:
		return map[string]interface{}{
			"type": "PackageDecl",
			"pos":  n.pos.String(),
			"name": n.Name.Value,
		}

	case *ImportDecl:
		return map[string]interface{}{
			"type": "ImportDecl",
			"pos":  n.pos.String(),
			"path": n.Path.Value,
		}

	case *FuncDecl:
		m := map[string]interface{}{
			"type":   "FuncDecl",
			"pos":    n.pos.String(),
			"name":   n.Name.Value,
			"params": mapSlice(n.Params, func(p *Param) interface{} { return toJSON(p) }),
			"body":   mapSlice(n.Body, stmtJSON),
		}
		if n.Result != nil {
			m["result"] = n.Result.Name
		}
		return m

	case *Param:
		return map[string]interface{}{
			"type":    "Param",
			"pos":     n.pos.String(),
			"name":    n.Name.Value,
			"vartype": n.Type.Name,
		}

	case *VarDecl:
		m := map[string]interface{}{
			"type":    "VarDecl",
			"pos":     n.pos.String(),
			"name":    n.Name.Value,
			"vartype": n.Type.Name,
		}
		if n.Init != nil {
			m["init"] = toJSON(n.Init)
		}
		return m

	case *TypeName:
		return map[string]interface{}{
			"type": "TypeName",
			"pos":  n.pos.String(),
			"name": n.Name,
		}

	case *EmptyStmt:
		return map[string]interface{}{
			"type": "EmptyStmt",
			"pos":  n.pos.String(),
		}

	case *ExprStmt:
		return map[string]interface{}{
			"type": "ExprStmt",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	case *ShortDecl:
		return map[string]interface{}{
			"type": "ShortDecl",
			"pos":  n.pos.String(),
			"name": n.Name.Value,
			"init": toJSON(n.Init),
		}

	case *Assign:
		return map[string]interface{}{
			"type": "Assign",
			"pos":  n.pos.String(),
			"name": n.Name.Value,
			"x":    toJSON(n.X),
		}

	case *CompoundAssign:
		return map[string]interface{}{
			"type": "CompoundAssign",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"name": n.Name.Value,
			"x":    toJSON(n.X),
		}

	case *IfStmt:
		m := map[string]interface{}{
			"type": "IfStmt",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"then": mapSlice(n.Then, stmtJSON),
		}
		if n.Else != nil {
			m["else"] = mapSlice(n.Else, stmtJSON)
		}
		return m

	case *ReturnStmt:
		m := map[string]interface{}{
			"type": "ReturnStmt",
			"pos":  n.pos.String(),
		}
		if n.Result != nil {
			m["result"] = toJSON(n.Result)
		}
		return m

	case *Name:
		return map[string]interface{}{
			"type":  "Name",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *BasicLit:
		return map[string]interface{}{
			"type":  "BasicLit",
			"pos":   n.pos.String(),
			"kind":  n.Kind.String(),
			"value": n.Value,
		}

	case *BinaryExpr:
		return map[string]interface{}{
			"type": "BinaryExpr",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	case *UnaryExpr:
		return map[string]interface{}{
			"type": "UnaryExpr",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
		}

	case *CallExpr:
		m := map[string]interface{}{
			"type":   "CallExpr",
			"pos":    n.pos.String(),
			"method": n.Method.Value,
			"args":   mapSlice(n.Args, exprJSON),
		}
		if n.Receiver != nil {
			m["receiver"] = n.Receiver.Value
		}
		return m
	}

	return map[string]interface{}{"type": "Unknown"}
}

func stmtJSON(s Stmt) interface{} { return toJSON(s) }
func exprJSON(e Expr) interface{} { return toJSON(e) }

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
