package typechecker

import (
	"jakt/analysis-go/pkg/ast"
	"jakt/analysis-go/pkg/types"
)

// Operand agreement is a separate validity check; inference only reports
// the result shape of each operator.
func (q *query) binaryType(expr *ast.BinaryExpression) types.Type {
	switch expr.Operator {
	case "and", "or", "==", "!=", "<", "<=", ">", ">=":
		return types.Bool
	case "+", "-", "*", "/", "%", "&", "|", "^", "<<", ">>",
		"=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=":
		return q.infer(expr.Left)
	case "??":
		return types.Unknown
	}
	invariant(expr, "unknown binary operator %q", expr.Operator)
	return types.Unknown
}

func (q *query) prefixType(expr *ast.PrefixUnaryExpression) types.Type {
	switch expr.Operator {
	case "++", "--", "-", "not", "~":
		return q.infer(expr.Operand)
	case "raw":
		return types.RawType{Inner: q.infer(expr.Operand)}
	case "*":
		if raw, ok := q.infer(expr.Operand).(types.RawType); ok {
			return raw.Inner
		}
		return types.Unknown
	}
	invariant(expr, "unknown prefix operator %q", expr.Operator)
	return types.Unknown
}
