package typechecker

import (
	"jakt/analysis-go/pkg/ast"
	"jakt/analysis-go/pkg/types"
)

func literalType(lit ast.Expression) types.Type {
	switch l := lit.(type) {
	case *ast.IntegerLiteral:
		if l.Suffix == "" {
			return types.I64
		}
		prim, ok := types.LookupPrimitive(l.Suffix)
		if !ok || !isIntegerKind(prim.Kind) {
			invariant(l, "unknown integer suffix %q", l.Suffix)
		}
		return prim
	case *ast.FloatLiteral:
		switch l.Suffix {
		case "", "f64":
			return types.F64
		case "f32":
			return types.F32
		}
		invariant(l, "unknown float suffix %q", l.Suffix)
	case *ast.BooleanLiteral:
		return types.Bool
	case *ast.StringLiteral:
		return types.String
	case *ast.CharLiteral:
		if l.IsByte {
			return types.CInt
		}
		return types.CChar
	default:
		invariant(lit, "unreachable literal %T", lit)
	}
	return types.Unknown
}

func isIntegerKind(kind types.PrimitiveKind) bool {
	switch kind {
	case types.PrimitiveI8, types.PrimitiveI16, types.PrimitiveI32, types.PrimitiveI64,
		types.PrimitiveU8, types.PrimitiveU16, types.PrimitiveU32, types.PrimitiveU64,
		types.PrimitiveUsize, types.PrimitiveCChar, types.PrimitiveCInt:
		return true
	}
	return false
}
