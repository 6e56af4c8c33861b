package typechecker

import (
	"fmt"

	"github.com/pkg/errors"

	"jakt/analysis-go/pkg/ast"
)

// InvariantError reports an engine defect: a syntax or type variant reached a
// path that should be unreachable. It fails only the query in flight.
type InvariantError struct {
	Node ast.Node
	Err  error
}

func (e *InvariantError) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("typechecker: invariant violated at %s: %v", e.Node.NodeType(), e.Err)
	}
	return fmt.Sprintf("typechecker: invariant violated: %v", e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

// StackTrace returns the stack recorded where the violation was raised.
func (e *InvariantError) StackTrace() errors.StackTrace {
	if tracer, ok := e.Err.(interface{ StackTrace() errors.StackTrace }); ok {
		return tracer.StackTrace()
	}
	return nil
}

func invariant(node ast.Node, format string, args ...any) {
	panic(&InvariantError{Node: node, Err: errors.Errorf(format, args...)})
}

type cancellation struct {
	err error
}
