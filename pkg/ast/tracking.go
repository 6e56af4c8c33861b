package ast

import "sync/atomic"

// Tracker holds a declaration's modification revision. The zero value is
// revision 0 and is ready to use.
type Tracker struct {
	revision atomic.Uint64
}

// Revision reports the current modification count.
func (t *Tracker) Revision() uint64 { return t.revision.Load() }

func (t *Tracker) bump() { t.revision.Add(1) }

// Touch records an edit to node: the revision of every declaration from node
// up to its file is incremented.
func Touch(node Node) {
	for cur := node; cur != nil; cur = cur.Parent() {
		if decl, ok := cur.(Declaration); ok {
			decl.bump()
		}
	}
}
