package ast

import (
	"reflect"

	"github.com/Konsultn-Engineering/sqlbuild/utils"
)

// ----- WHERE conditions: singly-linked list with rolling fingerprint -----

type WhereCondition struct {
	Condition Node
	Operator  string // joins this condition to the previous one; unused on First
	Next      *WhereCondition

	fp  uint64 // node-only
	acc uint64 // cumulative (chain fp up to this node)
}

type WhereClause struct {
	First *WhereCondition
	Tail  *WhereCondition
}

func NewWhereClause() *WhereClause {
	w := whereClausePool.Get().(*WhereClause)
	w.First, w.Tail = nil, nil
	return w
}

func (w *WhereClause) Append(op string, cond Node) *WhereCondition {
	n := whereConditionPool.Get().(*WhereCondition)
	n.Operator, n.Condition, n.Next = op, cond, nil

	// node-only fp = hash(op) mixed with the condition's own fingerprint
	var condFP uint64
	if cond != nil {
		condFP = utils.Mix64(utils.U64(reflect.TypeOf(cond).String()), cond.Fingerprint())
	}
	n.fp = utils.Mix64(utils.U64(op), condFP)

	if w.First == nil {
		n.acc = utils.Mix64(0x9e3779b185ebca87, n.fp) // seeded start
		w.First, w.Tail = n, n
		return n
	}
	n.acc = utils.Mix64(w.Tail.acc, n.fp)
	w.Tail.Next = n
	w.Tail = n
	return n
}

func (w *WhereClause) Type() NodeType         { return NodeWhere }
func (w *WhereClause) Accept(v Visitor) error { return v.VisitWhereClause(w) }
func (w *WhereClause) Fingerprint() uint64 {
	if w == nil || w.Tail == nil {
		return 0
	}
	return w.Tail.acc
}

func (w *WhereClause) Release() {
	if w == nil {
		return
	}
	for cur := w.First; cur != nil; {
		next := cur.Next
		cur.Release()
		cur = next
	}
	w.First, w.Tail = nil, nil
	whereClausePool.Put(w)
}

func (n *WhereCondition) Release() {
	if n == nil {
		return
	}
	release(n.Condition)
	n.Condition = nil
	n.Operator = ""
	n.Next = nil
	n.fp, n.acc = 0, 0
	whereConditionPool.Put(n)
}
