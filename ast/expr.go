package ast

import (
	"hash/fnv"

	"github.com/Konsultn-Engineering/sqlbuild/utils"
)

type BinaryExpr struct {
	Left     Node
	Operator string
	Right    Node
}

func NewBinaryExpr(left Node, op string, right Node) *BinaryExpr {
	b := binaryExprPool.Get().(*BinaryExpr)
	b.Left = left
	b.Operator = op
	b.Right = right
	return b
}

func (b *BinaryExpr) Type() NodeType         { return NodeBinaryExpr }
func (b *BinaryExpr) Accept(v Visitor) error { return v.VisitBinaryExpr(b) }
func (b *BinaryExpr) Fingerprint() uint64 {
	h := fnv.New64a()
	h.Write([]byte("bin:" + b.Operator))
	if b.Left != nil {
		h.Write(utils.U64ToBytes(b.Left.Fingerprint()))
	}
	if b.Right != nil {
		h.Write(utils.U64ToBytes(b.Right.Fingerprint()))
	}
	return h.Sum64()
}

func (b *BinaryExpr) Release() {
	release(b.Left)
	release(b.Right)
	b.Left, b.Right, b.Operator = nil, nil, ""
	binaryExprPool.Put(b)
}

// UnaryExpr renders "<op> <operand>" when IsPrefix, otherwise "<operand> <op>".
type UnaryExpr struct {
	Operator string
	Operand  Node
	IsPrefix bool
}

func NewUnaryExpr(operand Node, op string, prefix bool) *UnaryExpr {
	u := unaryExprPool.Get().(*UnaryExpr)
	u.Operand = operand
	u.Operator = op
	u.IsPrefix = prefix
	return u
}

func (u *UnaryExpr) Type() NodeType         { return NodeUnaryExpr }
func (u *UnaryExpr) Accept(v Visitor) error { return v.VisitUnaryExpr(u) }
func (u *UnaryExpr) Fingerprint() uint64 {
	h := fnv.New64a()
	h.Write([]byte("unary:" + u.Operator))
	if u.IsPrefix {
		h.Write([]byte(":prefix"))
	}
	if u.Operand != nil {
		h.Write(utils.U64ToBytes(u.Operand.Fingerprint()))
	}
	return h.Sum64()
}

func (u *UnaryExpr) Release() {
	release(u.Operand)
	u.Operand, u.Operator, u.IsPrefix = nil, "", false
	unaryExprPool.Put(u)
}
