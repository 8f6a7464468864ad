package ast

type NodeType int

const (
	NodeSelect NodeType = iota
	NodeInsert
	NodeColumn
	NodeTable
	NodeValue
	NodeDefault
	NodeArray
	NodeBinaryExpr
	NodeUnaryExpr
	NodeWhere
)

// Node is a rendered-on-demand piece of a statement. Fingerprint is a pure
// function of the SQL text the node renders: bound values are left out, so
// trees that differ only in their values share a fingerprint.
type Node interface {
	Type() NodeType
	Accept(v Visitor) error
	Fingerprint() uint64
}

// Releaser is implemented by pooled nodes.
type Releaser interface {
	Release()
}

func release(n Node) {
	if r, ok := n.(Releaser); ok {
		r.Release()
	}
}
