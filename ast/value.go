package ast

import "github.com/Konsultn-Engineering/sqlbuild/utils"

// Value is a bound parameter. It always renders as a placeholder.
type Value struct {
	Val any
}

func NewValue(val any) *Value {
	v := valuePool.Get().(*Value)
	v.Val = val
	return v
}

func (v *Value) Type() NodeType           { return NodeValue }
func (v *Value) Accept(vis Visitor) error { return vis.VisitValue(v) }

// Fingerprint is the same for every value: a value always renders as one
// placeholder, and fingerprints identify rendered text only.
func (v *Value) Fingerprint() uint64 {
	return valueFP
}

func (v *Value) Release() {
	v.Val = nil
	valuePool.Put(v)
}

// Default is the DEFAULT keyword in a VALUES slot. It is never bound.
type Default struct{}

// DefaultValue is the shared DEFAULT node; it carries no state.
var DefaultValue = &Default{}

var (
	valueFP   = utils.U64("val")
	defaultFP = utils.U64("default")
)

func (d *Default) Type() NodeType         { return NodeDefault }
func (d *Default) Accept(v Visitor) error { return v.VisitDefault(d) }
func (d *Default) Fingerprint() uint64    { return defaultFP }
