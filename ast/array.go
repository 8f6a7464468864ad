package ast

import "github.com/Konsultn-Engineering/sqlbuild/utils"

// Array renders as a parenthesized list of placeholders, e.g. for IN.
type Array struct {
	Values []Value
}

func NewArray(values []any) *Array {
	a := arrayPool.Get().(*Array)
	a.Values = a.Values[:0]

	for _, val := range values {
		a.Values = append(a.Values, Value{Val: val})
	}
	return a
}

func (a *Array) Type() NodeType {
	return NodeArray
}

func (a *Array) Accept(v Visitor) error {
	return v.VisitArray(a)
}

func (a *Array) Fingerprint() uint64 {
	fps := make([]uint64, len(a.Values))
	for i := range fps {
		fps[i] = valueFP
	}
	return utils.MixAll(utils.U64("array"), fps...)
}

func (a *Array) Release() {
	for i := range a.Values {
		a.Values[i].Val = nil
	}
	a.Values = a.Values[:0]
	arrayPool.Put(a)
}
