package ast

import (
	"hash/fnv"

	"github.com/Konsultn-Engineering/sqlbuild/utils"
)

type SelectStmt struct {
	Columns []Node
	From    *Table
	Where   *WhereClause
}

func NewSelectStmt() *SelectStmt {
	s := selectStmtPool.Get().(*SelectStmt)
	s.Columns = s.Columns[:0]
	s.From = nil
	s.Where = nil
	return s
}

func (s *SelectStmt) Type() NodeType         { return NodeSelect }
func (s *SelectStmt) Accept(v Visitor) error { return v.VisitSelect(s) }
func (s *SelectStmt) Fingerprint() uint64 {
	h := fnv.New64a()
	h.Write([]byte("select:"))
	if s.From != nil {
		h.Write(utils.U64ToBytes(s.From.Fingerprint()))
	}
	for _, col := range s.Columns {
		h.Write(utils.U64ToBytes(col.Fingerprint()))
	}
	if s.Where != nil {
		h.Write([]byte("where:"))
		h.Write(utils.U64ToBytes(s.Where.Fingerprint()))
	}
	return h.Sum64()
}

// AddWhereCondition appends cond, joined to any previous condition by op.
func (s *SelectStmt) AddWhereCondition(cond Node, op string) {
	if s.Where == nil {
		s.Where = NewWhereClause()
	}
	s.Where.Append(op, cond)
}

func (s *SelectStmt) Release() {
	for i, col := range s.Columns {
		release(col)
		s.Columns[i] = nil
	}
	s.Columns = s.Columns[:0]
	if s.From != nil {
		s.From.Release()
		s.From = nil
	}
	if s.Where != nil {
		s.Where.Release()
		s.Where = nil
	}
	selectStmtPool.Put(s)
}
