package ast

import (
	"hash/fnv"
	"strconv"

	"github.com/Konsultn-Engineering/sqlbuild/utils"
)

// InsertStmt holds either Rows (VALUES form) or Source (INSERT ... SELECT).
// Each row has exactly len(Columns) slots; a slot is a *Value or DefaultValue.
type InsertStmt struct {
	Table   *Table
	Columns []*Column
	Rows    [][]Node
	Source  *SelectStmt
}

func NewInsertStmt() *InsertStmt {
	i := insertStmtPool.Get().(*InsertStmt)
	i.Table = nil
	i.Columns = i.Columns[:0]
	i.Rows = i.Rows[:0]
	i.Source = nil
	return i
}

func (i *InsertStmt) Type() NodeType         { return NodeInsert }
func (i *InsertStmt) Accept(v Visitor) error { return v.VisitInsert(i) }
func (i *InsertStmt) Fingerprint() uint64 {
	h := fnv.New64a()
	h.Write([]byte("insert:"))
	if i.Table != nil {
		h.Write(utils.U64ToBytes(i.Table.Fingerprint()))
	}
	for _, col := range i.Columns {
		h.Write(utils.U64ToBytes(col.Fingerprint()))
	}
	for r, row := range i.Rows {
		h.Write([]byte("row:" + strconv.Itoa(r)))
		for _, slot := range row {
			h.Write(utils.U64ToBytes(slot.Fingerprint()))
		}
	}
	if i.Source != nil {
		h.Write([]byte("source:"))
		h.Write(utils.U64ToBytes(i.Source.Fingerprint()))
	}
	return h.Sum64()
}

func (i *InsertStmt) Release() {
	if i.Table != nil {
		i.Table.Release()
		i.Table = nil
	}
	for n, col := range i.Columns {
		col.Release()
		i.Columns[n] = nil
	}
	i.Columns = i.Columns[:0]
	for n, row := range i.Rows {
		for _, slot := range row {
			release(slot)
		}
		i.Rows[n] = nil
	}
	i.Rows = i.Rows[:0]
	if i.Source != nil {
		i.Source.Release()
		i.Source = nil
	}
	insertStmtPool.Put(i)
}
