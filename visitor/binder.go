package visitor

import "github.com/Konsultn-Engineering/sqlbuild/dialect"

// Binder records bound values in emission order and hands out the
// matching placeholder for each one.
type Binder struct {
	dialect dialect.Dialect
	values  []any
	inline  bool
}

func NewBinder(d dialect.Dialect) *Binder {
	if d == nil {
		d = dialect.NewStandardDialect()
	}
	return &Binder{dialect: d, values: make([]any, 0, 8)}
}

// Bind appends v and returns its placeholder token, or the literal when
// inlining is on.
func (b *Binder) Bind(v any) string {
	b.values = append(b.values, v)
	if b.inline {
		return b.dialect.RenderValue(v)
	}
	return b.dialect.Placeholder(len(b.values))
}

// SetInline switches the binder to render literals instead of placeholders.
// Inlined SQL is for logs only and must never be executed.
func (b *Binder) SetInline(on bool) {
	b.inline = on
}

// Values returns a snapshot of the bound values.
func (b *Binder) Values() []any {
	out := make([]any, len(b.values))
	copy(out, b.values)
	return out
}

func (b *Binder) Len() int { return len(b.values) }

func (b *Binder) Reset() {
	for i := range b.values {
		b.values[i] = nil
	}
	b.values = b.values[:0]
}
