package dialect

// Standard renders dialect-neutral SQL: bare identifiers and "?" for every
// bound value.
type Standard struct{}

func NewStandardDialect() Dialect {
	return &Standard{}
}

func (Standard) Name() string { return "standard" }

func (Standard) QuoteIdentifier(name string) string {
	return name
}

func (Standard) Placeholder(n int) string {
	return "?"
}

func (Standard) RenderValue(v any) string {
	return renderLiteral(v)
}
