// Package pager tracks how much of an ordered list is currently shown.
// The visible window only ever grows; it is reset when the underlying
// dataset changes.
package pager

// DefaultPageSize is how many meetings a detail page reveals per step.
const DefaultPageSize = 5

// Pager exposes a monotonically growing visible count over a list of n items.
type Pager struct {
	total    int
	visible  int
	pageSize int
}

// New creates a pager with the given page size; sizes below one fall back
// to DefaultPageSize.
func New(pageSize int) *Pager {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Pager{pageSize: pageSize}
}

// Reset points the pager at a new list of n items and shows the first page.
func (p *Pager) Reset(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.visible = min(p.pageSize, total)
}

// Advance reveals one more page. Once everything is visible it is a no-op,
// so repeated calls are safe.
func (p *Pager) Advance() {
	p.visible = min(p.visible+p.pageSize, p.total)
}

// HasMore reports whether any items remain hidden.
func (p *Pager) HasMore() bool {
	return p.visible < p.total
}

// Visible returns the current visible count.
func (p *Pager) Visible() int {
	return p.visible
}

// ShowControl reports whether a load-more control should exist at all.
// A list that fits in one page never shows the control, even before the
// first Advance.
func (p *Pager) ShowControl() bool {
	return p.total > p.pageSize
}
