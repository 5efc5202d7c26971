package store

import "context"

// Strategy runs one flavour of store search.
type Strategy interface {
	Find(ctx context.Context, c Criteria) (*Result, error)
}

// Searcher is what the HTTP layer depends on.
type Searcher interface {
	Search(ctx context.Context, c Criteria) (*Result, error)
}

// Reader picks the proximity strategy when a radius and a position are
// given, and the plain filtered listing otherwise.
type Reader struct {
	plain Strategy
	geo   Strategy
}

func NewReader(plain, geo Strategy) *Reader {
	return &Reader{plain: plain, geo: geo}
}

func (r *Reader) Search(ctx context.Context, c Criteria) (*Result, error) {
	c = c.Normalize()
	if c.WantsDistance() {
		return r.geo.Find(ctx, c)
	}
	return r.plain.Find(ctx, c)
}

var _ Searcher = (*Reader)(nil)
