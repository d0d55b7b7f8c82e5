package llm

// KeyPool is an ordered set of interchangeable credentials for one
// provider. The current index is sticky: after a successful call the
// pool remembers which credential worked and tries it first next time.
// Cheap load balancing, no fairness guarantees.
//
// Single-writer: turns are strictly sequential (one generate call at a
// time), so no lock guards current. Revisit if turns are ever
// parallelized.
type KeyPool struct {
	keys    []string
	current int
}

// NewKeyPool creates a pool from the given keys, dropping empties.
func NewKeyPool(keys []string) *KeyPool {
	p := &KeyPool{}
	for _, k := range keys {
		if k != "" {
			p.keys = append(p.keys, k)
		}
	}
	return p
}

// Empty reports whether the pool has no usable credentials.
func (p *KeyPool) Empty() bool {
	return len(p.keys) == 0
}

// Size returns the number of credentials in the pool.
func (p *KeyPool) Size() int {
	return len(p.keys)
}

// Key returns the credential at index i.
func (p *KeyPool) Key(i int) string {
	return p.keys[i]
}

// Current returns the sticky current index.
func (p *KeyPool) Current() int {
	return p.current
}

// order returns every index exactly once, starting at current and
// wrapping modulo pool size. Callers attempt credentials in this order.
func (p *KeyPool) order() []int {
	order := make([]int, len(p.keys))
	for i := range p.keys {
		order[i] = (p.current + i) % len(p.keys)
	}
	return order
}

// markGood records i as the credential to try first on the next call.
func (p *KeyPool) markGood(i int) {
	p.current = i
}
