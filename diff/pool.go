package diff

// noPrev is the sentinel previous-index value meaning "no previous
// component", matching the 30-bit field width described for the packed
// component layout.
const noPrev = (1 << 30) - 1

// component is one node of the edit-path arena: a contiguous run of Count
// tokens, classified added/removed, linking back to the previous run in the
// chosen path. It is packed into two 32-bit words so a large diff's arena
// stays cache-friendly.
type component struct {
	count uint32 // w0
	flags uint32 // w1: bit31=added, bit30=removed, bits0-29=previous index
}

func packComponent(count uint32, added, removed bool, prev int32) component {
	var flags uint32
	if added {
		flags |= 1 << 31
	}
	if removed {
		flags |= 1 << 30
	}
	p := uint32(noPrev)
	if prev >= 0 {
		p = uint32(prev)
	}
	flags |= p & noPrev
	return component{count: count, flags: flags}
}

func (c component) added() bool   { return c.flags&(1<<31) != 0 }
func (c component) removed() bool { return c.flags&(1<<30) != 0 }

func (c component) previous() int32 {
	p := c.flags & noPrev
	if p == noPrev {
		return -1
	}
	return int32(p)
}

// arena is the pooled, contiguous backing store for a diff invocation's
// component chain. Components are never freed individually; the whole arena
// is cleared between invocations.
type arena struct {
	nodes []component
}

func (a *arena) reset() {
	a.nodes = a.nodes[:0]
}

func (a *arena) push(count uint32, added, removed bool, prev int32) int32 {
	idx := int32(len(a.nodes))
	a.nodes = append(a.nodes, packComponent(count, added, removed, prev))
	return idx
}

func (a *arena) setCount(idx int32, count uint32) {
	a.nodes[idx].count = count
}

// path is the Myers per-diagonal search state. ok is false for diagonals that
// have not yet been reached; oldPos == -1 is the valid "before any token"
// sentinel once ok is true.
type path struct {
	oldPos int
	last   int32 // arena index of the most recent component, -1 if none
	ok     bool
}

// Pool holds the scratch memory (component arena and per-diagonal path
// vector) a diff invocation needs. Reusing a Pool across calls avoids
// reallocating that scratch memory; a nil Pool is equivalent to a fresh one
// used once.
type Pool struct {
	arena arena
	v     []path
}

func (p *Pool) reset(size int) []path {
	p.arena.reset()
	if cap(p.v) < size {
		p.v = make([]path, size)
	}
	v := p.v[:size]
	for i := range v {
		v[i] = path{}
	}
	return v
}

func acquirePool(o *options) *Pool {
	if o.pool != nil {
		return o.pool
	}
	return &Pool{}
}
