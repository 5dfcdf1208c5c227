// Package slot hands out generational references to registry members so
// that a reference outliving its member can be detected.
package slot

// Ref encodes a 32-bit slot index in the lower bits and a 32-bit generation
// in the upper bits. The generation increments on release to invalidate
// stale refs. Generations start at 1, so the zero Ref is never issued.
type Ref uint64

func NewRef(index uint32, generation uint32) Ref {
	return Ref(uint64(generation)<<32 | uint64(index))
}

func (r Ref) Index() uint32      { return uint32(r) }
func (r Ref) Generation() uint32 { return uint32(r >> 32) }
func (r Ref) IsZero() bool       { return r == 0 }

// Pool manages slot allocation with generational indices and a free list.
type Pool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewPool(capacity int) *Pool {
	return &Pool{
		generations: make([]uint32, 0, capacity),
		freeList:    make([]uint32, 0, capacity),
	}
}

func (p *Pool) Acquire() Ref {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewRef(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 1)
	}
	return NewRef(idx, p.generations[idx])
}

func (p *Pool) Alive(r Ref) bool {
	idx := r.Index()
	if r.IsZero() || idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == r.Generation()
}

func (p *Pool) Release(r Ref) {
	if !p.Alive(r) {
		return // already released (stale reference)
	}
	idx := r.Index()
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}

// ReleaseAll invalidates every outstanding ref. Slots are reused afterwards
// with bumped generations.
func (p *Pool) ReleaseAll() {
	p.freeList = p.freeList[:0]
	for idx := uint32(0); idx < p.nextIndex; idx++ {
		p.generations[idx]++
		p.freeList = append(p.freeList, idx)
	}
}
