package network

// regionForest is a disjoint-set over regions, joined along subregion links,
// with path halving and union by rank. Regions are never detached, so the
// sets only grow until reset.
type regionForest struct {
	index  map[RegionID]uint32
	parent []uint32
	rank   []byte
}

func newRegionForest() *regionForest {
	return &regionForest{index: make(map[RegionID]uint32)}
}

func (f *regionForest) add(id RegionID) {
	if _, ok := f.index[id]; ok {
		return
	}
	idx := uint32(len(f.parent))
	f.index[id] = idx
	f.parent = append(f.parent, idx)
	f.rank = append(f.rank, 0)
}

// find returns the representative of the set containing x.
func (f *regionForest) find(x uint32) uint32 {
	for f.parent[x] != x {
		f.parent[x] = f.parent[f.parent[x]] // path halving
		x = f.parent[x]
	}
	return x
}

// connected reports whether a and b are in the same region tree.
func (f *regionForest) connected(a, b RegionID) bool {
	ia, okA := f.index[a]
	ib, okB := f.index[b]
	if !okA || !okB {
		return false
	}
	return f.find(ia) == f.find(ib)
}

// union merges the trees of a and b. Returns false if already joined.
func (f *regionForest) union(a, b RegionID) bool {
	ra := f.find(f.index[a])
	rb := f.find(f.index[b])
	if ra == rb {
		return false
	}
	if f.rank[ra] < f.rank[rb] {
		ra, rb = rb, ra
	}
	f.parent[rb] = ra
	if f.rank[ra] == f.rank[rb] {
		f.rank[ra]++
	}
	return true
}

func (f *regionForest) reset() {
	clear(f.index)
	f.parent = f.parent[:0]
	f.rank = f.rank[:0]
}
