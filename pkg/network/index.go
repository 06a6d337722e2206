package network

import (
	"golang.org/x/exp/slices"
)

// indexState tracks how much work the next read of a lazyIndex must do.
type indexState uint8

const (
	indexEmpty indexState = iota // never materialized since creation or reset
	indexClean                   // sorted body covers every stop
	indexTail                    // sorted body plus unsorted, newly added ids
	indexDirty                   // a key inside the sorted body changed
)

func (s indexState) String() string {
	switch s {
	case indexEmpty:
		return "empty"
	case indexClean:
		return "clean"
	case indexTail:
		return "tail"
	case indexDirty:
		return "dirty"
	}
	return "unknown"
}

// lazyIndex keeps stop ids ordered by a key that is only sorted on demand.
// Additions collect in an unsorted tail that is sorted and merged into the
// body on the next read; a key change inside the body forces a full rebuild.
type lazyIndex struct {
	cmp    func(a, b StopID) int
	sorted []StopID
	tail   []StopID
	inTail map[StopID]struct{}
	state  indexState
}

func newLazyIndex(cmp func(a, b StopID) int) *lazyIndex {
	return &lazyIndex{
		cmp:    cmp,
		inTail: make(map[StopID]struct{}),
	}
}

// add queues a new id for the next merge.
func (ix *lazyIndex) add(id StopID) {
	ix.tail = append(ix.tail, id)
	ix.inTail[id] = struct{}{}
	if ix.state == indexClean {
		ix.state = indexTail
	}
}

// touch records that the key of id changed. Ids still in the tail have not
// been placed yet and need nothing.
func (ix *lazyIndex) touch(id StopID) {
	if _, ok := ix.inTail[id]; ok {
		return
	}
	if ix.state == indexClean || ix.state == indexTail {
		ix.state = indexDirty
	}
}

// remove drops id from both buffers. Removing never breaks the order of the
// remaining ids, so the state is kept.
func (ix *lazyIndex) remove(id StopID) {
	if i := slices.Index(ix.sorted, id); i >= 0 {
		ix.sorted = slices.Delete(ix.sorted, i, i+1)
	}
	if _, ok := ix.inTail[id]; ok {
		delete(ix.inTail, id)
		if i := slices.Index(ix.tail, id); i >= 0 {
			ix.tail = slices.Delete(ix.tail, i, i+1)
		}
		if ix.state == indexTail && len(ix.tail) == 0 {
			ix.state = indexClean
		}
	}
}

// ordered brings the index up to date and returns a copy of the ordering.
// all lists every current id and is only consulted for a full rebuild.
func (ix *lazyIndex) ordered(all []StopID) []StopID {
	switch ix.state {
	case indexEmpty, indexDirty:
		ix.sorted = slices.Clone(all)
		slices.SortStableFunc(ix.sorted, ix.cmp)
		ix.clearTail()
	case indexTail:
		slices.SortStableFunc(ix.tail, ix.cmp)
		ix.sorted = mergeStable(ix.sorted, ix.tail, ix.cmp)
		ix.clearTail()
	}
	ix.state = indexClean
	return slices.Clone(ix.sorted)
}

func (ix *lazyIndex) reset() {
	ix.sorted = nil
	ix.clearTail()
	ix.state = indexEmpty
}

func (ix *lazyIndex) clearTail() {
	ix.tail = ix.tail[:0]
	clear(ix.inTail)
}

// mergeStable merges two sorted runs. On equal keys the body entry comes first.
func mergeStable(body, tail []StopID, cmp func(a, b StopID) int) []StopID {
	out := make([]StopID, 0, len(body)+len(tail))
	i, j := 0, 0
	for i < len(body) && j < len(tail) {
		if cmp(tail[j], body[i]) < 0 {
			out = append(out, tail[j])
			j++
		} else {
			out = append(out, body[i])
			i++
		}
	}
	out = append(out, body[i:]...)
	return append(out, tail[j:]...)
}
