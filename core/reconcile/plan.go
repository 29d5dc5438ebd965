package reconcile

// buildScript orders the edits for replay against a position-indexed list.
//
// Placed items (stable, inserted or already moved) always appear in ascending
// new-index order, and a reordered survivor that has not moved yet sits at
// the tail of the gap after the stable item preceding it in old order.
// Laying out one slot per new index plus one slot per pending mover in that
// order gives every element a fixed slot for its whole lifetime, so the
// position of an element is the number of occupied slots before it.
func buildScript[T any](oldItems, newItems []T, newToOld []int, cb Callback[T], o Options) *Script[T] {
	script := &Script[T]{
		Edits:  []Edit[T]{},
		OldLen: len(oldItems),
		NewLen: len(newItems),
	}

	oldToNew := make([]int, len(oldItems))
	for i := range oldToNew {
		oldToNew[i] = -1
	}
	for j, i := range newToOld {
		if i >= 0 {
			oldToNew[i] = j
			script.Summary.Matched++
		}
	}

	// Survivors in old order, as new indices.
	survivors := make([]int, 0, script.Summary.Matched)
	for _, j := range oldToNew {
		if j >= 0 {
			survivors = append(survivors, j)
		}
	}

	placed := make([]bool, len(newItems))
	stable := longestIncreasing(survivors)
	for _, k := range stable {
		placed[survivors[k]] = true
	}
	script.Summary.Stable = len(stable)

	// Without move detection a reordered survivor is removed and re-inserted.
	paired := make([]bool, len(newItems))
	for j, i := range newToOld {
		if i < 0 {
			continue
		}
		if !o.DetectMoves && !placed[j] {
			oldToNew[i] = -1
			continue
		}
		paired[j] = true
	}

	// Removals, ascending old index. Pending movers are grouped by the number
	// of stable items before them in old order.
	gaps := make([][]int, len(stable)+1)
	removed, seen := 0, 0
	for i, j := range oldToNew {
		switch {
		case j < 0:
			script.Edits = append(script.Edits, Edit[T]{Op: OpRemove, Position: i - removed})
			removed++
		case placed[j]:
			seen++
		default:
			gaps[seen] = append(gaps[seen], j)
		}
	}

	slot := make([]int, len(newItems))
	moverSlot := make([]int, len(newItems))
	n, g := 0, 0
	flush := func() {
		for _, j := range gaps[g] {
			moverSlot[j] = n
			n++
		}
	}
	for j := range newItems {
		if placed[j] {
			flush()
			g++
		}
		slot[j] = n
		n++
	}
	flush()

	occupied := newFenwick(n)
	for j := range newItems {
		switch {
		case placed[j]:
			occupied.add(slot[j], 1)
		case paired[j]:
			occupied.add(moverSlot[j], 1)
		}
	}

	// Insertions, ascending new index.
	for j := range newItems {
		if paired[j] {
			continue
		}
		pos := occupied.before(slot[j])
		occupied.add(slot[j], 1)
		placed[j] = true
		script.Edits = append(script.Edits, Edit[T]{Op: OpInsert, Position: pos, Item: newItems[j]})
	}

	// Moves, ascending new index.
	for j := range newItems {
		if placed[j] {
			continue
		}
		from := occupied.before(moverSlot[j])
		occupied.add(moverSlot[j], -1)
		to := occupied.before(slot[j])
		occupied.add(slot[j], 1)
		placed[j] = true
		script.Edits = append(script.Edits, Edit[T]{Op: OpMove, Position: from, ToPosition: to})
	}

	// Changes, against the final positions.
	for j, i := range newToOld {
		if !paired[j] {
			continue
		}
		if !cb.SameContent(oldItems[i], newItems[j]) {
			script.Edits = append(script.Edits, Edit[T]{Op: OpChange, Position: j, Item: newItems[j]})
		}
	}

	for _, e := range script.Edits {
		switch e.Op {
		case OpInsert:
			script.Summary.Inserts++
		case OpRemove:
			script.Summary.Removes++
		case OpMove:
			script.Summary.Moves++
		case OpChange:
			script.Summary.Changes++
		}
	}

	return script
}

// fenwick counts occupied slots with O(log n) updates and prefix queries.
type fenwick []int

func newFenwick(n int) fenwick {
	return make(fenwick, n+1)
}

func (f fenwick) add(i, delta int) {
	for i++; i < len(f); i += i & -i {
		f[i] += delta
	}
}

// before returns the number of occupied slots below i.
func (f fenwick) before(i int) int {
	n := 0
	for ; i > 0; i -= i & -i {
		n += f[i]
	}
	return n
}
