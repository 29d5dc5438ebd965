package reconcile

import "sort"

// Compute returns the edit script that transforms oldItems into newItems.
//
// Each new item (ascending) is paired with the first unmatched old item
// (ascending) that cb judges to be the same entity. Unmatched old items are
// removed, unmatched new items are inserted, matched items outside the
// longest order-preserving subsequence are moved, and matched items whose
// content differs are changed. The inputs are only read.
//
// If cb is a Keyed callback, matching is hashed; otherwise it is a pairwise
// scan over both sequences.
func Compute[T any](oldItems, newItems []T, cb Callback[T], opts ...Option) *Script[T] {
	o := buildOptions(opts)

	var newToOld []int
	if m, ok := cb.(matcher[T]); ok {
		newToOld = m.match(oldItems, newItems, o.StrictIdentity)
	} else {
		newToOld = matchPairs(oldItems, newItems, cb, o.StrictIdentity)
	}

	return buildScript(oldItems, newItems, newToOld, cb, o)
}

// ComputeKeyed is Compute with identity derived from key.
func ComputeKeyed[T any, K comparable](oldItems, newItems []T, key func(T) K, sameContent func(a, b T) bool, opts ...Option) *Script[T] {
	return Compute[T](oldItems, newItems, KeyOf(key, sameContent), opts...)
}

// matchPairs pairs items with the pairwise scan. The result maps each new
// index to its old index, or -1.
func matchPairs[T any](oldItems, newItems []T, cb Callback[T], strict bool) []int {
	newToOld := make([]int, len(newItems))
	used := make([]bool, len(oldItems))

	for j, n := range newItems {
		newToOld[j] = -1

		if strict {
			first, count := -1, 0
			for i, o := range oldItems {
				if cb.SameEntity(o, n) {
					if first < 0 {
						first = i
					}
					count++
				}
			}
			if count > 1 {
				panic(&PreconditionError{Reason: "new item matches more than one old item", OldIndex: first, NewIndex: j})
			}
			if first >= 0 && used[first] {
				panic(&PreconditionError{Reason: "old item matches more than one new item", OldIndex: first, NewIndex: j})
			}
			if first >= 0 {
				used[first] = true
				newToOld[j] = first
			}
			continue
		}

		for i, o := range oldItems {
			if !used[i] && cb.SameEntity(o, n) {
				used[i] = true
				newToOld[j] = i
				break
			}
		}
	}

	return newToOld
}

// longestIncreasing returns the positions in seq of a longest strictly
// increasing subsequence, in ascending order. Patience sorting; among
// subsequences of equal length the one ending in the last pile is chosen.
func longestIncreasing(seq []int) []int {
	if len(seq) == 0 {
		return nil
	}

	tails := make([]int, 0, len(seq))
	prev := make([]int, len(seq))

	for i, v := range seq {
		k := sort.Search(len(tails), func(t int) bool {
			return seq[tails[t]] >= v
		})
		if k > 0 {
			prev[i] = tails[k-1]
		} else {
			prev[i] = -1
		}
		if k == len(tails) {
			tails = append(tails, i)
		} else {
			tails[k] = i
		}
	}

	out := make([]int, len(tails))
	for i, k := len(tails)-1, tails[len(tails)-1]; i >= 0; i-- {
		out[i] = k
		k = prev[k]
	}
	return out
}
