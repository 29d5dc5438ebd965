package reconcile

// Callback decides how items of two sequences relate to each other.
// Implementations must be pure: Compute may call them many times and in any order.
type Callback[T any] interface {
	// SameEntity reports whether a and b represent the same logical item,
	// regardless of their positions.
	SameEntity(a, b T) bool

	// SameContent reports whether two items of the same entity are also
	// content-equal. It is only called when SameEntity(a, b) is true.
	SameContent(a, b T) bool
}

// Funcs adapts two plain functions to the Callback interface.
type Funcs[T any] struct {
	Entity  func(a, b T) bool
	Content func(a, b T) bool
}

// SameEntity calls f.Entity.
func (f Funcs[T]) SameEntity(a, b T) bool {
	return f.Entity(a, b)
}

// SameContent calls f.Content. A nil Content treats every matched pair as unchanged.
func (f Funcs[T]) SameContent(a, b T) bool {
	if f.Content == nil {
		return true
	}
	return f.Content(a, b)
}

// Keyed is a Callback whose identity is derived from a comparable key.
// Compute detects it and switches to hashed matching.
type Keyed[T any, K comparable] struct {
	Key     func(T) K
	Content func(a, b T) bool
}

// SameEntity compares the keys of a and b.
func (k Keyed[T, K]) SameEntity(a, b T) bool {
	return k.Key(a) == k.Key(b)
}

// SameContent calls k.Content. A nil Content treats every matched pair as unchanged.
func (k Keyed[T, K]) SameContent(a, b T) bool {
	if k.Content == nil {
		return true
	}
	return k.Content(a, b)
}

func (k Keyed[T, K]) match(oldItems, newItems []T, strict bool) []int {
	queues := make(map[K][]int, len(oldItems))
	for i, item := range oldItems {
		key := k.Key(item)
		if strict && len(queues[key]) > 0 {
			panic(&PreconditionError{Reason: "duplicate identity key in old sequence", OldIndex: i, NewIndex: -1})
		}
		queues[key] = append(queues[key], i)
	}

	newToOld := make([]int, len(newItems))
	var seen map[K]struct{}
	if strict {
		seen = make(map[K]struct{}, len(newItems))
	}
	for j, item := range newItems {
		key := k.Key(item)
		if strict {
			if _, dup := seen[key]; dup {
				panic(&PreconditionError{Reason: "duplicate identity key in new sequence", OldIndex: -1, NewIndex: j})
			}
			seen[key] = struct{}{}
		}
		q := queues[key]
		if len(q) == 0 {
			newToOld[j] = -1
			continue
		}
		newToOld[j] = q[0]
		queues[key] = q[1:]
	}
	return newToOld
}

// matcher is implemented by callbacks that can pair items faster than the
// pairwise scan.
type matcher[T any] interface {
	match(oldItems, newItems []T, strict bool) []int
}

// KeyOf builds a Keyed callback from a key function and a content comparator.
func KeyOf[T any, K comparable](key func(T) K, content func(a, b T) bool) Keyed[T, K] {
	return Keyed[T, K]{Key: key, Content: content}
}
