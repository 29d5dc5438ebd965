package reconcile

import "encoding/json"

// Op represents the kind of a primitive edit operation.
type Op string

const (
	// OpInsert inserts Item at Position.
	OpInsert Op = "insert"
	// OpRemove removes the item at Position.
	OpRemove Op = "remove"
	// OpMove moves the item at Position to ToPosition.
	OpMove Op = "move"
	// OpChange replaces the item at Position with Item (same entity, new content).
	OpChange Op = "change"
)

// Edit is a single operation of an edit script.
// Positions are interpreted against the list as it exists immediately before
// the edit is applied.
type Edit[T any] struct {
	// Op is the operation kind.
	Op Op `json:"op"`

	// Position is the target position for insert, remove and change,
	// and the source position for move.
	Position int `json:"position"`

	// ToPosition is the destination of a move. Zero for other operations.
	ToPosition int `json:"to_position"`

	// Item is the inserted or changed item. Zero value for remove and move,
	// and left out of their JSON encoding.
	Item T `json:"item"`
}

type editJSON[T any] struct {
	Op         Op  `json:"op"`
	Position   int `json:"position"`
	ToPosition int `json:"to_position"`
	Item       *T  `json:"item,omitempty"`
}

// MarshalJSON encodes the edit, carrying item only for insert and change.
func (e Edit[T]) MarshalJSON() ([]byte, error) {
	w := editJSON[T]{Op: e.Op, Position: e.Position, ToPosition: e.ToPosition}
	if e.Op == OpInsert || e.Op == OpChange {
		w.Item = &e.Item
	}
	return json.Marshal(w)
}

// Summary provides aggregate counts for an edit script.
type Summary struct {
	// Inserts counts insert operations.
	Inserts int `json:"inserts"`

	// Removes counts remove operations.
	Removes int `json:"removes"`

	// Moves counts move operations.
	Moves int `json:"moves"`

	// Changes counts change operations.
	Changes int `json:"changes"`

	// Matched counts old/new pairs judged to be the same entity.
	Matched int `json:"matched"`

	// Stable is the length of the longest order-preserving matched subsequence.
	// Matched - Stable == Moves when move detection is enabled.
	Stable int `json:"stable"`
}

// Script is the ordered sequence of edits that transforms an old sequence
// into a new one: removes first, then inserts, then moves, then changes.
type Script[T any] struct {
	// Edits contains the operations in replay order.
	Edits []Edit[T] `json:"edits"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`

	// OldLen and NewLen are the lengths of the compared sequences.
	OldLen int `json:"old_len"`
	NewLen int `json:"new_len"`
}

// Empty reports whether the script contains no operations.
func (s *Script[T]) Empty() bool {
	return s == nil || len(s.Edits) == 0
}

// Len returns the number of operations.
func (s *Script[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Edits)
}

// Options controls how Compute matches and orders items.
type Options struct {
	// StrictIdentity panics with a PreconditionError when identity is
	// ambiguous instead of pairing the first unmatched occurrences.
	StrictIdentity bool

	// DetectMoves reports reordered items as moves. When false, they are
	// reported as a remove followed by an insert.
	DetectMoves bool
}

// Option mutates Options.
type Option func(*Options)

// WithStrictIdentity makes ambiguous identity a fatal precondition violation.
func WithStrictIdentity() Option {
	return func(o *Options) {
		o.StrictIdentity = true
	}
}

// WithDetectMoves toggles move detection. Enabled by default.
func WithDetectMoves(enabled bool) Option {
	return func(o *Options) {
		o.DetectMoves = enabled
	}
}

func buildOptions(opts []Option) Options {
	o := Options{DetectMoves: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
