package reconcile

// Apply replays script on a copy of list and returns the result.
// list must equal the old sequence the script was computed from; an edit
// whose position does not exist returns a DesyncError and no partial result.
func Apply[T any](list []T, script *Script[T]) ([]T, error) {
	out := make([]T, len(list), len(list)+script.Len())
	copy(out, list)

	if script == nil {
		return out, nil
	}

	for idx, e := range script.Edits {
		if err := checkEdit(idx, e.Op, e.Position, e.ToPosition, len(out)); err != nil {
			return nil, err
		}

		switch e.Op {
		case OpInsert:
			var zero T
			out = append(out, zero)
			copy(out[e.Position+1:], out[e.Position:])
			out[e.Position] = e.Item
		case OpRemove:
			out = append(out[:e.Position], out[e.Position+1:]...)
		case OpMove:
			item := out[e.Position]
			out = append(out[:e.Position], out[e.Position+1:]...)
			out = append(out, item)
			copy(out[e.ToPosition+1:], out[e.ToPosition:])
			out[e.ToPosition] = item
		case OpChange:
			out[e.Position] = e.Item
		}
	}

	return out, nil
}

// checkEdit validates the positions of one edit against the current length.
func checkEdit(idx int, op Op, pos, to, length int) error {
	limit := length
	if op == OpInsert {
		// Inserting at the end is valid.
		limit = length + 1
	}
	if pos < 0 || pos >= limit {
		return &DesyncError{Index: idx, Edit: op, Pos: pos, Len: length}
	}
	if op == OpMove && (to < 0 || to >= length) {
		return &DesyncError{Index: idx, Edit: op, Pos: to, Len: length}
	}
	return nil
}
