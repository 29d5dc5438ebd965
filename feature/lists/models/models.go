package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"list-reconciler/core/reconcile"
	"list-reconciler/core/utils"
)

// ErrInvalidItem is wrapped by every item validation error.
var ErrInvalidItem = errors.New("invalid item")

// Item is one entry of a list feed (a holiday, a favourite, a calendar day).
// ID is its identity; Data is its displayed content.
type Item struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data,omitempty"`
}

// UnmarshalJSON accepts numeric and string ids.
func (i *Item) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID   any            `json:"id"`
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	i.ID = ""
	if raw.ID != nil {
		i.ID = utils.ToString(raw.ID)
	}
	i.Data = raw.Data
	return nil
}

// Key returns the identity key of an item.
func Key(i Item) string {
	return i.ID
}

// SameContent reports whether two items display the same data.
// A nil and an empty Data are equal.
func SameContent(a, b Item) bool {
	if len(a.Data) == 0 && len(b.Data) == 0 {
		return true
	}
	return reflect.DeepEqual(a.Data, b.Data)
}

// Callback matches items by ID and compares their Data.
var Callback = reconcile.KeyOf(Key, SameContent)

// Validate checks that every item has an id and, if unique is set, that no
// id appears twice.
func Validate(items []Item, unique bool) error {
	seen := make(map[string]int, len(items))
	for pos, item := range items {
		if item.ID == "" {
			return fmt.Errorf("%w: item at position %d has no id", ErrInvalidItem, pos)
		}
		if !unique {
			continue
		}
		if first, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: id %q at positions %d and %d", ErrInvalidItem, item.ID, first, pos)
		}
		seen[item.ID] = pos
	}
	return nil
}
