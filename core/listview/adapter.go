package listview

import (
	"list-reconciler/core/reconcile"

	"go.uber.org/zap"
)

// Action handles user interaction with an item (e.g. a click). It may be nil.
type Action[T any] func(item T)

// Factory creates a view. The action is passed through so the view can call
// back into the owner; it is nil when no action is set.
type Factory[T, V any] func(action Action[T]) V

// Binder fills a view with an item.
type Binder[T, V any] func(view V, item T)

// Renderer is the UI list the adapter drives.
type Renderer interface {
	reconcile.ListSurface
}

// Adapter owns the displayed items of one list and keeps a Renderer in sync
// with them through incremental notifications.
type Adapter[T, V any] struct {
	callback   reconcile.Callback[T]
	factory    Factory[T, V]
	binder     Binder[T, V]
	renderer   Renderer
	dispatcher *reconcile.Dispatcher
	action     Action[T]
	opts       []reconcile.Option
	logger     *zap.Logger
	items      []T
}

// Option configures an Adapter.
type Option[T, V any] func(*Adapter[T, V])

// WithBinder sets the function used by Bind.
func WithBinder[T, V any](b Binder[T, V]) Option[T, V] {
	return func(a *Adapter[T, V]) {
		a.binder = b
	}
}

// WithLogger logs a summary of every non-empty update at debug level.
func WithLogger[T, V any](l *zap.Logger) Option[T, V] {
	return func(a *Adapter[T, V]) {
		a.logger = l
	}
}

// WithDiffOptions passes options to reconcile.Compute.
func WithDiffOptions[T, V any](opts ...reconcile.Option) Option[T, V] {
	return func(a *Adapter[T, V]) {
		a.opts = append(a.opts, opts...)
	}
}

// WithItems sets the initial items without notifying the renderer.
func WithItems[T, V any](items []T) Option[T, V] {
	return func(a *Adapter[T, V]) {
		a.items = append([]T(nil), items...)
	}
}

// New creates an adapter. renderer must currently display the initial items
// (none, unless WithItems is used).
func New[T, V any](cb reconcile.Callback[T], factory Factory[T, V], renderer Renderer, opts ...Option[T, V]) *Adapter[T, V] {
	a := &Adapter[T, V]{
		callback:   cb,
		factory:    factory,
		renderer:   renderer,
		dispatcher: reconcile.NewDispatcher(renderer),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetAction sets the action handed to views created afterwards.
func (a *Adapter[T, V]) SetAction(action Action[T]) {
	a.action = action
}

// SetItems replaces the displayed items. It diffs the current items against
// a copy of items and dispatches the edits to the renderer, then returns the
// script. It must be called from the goroutine that owns the renderer.
func (a *Adapter[T, V]) SetItems(items []T) *reconcile.Script[T] {
	next := append([]T(nil), items...)

	script := reconcile.Compute(a.items, next, a.callback, a.opts...)
	reconcile.DispatchTo(a.dispatcher, script)
	a.items = next

	if !script.Empty() {
		a.logger.Debug("List updated",
			zap.Int("size", len(next)),
			zap.Int("inserts", script.Summary.Inserts),
			zap.Int("removes", script.Summary.Removes),
			zap.Int("moves", script.Summary.Moves),
			zap.Int("changes", script.Summary.Changes),
		)
	}

	return script
}

// Items returns a copy of the displayed items.
func (a *Adapter[T, V]) Items() []T {
	return append([]T(nil), a.items...)
}

// Len returns the number of displayed items.
func (a *Adapter[T, V]) Len() int {
	return len(a.items)
}

// Item returns the item at pos.
func (a *Adapter[T, V]) Item(pos int) T {
	return a.items[pos]
}

// CreateView creates a view with the current action.
func (a *Adapter[T, V]) CreateView() V {
	return a.factory(a.action)
}

// Bind fills view with the item at pos. Without a binder it is a no-op.
func (a *Adapter[T, V]) Bind(view V, pos int) {
	if a.binder != nil {
		a.binder(view, a.items[pos])
	}
}
