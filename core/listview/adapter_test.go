package listview_test

import (
	"errors"
	"testing"

	"list-reconciler/core/listview"
	"list-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type day struct {
	Date     string
	Selected bool
}

type dayView struct {
	onClick listview.Action[day]
	text    string
}

var dayCallback = reconcile.KeyOf(
	func(d day) string { return d.Date },
	func(a, b day) bool { return a.Selected == b.Selected },
)

func newDays(rec *reconcile.Recorder, opts ...listview.Option[day, *dayView]) *listview.Adapter[day, *dayView] {
	return listview.New[day, *dayView](dayCallback,
		func(action listview.Action[day]) *dayView { return &dayView{onClick: action} },
		rec,
		opts...,
	)
}

func TestAdapter_SetItemsDispatches(t *testing.T) {
	rec := reconcile.NewRecorder(0)
	a := newDays(rec)

	first := a.SetItems([]day{{Date: "01"}, {Date: "02"}, {Date: "03"}})
	assert.Equal(t, 3, first.Summary.Inserts)
	assert.Equal(t, 3, rec.Len())

	second := a.SetItems([]day{{Date: "01"}, {Date: "02", Selected: true}, {Date: "03"}})
	require.Equal(t, 1, second.Len())
	assert.Equal(t, reconcile.OpChange, second.Edits[0].Op)
	assert.Equal(t, 1, second.Edits[0].Position)

	calls := rec.Notifications()
	require.Len(t, calls, 4)
	assert.Equal(t, reconcile.Notification{Op: reconcile.OpChange, Pos: 1, Size: 3}, calls[3])
	assert.True(t, a.Item(1).Selected)
}

func TestAdapter_SetItemsCopiesSnapshot(t *testing.T) {
	rec := reconcile.NewRecorder(0)
	a := newDays(rec)

	in := []day{{Date: "01"}}
	a.SetItems(in)
	in[0].Selected = true

	assert.False(t, a.Item(0).Selected)

	out := a.Items()
	out[0].Date = "xx"
	assert.Equal(t, "01", a.Item(0).Date)
}

func TestAdapter_SameItemsNoNotifications(t *testing.T) {
	rec := reconcile.NewRecorder(2)
	a := newDays(rec, listview.WithItems[day, *dayView]([]day{{Date: "01"}, {Date: "02"}}))

	script := a.SetItems([]day{{Date: "01"}, {Date: "02"}})
	assert.True(t, script.Empty())
	assert.Empty(t, rec.Notifications())
	assert.Equal(t, 2, a.Len())
}

func TestAdapter_CreateViewAndBind(t *testing.T) {
	rec := reconcile.NewRecorder(0)
	a := newDays(rec, listview.WithBinder[day, *dayView](func(v *dayView, d day) { v.text = d.Date }))

	a.SetItems([]day{{Date: "07"}})

	plain := a.CreateView()
	assert.Nil(t, plain.onClick)

	var clicked day
	a.SetAction(func(d day) { clicked = d })
	v := a.CreateView()
	require.NotNil(t, v.onClick)

	a.Bind(v, 0)
	assert.Equal(t, "07", v.text)

	v.onClick(a.Item(0))
	assert.Equal(t, "07", clicked.Date)
}

func TestAdapter_LogsUpdates(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	rec := reconcile.NewRecorder(0)
	a := newDays(rec, listview.WithLogger[day, *dayView](zap.New(core)))

	a.SetItems([]day{{Date: "01"}})
	a.SetItems([]day{{Date: "01"}})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "List updated", entry.Message)
	assert.EqualValues(t, 1, entry.ContextMap()["inserts"])
}

func TestAdapter_StrictIdentity(t *testing.T) {
	rec := reconcile.NewRecorder(0)
	a := newDays(rec, listview.WithDiffOptions[day, *dayView](reconcile.WithStrictIdentity()))

	assert.Panics(t, func() {
		a.SetItems([]day{{Date: "01"}, {Date: "01"}})
	})
}

func TestAdapter_DesyncKeepsItems(t *testing.T) {
	// The renderer starts empty while the adapter already shows three days.
	rec := reconcile.NewRecorder(0)
	initial := []day{{Date: "01"}, {Date: "02"}, {Date: "03"}}
	a := newDays(rec, listview.WithItems[day, *dayView](initial))

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		a.SetItems([]day{{Date: "02"}})
	}()

	err, ok := recovered.(error)
	require.True(t, ok, "expected an error panic, got %v", recovered)
	assert.True(t, errors.Is(err, reconcile.ErrDesync))
	assert.Equal(t, initial, a.Items())
	assert.Empty(t, rec.Notifications())
}
