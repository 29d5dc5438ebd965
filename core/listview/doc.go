// Package listview binds a list of items to a renderer through incremental updates.
//
// An Adapter keeps the items currently displayed. SetItems diffs them against
// the new items with core/reconcile and dispatches the resulting edits to the
// Renderer, so only the affected positions are redrawn. Views are produced by
// an injected Factory that receives the optional item Action.
//
// # Usage
//
//	days := listview.New[Day, *DayView](dayCallback,
//	    func(onClick listview.Action[Day]) *DayView { return NewDayView(onClick) },
//	    calendar,
//	)
//	days.SetAction(func(d Day) { selectDay(d) })
//	days.SetItems(month.Days())
package listview
