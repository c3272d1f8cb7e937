package form

import "strings"

// ListEditor is an ordered sequence of editable text slots, used for recipe
// ingredients and steps. The editor never shrinks below one slot so a form
// always has something to type into; blank slots are only dropped at
// submission time.
type ListEditor struct {
	items []string
}

// NewListEditor returns an editor seeded with the given items. An empty seed
// yields a single blank slot.
func NewListEditor(items []string) *ListEditor {
	e := &ListEditor{items: append([]string(nil), items...)}
	if len(e.items) == 0 {
		e.items = []string{""}
	}
	return e
}

// Add appends an empty slot.
func (e *ListEditor) Add() {
	e.items = append(e.items, "")
}

// RemoveAt drops the slot at index i, preserving the order of the rest.
// Removing the last remaining slot or an out-of-range index is a no-op and
// returns false.
func (e *ListEditor) RemoveAt(i int) bool {
	if len(e.items) <= 1 || i < 0 || i >= len(e.items) {
		return false
	}
	e.items = append(e.items[:i], e.items[i+1:]...)
	return true
}

// SetAt replaces the text at index i. Out-of-range indexes are ignored.
func (e *ListEditor) SetAt(i int, s string) {
	if i < 0 || i >= len(e.items) {
		return
	}
	e.items[i] = s
}

// Len reports the number of slots, blank ones included.
func (e *ListEditor) Len() int {
	return len(e.items)
}

// Items returns a copy of the current slots in order.
func (e *ListEditor) Items() []string {
	return append([]string(nil), e.items...)
}

// Filtered returns the slots with blank-after-trim entries dropped, order
// preserved.
func (e *ListEditor) Filtered() []string {
	return filterBlank(e.items)
}

func filterBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
