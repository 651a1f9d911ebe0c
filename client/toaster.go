//go:build js

package main

import (
	"sync"
	"time"

	"github.com/hexops/vecty"
	"github.com/hexops/vecty/elem"
	"github.com/hexops/vecty/event"
)

type toastKind string

const (
	toastSuccess toastKind = "success"
	toastError   toastKind = "error"
)

type toast struct {
	id      int
	kind    toastKind
	message string
}

// Toaster shows transient success and error notifications.
type Toaster struct {
	vecty.Core
	duration time.Duration

	mu     sync.Mutex
	toasts []toast
	nextID int
}

func NewToaster(duration time.Duration) *Toaster {
	return &Toaster{duration: duration}
}

func (t *Toaster) Success(message string) { t.push(toastSuccess, message) }
func (t *Toaster) Error(message string)   { t.push(toastError, message) }

func (t *Toaster) push(kind toastKind, message string) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.toasts = append(t.toasts, toast{id: id, kind: kind, message: message})
	t.mu.Unlock()

	vecty.Rerender(t)
	time.AfterFunc(t.duration, func() { t.dismiss(id) })
}

func (t *Toaster) dismiss(id int) {
	t.mu.Lock()
	kept := t.toasts[:0]
	for _, ts := range t.toasts {
		if ts.id != id {
			kept = append(kept, ts)
		}
	}
	changed := len(kept) != len(t.toasts)
	t.toasts = kept
	t.mu.Unlock()

	if changed {
		vecty.Rerender(t)
	}
}

func (t *Toaster) Render() vecty.ComponentOrHTML {
	t.mu.Lock()
	defer t.mu.Unlock()

	items := make(vecty.List, 0, len(t.toasts))
	for _, ts := range t.toasts {
		id := ts.id
		items = append(items, elem.Div(
			vecty.Markup(
				vecty.Class("toast", "toast-"+string(ts.kind)),
				vecty.Attribute("role", "status"),
				event.Click(func(e *vecty.Event) { go t.dismiss(id) }),
			),
			vecty.Text(ts.message),
		))
	}

	return elem.Div(
		vecty.Markup(vecty.Class("toaster")),
		items,
	)
}
