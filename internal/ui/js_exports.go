//go:build js

package ui

import (
	"errors"
	"syscall/js"
)

var copyToClipboard = func(s string) bool {
	nav := js.Global().Get("navigator")
	if nav.IsUndefined() {
		return false
	}
	cb := nav.Get("clipboard")
	if cb.IsUndefined() || cb.Get("writeText").IsUndefined() {
		return false
	}
	cb.Call("writeText", s)
	return true
}

var prefersLight = func() bool {
	mm := js.Global().Get("matchMedia")
	if mm.IsUndefined() {
		return false
	}
	return js.Global().Call("matchMedia", "(prefers-color-scheme: light)").Get("matches").Truthy()
}

var readHash = func() string {
	return js.Global().Get("location").Get("hash").String()
}

// writeHash replaces the fragment without adding a history entry.
var writeHash = func(h string) {
	loc := js.Global().Get("location")
	url := loc.Get("pathname").String() + loc.Get("search").String() + h
	js.Global().Get("history").Call("replaceState", js.Null(), "", url)
}

var openTrack = func() (string, []byte, error) {
	return "", nil, errors.New("ui: no file picker in the browser build")
}

// saveExport hands data to the browser as a download.
var saveExport = func(name string, data []byte) (string, error) {
	arr := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(arr, data)
	blob := js.Global().Get("Blob").New([]any{arr}, map[string]any{"type": "image/svg+xml"})
	url := js.Global().Get("URL").Call("createObjectURL", blob)
	a := js.Global().Get("document").Call("createElement", "a")
	a.Set("href", url)
	a.Set("download", name)
	a.Call("click")
	js.Global().Get("URL").Call("revokeObjectURL", url)
	return name, nil
}

// initJS exposes the flight to the page. Calls that change state are queued
// and run by the next Update.
func (g *Game) initJS() {
	js.Global().Set("jumpToEntry", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) < 1 {
			return nil
		}
		i := args[0].Int()
		g.post(func() { g.eng.JumpToEntry(i) })
		return nil
	}))
	js.Global().Set("flightProgress", js.FuncOf(func(js.Value, []js.Value) any {
		return js.ValueOf(g.eng.Progress())
	}))
	js.Global().Set("flightActive", js.FuncOf(func(js.Value, []js.Value) any {
		return js.ValueOf(g.eng.Active())
	}))
	js.Global().Get("window").Call("addEventListener", "hashchange", js.FuncOf(func(js.Value, []js.Value) any {
		h := readHash()
		g.post(func() { g.applyDeepLink(h) })
		return nil
	}))
}
