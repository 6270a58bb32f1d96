//go:build js || wasm

package events

import "syscall/js"

// AdaptNoArgEvent wraps a no-argument handler as a DOM event listener.
func AdaptNoArgEvent(handler func()) func(js.Value) {
	return func(e js.Value) {
		handler()
	}
}

// AdaptChangeEvent wraps a ChangeEventArgs handler as a DOM event listener,
// reading the value from the event target.
func AdaptChangeEvent(handler func(ChangeEventArgs)) func(js.Value) {
	return func(e js.Value) {
		value := ""
		if target := e.Get("target"); target.Truthy() {
			value = target.Get("value").String()
		}
		handler(ChangeEventArgs{Value: value})
	}
}
