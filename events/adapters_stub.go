//go:build !(js || wasm)

package events

// Stub adapters for native builds. Handlers are stored unchanged so test
// renderers can invoke them directly.

// AdaptNoArgEvent returns the handler as-is.
func AdaptNoArgEvent(handler func()) func() {
	return handler
}

// AdaptChangeEvent returns the handler as-is.
func AdaptChangeEvent(handler func(ChangeEventArgs)) func(ChangeEventArgs) {
	return handler
}
