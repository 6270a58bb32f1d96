package runtime

import "github.com/vcrobe/entryform/vdom"

// Renderer defines the minimal set of runtime operations used by Render() code.
// This interface has NO build tags, making it available to both WASM and native test builds.
type Renderer interface {
	// RenderChild renders a child component.
	// The key parameter uniquely identifies the component instance for state preservation.
	RenderChild(key string, childWithProps Component) *vdom.VNode

	// ReRender requests that the renderer re-run the render cycle.
	// Used by StateHasChanged() when component state changes.
	ReRender()

	// InvokeAsync runs fn on the renderer's UI thread, serialized with event
	// handlers and other callbacks. Goroutines must deliver results through it
	// instead of touching component state directly.
	InvokeAsync(fn func())
}
