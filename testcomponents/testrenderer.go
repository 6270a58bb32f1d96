package testcomponents

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vcrobe/entryform/events"
	"github.com/vcrobe/entryform/runtime"
	"github.com/vcrobe/entryform/vdom"
)

// ErrDisabled is returned by Click when the target element carries disabled=true.
var ErrDisabled = errors.New("element is disabled")

// TestRenderer is a minimal test harness that implements runtime.Renderer
// for in-memory testing without browser or WASM dependencies.
//
// It captures VDOM output from component renders and allows tests to:
// - Attach components to the renderer
// - Trigger re-renders via StateHasChanged()
// - Fire input, change and click events at element ids
// - Wait for callbacks delivered through InvokeAsync
// - Inspect the resulting VDOM tree
//
// Event dispatch and InvokeAsync callbacks are serialized on one mutex, the
// native counterpart of the browser's single UI thread. Components must not
// call InvokeAsync synchronously from an event handler.
type TestRenderer struct {
	mu          sync.Mutex
	currentVDOM *vdom.VNode
	component   runtime.Component
	initialized bool
	children    map[string]runtime.Component
	active      map[string]bool

	asyncMu   sync.Mutex
	asyncDone int
}

// Compile-time assertion to ensure TestRenderer implements runtime.Renderer interface.
var _ runtime.Renderer = (*TestRenderer)(nil)

// NewTestRenderer creates a test renderer attached to the given component.
func NewTestRenderer(comp runtime.Component) *TestRenderer {
	r := &TestRenderer{
		component: comp,
		children:  make(map[string]runtime.Component),
	}
	comp.SetRenderer(r)
	return r
}

// RenderRoot performs the initial render of the component, running OnInit
// the first time it is called.
func (r *TestRenderer) RenderRoot() *vdom.VNode {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		r.initialized = true
		if initializer, ok := r.component.(runtime.Initializer); ok {
			initializer.OnInit()
		}
	}
	r.render()
	return r.currentVDOM
}

// ReRender performs a re-render of the component.
// This is called by StateHasChanged() when the component requests a re-render.
func (r *TestRenderer) ReRender() {
	r.render()
}

func (r *TestRenderer) render() {
	r.active = make(map[string]bool)
	if receiver, ok := r.component.(runtime.ParameterReceiver); ok {
		receiver.OnParametersSet()
	}
	r.currentVDOM = r.component.Render(r)

	for key, child := range r.children {
		if r.active[key] {
			continue
		}
		if cleaner, ok := child.(runtime.Cleaner); ok {
			cleaner.OnDestroy()
		}
		delete(r.children, key)
	}
}

// Destroy runs OnDestroy on every live child and on the root component.
func (r *TestRenderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, child := range r.children {
		if cleaner, ok := child.(runtime.Cleaner); ok {
			cleaner.OnDestroy()
		}
		delete(r.children, key)
	}
	if cleaner, ok := r.component.(runtime.Cleaner); ok {
		cleaner.OnDestroy()
	}
}

// GetCurrentVDOM returns the most recently rendered VDOM tree.
// Tests use this to inspect the component's output after renders.
func (r *TestRenderer) GetCurrentVDOM() *vdom.VNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentVDOM
}

// RenderChild renders a child component, preserving its instance across
// renders under the same key the way the browser renderer does.
func (r *TestRenderer) RenderChild(key string, child runtime.Component) *vdom.VNode {
	r.active[key] = true

	instance, exists := r.children[key]
	if !exists {
		instance = child
		r.children[key] = instance
	} else if updater, ok := instance.(runtime.PropUpdater); ok {
		updater.ApplyProps(child)
	}
	instance.SetRenderer(r)

	if !exists {
		if initializer, ok := instance.(runtime.Initializer); ok {
			initializer.OnInit()
		}
	}
	if receiver, ok := instance.(runtime.ParameterReceiver); ok {
		receiver.OnParametersSet()
	}

	node := instance.Render(r)
	if node != nil {
		node.ComponentKey = key
	}
	return node
}

// Child returns the live child instance rendered under key.
func (r *TestRenderer) Child(key string) runtime.Component {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.children[key]
}

// InvokeAsync runs fn under the renderer lock and counts it as delivered.
func (r *TestRenderer) InvokeAsync(fn func()) {
	r.mu.Lock()
	fn()
	r.mu.Unlock()

	r.asyncMu.Lock()
	r.asyncDone++
	r.asyncMu.Unlock()
}

// AsyncCount reports how many InvokeAsync callbacks have completed.
func (r *TestRenderer) AsyncCount() int {
	r.asyncMu.Lock()
	defer r.asyncMu.Unlock()
	return r.asyncDone
}

// WaitForAsync blocks until at least n InvokeAsync callbacks have completed
// or the timeout elapses. It reports whether the count was reached.
func (r *TestRenderer) WaitForAsync(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if r.AsyncCount() >= n {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}

// Find returns the element with the given id in the current VDOM, or nil.
func (r *TestRenderer) Find(id string) *vdom.VNode {
	return FindByID(r.GetCurrentVDOM(), id)
}

// Input fires an "input" event carrying value at the element with the given id.
func (r *TestRenderer) Input(id, value string) error {
	return r.fireChange(id, "onInput", value)
}

// Change fires a "change" event carrying value at the element with the given id.
func (r *TestRenderer) Change(id, value string) error {
	return r.fireChange(id, "onChange", value)
}

func (r *TestRenderer) fireChange(id, attr, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	node := FindByID(r.currentVDOM, id)
	if node == nil {
		return fmt.Errorf("element %q not found", id)
	}
	handler, ok := node.Attributes[attr].(func(events.ChangeEventArgs))
	if !ok {
		return fmt.Errorf("element %q has no %s handler", id, attr)
	}
	handler(events.ChangeEventArgs{Value: value})
	return nil
}

// Click fires a click at the element with the given id. Like a browser, a
// disabled element swallows the click; ErrDisabled is returned in that case.
func (r *TestRenderer) Click(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	node := FindByID(r.currentVDOM, id)
	if node == nil {
		return fmt.Errorf("element %q not found", id)
	}
	if disabled, _ := node.Attributes["disabled"].(bool); disabled {
		return ErrDisabled
	}
	if node.OnClick != nil {
		node.OnClick()
		return nil
	}
	if handler, ok := node.Attributes["onClick"].(func()); ok {
		handler()
		return nil
	}
	return fmt.Errorf("element %q has no click handler", id)
}
