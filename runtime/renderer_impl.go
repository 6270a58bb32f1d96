//go:build js || wasm

package runtime

import (
	"sync"

	"github.com/vcrobe/entryform/vdom"
)

// Compile-time assertion to ensure the concrete RendererImpl implements the Renderer interface.
var _ Renderer = (*RendererImpl)(nil)

const rootKey = "__root__"

// RendererImpl is the concrete implementation of the Renderer interface.
// It manages the component instance tree and handles rendering lifecycle.
type RendererImpl struct {
	mu               sync.Mutex           // Serializes InvokeAsync callbacks
	instances        map[string]Component // Child instances by key
	activeKeys       map[string]bool      // Keys rendered during the current cycle
	rootInitialized  bool
	currentComponent Component
	mountID          string
	prevVDOM         *vdom.VNode // Previous VDOM tree for patching
}

// NewRenderer creates a new runtime renderer that mounts under mountID.
func NewRenderer(mountID string) *RendererImpl {
	return &RendererImpl{
		instances:  make(map[string]Component),
		activeKeys: make(map[string]bool),
		mountID:    mountID,
	}
}

// SetCurrentComponent sets the root component to be rendered.
func (r *RendererImpl) SetCurrentComponent(comp Component) {
	r.currentComponent = comp
	r.rootInitialized = false
}

// RenderRoot starts the rendering process for the entire application.
func (r *RendererImpl) RenderRoot() {
	if r.currentComponent == nil {
		return
	}

	r.activeKeys = make(map[string]bool)

	r.currentComponent.SetRenderer(r)
	if !r.rootInitialized {
		// Mark first: OnInit may call StateHasChanged.
		r.rootInitialized = true
		if initializer, ok := r.currentComponent.(Initializer); ok {
			r.callOnInit(initializer, rootKey)
		}
	}
	if paramReceiver, ok := r.currentComponent.(ParameterReceiver); ok {
		r.callOnParametersSet(paramReceiver, rootKey)
	}

	newVDOM := r.currentComponent.Render(r)

	if r.prevVDOM == nil {
		vdom.Clear(r.mountID, nil)
		vdom.RenderToSelector(r.mountID, newVDOM)
	} else {
		vdom.Patch(r.mountID, r.prevVDOM, newVDOM)
	}
	r.prevVDOM = newVDOM

	r.cleanupUnmountedComponents()
}

// RenderChild handles instance creation and reuse for child components.
func (r *RendererImpl) RenderChild(key string, childWithProps Component) *vdom.VNode {
	r.activeKeys[key] = true

	instance, exists := r.instances[key]
	if !exists {
		instance = childWithProps
		r.instances[key] = instance
	} else if updater, ok := instance.(PropUpdater); ok {
		// Preserve the existing instance to keep state; take the new props.
		updater.ApplyProps(childWithProps)
	}

	instance.SetRenderer(r)

	if !exists {
		if initializer, ok := instance.(Initializer); ok {
			r.callOnInit(initializer, key)
		}
	}
	if paramReceiver, ok := instance.(ParameterReceiver); ok {
		r.callOnParametersSet(paramReceiver, key)
	}

	node := instance.Render(r)
	if node != nil {
		node.ComponentKey = key
	}
	return node
}

// cleanupUnmountedComponents removes components that are no longer in the tree
// and calls their OnDestroy lifecycle method if they implement the Cleaner interface.
func (r *RendererImpl) cleanupUnmountedComponents() {
	for key, instance := range r.instances {
		if r.activeKeys[key] {
			continue
		}
		if cleaner, ok := instance.(Cleaner); ok {
			r.callOnDestroy(cleaner, key)
		}
		delete(r.instances, key)
	}
}

// Unmount destroys every live component, root included, and clears the mount point.
func (r *RendererImpl) Unmount() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activeKeys = make(map[string]bool)
	r.cleanupUnmountedComponents()
	if cleaner, ok := r.currentComponent.(Cleaner); ok {
		r.callOnDestroy(cleaner, rootKey)
	}
	vdom.Clear(r.mountID, r.prevVDOM)
	r.prevVDOM = nil
	r.currentComponent = nil
}

// ReRender patches the DOM with minimal changes.
func (r *RendererImpl) ReRender() {
	r.RenderRoot()
}

// InvokeAsync runs fn serialized with other async callbacks.
func (r *RendererImpl) InvokeAsync(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.currentComponent == nil {
		return
	}
	r.callAsync(fn)
}
