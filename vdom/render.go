//go:build js || wasm
// +build js wasm

package vdom

import (
	"syscall/js"

	"github.com/vcrobe/entryform/console"
)

// supportedTags lists the element tags createElement knows how to build.
var supportedTags = map[string]bool{
	"div": true, "p": true, "span": true, "label": true,
	"h1": true, "h2": true, "h3": true,
	"input": true, "button": true, "select": true, "option": true,
	"table": true, "thead": true, "tbody": true, "tr": true, "th": true, "td": true,
}

// releaseCallbacks releases all js.Func objects stored in a VNode.
func releaseCallbacks(v *VNode) {
	if v == nil {
		return
	}

	for _, cb := range v.GetEventCallbacks() {
		if jsFunc, ok := cb.(js.Func); ok {
			jsFunc.Release()
		}
	}
	v.ClearEventCallbacks()
}

// deepReleaseCallbacks recursively releases all callbacks in the entire VNode tree.
func deepReleaseCallbacks(v *VNode) {
	if v == nil {
		return
	}

	releaseCallbacks(v)

	for _, child := range v.Children {
		deepReleaseCallbacks(child)
	}
}

// Clear empties the mount element and releases the callbacks held by prevVDOM.
func Clear(selector string, prevVDOM *VNode) {
	if selector == "" {
		return
	}

	if prevVDOM != nil {
		deepReleaseCallbacks(prevVDOM)
	}

	mount := querySelector(selector)
	if !mount.Truthy() {
		return
	}
	mount.Set("innerHTML", "")
}

// RenderToSelector mounts the VNode under the first element matching the CSS selector.
func RenderToSelector(selector string, n *VNode) {
	if n == nil || selector == "" {
		return
	}

	mount := querySelector(selector)
	if !mount.Truthy() {
		return
	}
	RenderTo(mount, n)
}

// RenderTo appends the rendered node to a specific mount element.
func RenderTo(mount js.Value, n *VNode) {
	if n == nil {
		return
	}

	el := createElement(n)
	if el.Truthy() {
		mount.Call("appendChild", el)
	}
}

func querySelector(selector string) js.Value {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return js.Undefined()
	}

	mount := doc.Call("querySelector", selector)
	if !mount.Truthy() {
		console.Error("Mount element not found for selector:", selector)
	}
	return mount
}

// isEventKey reports whether an attribute key names an event handler ("onClick", "onInput").
func isEventKey(key string) bool {
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n'
}

// setAttributeValue sets an attribute on an element, handling boolean attributes and event handlers correctly.
func setAttributeValue(el js.Value, key string, value any) {
	if boolVal, ok := value.(bool); ok {
		// Boolean attributes are present or absent; "disabled=false" is still disabled.
		if boolVal {
			el.Call("setAttribute", key, "")
		} else {
			el.Call("removeAttribute", key)
		}
		return
	}

	if isEventKey(key) {
		return
	}

	el.Call("setAttribute", key, value)
}

// attachEventListeners attaches listeners for every func(js.Value) attribute.
// The js.Func wrappers are stored on the VNode for later cleanup.
func attachEventListeners(el js.Value, vnode *VNode, attributes map[string]any) {
	for key, value := range attributes {
		if !isEventKey(key) {
			continue
		}
		handler, ok := value.(func(js.Value))
		if !ok {
			continue
		}

		// "onClick" -> "click", "onInput" -> "input"
		eventName := key[2:]
		if eventName[0] >= 'A' && eventName[0] <= 'Z' {
			eventName = string(eventName[0]+('a'-'A')) + eventName[1:]
		}

		cb := js.FuncOf(func(this js.Value, args []js.Value) any {
			if len(args) > 0 {
				handler(args[0])
			}
			return nil
		})
		el.Call("addEventListener", eventName, cb)
		vnode.AddEventCallback(cb)
	}
}

func attachOnClick(el js.Value, n *VNode) {
	if n.OnClick == nil {
		return
	}
	onClick := n.OnClick
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		onClick()
		return nil
	})
	el.Call("addEventListener", "click", cb)
	n.AddEventCallback(cb)
}

func createElement(n *VNode) js.Value {
	doc := js.Global().Get("document")
	if !doc.Truthy() || n == nil {
		return js.Undefined()
	}

	if n.Tag == "#text" {
		return doc.Call("createTextNode", n.Content)
	}

	if !supportedTags[n.Tag] {
		console.Error("Unsupported tag: ", n.Tag)
		return js.Undefined()
	}

	el := doc.Call("createElement", n.Tag)
	for k, v := range n.Attributes {
		setAttributeValue(el, k, v)
	}
	attachEventListeners(el, n, n.Attributes)
	attachOnClick(el, n)

	switch n.Tag {
	case "input":
		el.Set("value", n.Content)
		return el
	case "select":
		appendChildren(el, n.Children)
		// The value can only be selected once the options exist.
		el.Set("value", n.Content)
		return el
	}

	if len(n.Children) == 0 {
		if n.Content != "" {
			el.Set("textContent", n.Content)
		}
		return el
	}
	appendChildren(el, n.Children)
	return el
}

func appendChildren(el js.Value, children []*VNode) {
	for _, child := range children {
		if child == nil {
			continue
		}
		childEl := createElement(child)
		if childEl.Truthy() {
			el.Call("appendChild", childEl)
		}
	}
}

// Patch updates the DOM by comparing old and new VDOM trees and applying minimal changes.
func Patch(mountSelector string, oldVNode, newVNode *VNode) {
	if oldVNode == nil || newVNode == nil {
		return
	}

	mount := querySelector(mountSelector)
	if !mount.Truthy() {
		return
	}

	rootElement := mount.Get("firstChild")
	if !rootElement.Truthy() {
		RenderToSelector(mountSelector, newVNode)
		return
	}

	patchElement(rootElement, oldVNode, newVNode)
}

func replaceElement(domElement js.Value, oldVNode, newVNode *VNode) {
	deepReleaseCallbacks(oldVNode)

	newElement := createElement(newVNode)
	if !newElement.Truthy() {
		return
	}
	parent := domElement.Get("parentNode")
	if parent.Truthy() {
		parent.Call("replaceChild", newElement, domElement)
	}
}

// patchElement updates a single DOM element based on VDOM differences.
func patchElement(domElement js.Value, oldVNode, newVNode *VNode) {
	if !domElement.Truthy() || oldVNode == nil || newVNode == nil {
		return
	}

	if oldVNode.ComponentKey != newVNode.ComponentKey || oldVNode.Tag != newVNode.Tag {
		replaceElement(domElement, oldVNode, newVNode)
		return
	}

	if newVNode.Tag == "#text" {
		if oldVNode.Content != newVNode.Content {
			domElement.Set("nodeValue", newVNode.Content)
		}
		return
	}

	patchAttributes(domElement, oldVNode.Attributes, newVNode.Attributes)

	releaseCallbacks(oldVNode)
	attachEventListeners(domElement, newVNode, newVNode.Attributes)
	attachOnClick(domElement, newVNode)

	switch newVNode.Tag {
	case "input":
		// Leave the focused element alone so typing is not disturbed.
		isFocused := domElement.Call("matches", ":focus").Bool()
		if !isFocused && domElement.Get("value").String() != newVNode.Content {
			domElement.Set("value", newVNode.Content)
		}
		return
	case "select":
		patchChildren(domElement, oldVNode.Children, newVNode.Children)
		domElement.Set("value", newVNode.Content)
		return
	}

	if len(newVNode.Children) == 0 {
		if len(oldVNode.Children) > 0 {
			// Setting textContent drops every child element.
			for _, child := range oldVNode.Children {
				deepReleaseCallbacks(child)
			}
			domElement.Set("textContent", newVNode.Content)
		} else if oldVNode.Content != newVNode.Content {
			domElement.Set("textContent", newVNode.Content)
		}
		return
	}
	if len(oldVNode.Children) == 0 && oldVNode.Content != "" {
		// Text content was the only child; drop it before patching structured children.
		domElement.Set("textContent", "")
	}

	patchChildren(domElement, oldVNode.Children, newVNode.Children)
}

// patchAttributes updates the attributes of a DOM element.
func patchAttributes(domElement js.Value, oldAttrs, newAttrs map[string]any) {
	for key := range oldAttrs {
		if _, exists := newAttrs[key]; !exists && !isEventKey(key) {
			domElement.Call("removeAttribute", key)
		}
	}

	for key, value := range newAttrs {
		if isEventKey(key) {
			continue
		}
		if old, ok := oldAttrs[key]; !ok || old != value {
			setAttributeValue(domElement, key, value)
		}
	}
}

// patchChildren updates the children of a DOM element. Nil VNodes are empty
// slots with no DOM counterpart, so the DOM index is tracked separately.
func patchChildren(domElement js.Value, oldChildren, newChildren []*VNode) {
	domChildren := domElement.Get("childNodes")
	domIndex := 0

	n := len(oldChildren)
	if len(newChildren) > n {
		n = len(newChildren)
	}

	for i := 0; i < n; i++ {
		var oldChild, newChild *VNode
		if i < len(oldChildren) {
			oldChild = oldChildren[i]
		}
		if i < len(newChildren) {
			newChild = newChildren[i]
		}

		switch {
		case oldChild == nil && newChild == nil:
			// Empty slot on both sides.
		case oldChild == nil:
			newChildEl := createElement(newChild)
			if !newChildEl.Truthy() {
				continue
			}
			if domIndex < domChildren.Length() {
				domElement.Call("insertBefore", newChildEl, domChildren.Call("item", domIndex))
			} else {
				domElement.Call("appendChild", newChildEl)
			}
			domIndex++
		case newChild == nil:
			deepReleaseCallbacks(oldChild)
			childElement := domChildren.Call("item", domIndex)
			if childElement.Truthy() {
				domElement.Call("removeChild", childElement)
			}
		default:
			childElement := domChildren.Call("item", domIndex)
			if childElement.Truthy() {
				patchElement(childElement, oldChild, newChild)
			}
			domIndex++
		}
	}
}
