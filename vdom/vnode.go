package vdom

// VNode represents a virtual DOM node.
type VNode struct {
	Tag          string         // The HTML tag name, or "#text" for bare text
	Attributes   map[string]any // The attributes of the node
	Children     []*VNode       // The child nodes; nil entries are empty conditional slots
	Content      string         // Text content, or the value of input/select elements
	OnClick      func()         // Optional click event handler
	ComponentKey string         // Set on the root node of a rendered child component

	eventCallbacks []any // js.Func values attached to the live DOM element
}

// NewVNode creates a new VNode.
func NewVNode(tag string, attributes map[string]any, children []*VNode, content string) *VNode {
	var onClick func()
	if attributes != nil {
		if v, ok := attributes["onClick"]; ok {
			if f, ok := v.(func()); ok {
				onClick = f
				// Remove from attributes so it doesn't get rendered as an HTML attribute
				delete(attributes, "onClick")
			}
		}
	}
	return &VNode{
		Tag:        tag,
		Attributes: attributes,
		Children:   children,
		Content:    content,
		OnClick:    onClick,
	}
}

// SetContent updates the Content field of the VNode.
func (v *VNode) SetContent(content string) {
	v.Content = content
}

// AddEventCallback records a callback bound to the DOM element for later release.
func (v *VNode) AddEventCallback(cb any) {
	v.eventCallbacks = append(v.eventCallbacks, cb)
}

// GetEventCallbacks returns the callbacks recorded by AddEventCallback.
func (v *VNode) GetEventCallbacks() []any {
	return v.eventCallbacks
}

// ClearEventCallbacks forgets all recorded callbacks.
func (v *VNode) ClearEventCallbacks() {
	v.eventCallbacks = nil
}

// Text creates a bare text node.
func Text(text string) *VNode {
	return NewVNode("#text", nil, nil, text)
}

// Paragraph creates a <p> VNode with the given text as its child and allows passing attributes.
func Paragraph(text string, attrs map[string]any) *VNode {
	return NewVNode("p", attrs, nil, text)
}

// InputText returns a VNode representing an <input type="text"> element.
// The value is carried in Content so patching can keep the live element in sync.
func InputText(value string, attrs map[string]any) *VNode {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	attrs["type"] = "text"
	return NewVNode("input", attrs, nil, value)
}

// Div creates a <div> VNode with the given children and allows passing attributes.
func Div(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("div", attrs, children, "")
}

// TextDiv creates a <div> holding only text.
func TextDiv(text string, attrs map[string]any) *VNode {
	return NewVNode("div", attrs, nil, text)
}

// Span creates a <span> VNode with the given children.
func Span(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("span", attrs, children, "")
}

// Button creates a <button> VNode with the given children and allows passing attributes.
func Button(content string, attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("button", attrs, children, content)
}

// Select creates a <select> VNode. The selected value is carried in Content.
func Select(selected string, attrs map[string]any, options ...*VNode) *VNode {
	return NewVNode("select", attrs, options, selected)
}

// Option creates an <option> whose value and label are both text.
func Option(text string) *VNode {
	return NewVNode("option", map[string]any{"value": text}, nil, text)
}

// Table creates a <table> VNode.
func Table(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("table", attrs, children, "")
}

// Thead creates a <thead> VNode.
func Thead(children ...*VNode) *VNode {
	return NewVNode("thead", nil, children, "")
}

// Tbody creates a <tbody> VNode.
func Tbody(children ...*VNode) *VNode {
	return NewVNode("tbody", nil, children, "")
}

// Tr creates a <tr> VNode.
func Tr(attrs map[string]any, cells ...*VNode) *VNode {
	return NewVNode("tr", attrs, cells, "")
}

// Th creates a header cell.
func Th(text string) *VNode {
	return NewVNode("th", nil, nil, text)
}

// Td creates a data cell.
func Td(text string) *VNode {
	return NewVNode("td", nil, nil, text)
}

// When returns n if cond holds and nil otherwise. A nil child keeps its slot
// so patching can insert or remove the element in place.
func When(cond bool, n *VNode) *VNode {
	if !cond {
		return nil
	}
	return n
}
