//go:build !(js || wasm)

package testcomponents

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/entryform/events"
	"github.com/vcrobe/entryform/runtime"
	"github.com/vcrobe/entryform/vdom"
)

// counter is a small component exercising data binding, events and async delivery.
type counter struct {
	runtime.ComponentBase
	Count int
	Label string

	inits    int
	destroys int
}

func (c *counter) OnInit()    { c.inits++ }
func (c *counter) OnDestroy() { c.destroys++ }

func (c *counter) Increment() {
	c.Count++
	c.StateHasChanged()
}

func (c *counter) HandleLabel(e events.ChangeEventArgs) {
	c.Label = e.Value
	c.StateHasChanged()
}

func (c *counter) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Div(nil,
		vdom.Paragraph("Count: "+strconv.Itoa(c.Count), map[string]any{"id": "count"}),
		vdom.InputText(c.Label, map[string]any{
			"id":      "label",
			"onInput": events.AdaptChangeEvent(c.HandleLabel),
		}),
		vdom.Button("+1", map[string]any{
			"id":       "inc",
			"disabled": c.Count >= 3,
			"onClick":  events.AdaptNoArgEvent(c.Increment),
		}),
		vdom.When(c.Count > 0, vdom.Text("clicked")),
		r.RenderChild("badge", &badge{Text: c.Label}),
	)
}

// badge is a child component whose instance must survive re-renders.
type badge struct {
	runtime.ComponentBase
	Text    string
	renders int
	inits   int
}

func (b *badge) OnInit() { b.inits++ }

func (b *badge) ApplyProps(source runtime.Component) {
	if s, ok := source.(*badge); ok {
		b.Text = s.Text
	}
}

func (b *badge) Render(r runtime.Renderer) *vdom.VNode {
	b.renders++
	return vdom.Span(map[string]any{"id": "badge"}, vdom.Text(b.Text))
}

func TestDataBinding_InitialRender(t *testing.T) {
	c := &counter{Count: 1, Label: "hello"}
	renderer := NewTestRenderer(c)

	vnode := renderer.RenderRoot()

	require.Equal(t, "div", vnode.Tag)
	assert.Equal(t, "Count: 1", FindByID(vnode, "count").Content)
	assert.Equal(t, "hello", FindByID(vnode, "label").Content)
	assert.Equal(t, "hello", TextOf(FindByID(vnode, "badge")))
	assert.Equal(t, 1, c.inits)
}

func TestDataBinding_StateUpdateViaEvents(t *testing.T) {
	c := &counter{}
	renderer := NewTestRenderer(c)
	renderer.RenderRoot()
	assert.Nil(t, renderer.GetCurrentVDOM().Children[3], "conditional slot empty")

	require.NoError(t, renderer.Click("inc"))
	require.NoError(t, renderer.Input("label", "typed"))

	assert.Equal(t, "Count: 1", renderer.Find("count").Content)
	assert.Equal(t, "typed", renderer.Find("label").Content)
	assert.Equal(t, "clicked", renderer.GetCurrentVDOM().Children[3].Content)
}

func TestDataBinding_DisabledSwallowsClick(t *testing.T) {
	c := &counter{Count: 3}
	renderer := NewTestRenderer(c)
	renderer.RenderRoot()

	err := renderer.Click("inc")

	assert.ErrorIs(t, err, ErrDisabled)
	assert.Equal(t, 3, c.Count)
}

func TestDataBinding_MissingTargets(t *testing.T) {
	renderer := NewTestRenderer(&counter{})
	renderer.RenderRoot()

	assert.Error(t, renderer.Click("nope"))
	assert.Error(t, renderer.Input("count", "x"), "paragraph has no input handler")
	assert.Error(t, renderer.Change("label", "x"), "input has no change handler")
}

func TestRenderChild_PreservesInstance(t *testing.T) {
	c := &counter{Label: "a"}
	renderer := NewTestRenderer(c)
	renderer.RenderRoot()
	first := renderer.Child("badge")

	require.NoError(t, renderer.Input("label", "b"))
	require.NoError(t, renderer.Input("label", "c"))

	child := renderer.Child("badge").(*badge)
	assert.Same(t, first, child)
	assert.Equal(t, 1, child.inits)
	assert.Equal(t, 3, child.renders)
	assert.Equal(t, "c", TextOf(renderer.Find("badge")))
	assert.Equal(t, "badge", renderer.Find("badge").ComponentKey)
}

func TestInvokeAsync_SerializedAndCounted(t *testing.T) {
	c := &counter{}
	renderer := NewTestRenderer(c)
	renderer.RenderRoot()

	const n = 20
	for i := 0; i < n; i++ {
		go c.InvokeAsync(func() {
			c.Count++
			c.StateHasChanged()
		})
	}

	require.True(t, renderer.WaitForAsync(n, 2*time.Second))
	assert.Equal(t, n, c.Count)
	assert.Equal(t, "Count: 20", renderer.Find("count").Content)
}

func TestDestroy_RunsCleaners(t *testing.T) {
	c := &counter{}
	renderer := NewTestRenderer(c)
	renderer.RenderRoot()

	renderer.Destroy()

	assert.Equal(t, 1, c.destroys)
	assert.Nil(t, renderer.Child("badge"))
}

func TestRenderIsolation(t *testing.T) {
	c1 := &counter{Count: 0}
	c2 := &counter{Count: 2}
	r1 := NewTestRenderer(c1)
	r2 := NewTestRenderer(c2)
	r1.RenderRoot()
	r2.RenderRoot()

	c1.Increment()

	assert.Equal(t, "Count: 1", r1.Find("count").Content)
	assert.Equal(t, "Count: 2", r2.Find("count").Content)
}

func TestStateHasChanged_Unmounted(t *testing.T) {
	c := &counter{}

	// No renderer attached: logged and ignored.
	c.Increment()
	c.InvokeAsync(func() { c.Count = 100 })

	assert.Equal(t, 1, c.Count)
}
