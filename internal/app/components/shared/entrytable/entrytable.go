package entrytable

import (
	"github.com/vcrobe/entryform/internal/app/entries"
	"github.com/vcrobe/entryform/runtime"
	"github.com/vcrobe/entryform/vdom"
)

// EntryTable renders committed entries as a two-column (Name, Country) table
// in insertion order.
type EntryTable struct {
	runtime.ComponentBase

	Rows []entries.Entry
}

// ApplyProps takes the rows from a freshly built instance.
func (t *EntryTable) ApplyProps(source runtime.Component) {
	if s, ok := source.(*EntryTable); ok {
		t.Rows = s.Rows
	}
}

// Render implements the Component interface and returns the virtual DOM structure.
func (t *EntryTable) Render(r runtime.Renderer) *vdom.VNode {
	body := make([]*vdom.VNode, 0, len(t.Rows))
	for _, row := range t.Rows {
		body = append(body, vdom.Tr(map[string]any{"class": "table-light"},
			vdom.Td(row.Name),
			vdom.Td(row.Location),
		))
	}

	return vdom.Div(nil,
		vdom.Table(map[string]any{"id": "entries-table", "class": "table"},
			vdom.Thead(vdom.Tr(nil, vdom.Th("Name"), vdom.Th("Country"))),
			vdom.Tbody(body...),
		),
	)
}
