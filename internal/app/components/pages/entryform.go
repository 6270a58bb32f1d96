package pages

import (
	"context"
	"slices"
	"time"

	"github.com/vcrobe/entryform/console"
	"github.com/vcrobe/entryform/events"
	"github.com/vcrobe/entryform/internal/app/components/shared/entrytable"
	"github.com/vcrobe/entryform/internal/app/entries"
	"github.com/vcrobe/entryform/internal/app/services"
	"github.com/vcrobe/entryform/runtime"
	"github.com/vcrobe/entryform/signals"
	"github.com/vcrobe/entryform/vdom"
)

// EntryForm is the name/country entry view. Names are checked for
// availability on every change; added entries are listed in a table below.
//
// Collaborator results arrive on goroutines and are applied through
// InvokeAsync. A name check only lands if it belongs to the latest name;
// superseded checks run to completion and their results are dropped.
type EntryForm struct {
	runtime.ComponentBase

	LocationSource services.LocationProvider
	NameChecker    services.NameValidator
	RequestTimeout time.Duration // zero means no timeout

	Locations     []string
	Location      string
	Valid         bool
	Duplicate     bool
	LocationsErr  error
	ValidationErr error

	name  *signals.Signal[string]
	table entries.Table

	checkGen    uint64
	loadGen     uint64
	life        context.Context
	stop        context.CancelFunc
	unsubscribe func()
	destroyed   bool
}

// NewEntryForm returns a form in its initial state: empty name, valid, no locations.
func NewEntryForm(source services.LocationProvider, checker services.NameValidator) *EntryForm {
	return &EntryForm{
		LocationSource: source,
		NameChecker:    checker,
		Valid:          true,
		name:           signals.NewSignal(""),
	}
}

// OnInit subscribes the name check to the name and starts the location fetch.
// The initial empty name is checked once, as any other name would be.
func (c *EntryForm) OnInit() {
	if c.name == nil {
		c.name = signals.NewSignal("")
		c.Valid = true
	}
	c.life, c.stop = context.WithCancel(context.Background())
	c.unsubscribe = c.name.Subscribe(c.onNameChanged)
	c.onNameChanged()
	c.loadLocations()
}

// OnDestroy drops the subscription and abandons in-flight requests.
func (c *EntryForm) OnDestroy() {
	c.destroyed = true
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if c.stop != nil {
		c.stop()
	}
}

// Name returns the current name.
func (c *EntryForm) Name() string {
	return c.name.Get()
}

// Rows returns the committed entries in insertion order.
func (c *EntryForm) Rows() []entries.Entry {
	return c.table.Rows()
}

// CanAdd reports whether the Add action is enabled.
func (c *EntryForm) CanAdd() bool {
	return c.Valid && c.ValidationErr == nil
}

// requestContext derives a request context from the form's lifetime, so
// OnDestroy abandons every in-flight request.
func (c *EntryForm) requestContext() (context.Context, context.CancelFunc) {
	parent := c.life
	if parent == nil {
		parent = context.Background()
	}
	if c.RequestTimeout > 0 {
		return context.WithTimeout(parent, c.RequestTimeout)
	}
	return context.WithCancel(parent)
}

func (c *EntryForm) loadLocations() {
	c.loadGen++
	gen := c.loadGen
	ctx, cancel := c.requestContext()
	c.LocationsErr = nil

	source := c.LocationSource
	go func() {
		locs, err := source.Locations(ctx)
		cancel()
		c.InvokeAsync(func() { c.applyLocations(gen, locs, err) })
	}()
}

func (c *EntryForm) applyLocations(gen uint64, locs []string, err error) {
	if c.destroyed || gen != c.loadGen {
		return
	}
	if err != nil {
		console.Error("location fetch failed:", err.Error())
		c.LocationsErr = err
		c.StateHasChanged()
		return
	}
	c.Locations = locs
	c.Location = c.defaultLocation()
	c.StateHasChanged()
}

// onNameChanged is the name effect: it clears the duplicate warning and
// supersedes any outstanding check with one for the current name. The older
// request is not aborted; bumping checkGen is enough to discard its result.
func (c *EntryForm) onNameChanged() {
	c.Duplicate = false
	c.ValidationErr = nil

	c.checkGen++
	gen := c.checkGen
	ctx, cancel := c.requestContext()

	name := c.name.Get()
	checker := c.NameChecker
	go func() {
		ok, err := checker.IsNameValid(ctx, name)
		cancel()
		c.InvokeAsync(func() { c.applyCheck(gen, ok, err) })
	}()
}

func (c *EntryForm) applyCheck(gen uint64, ok bool, err error) {
	if c.destroyed || gen != c.checkGen {
		// Superseded by a later name.
		return
	}
	if err != nil {
		console.Error("name check failed:", err.Error())
		c.ValidationErr = err
	} else {
		c.Valid = ok
	}
	c.StateHasChanged()
}

func (c *EntryForm) defaultLocation() string {
	if len(c.Locations) == 0 {
		return ""
	}
	return c.Locations[0]
}

// HandleNameInput binds the name input. Re-entering the current value is not a change.
func (c *EntryForm) HandleNameInput(e events.ChangeEventArgs) {
	if e.Value == c.name.Get() {
		return
	}
	c.name.Set(e.Value)
	c.StateHasChanged()
}

// HandleLocationChange binds the country dropdown. Once the list is loaded,
// values outside it are ignored.
func (c *EntryForm) HandleLocationChange(e events.ChangeEventArgs) {
	if len(c.Locations) > 0 && !slices.Contains(c.Locations, e.Value) {
		console.Warn("ignoring unknown location:", e.Value)
		return
	}
	c.Location = e.Value
	c.StateHasChanged()
}

// Clear resets name, validity, table and location. The duplicate warning is
// not touched here; it clears only through the name effect when the name
// actually changes.
func (c *EntryForm) Clear() {
	if c.name.Get() != "" {
		c.name.Set("")
	}
	c.Valid = true
	c.ValidationErr = nil
	c.table.Reset()
	c.Location = c.defaultLocation()
	c.StateHasChanged()
}

// Add commits the current (name, location) pair unless it is already listed,
// in which case the duplicate warning is raised. No effect while !CanAdd().
func (c *EntryForm) Add() {
	if !c.CanAdd() {
		return
	}
	entry := entries.Entry{Name: c.name.Get(), Location: c.Location}
	c.Duplicate = !c.table.Add(entry)
	c.StateHasChanged()
}

// RetryLocations reissues the location fetch after a failure.
func (c *EntryForm) RetryLocations() {
	c.loadLocations()
	c.StateHasChanged()
}

// RetryValidation reruns the name check for the current name.
func (c *EntryForm) RetryValidation() {
	c.onNameChanged()
	c.StateHasChanged()
}

// Render implements the Component interface and returns the virtual DOM structure.
func (c *EntryForm) Render(r runtime.Renderer) *vdom.VNode {
	options := make([]*vdom.VNode, 0, len(c.Locations))
	for _, loc := range c.Locations {
		options = append(options, vdom.Option(loc))
	}

	return vdom.Div(map[string]any{"class": "container"},
		vdom.Div(map[string]any{"class": "row"},
			vdom.TextDiv("Name", map[string]any{"class": "col-1"}),
			vdom.Div(map[string]any{"class": "col-1 name-input-field"},
				vdom.InputText(c.name.Get(), map[string]any{
					"id":      "name-input",
					"onInput": events.AdaptChangeEvent(c.HandleNameInput),
				}),
			),
			vdom.When(!c.Valid, vdom.TextDiv("This name has already been taken",
				map[string]any{"id": "name-taken", "class": "text-validation"})),
			vdom.When(c.Duplicate, vdom.TextDiv("Duplicate entry...",
				map[string]any{"id": "duplicate-entry", "class": "text-validation"})),
			vdom.When(c.ValidationErr != nil, vdom.Div(map[string]any{"id": "validation-error", "class": "text-validation"},
				vdom.Text("Name validation unavailable "),
				vdom.Button("Retry", map[string]any{
					"id":      "retry-validation",
					"class":   "btn btn-link",
					"onClick": events.AdaptNoArgEvent(c.RetryValidation),
				}),
			)),
		),
		vdom.Div(map[string]any{"class": "row"},
			vdom.TextDiv("Country", map[string]any{"class": "col-1"}),
			vdom.Div(map[string]any{"class": "col-1 location-input-field"},
				vdom.Select(c.Location, map[string]any{
					"id":       "location-select",
					"onChange": events.AdaptChangeEvent(c.HandleLocationChange),
				}, options...),
			),
			vdom.When(c.LocationsErr != nil, vdom.Div(map[string]any{"id": "locations-error", "class": "text-validation"},
				vdom.Text("Locations unavailable "),
				vdom.Button("Retry", map[string]any{
					"id":      "retry-locations",
					"class":   "btn btn-link",
					"onClick": events.AdaptNoArgEvent(c.RetryLocations),
				}),
			)),
		),
		vdom.Div(map[string]any{"class": "buttons"},
			vdom.Span(nil, vdom.Button("Clear", map[string]any{
				"id":      "clear-button",
				"class":   "btn btn-secondary",
				"onClick": events.AdaptNoArgEvent(c.Clear),
			})),
			vdom.Span(nil, vdom.Button("Add", map[string]any{
				"id":       "add-button",
				"class":    "btn btn-secondary",
				"disabled": !c.CanAdd(),
				"onClick":  events.AdaptNoArgEvent(c.Add),
			})),
		),
		r.RenderChild("entry-table", &entrytable.EntryTable{Rows: c.table.Rows()}),
	)
}
