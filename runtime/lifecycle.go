package runtime

// Initializer is implemented by components that need setup before their first render.
// OnInit runs exactly once per mounted instance.
type Initializer interface {
	OnInit()
}

// ParameterReceiver is implemented by components that react to props before every render.
type ParameterReceiver interface {
	OnParametersSet()
}

// Cleaner is implemented by components that hold resources (subscriptions,
// in-flight requests) which must be released when they leave the tree.
type Cleaner interface {
	OnDestroy()
}

// PropUpdater copies props from a freshly constructed instance onto the
// preserved one when a child component is re-rendered under the same key.
type PropUpdater interface {
	ApplyProps(source Component)
}
