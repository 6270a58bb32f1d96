package events

// ChangeEventArgs carries the current value of an input or select element
// for "input" and "change" events.
type ChangeEventArgs struct {
	Value string
}
