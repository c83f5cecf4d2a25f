package model

// PreviewNode is a synthetic visual description of a widget: a type name,
// a property bag, and ordered children. It is what a widget inspector
// would return for a key; the mock data source fabricates it.
type PreviewNode struct {
	Type       string
	Properties map[string]any
	Children   []PreviewNode
}
