// Package adapter contains infrastructure adapters for the keylens CLI.
package adapter

import (
	m "keylens.dev/pkg/keylens/internal/model"
)

// PreviewDataSource produces a visual description tree for a testing key.
// The only implementation today fabricates mock data; a real widget
// inspector can replace it without touching callers.
type PreviewDataSource interface {
	// PreviewFor returns the preview tree for the named key.
	PreviewFor(keyName string) (m.PreviewNode, error)
}

// MockPreviewDataSource returns a canned widget tree regardless of which
// widget the key actually names. Only the text label of the child node
// depends on the input.
type MockPreviewDataSource struct {
	label func(string) string
}

// NewMockPreviewDataSource constructs a MockPreviewDataSource. label turns
// a key name into its display text (typically domain.FormatDisplayName).
func NewMockPreviewDataSource(label func(string) string) *MockPreviewDataSource {
	return &MockPreviewDataSource{label: label}
}

// PreviewFor returns the fixed ElevatedButton template. It never fails for
// any input, including the empty string.
func (s *MockPreviewDataSource) PreviewFor(keyName string) (m.PreviewNode, error) {
	text := keyName
	if s.label != nil {
		text = s.label(keyName)
	}

	return m.PreviewNode{
		Type: string(m.ArchetypeElevatedButton),
		Properties: map[string]any{
			"style":        "elevated",
			"color":        "#2196F3",
			"textColor":    "#FFFFFF",
			"borderRadius": 8,
			"elevation":    2,
		},
		Children: []m.PreviewNode{
			{
				Type: "Text",
				Properties: map[string]any{
					"text":       text,
					"fontSize":   16,
					"fontWeight": "w500",
				},
			},
		},
	}, nil
}
