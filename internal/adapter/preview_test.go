package adapter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// titleWords mimics the display formatter without importing the domain
// package (adapter must stay below domain in the dependency order).
func titleWords(identifier string) string {
	var b strings.Builder

	for i, r := range identifier {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteRune(' ')
		}

		if i == 0 {
			b.WriteString(strings.ToUpper(string(r)))
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

func TestMockPreviewDataSource_FixedTemplate(t *testing.T) {
	source := NewMockPreviewDataSource(titleWords)

	for _, key := range []string{"emailField", "loginButton", "xyz", ""} {
		node, err := source.PreviewFor(key)
		require.NoError(t, err)

		// The template ignores the key's archetype: always a button.
		assert.Equal(t, "ElevatedButton", node.Type)
		assert.Equal(t, "elevated", node.Properties["style"])
		assert.Equal(t, "#2196F3", node.Properties["color"])
		assert.Equal(t, "#FFFFFF", node.Properties["textColor"])
		assert.Equal(t, 8, node.Properties["borderRadius"])
		assert.Equal(t, 2, node.Properties["elevation"])

		require.Len(t, node.Children, 1)
		child := node.Children[0]
		assert.Equal(t, "Text", child.Type)
		assert.Equal(t, 16, child.Properties["fontSize"])
		assert.Equal(t, "w500", child.Properties["fontWeight"])
		assert.Empty(t, child.Children)
	}
}

func TestMockPreviewDataSource_LabelsChild(t *testing.T) {
	source := NewMockPreviewDataSource(titleWords)

	node, err := source.PreviewFor("emailField")
	require.NoError(t, err)
	assert.Equal(t, "Email Field", node.Children[0].Properties["text"])

	node, err = source.PreviewFor("")
	require.NoError(t, err)
	assert.Equal(t, "", node.Children[0].Properties["text"])
}

func TestMockPreviewDataSource_NilLabeler(t *testing.T) {
	source := NewMockPreviewDataSource(nil)

	node, err := source.PreviewFor("rawKey")
	require.NoError(t, err)
	assert.Equal(t, "rawKey", node.Children[0].Properties["text"])
}

func TestMockPreviewDataSource_Deterministic(t *testing.T) {
	source := NewMockPreviewDataSource(titleWords)

	first, err := source.PreviewFor("todoList")
	require.NoError(t, err)

	second, err := source.PreviewFor("todoList")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
