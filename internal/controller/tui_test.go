package controller

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "keylens.dev/pkg/keylens/internal/model"
)

type stubPreviewSource struct {
	node m.PreviewNode
	err  error

	requested []string
}

func (s *stubPreviewSource) PreviewFor(keyName string) (m.PreviewNode, error) {
	s.requested = append(s.requested, keyName)

	return s.node, s.err
}

func browseUsages() []m.KeyUsage {
	return []m.KeyUsage{
		{KeyName: "loginButton", Widget: "Elevated Button", File: "login.dart", Line: 12, WidgetType: m.ArchetypeElevatedButton},
		{KeyName: "emailField", Widget: "Text Field", File: "login.dart", Line: 8, WidgetType: m.ArchetypeTextField},
		{KeyName: "xyz", Widget: "Widget", File: "misc.dart", Line: 3, WidgetType: m.ArchetypeWidget},
	}
}

func keyPress(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func updateModel(t *testing.T, bm browseModel, keys ...string) browseModel {
	t.Helper()

	for _, key := range keys {
		next, _ := bm.Update(keyPress(key))

		var ok bool
		bm, ok = next.(browseModel)
		require.True(t, ok)
	}

	return bm
}

func selectedKey(t *testing.T, usages []m.KeyUsage) string {
	t.Helper()

	var name string

	for _, usage := range usages {
		if usage.Selected {
			require.Empty(t, name, "more than one usage selected")
			name = usage.KeyName
		}
	}

	return name
}

func TestBrowseModel_InitialSelection(t *testing.T) {
	bm := newBrowseModel(browseUsages(), nil)

	assert.Equal(t, 0, bm.cursor)
	assert.Equal(t, "loginButton", selectedKey(t, bm.visible))
}

func TestBrowseModel_Navigation(t *testing.T) {
	bm := newBrowseModel(browseUsages(), nil)

	bm = updateModel(t, bm, "j")
	assert.Equal(t, 1, bm.cursor)
	assert.Equal(t, "emailField", selectedKey(t, bm.visible))

	bm = updateModel(t, bm, "j", "j")
	assert.Equal(t, 2, bm.cursor, "cursor clamps at the last row")
	assert.Equal(t, "xyz", selectedKey(t, bm.visible))

	bm = updateModel(t, bm, "g")
	assert.Equal(t, 0, bm.cursor)

	bm = updateModel(t, bm, "k")
	assert.Equal(t, 0, bm.cursor, "cursor clamps at the first row")

	bm = updateModel(t, bm, "G")
	assert.Equal(t, 2, bm.cursor)
}

func TestBrowseModel_SelectionStaysExclusive(t *testing.T) {
	bm := newBrowseModel(browseUsages(), nil)

	bm = updateModel(t, bm, "j", "j", "k", "j")

	count := 0
	for _, usage := range bm.visible {
		if usage.Selected {
			count++
		}
	}

	assert.Equal(t, 1, count)
}

func TestBrowseModel_FilterToggle(t *testing.T) {
	bm := newBrowseModel(browseUsages(), nil)

	bm = updateModel(t, bm, "f")
	require.Len(t, bm.visible, 2)
	assert.True(t, bm.filtered)
	assert.Equal(t, "loginButton", selectedKey(t, bm.visible))

	for _, usage := range bm.visible {
		assert.NotEqual(t, m.ArchetypeWidget, usage.WidgetType)
	}

	bm = updateModel(t, bm, "f")
	assert.False(t, bm.filtered)
	assert.Len(t, bm.visible, 3)
}

func TestBrowseModel_FilterDoesNotMutateAll(t *testing.T) {
	usages := browseUsages()
	bm := newBrowseModel(usages, nil)

	bm = updateModel(t, bm, "f", "j")

	assert.Equal(t, "emailField", selectedKey(t, bm.visible))
	assert.Empty(t, selectedKey(t, usages), "caller slice must stay untouched")
}

func TestBrowseModel_OpenPreview(t *testing.T) {
	previews := &stubPreviewSource{
		node: m.PreviewNode{
			Type:       "ElevatedButton",
			Properties: map[string]any{"color": "#2196F3"},
			Children: []m.PreviewNode{
				{Type: "Text", Properties: map[string]any{"text": "Email Field"}},
			},
		},
	}

	bm := newBrowseModel(browseUsages(), previews)

	next, _ := bm.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	bm = next.(browseModel)

	bm = updateModel(t, bm, "j", "enter")

	require.True(t, bm.showPreview)
	assert.Equal(t, []string{"emailField"}, previews.requested)

	view := bm.View()
	assert.Contains(t, view, "emailField")
	assert.Contains(t, view, "ElevatedButton")

	bm = updateModel(t, bm, "esc")
	assert.False(t, bm.showPreview)
	assert.False(t, bm.quitting)
}

func TestBrowseModel_PreviewErrorKeepsList(t *testing.T) {
	previews := &stubPreviewSource{err: errors.New("no preview")}

	bm := newBrowseModel(browseUsages(), previews)
	bm = updateModel(t, bm, "enter")

	assert.False(t, bm.showPreview)
}

func TestBrowseModel_PreviewWithoutSource(t *testing.T) {
	bm := newBrowseModel(browseUsages(), nil)
	bm = updateModel(t, bm, "enter")

	assert.False(t, bm.showPreview)
}

func TestBrowseModel_Quit(t *testing.T) {
	bm := newBrowseModel(browseUsages(), nil)

	next, cmd := bm.Update(keyPress("q"))
	bm = next.(browseModel)

	assert.True(t, bm.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, "", bm.View())
}

func TestBrowseModel_View(t *testing.T) {
	bm := newBrowseModel(browseUsages(), nil)

	view := bm.View()
	assert.Contains(t, view, "loginButton")
	assert.Contains(t, view, "Elevated Button")
	assert.Contains(t, view, "login.dart:12")
	assert.Contains(t, view, "3 of 3 keys")
}

func TestBrowseModel_ViewEmpty(t *testing.T) {
	bm := newBrowseModel(nil, nil)

	assert.Contains(t, bm.View(), "no testing keys found")

	bm = updateModel(t, bm, "f")
	assert.Contains(t, bm.View(), "no recognized keys")
}

func TestBrowseModel_WindowResize(t *testing.T) {
	bm := newBrowseModel(browseUsages(), nil)

	next, _ := bm.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	bm = next.(browseModel)

	assert.Equal(t, 80, bm.width)
	assert.Equal(t, 24, bm.height)
	assert.Equal(t, 17, bm.itemsPerPage())
}

func TestWindowBounds(t *testing.T) {
	tests := []struct {
		name      string
		cursor    int
		total     int
		perPage   int
		wantStart int
		wantEnd   int
	}{
		{"all fit", 0, 3, 10, 0, 3},
		{"top of long list", 0, 100, 10, 0, 10},
		{"cursor centered", 50, 100, 10, 45, 55},
		{"bottom clamps", 99, 100, 10, 90, 100},
		{"exact fit", 5, 10, 10, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := windowBounds(tt.cursor, tt.total, tt.perPage)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
