// Package controller provides output implementations for displaying key
// usages and widget previews: a plain writer for scripts and pipes, and a
// Bubble Tea browser for interactive terminals.
package controller

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"
	m "keylens.dev/pkg/keylens/internal/model"
)

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PreviewSource is the subset of the preview adapter the interactive
// browser needs to render a key on demand.
type PreviewSource interface {
	PreviewFor(keyName string) (m.PreviewNode, error)
}

// renderPreviewTree renders a preview node as an indented tree with a
// sorted property list, suitable for both plain and viewport output.
func renderPreviewTree(node m.PreviewNode, indent int) string {
	var b strings.Builder

	writePreviewNode(&b, node, indent)

	return b.String()
}

func writePreviewNode(b *strings.Builder, node m.PreviewNode, indent int) {
	pad := strings.Repeat("  ", indent)

	fmt.Fprintf(b, "%s%s\n", pad, node.Type)

	keys := make([]string, 0, len(node.Properties))
	for key := range node.Properties {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(b, "%s  %s: %v\n", pad, key, node.Properties[key])
	}

	for _, child := range node.Children {
		writePreviewNode(b, child, indent+1)
	}
}
