package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "keylens.dev/pkg/keylens/internal/model"
)

// SimpleUI implements the workflow UI using cobra Command output. It is
// the non-interactive fallback for pipes and CI logs.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayUsages prints key usages as a table with per-archetype totals.
func (s *SimpleUI) DisplayUsages(ctx context.Context, usages []m.KeyUsage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderUsageTable(usages))

	return nil
}

func renderUsageTable(usages []m.KeyUsage) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Key", "Widget", "File", "Line", "Tested"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_CENTER,
	})

	files := map[string]struct{}{}

	for _, usage := range usages {
		tested := ""
		if usage.HasTest {
			tested = "yes"
		}

		table.Append([]string{
			usage.KeyName,
			usage.Widget,
			usage.File,
			fmt.Sprintf("%d", usage.Line),
			tested,
		})

		files[usage.File] = struct{}{}
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Keys %d", len(usages)),
		"", "",
		fmt.Sprintf("%d", len(files)),
		"files",
	})

	table.Render()

	return buf.String()
}

// DisplayPreview prints the preview tree for a key.
func (s *SimpleUI) DisplayPreview(ctx context.Context, keyName string, node m.PreviewNode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Preview for %q:\n\n%s", keyName, renderPreviewTree(node, 1))

	return nil
}

// DisplayWatchEvent reports a batch of changed files before a re-scan.
func (s *SimpleUI) DisplayWatchEvent(ctx context.Context, changed []string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Changed: %d file(s), re-indexing\n", len(changed))

	for _, path := range changed {
		s.printf("  %s\n", path)
	}
}

// Browse falls back to the plain table; SimpleUI has no interactive mode.
func (s *SimpleUI) Browse(ctx context.Context, usages []m.KeyUsage) error {
	return s.DisplayUsages(ctx, usages)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
