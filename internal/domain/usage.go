package domain

import (
	"strings"

	m "keylens.dev/pkg/keylens/internal/model"
)

// BuildUsages projects indexer records into the view entities renderers
// consume. Each record is classified, labelled with the archetype's human
// name, and reduced to its file basename. tested marks source files with a
// companion test file and may be nil.
func BuildUsages(records []m.KeyRecord, tested map[m.Path]bool) []m.KeyUsage {
	usages := make([]m.KeyUsage, 0, len(records))

	for _, record := range records {
		archetype := Classify(record.Name, record.Category)

		usages = append(usages, m.KeyUsage{
			KeyName:    record.Name,
			Widget:     FormatDisplayName(string(archetype)),
			File:       baseName(string(record.FilePath)),
			Line:       record.Line,
			HasTest:    tested[record.FilePath],
			WidgetType: archetype,
		})
	}

	return usages
}

// baseName returns the substring after the final '/' of a forward-slash
// path, or the whole string when no '/' is present. Indexer paths are
// normalized to forward slashes, so this is not filepath.Base.
func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}

	return path
}

// Select returns a copy of usages in which exactly the first usage whose
// KeyName equals keyName is selected and every other usage is not. When no
// usage matches, the copy has no selection. The input slice is never
// mutated.
func Select(usages []m.KeyUsage, keyName string) []m.KeyUsage {
	out := make([]m.KeyUsage, len(usages))
	copy(out, usages)

	found := false

	for i := range out {
		out[i].Selected = false

		if !found && out[i].KeyName == keyName {
			out[i].Selected = true
			found = true
		}
	}

	return out
}

// SelectAt is the positional variant of Select used by cursor-driven UIs.
// An out-of-range index clears the selection.
func SelectAt(usages []m.KeyUsage, index int) []m.KeyUsage {
	out := make([]m.KeyUsage, len(usages))
	copy(out, usages)

	for i := range out {
		out[i].Selected = i == index
	}

	return out
}

// FilterRecognized drops usages that classified to the default archetype,
// keeping only keys the rule table recognizes. It returns a new slice.
func FilterRecognized(usages []m.KeyUsage) []m.KeyUsage {
	out := make([]m.KeyUsage, 0, len(usages))

	for _, usage := range usages {
		if usage.WidgetType == m.ArchetypeWidget {
			continue
		}

		out = append(out, usage)
	}

	return out
}
