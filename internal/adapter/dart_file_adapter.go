package adapter

import (
	"path/filepath"
	"regexp"
	"strings"

	m "keylens.dev/pkg/keylens/internal/model"
)

// DartFileAdapter encapsulates Dart-specific key extraction so the domain
// layer can focus on classification while delegating source-text details
// to an infrastructure component.
type DartFileAdapter interface {
	// ExtractKeys scans Dart source and returns one record per literal
	// testing key occurrence, in source order.
	ExtractKeys(path m.Path, src []byte) []m.KeyRecord

	// IsDartSource reports whether a path names a scannable Dart file.
	// Generated sources (*.g.dart, *.freezed.dart) are excluded.
	IsDartSource(path m.Path) bool
}

// keyPattern pairs an extraction regexp with the category tag its matches
// receive. The key name is always capture group 1.
type keyPattern struct {
	re       *regexp.Regexp
	category m.Category
}

// Patterns are applied in order and each match blanks its span before the
// next pattern runs, so find.byKey(Key('x')) yields one finder record
// rather than a finder record plus a key record.
var keyPatterns = []keyPattern{
	{
		re:       regexp.MustCompile(`find\.byKey\(\s*(?:const\s+)?(?:Value)?Key(?:<[^>]*>)?\(\s*['"]([^'"]+)['"]`),
		category: m.CategoryFinder,
	},
	{
		re:       regexp.MustCompile(`(?:const\s+)?ValueKey(?:<[^>]*>)?\(\s*['"]([^'"]+)['"]`),
		category: m.CategoryValueKey,
	},
	{
		re:       regexp.MustCompile(`(?:const\s+)?\bKey\(\s*['"]([^'"]+)['"]`),
		category: m.CategoryKey,
	},
}

// LocalDartFileAdapter extracts keys with regular expressions over source
// lines. Interpolated or otherwise non-literal keys are not reported; an
// indexer can only name keys it can read.
type LocalDartFileAdapter struct{}

// NewLocalDartFileAdapter constructs a LocalDartFileAdapter.
func NewLocalDartFileAdapter() *LocalDartFileAdapter {
	return &LocalDartFileAdapter{}
}

// ExtractKeys scans src line by line and records every literal key. Line
// numbers are 1-based and paths are normalized to forward slashes.
func (a *LocalDartFileAdapter) ExtractKeys(path m.Path, src []byte) []m.KeyRecord {
	slashPath := m.Path(filepath.ToSlash(string(path)))

	var records []m.KeyRecord

	lines := strings.Split(string(src), "\n")
	for i, line := range lines {
		remaining := line

		for _, pattern := range keyPatterns {
			matches := pattern.re.FindAllStringSubmatchIndex(remaining, -1)
			if matches == nil {
				continue
			}

			for _, match := range matches {
				name := remaining[match[2]:match[3]]

				// A '$' means Dart string interpolation: not a literal key.
				if strings.Contains(name, "$") {
					continue
				}

				records = append(records, m.KeyRecord{
					Name:     name,
					Category: pattern.category,
					FilePath: slashPath,
					Line:     i + 1,
				})
			}

			remaining = blankMatches(remaining, matches)
		}
	}

	return records
}

// IsDartSource accepts *.dart files that are not generated.
func (a *LocalDartFileAdapter) IsDartSource(path m.Path) bool {
	name := filepath.Base(string(path))

	if !strings.HasSuffix(name, ".dart") {
		return false
	}

	if strings.HasSuffix(name, ".g.dart") || strings.HasSuffix(name, ".freezed.dart") {
		return false
	}

	return true
}

// blankMatches overwrites matched spans with spaces so later patterns
// cannot re-match inside them. Offsets stay valid because length is kept.
func blankMatches(line string, matches [][]int) string {
	out := []byte(line)

	for _, match := range matches {
		for i := match[0]; i < match[1]; i++ {
			out[i] = ' '
		}
	}

	return string(out)
}
