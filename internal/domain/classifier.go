// Package domain holds the pure logic for classifying, labelling, and
// projecting testing keys.
package domain

import (
	"strings"

	m "keylens.dev/pkg/keylens/internal/model"
)

// classifierRule binds a group of keywords to the archetype they imply.
type classifierRule struct {
	keywords  []string
	archetype m.WidgetArchetype
}

// classifierRules is checked in order; the first group with a matching
// keyword wins, so "buttonField" classifies as ElevatedButton.
var classifierRules = []classifierRule{
	{[]string{"button", "btn"}, m.ArchetypeElevatedButton},
	{[]string{"field", "input", "text"}, m.ArchetypeTextField},
	{[]string{"card"}, m.ArchetypeCard},
	{[]string{"dialog", "modal"}, m.ArchetypeDialog},
	{[]string{"list", "item"}, m.ArchetypeListView},
}

// Classify maps a key name to a widget archetype by case-insensitive
// substring matching against the ordered rule table. It never fails: names
// matching no rule (including the empty string) return ArchetypeWidget.
//
// The category tag is accepted for callers that have one but takes no part
// in the decision yet.
func Classify(name string, _ m.Category) m.WidgetArchetype {
	lower := strings.ToLower(name)

	for _, rule := range classifierRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.archetype
			}
		}
	}

	return m.ArchetypeWidget
}
