// Package model defines the data structures for testing-key indexing.
package model

// Path represents a file system path.
type Path string

// Category is an opaque tag describing which construct produced a key
// record. The classifier accepts it but does not currently use it; it is
// reserved for future matching rules.
type Category string

const (
	// CategoryKey marks records extracted from Key(...) constructors.
	CategoryKey Category = "key"
	// CategoryValueKey marks records extracted from ValueKey(...) constructors.
	CategoryValueKey Category = "valueKey"
	// CategoryFinder marks records extracted from find.byKey(...) call sites.
	CategoryFinder Category = "finder"
)

// KeyRecord identifies one occurrence of a testing key in source. Records
// are produced by the indexer and never modified afterwards.
type KeyRecord struct {
	Name     string   `yaml:"name"`
	Category Category `yaml:"category"`
	FilePath Path     `yaml:"file"`
	Line     int      `yaml:"line"`
}

// WidgetArchetype is the closed set of recognized visual element
// categories used to choose a preview representation.
type WidgetArchetype string

const (
	// ArchetypeElevatedButton represents button-like widgets.
	ArchetypeElevatedButton WidgetArchetype = "ElevatedButton"
	// ArchetypeTextField represents text-input widgets.
	ArchetypeTextField WidgetArchetype = "TextField"
	// ArchetypeCard represents card containers.
	ArchetypeCard WidgetArchetype = "Card"
	// ArchetypeDialog represents dialogs and modals.
	ArchetypeDialog WidgetArchetype = "Dialog"
	// ArchetypeListView represents lists and list items.
	ArchetypeListView WidgetArchetype = "ListView"
	// ArchetypeWidget is the default for keys no rule recognizes.
	ArchetypeWidget WidgetArchetype = "Widget"
)

// KeyUsage is the per-record view entity handed to renderers. Selected is
// transient UI state and is exclusive across a collection: at most one
// usage is selected at a time.
type KeyUsage struct {
	KeyName    string
	Widget     string // human label for the archetype
	File       string // basename only
	Line       int
	HasTest    bool // a companion test file exists for the source file
	Selected   bool
	WidgetType WidgetArchetype
}
