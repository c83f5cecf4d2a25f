package model

import "time"

// IndexVersion is the current on-disk index format version.
const IndexVersion = 1

// Index is the persisted result of a scan.
type Index struct {
	Version     int         `yaml:"version"`
	GeneratedAt time.Time   `yaml:"generated_at"`
	ProjectRoot Path        `yaml:"project_root,omitempty"`
	Records     []KeyRecord `yaml:"records"`
}
