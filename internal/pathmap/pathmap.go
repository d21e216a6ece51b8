// Package pathmap translates media paths reported by the Plex server into
// paths reachable from the machine running themesync.
package pathmap

import "strings"

// Mapping rewrites one remote path prefix to a local one.
type Mapping struct {
	Remote string
	Local  string
}

// Mapper applies an ordered list of prefix mappings. The first mapping whose
// remote prefix matches wins; a path matching no mapping passes through
// unchanged.
type Mapper struct {
	mappings []Mapping
}

// New builds a Mapper from the configured mapping list. Entries with an empty
// remote prefix are dropped.
func New(mappings []Mapping) *Mapper {
	kept := make([]Mapping, 0, len(mappings))
	for _, m := range mappings {
		if strings.TrimSpace(m.Remote) == "" {
			continue
		}
		kept = append(kept, m)
	}
	return &Mapper{mappings: kept}
}

// Apply maps a server-side path to its local equivalent.
func (m *Mapper) Apply(path string) string {
	for _, mapping := range m.mappings {
		if strings.HasPrefix(path, mapping.Remote) {
			return mapping.Local + strings.TrimPrefix(path, mapping.Remote)
		}
	}
	return path
}
