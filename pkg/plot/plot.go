// Package plot defines a flat 2-D drawing model and the backend interface
// that writes drawings to files. Backends (sdfx DXF, SVG) sit behind the
// interface so the rest of the system never depends on a file format.
package plot

import "strings"

// Backend writes drawings in one file format.
type Backend interface {
	// Name identifies the backend on the command line.
	Name() string

	// Extension is the conventional file extension, including the dot.
	Extension() string

	// Render writes d to path.
	Render(d *Drawing, path string) error
}

// ByExtension returns the backend whose extension matches path, or nil.
func ByExtension(path string, backends ...Backend) Backend {
	lower := strings.ToLower(path)
	for _, b := range backends {
		if strings.HasSuffix(lower, b.Extension()) {
			return b
		}
	}
	return nil
}

// ByName returns the backend with the given name, or nil.
func ByName(name string, backends ...Backend) Backend {
	for _, b := range backends {
		if b.Name() == name {
			return b
		}
	}
	return nil
}
