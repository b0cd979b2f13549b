// Package tile generates deterministic placeholder artwork for project cards.
//
// A tile is derived entirely from the project name: the name hash seeds a
// sin-based stream that picks a background gradient, one of three pattern
// styles and every shape coordinate. The same name yields the same bytes in
// every process. Generation has no shared state and is safe to call from
// any number of goroutines.
package tile

// Generate returns the tile for a project as a data:image/svg+xml URI.
//
// technologies is accepted for interface compatibility with the project
// listing but does not influence the artwork.
func Generate(name string, technologies []string) string {
	return New(name).DataURI()
}

// SVG returns the raw SVG document for a project tile.
func SVG(name string, technologies []string) []byte {
	return New(name).SVG()
}
