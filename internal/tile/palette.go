package tile

// Palette is a two-stop background gradient.
type Palette struct {
	Name       string
	Start, End string
}

// Palettes lists the dark gradients in selection order. The order is part
// of the output: reordering changes every tile.
var Palettes = []Palette{
	{Name: "slate", Start: "#0f172a", End: "#334155"},
	{Name: "indigo", Start: "#1e1b4b", End: "#312e81"},
	{Name: "violet", Start: "#2e1065", End: "#581c87"},
	{Name: "blue", Start: "#172554", End: "#1e40af"},
	{Name: "emerald", Start: "#022c22", End: "#047857"},
	{Name: "red", Start: "#450a0a", End: "#991b1b"},
}

// Accent colours of the overlay layers.
const (
	ShapeColor = "rgba(255, 255, 255, 0.1)"
	GridColor  = "rgba(255,255,255,0.03)"

	ShapeAlpha    = 0.1
	GridAlpha     = 0.03
	VignetteAlpha = 0.4
	GridSpacing   = 40
)
