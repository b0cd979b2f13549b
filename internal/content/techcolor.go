package content

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultTechColor is used for technologies without a brand colour.
const DefaultTechColor = "#888888"

var techColors = map[string]string{
	// Languages
	"python":     "#3776AB",
	"javascript": "#F7DF1E",
	"typescript": "#3178C6",
	"java":       "#007396",
	"sql":        "#336791",
	"cpp":        "#00599C",
	"csharp":     "#239120",
	"go":         "#00ADD8",
	"rust":       "#CE422B",
	"php":        "#777BB4",

	// Frontend
	"react":     "#61DAFB",
	"vue":       "#4FC08D",
	"angular":   "#DD0031",
	"nextjs":    "#000000",
	"svelte":    "#FF3E00",
	"tailwind":  "#06B6D4",
	"bootstrap": "#7952B3",
	"gsap":      "#88CE02",
	"d3":        "#F77D3E",

	// Backend
	"nodejs":  "#68A063",
	"express": "#000000",
	"fastapi": "#009485",
	"django":  "#092E20",
	"flask":   "#000000",
	"spring":  "#6DB33F",
	"laravel": "#FF2D20",

	// Databases
	"postgresql":    "#336791",
	"mongodb":       "#13AA52",
	"mysql":         "#00758F",
	"redis":         "#DC382D",
	"firebase":      "#FFCA28",
	"elasticsearch": "#005571",

	// DevOps & cloud
	"docker":     "#2496ED",
	"kubernetes": "#326CE5",
	"aws":        "#FF9900",
	"gcp":        "#4285F4",
	"azure":      "#0078D4",
	"vercel":     "#000000",
	"github":     "#181717",
	"gitlab":     "#FC6D26",

	// Tools
	"git":       "#F1502F",
	"webpack":   "#8DD6F9",
	"vite":      "#646CFF",
	"graphql":   "#E10098",
	"websocket": "#FFB81C",

	// GitHub linguist names that differ from the keys above
	"c++":  "#00599C",
	"c#":   "#239120",
	"html": "#E34F26",
	"css":  "#1572B6",
}

// TechColor returns the brand colour for a technology name.
func TechColor(name string) string {
	if c, ok := techColors[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return DefaultTechColor
}

// Badge is a technology label with its background and a readable
// foreground colour.
type Badge struct {
	Name       string `json:"name"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

func NewBadge(name string) Badge {
	bg := TechColor(name)
	fg := "#FFFFFF"
	if c, err := colorful.Hex(bg); err == nil {
		if l, _, _ := c.Lab(); l > 0.6 {
			fg = "#000000"
		}
	}
	return Badge{Name: name, Background: bg, Foreground: fg}
}

func Badges(names []string) []Badge {
	out := make([]Badge, 0, len(names))
	for _, n := range names {
		out = append(out, NewBadge(n))
	}
	return out
}
