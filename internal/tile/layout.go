package tile

import "math"

// Canvas size in SVG user units.
const (
	Width  = 400
	Height = 250
)

// Style is one of the decorative pattern families.
type Style int

const (
	Circuit Style = iota
	Dots
	Waves
)

var styleNames = [...]string{"circuit", "dots", "waves"}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return "unknown"
	}
	return styleNames[s]
}

type Point struct {
	X, Y float64
}

// Segment is a circuit trace with a pad at each end.
type Segment struct {
	From, To Point
	Width    float64
}

type Dot struct {
	Center Point
	Radius float64
}

// Wave is an open polyline sampled across the canvas width.
type Wave struct {
	Points []Point
}

// Layout is the complete geometry derived from a name. Only the slice
// matching Style is populated.
type Layout struct {
	Hash     int32
	Palette  Palette
	Style    Style
	Segments []Segment
	Dots     []Dot
	Waves    []Wave
}

const (
	segmentCount = 12
	dotCount     = 40
	waveCount    = 5
	waveSamples  = 20
)

// New derives the layout for name.
func New(name string) Layout {
	hash := Hash(name)
	s := NewStream(hash)

	l := Layout{
		Hash:    hash,
		Palette: Palettes[s.pick(0, len(Palettes))],
		Style:   Style(s.pick(5, 3)),
	}

	switch l.Style {
	case Circuit:
		l.Segments = circuit(s)
	case Dots:
		l.Dots = dots(s)
	default:
		l.Waves = waves(s)
	}
	return l
}

func circuit(s Stream) []Segment {
	segs := make([]Segment, 0, segmentCount)
	for i := 0; i < segmentCount; i++ {
		x1 := math.Floor(float64(s.At(i*10)*10)) * (Width / 10)
		y1 := math.Floor(float64(s.At(i*10+1)*10)) * (Height / 10)
		horizontal := s.At(i) > 0.5

		span := float64(Height)
		if horizontal {
			span = Width
		}
		length := float64((float64(s.At(i*10+2)*0.4) + 0.1) * span)

		x2, y2 := x1, y1
		if horizontal {
			x2 = math.Min(x1+length, Width)
		} else {
			y2 = math.Min(y1+length, Height)
		}

		segs = append(segs, Segment{
			From:  Point{x1, y1},
			To:    Point{x2, y2},
			Width: float64(s.At(i)*2) + 1,
		})
	}
	return segs
}

func dots(s Stream) []Dot {
	ds := make([]Dot, 0, dotCount)
	for i := 0; i < dotCount; i++ {
		x := math.Floor(float64(s.At(i*10)*20)) * (Width / 20)
		y := math.Floor(float64(s.At(i*10+1)*10)) * (Height / 10)
		ds = append(ds, Dot{
			Center: Point{x, y},
			Radius: float64(s.At(i*10+2)*2) + 1,
		})
	}
	return ds
}

func waves(s Stream) []Wave {
	ws := make([]Wave, 0, waveCount)
	for i := 0; i < waveCount; i++ {
		base := Height * (0.2 + float64(float64(i)*0.15))
		amplitude := 20 + float64(s.At(i)*30)
		freq := 0.01 + float64(s.At(i+1)*0.02)
		shift := float64(s.At(i) * 10)

		pts := make([]Point, 0, waveSamples)
		for j := 0; j < waveSamples; j++ {
			x := float64(j) / (waveSamples - 1) * Width
			y := base + float64(sin(float64(x*freq)+shift)*amplitude)
			pts = append(pts, Point{x, y})
		}
		ws = append(ws, Wave{Points: pts})
	}
	return ws
}
