package icons

import (
	"math"

	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
)

// Bagel parameterizes the elliptical icon layout.
type Bagel struct {
	SmallScreen int     // Below this shorter side the small scale applies
	ScaleSmall  float64 // Radius as a fraction of the shorter side
	ScaleLarge  float64
	RadiusMax   float64
	RadiusMinX  float64
	RadiusMinY  float64
	StretchY    float64
	Aspect      float64 // Height of one unit relative to its width
	Relative    float64 // Distance of a relative slot from its anchor
}

// slot places an icon on the ellipse. The x and y angles differ on purpose,
// which gives the ring its lopsided look.
type slot struct {
	ax, ay float64
}

var bagelSlots = map[string]slot{
	"about":      {220, 230},
	"work":       {350, 300},
	"community":  {315, 320},
	"activities": {360, 345},
	"music":      {40, 60},
	"mentorship": {120, 130},
	"guestbook":  {150, 150},
}

// relativeSlots sit at a fixed distance and angle from another icon.
var relativeSlots = map[string]struct {
	anchor string
	angle  float64
}{
	"blog": {anchor: "about", angle: 45},
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Layout computes the hotspot of every id for the given viewport. Ids with a
// fixed slot take it, relative ids are placed next to their anchor, and the
// rest are spread evenly around the ring.
func Layout(ids []string, viewport geom.Size, b Bagel) map[string]geom.Point {
	aspect := b.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	// Work in square units so the ring stays round on a cell grid.
	w := float64(viewport.Width)
	h := float64(viewport.Height) * aspect
	cx, cy := w/2, h/2

	minDim := math.Min(w, h)
	scale := b.ScaleLarge
	if minDim < float64(b.SmallScreen) {
		scale = b.ScaleSmall
	}
	base := math.Min(minDim*scale, b.RadiusMax)
	rx := math.Max(base, b.RadiusMinX)
	ry := math.Max(base*b.StretchY, b.RadiusMinY)

	square := make(map[string][2]float64, len(ids))
	var free []string
	for _, id := range ids {
		if s, ok := bagelSlots[id]; ok {
			square[id] = [2]float64{
				cx + rx*math.Cos(radians(s.ax)),
				cy + ry*math.Sin(radians(s.ay)),
			}
			continue
		}
		if _, ok := relativeSlots[id]; !ok {
			free = append(free, id)
		}
	}
	for i, id := range free {
		a := radians(90 + 360*float64(i)/float64(len(free)))
		square[id] = [2]float64{cx + rx*math.Cos(a), cy + ry*math.Sin(a)}
	}
	for _, id := range ids {
		rel, ok := relativeSlots[id]
		if !ok {
			continue
		}
		anchor, ok := square[rel.anchor]
		if !ok {
			anchor = [2]float64{cx, cy}
		}
		square[id] = [2]float64{
			anchor[0] + b.Relative*math.Cos(radians(rel.angle)),
			anchor[1] - b.Relative*math.Sin(radians(rel.angle)),
		}
	}

	out := make(map[string]geom.Point, len(square))
	for id, p := range square {
		out[id] = geom.Point{
			X: int(math.Round(p[0])),
			Y: int(math.Round(p[1] / aspect)),
		}
	}
	return out
}
