package easel

import "math"

// SnapKind says where a snap target came from.
type SnapKind uint8

const (
	SnapWidget SnapKind = iota // an edge or center line of another widget
	SnapGrid                   // a line of the uniform grid
)

// String returns "widget" or "grid".
func (k SnapKind) String() string {
	if k == SnapGrid {
		return "grid"
	}
	return "widget"
}

// Orientation names the direction of a snap line. A vertical line sits at a
// fixed X and constrains horizontal movement; a horizontal line sits at a
// fixed Y and constrains vertical movement.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns "horizontal" or "vertical".
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// SnapTarget is a candidate alignment line. Strength in (0, 1] scales the
// snapping radius.
type SnapTarget struct {
	Kind        SnapKind
	Position    Point
	Orientation Orientation
	Strength    float64
	// SourceID is the widget that produced the target (empty for grid lines).
	SourceID string
}

// Coord returns the fixed coordinate of the line: X for vertical targets,
// Y for horizontal ones.
func (t SnapTarget) Coord() float64 {
	if t.Orientation == Vertical {
		return t.Position.X
	}
	return t.Position.Y
}

// widgetSnapTargets generates six targets per widget not in exclude: the
// four edge midpoints and the two center lines.
func widgetSnapTargets(widgets []Widget, exclude map[string]struct{}, cfg Config) []SnapTarget {
	targets := make([]SnapTarget, 0, 6*len(widgets))
	for _, w := range widgets {
		if _, skip := exclude[w.ID]; skip {
			continue
		}
		r := w.Rect()
		c := r.Center()
		edge := func(p Point, o Orientation) SnapTarget {
			return SnapTarget{Kind: SnapWidget, Position: p, Orientation: o, Strength: cfg.EdgeStrength, SourceID: w.ID}
		}
		center := func(o Orientation) SnapTarget {
			return SnapTarget{Kind: SnapWidget, Position: c, Orientation: o, Strength: cfg.CenterStrength, SourceID: w.ID}
		}
		targets = append(targets,
			edge(Point{r.X, c.Y}, Vertical),
			edge(Point{r.Right(), c.Y}, Vertical),
			edge(Point{c.X, r.Y}, Horizontal),
			edge(Point{c.X, r.Bottom()}, Horizontal),
			center(Vertical),
			center(Horizontal),
		)
	}
	return targets
}

// snapCandidate is the best match found on one axis.
type snapCandidate struct {
	target SnapTarget
	scaled float64 // distance divided by the target's snapping radius
	ok     bool
}

// better reports whether c beats other: smaller scaled distance, then higher
// strength. Earlier candidates win remaining ties.
func (c snapCandidate) better(other snapCandidate) bool {
	if !other.ok {
		return c.ok
	}
	if !c.ok {
		return false
	}
	if c.scaled != other.scaled {
		return c.scaled < other.scaled
	}
	return c.target.Strength > other.target.Strength
}

// consider returns a candidate for t if coord falls within its radius.
func consider(coord float64, t SnapTarget, threshold float64) snapCandidate {
	radius := threshold * t.Strength
	if radius <= 0 {
		return snapCandidate{}
	}
	d := math.Abs(coord - t.Coord())
	if d >= radius {
		return snapCandidate{}
	}
	return snapCandidate{target: t, scaled: d / radius, ok: true}
}

// matchSnap finds the best target of orientation o for coord among targets
// and the nearest grid line.
func matchSnap(coord float64, o Orientation, targets []SnapTarget, cfg Config) snapCandidate {
	var best snapCandidate
	for _, t := range targets {
		if t.Orientation != o {
			continue
		}
		if c := consider(coord, t, cfg.SnapThreshold); c.better(best) {
			best = c
		}
	}
	if cfg.GridSize > 0 && cfg.GridStrength > 0 {
		line := math.Round(coord/cfg.GridSize) * cfg.GridSize
		g := SnapTarget{Kind: SnapGrid, Orientation: o, Strength: cfg.GridStrength}
		if o == Vertical {
			g.Position.X = line
		} else {
			g.Position.Y = line
		}
		if c := consider(coord, g, cfg.SnapThreshold); c.better(best) {
			best = c
		}
	}
	return best
}

// pickActiveSnap chooses the single indicator when both axes snapped: higher
// strength wins, then smaller scaled distance, then the x-axis candidate.
func pickActiveSnap(x, y snapCandidate) snapCandidate {
	switch {
	case !y.ok:
		return x
	case !x.ok:
		return y
	case y.target.Strength != x.target.Strength:
		if y.target.Strength > x.target.Strength {
			return y
		}
		return x
	case y.scaled < x.scaled:
		return y
	default:
		return x
	}
}
