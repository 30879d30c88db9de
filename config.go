package easel

// Config tunes the interaction engine. Start from DefaultConfig and override
// individual fields.
type Config struct {
	// SnapThreshold is the base snapping radius in canvas units. Each target
	// scales it by its strength.
	SnapThreshold float64
	// GridSize is the spacing of the snap grid in canvas units. Zero disables
	// grid snapping.
	GridSize float64
	// GridStrength, EdgeStrength and CenterStrength weight grid lines, widget
	// edges and widget center lines.
	GridStrength   float64
	EdgeStrength   float64
	CenterStrength float64

	// MinWidgetSize is the smallest width or height a resize may produce.
	MinWidgetSize float64

	// MinScale and MaxScale bound the canvas zoom.
	MinScale float64
	MaxScale float64

	// FitPadding is the screen-space margin kept around content by zoom-to-fit
	// and zoom-to-selection.
	FitPadding float64
	// ZoomDuration animates zoom-to-fit and zoom-to-selection when positive
	// (seconds).
	ZoomDuration float32
	// ZoomStep is the multiplicative factor for zoom-in / zoom-out commands.
	ZoomStep float64
	// WheelZoomSpeed converts wheel delta into an exponential zoom factor.
	WheelZoomSpeed float64
	// WheelPanSpeed converts wheel delta into screen pixels of pan.
	WheelPanSpeed float64

	// Nudge and NudgeLarge are the arrow-key move distances without and with
	// Shift.
	Nudge      float64
	NudgeLarge float64
	// DuplicateOffset offsets duplicated widgets from their originals.
	DuplicateOffset float64
	// RotateSnap is the angle increment (degrees) used while Shift is held
	// during a rotation.
	RotateSnap float64

	// DoubleClickFrames and DoubleClickDistance bound what EbitenInput counts
	// as a double click.
	DoubleClickFrames   int
	DoubleClickDistance float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		SnapThreshold:       8,
		GridSize:            10,
		GridStrength:        0.3,
		EdgeStrength:        1.0,
		CenterStrength:      0.8,
		MinWidgetSize:       20,
		MinScale:            MinScale,
		MaxScale:            MaxScale,
		FitPadding:          50,
		ZoomDuration:        0,
		ZoomStep:            1.25,
		WheelZoomSpeed:      0.01,
		WheelPanSpeed:       1,
		Nudge:               1,
		NudgeLarge:          10,
		DuplicateOffset:     20,
		RotateSnap:          15,
		DoubleClickFrames:   24,
		DoubleClickDistance: 4,
	}
}

// clampScale clamps s to the configured zoom range, falling back to the
// package limits when the config leaves them unset.
func (c Config) clampScale(s float64) float64 {
	lo, hi := c.MinScale, c.MaxScale
	if lo <= 0 {
		lo = MinScale
	}
	if hi <= 0 {
		hi = MaxScale
	}
	if s < lo {
		return lo
	}
	if s > hi {
		return hi
	}
	return s
}
