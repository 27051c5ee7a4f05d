package claymark

// ElementID is the stable, content-addressed identity of an element,
// produced by hashIdentity (hash.go).
type ElementID uint32

// Pixels is a device-pixel coordinate or length. This implementation targets
// a terminal-cell host, so one Pixels unit is one terminal cell.
type Pixels = float32

// Vector2 is a 2D point or offset in device pixels.
type Vector2 struct {
	X, Y Pixels
}

// Dimensions is a width/height pair in device pixels.
type Dimensions struct {
	W, H Pixels
}

// BoundingBox is an axis-aligned box in device pixels, as computed by the
// layout solver and consumed by the render command emitter and the
// interaction probe.
type BoundingBox struct {
	X, Y, W, H Pixels
}

// Contains reports whether p falls within the box, edges inclusive of the
// top/left and exclusive of the bottom/right (matching half-open cell
// ranges used throughout the solver).
func (b BoundingBox) Contains(p Vector2) bool {
	return p.X >= b.X && p.X < b.X+b.W && p.Y >= b.Y && p.Y < b.Y+b.H
}

// CornerRadii carries a corner radius per corner; zero means square.
type CornerRadii struct {
	TopLeft, TopRight, BottomLeft, BottomRight float32
}

// BorderWidths carries a border thickness per edge plus the width of the
// border drawn between children in a container (spec §3).
type BorderWidths struct {
	Left, Right, Top, Bottom, BetweenChildren uint16
}

// Padding carries inner spacing per edge.
type Padding struct {
	Top, Right, Bottom, Left uint16
}

// SizingAxisKind tags which of the four sizing strategies a SizingAxis
// describes. Go has no sum types, so SizingAxis is a tagged struct instead
// of the union the spec describes; constructors enforce that only the
// fields relevant to Kind are meaningful.
type SizingAxisKind uint8

const (
	SizingFit SizingAxisKind = iota
	SizingGrow
	SizingFixed
	SizingPercent
)

// SizingAxis describes how one axis (width or height) of an element sizes
// itself during the layout solver's fit/grow/shrink passes.
type SizingAxis struct {
	Kind    SizingAxisKind
	Min     float32
	Max     float32
	Percent float32 // meaningful only when Kind == SizingPercent, range [0,1]
}

// SizingFitAxis sizes to content, clamped to [min,max]. max == 0 means
// unbounded.
func SizingFitAxis(min, max float32) SizingAxis {
	return SizingAxis{Kind: SizingFit, Min: min, Max: max}
}

// SizingGrowAxis sizes to fill remaining space after fit-sized siblings are
// resolved, clamped to [min,max]. max == 0 means unbounded.
func SizingGrowAxis(min, max float32) SizingAxis {
	return SizingAxis{Kind: SizingGrow, Min: min, Max: max}
}

// SizingFixedAxis pins the axis to an exact size; Min and Max both equal
// size so downstream clamping is a no-op.
func SizingFixedAxis(size float32) SizingAxis {
	return SizingAxis{Kind: SizingFixed, Min: size, Max: size}
}

// SizingPercentAxis sizes to a fraction of the parent's resolved axis.
// pct is stored as given, even out of [0,1]: this constructor has no error
// channel to report through, so out-of-range validation (and clamping)
// happens in ConfigureElement, the one place a LayoutEngine is in scope to
// report ErrorPercentageOutOfRange (spec §4.3/§7).
func SizingPercentAxis(pct float32) SizingAxis {
	return SizingAxis{Kind: SizingPercent, Percent: pct}
}

func (s SizingAxis) clamp(v float32) float32 {
	if s.Max > 0 && v > s.Max {
		v = s.Max
	}
	if v < s.Min {
		v = s.Min
	}
	return v
}
