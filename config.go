package claymark

// LayoutDirection controls the axis a container's children are placed
// along (spec §3/§4.4).
type LayoutDirection uint8

const (
	LeftToRight LayoutDirection = iota
	TopToBottom
)

// Alignment positions children within the cross axis or, for the main
// axis, distributes leftover space (spec §4.4/§4.6).
type Alignment uint8

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

// ChildAlignment pairs the two independent alignment axes of a container.
type ChildAlignment struct {
	X, Y Alignment
}

// ElementDeclaration is the flattened configuration of one element,
// assembled by the builder (element.go) and by the markup interpreter
// before an element is opened. It is a plain value type rather than a
// pointer-chasing struct (Design Note "Configuration flattening"): every
// setter returns the updated value instead of mutating through a pointer,
// grounded on the teacher's NodeRef fluent chain (arena.go) but value-typed
// because the markup interpreter must be able to build one across several
// opcodes before any element exists to attach it to.
type ElementDeclaration struct {
	ID   string
	IDSet bool

	Direction LayoutDirection
	Sizing    [2]SizingAxis // [0]=width, [1]=height
	Padding   Padding
	ChildGap  uint16
	Align     ChildAlignment

	BackgroundColor Color
	CornerRadius    CornerRadii
	Border          BorderWidths
	BorderColor     Color

	Floating       *FloatingAttachment
	ClipHorizontal bool
	ClipVertical   bool

	Image *ImageRef

	// Custom carries an opaque host-defined payload that requests a Custom
	// render command instead of (or alongside) a background rectangle,
	// grounded on the original implementation's Custom<CustomElementData>
	// (render_commands.rs): background color and corner radii still apply,
	// but drawing the payload itself is entirely up to the host.
	Custom any

	UserData any
}

// NewElementDeclaration returns a declaration with the spec's documented
// defaults: Fit sizing on both axes, top-to-bottom direction, no padding,
// no gap, start alignment.
func NewElementDeclaration() ElementDeclaration {
	return ElementDeclaration{
		Direction: TopToBottom,
		Sizing:    [2]SizingAxis{SizingFitAxis(0, 0), SizingFitAxis(0, 0)},
	}
}

func (d ElementDeclaration) WithID(id string) ElementDeclaration {
	d.ID = id
	d.IDSet = true
	return d
}

func (d ElementDeclaration) WithDirection(dir LayoutDirection) ElementDeclaration {
	d.Direction = dir
	return d
}

func (d ElementDeclaration) WithWidth(s SizingAxis) ElementDeclaration {
	d.Sizing[0] = s
	return d
}

func (d ElementDeclaration) WithHeight(s SizingAxis) ElementDeclaration {
	d.Sizing[1] = s
	return d
}

func (d ElementDeclaration) WithPadding(p Padding) ElementDeclaration {
	d.Padding = p
	return d
}

func (d ElementDeclaration) WithChildGap(gap uint16) ElementDeclaration {
	d.ChildGap = gap
	return d
}

func (d ElementDeclaration) WithAlign(a ChildAlignment) ElementDeclaration {
	d.Align = a
	return d
}

func (d ElementDeclaration) WithBackgroundColor(c Color) ElementDeclaration {
	d.BackgroundColor = c
	return d
}

func (d ElementDeclaration) WithCornerRadius(r CornerRadii) ElementDeclaration {
	d.CornerRadius = r
	return d
}

func (d ElementDeclaration) WithBorder(w BorderWidths, c Color) ElementDeclaration {
	d.Border = w
	d.BorderColor = c
	return d
}

func (d ElementDeclaration) WithFloating(f FloatingAttachment) ElementDeclaration {
	d.Floating = &f
	return d
}

func (d ElementDeclaration) WithClip(horizontal, vertical bool) ElementDeclaration {
	d.ClipHorizontal = horizontal
	d.ClipVertical = vertical
	return d
}

func (d ElementDeclaration) WithImage(ref ImageRef) ElementDeclaration {
	d.Image = &ref
	return d
}

func (d ElementDeclaration) WithCustom(payload any) ElementDeclaration {
	d.Custom = payload
	return d
}

func (d ElementDeclaration) WithUserData(v any) ElementDeclaration {
	d.UserData = v
	return d
}
