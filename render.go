package claymark

import "sort"

// RenderCommandKind identifies what a RenderCommand asks the host to draw
// (spec §3/§4.8).
type RenderCommandKind uint8

const (
	CommandRectangle RenderCommandKind = iota
	CommandBorder
	CommandText
	CommandImage
	CommandCustom
	CommandScissorStart
	CommandScissorEnd
)

// RenderCommand is one instruction in the emitted draw list, ordered by
// (z-index, discovery order) as spec §4.8 requires so a host can paint the
// list back-to-front (lowest z first) with a single pass.
type RenderCommand struct {
	Kind RenderCommandKind
	ID   ElementID
	Box  BoundingBox

	BackgroundColor Color
	CornerRadius    CornerRadii

	Border      BorderWidths
	BorderColor Color

	Text      string
	Spans     []Span
	TextAttr  TextAttr
	TextColor Color

	Image ImageRef

	Custom any

	UserData any

	ZIndex FloatingAttachZIndex
}

// emitRenderCommands walks the solved tree in discovery order and produces
// the final command list, then stable-sorts it by z-index so floating
// elements with a higher z-index paint over normal-flow content without
// disturbing same-z ordering (spec §4.8). Grounded on the teacher's
// renderNode (arena.go), generalized from "draw straight into a cell
// buffer" to "emit a command the host draws".
func emitRenderCommands(e *LayoutEngine) []RenderCommand {
	e.arena.commands = e.arena.commands[:0]
	for _, idx := range rootIndices(e.arena) {
		emitSubtree(e, idx, 0)
	}
	sort.SliceStable(e.arena.commands, func(i, j int) bool {
		return e.arena.commands[i].ZIndex < e.arena.commands[j].ZIndex
	})
	return e.arena.commands
}

func emitSubtree(e *LayoutEngine, idx int32, inheritedZ FloatingAttachZIndex) {
	n := &e.arena.elements[idx]
	z := inheritedZ
	if n.decl.Floating != nil {
		z = n.decl.Floating.ZIndex
	}

	if n.kind == elementText {
		emitText(e, n, z)
		return
	}

	clip := n.decl.ClipHorizontal || n.decl.ClipVertical
	if clip {
		e.arena.emit(RenderCommand{Kind: CommandScissorStart, ID: n.id, Box: n.box, ZIndex: z}, e.reportError)
	}

	if n.decl.BackgroundColor.A > 0 {
		e.arena.emit(RenderCommand{
			Kind:            CommandRectangle,
			ID:              n.id,
			Box:             n.box,
			BackgroundColor: n.decl.BackgroundColor,
			CornerRadius:    n.decl.CornerRadius,
			UserData:        n.decl.UserData,
			ZIndex:          z,
		}, e.reportError)
	}
	if hasBorder(n.decl.Border) {
		e.arena.emit(RenderCommand{
			Kind:        CommandBorder,
			ID:          n.id,
			Box:         n.box,
			Border:      n.decl.Border,
			BorderColor: n.decl.BorderColor,
			UserData:    n.decl.UserData,
			ZIndex:      z,
		}, e.reportError)
	}
	if n.decl.Image != nil {
		e.arena.emit(RenderCommand{
			Kind:     CommandImage,
			ID:       n.id,
			Box:      n.box,
			Image:    *n.decl.Image,
			UserData: n.decl.UserData,
			ZIndex:   z,
		}, e.reportError)
	}
	if n.decl.Custom != nil {
		e.arena.emit(RenderCommand{
			Kind:            CommandCustom,
			ID:              n.id,
			Box:             n.box,
			BackgroundColor: n.decl.BackgroundColor,
			CornerRadius:    n.decl.CornerRadius,
			Custom:          n.decl.Custom,
			UserData:        n.decl.UserData,
			ZIndex:          z,
		}, e.reportError)
	}

	for c := range e.arena.children(idx) {
		emitSubtree(e, c, z)
	}

	if clip {
		e.arena.emit(RenderCommand{Kind: CommandScissorEnd, ID: n.id, Box: n.box, ZIndex: z}, e.reportError)
	}
}

func emitText(e *LayoutEngine, n *elementNode, z FloatingAttachZIndex) {
	cmd := RenderCommand{
		Kind:      CommandText,
		ID:        n.id,
		Box:       n.box,
		TextAttr:  n.text.attrs,
		TextColor: n.text.color,
		UserData:  n.decl.UserData,
		ZIndex:    z,
	}
	if n.text.spans != nil {
		cmd.Spans = n.text.spans
	}
	cmd.Text = e.arena.textOf(n)
	e.arena.emit(cmd, e.reportError)
}

func hasBorder(b BorderWidths) bool {
	return b.Left > 0 || b.Right > 0 || b.Top > 0 || b.Bottom > 0
}

// --- Box-drawing border merge (spec §9a) ---

const (
	boxHorizontal         = '─'
	boxVertical           = '│'
	boxTopLeft            = '┌'
	boxTopRight           = '┐'
	boxBottomLeft         = '└'
	boxBottomRight        = '┘'
	boxTeeDown            = '┬'
	boxTeeUp              = '┴'
	boxTeeRight           = '├'
	boxTeeLeft            = '┤'
	boxCross              = '┼'
	boxRoundedTopLeft     = '╭'
	boxRoundedTopRight    = '╮'
	boxRoundedBottomLeft  = '╰'
	boxRoundedBottomRight = '╯'

	boxDrawingMin = 0x2500
	boxDrawingMax = 0x257F
)

// borderEdges maps a box-drawing rune to its edge bitset (1=top, 2=right,
// 4=bottom, 8=left), ported from the teacher's borderEdgesArray
// (buffer.go).
var borderEdges = [128]uint8{
	0x00: 0b1010, // ─
	0x02: 0b0101, // │
	0x0C: 0b0110, // ┌
	0x10: 0b1100, // ┐
	0x14: 0b0011, // └
	0x18: 0b1001, // ┘
	0x1C: 0b0111, // ├
	0x24: 0b1101, // ┤
	0x2C: 0b1110, // ┬
	0x34: 0b1011, // ┴
	0x3C: 0b1111, // ┼
	0x6D: 0b0110, // ╭
	0x6E: 0b1100, // ╮
	0x6F: 0b1001, // ╯
	0x70: 0b0011, // ╰
}

// edgesToBorder maps an edge bitset back to a junction rune, ported from
// the teacher's edgesToBorderArray (buffer.go).
var edgesToBorder = [16]rune{
	0b0011: boxBottomLeft,
	0b0101: boxVertical,
	0b0110: boxTopLeft,
	0b0111: boxTeeRight,
	0b1001: boxBottomRight,
	0b1010: boxHorizontal,
	0b1011: boxTeeUp,
	0b1100: boxTopRight,
	0b1101: boxTeeLeft,
	0b1110: boxTeeDown,
	0b1111: boxCross,
}

// MergeBorderGlyphs returns the box-drawing junction glyph a terminal-cell
// renderer should draw where two bordered elements share a boundary cell,
// and whether a and b were both mergeable border glyphs at all. Grounded on
// the teacher's mergeBorders (buffer.go); used only by cmd/demo's renderer
// — the core engine never draws a glyph itself, it only records in the
// Border render command's payload which edges of a box need drawing.
func MergeBorderGlyphs(a, b rune) (rune, bool) {
	if a < boxDrawingMin || a > boxDrawingMax || b < boxDrawingMin || b > boxDrawingMax {
		return b, false
	}
	ea := borderEdges[a-boxDrawingMin]
	eb := borderEdges[b-boxDrawingMin]
	if ea == 0 || eb == 0 {
		return b, false
	}
	if merged := edgesToBorder[ea|eb]; merged != 0 {
		return merged, true
	}
	return b, false
}
