package claymark

// solve runs the six-pass layout solver over the arena built by the current
// frame (spec §4.6): fit widths, grow/shrink widths, wrap text and compute
// content heights, fit heights, grow/shrink heights, then position.
// Grounded on the teacher's measure/distribute/position three-phase solver
// (arena.go), split into six explicit passes because text wrapping here
// depends on a resolved width the teacher never had to wait for (its
// Node.W for text was always just rune count).
func solve(e *LayoutEngine) {
	root := rootIndices(e.arena)
	for _, idx := range root {
		fitWidthPass(e, idx)
	}
	for _, idx := range root {
		growShrinkWidthPass(e, idx, axisSize(e, idx, 0))
	}
	for _, idx := range root {
		wrapAndHeightPass(e, idx)
	}
	for _, idx := range root {
		fitHeightPass(e, idx)
	}
	for _, idx := range root {
		growShrinkHeightPass(e, idx, axisSize(e, idx, 1))
	}
	x, y := Pixels(0), Pixels(0)
	for _, idx := range root {
		positionPass(e, idx, x, y)
	}
}

func rootIndices(a *arena) []int32 {
	var out []int32
	for i := range a.elements {
		if a.elements[i].parent < 0 {
			out = append(out, int32(i))
		}
	}
	return out
}

func axisSize(e *LayoutEngine, idx int32, axis int) Pixels {
	n := &e.arena.elements[idx]
	if axis == 0 {
		return n.measured.W
	}
	return n.measured.H
}

// fitWidthPass is pass 1: bottom-up, each element's measured width becomes
// its content-driven minimum — sum of children along the main axis, max
// across the cross axis, plus padding/gaps — clamped by its own SizingAxis.
func fitWidthPass(e *LayoutEngine, idx int32) {
	n := &e.arena.elements[idx]
	if n.kind == elementText {
		d := e.shaper.measureCached(e.arena.textOf(n), n.text.config())
		n.measured.W = d.W
		return
	}
	for c := range e.arena.children(idx) {
		fitWidthPass(e, c)
	}
	var content Pixels
	gap := Pixels(n.decl.ChildGap)
	count := 0
	for c := range e.arena.children(idx) {
		cw := e.arena.elements[c].measured.W
		if n.decl.Direction == LeftToRight {
			content += cw
		} else if cw > content {
			content = cw
		}
		count++
	}
	if n.decl.Direction == LeftToRight && count > 1 {
		content += gap * Pixels(count-1)
	}
	content += Pixels(n.decl.Padding.Left + n.decl.Padding.Right)
	content += Pixels(n.decl.Border.Left + n.decl.Border.Right)

	sizing := n.decl.Sizing[0]
	switch sizing.Kind {
	case SizingFixed:
		n.measured.W = sizing.Min
	default:
		n.measured.W = sizing.clamp(content)
	}
}

// growShrinkWidthPass is pass 2: top-down, a container's own width is
// already fixed by its parent (or pass 1 for roots); Grow children split
// the remaining space, Percent children take a fraction of it, and if
// content still overflows, Fit/Grow children shrink proportionally.
// Grounded on the teacher's distributeFlex, generalized from a single
// FlexGrow weight to the spec's four-kind SizingAxis.
func growShrinkWidthPass(e *LayoutEngine, idx int32, resolvedW Pixels) {
	n := &e.arena.elements[idx]
	n.measured.W = resolvedW
	if n.kind == elementText {
		return
	}
	inner := innerWidth(n, resolvedW)
	distributeAxis(e, idx, inner, 0)
	for c := range e.arena.children(idx) {
		growShrinkWidthPass(e, c, e.arena.elements[c].measured.W)
	}
}

// distributeAxis assigns each child's size along axis (0=width, 1=height)
// given the available space inside the container, honoring each child's
// SizingAxis kind.
func distributeAxis(e *LayoutEngine, idx int32, available Pixels, axis int) {
	n := &e.arena.elements[idx]
	mainAxis := (axis == 0 && n.decl.Direction == LeftToRight) || (axis == 1 && n.decl.Direction == TopToBottom)

	var fixedTotal Pixels
	var growWeight int
	var children []int32
	for c := range e.arena.children(idx) {
		children = append(children, c)
	}
	gap := Pixels(n.decl.ChildGap)
	if mainAxis && len(children) > 1 {
		fixedTotal += gap * Pixels(len(children)-1)
	}

	for _, c := range children {
		cn := &e.arena.elements[c]
		sizing := cn.decl.Sizing[axis]
		if cn.kind == elementText {
			sizing = SizingAxis{Kind: SizingFit}
		}
		switch sizing.Kind {
		case SizingPercent:
			size := available * sizing.Percent
			setAxis(cn, axis, size)
			if mainAxis {
				fixedTotal += size
			}
		case SizingGrow:
			if mainAxis {
				growWeight++
				fixedTotal += currentAxis(cn, axis)
			} else {
				size := sizing.clamp(available)
				setAxis(cn, axis, size)
			}
		default:
			if mainAxis {
				fixedTotal += currentAxis(cn, axis)
			} else if !mainAxis {
				size := available
				size = sizing.clamp(size)
				setAxis(cn, axis, size)
			}
		}
	}

	if !mainAxis {
		return
	}

	remaining := available - fixedTotal
	if growWeight > 0 && remaining > 0 {
		share := remaining / Pixels(growWeight)
		for _, c := range children {
			cn := &e.arena.elements[c]
			sizing := cn.decl.Sizing[axis]
			if cn.kind != elementText && sizing.Kind == SizingGrow {
				setAxis(cn, axis, sizing.clamp(currentAxis(cn, axis)+share))
			}
		}
		return
	}
	if remaining < 0 {
		shrinkOverflow(e, children, -remaining, axis)
	}
}

// shrinkOverflow reduces Fit/Grow children proportionally to their current
// size when the main axis's content overflows its container, never below
// each child's own Min.
func shrinkOverflow(e *LayoutEngine, children []int32, overflow Pixels, axis int) {
	var shrinkable Pixels
	for _, c := range children {
		cn := &e.arena.elements[c]
		if cn.kind == elementText {
			continue
		}
		if cn.decl.Sizing[axis].Kind != SizingFixed {
			shrinkable += currentAxis(cn, axis)
		}
	}
	if shrinkable <= 0 {
		return
	}
	for _, c := range children {
		cn := &e.arena.elements[c]
		if cn.kind == elementText || cn.decl.Sizing[axis].Kind == SizingFixed {
			continue
		}
		cur := currentAxis(cn, axis)
		reduced := cur - (overflow*cur)/shrinkable
		if reduced < cn.decl.Sizing[axis].Min {
			reduced = cn.decl.Sizing[axis].Min
		}
		setAxis(cn, axis, reduced)
	}
}

func currentAxis(n *elementNode, axis int) Pixels {
	if axis == 0 {
		return n.measured.W
	}
	return n.measured.H
}

func setAxis(n *elementNode, axis int, v Pixels) {
	if axis == 0 {
		n.measured.W = v
	} else {
		n.measured.H = v
	}
}

func innerWidth(n *elementNode, w Pixels) Pixels {
	w -= Pixels(n.decl.Padding.Left + n.decl.Padding.Right + n.decl.Border.Left + n.decl.Border.Right)
	if w < 0 {
		w = 0
	}
	return w
}

func innerHeight(n *elementNode, h Pixels) Pixels {
	h -= Pixels(n.decl.Padding.Top + n.decl.Padding.Bottom + n.decl.Border.Top + n.decl.Border.Bottom)
	if h < 0 {
		h = 0
	}
	return h
}

// wrapAndHeightPass is pass 3: bottom-up, text leaves wrap to their
// resolved width (now final from pass 2) and report the resulting height;
// containers propagate.
func wrapAndHeightPass(e *LayoutEngine, idx int32) {
	n := &e.arena.elements[idx]
	if n.kind == elementText {
		lines := e.shaper.wrapLines(e.arena.textOf(n), int(n.measured.W), n.text.config())
		lineHeight := n.text.lineHeight
		if lineHeight <= 0 {
			lineHeight = 1
		}
		n.measured.H = Pixels(max(len(lines), 1)) * lineHeight
		return
	}
	for c := range e.arena.children(idx) {
		wrapAndHeightPass(e, c)
	}
}

// fitHeightPass is pass 4: bottom-up, same shape as fitWidthPass but for
// the height axis, now that wrapped text heights are known.
func fitHeightPass(e *LayoutEngine, idx int32) {
	n := &e.arena.elements[idx]
	if n.kind == elementText {
		return
	}
	for c := range e.arena.children(idx) {
		fitHeightPass(e, c)
	}
	var content Pixels
	gap := Pixels(n.decl.ChildGap)
	count := 0
	for c := range e.arena.children(idx) {
		ch := e.arena.elements[c].measured.H
		if n.decl.Direction == TopToBottom {
			content += ch
		} else if ch > content {
			content = ch
		}
		count++
	}
	if n.decl.Direction == TopToBottom && count > 1 {
		content += gap * Pixels(count-1)
	}
	content += Pixels(n.decl.Padding.Top + n.decl.Padding.Bottom)
	content += Pixels(n.decl.Border.Top + n.decl.Border.Bottom)

	sizing := n.decl.Sizing[1]
	switch sizing.Kind {
	case SizingFixed:
		n.measured.H = sizing.Min
	default:
		n.measured.H = sizing.clamp(content)
	}
}

func growShrinkHeightPass(e *LayoutEngine, idx int32, resolvedH Pixels) {
	n := &e.arena.elements[idx]
	n.measured.H = resolvedH
	if n.kind == elementText {
		return
	}
	inner := innerHeight(n, resolvedH)
	distributeAxis(e, idx, inner, 1)
	for c := range e.arena.children(idx) {
		growShrinkHeightPass(e, c, e.arena.elements[c].measured.H)
	}
}

// positionPass is pass 6: top-down, assigns absolute boxes from each
// element's already-resolved W/H, positioning children along the
// container's direction and honoring cross-axis alignment.
func positionPass(e *LayoutEngine, idx int32, x, y Pixels) {
	n := &e.arena.elements[idx]
	n.box = BoundingBox{X: x, Y: y, W: n.measured.W, H: n.measured.H}
	if n.kind == elementText {
		return
	}

	innerX := x + Pixels(n.decl.Border.Left) + Pixels(n.decl.Padding.Left)
	innerY := y + Pixels(n.decl.Border.Top) + Pixels(n.decl.Padding.Top)
	innerW := innerWidth(n, n.measured.W)
	innerH := innerHeight(n, n.measured.H)
	gap := Pixels(n.decl.ChildGap)

	// A clipping container's children are positioned in content space, then
	// shifted by its current scroll offset (spec §4.9): the clip itself
	// (not modeled here) is what keeps the visible region bounded to the
	// container's own box at render/hit-test time.
	if n.decl.ClipHorizontal || n.decl.ClipVertical {
		off := e.ScrollOffset(n.id)
		if n.decl.ClipHorizontal {
			innerX -= off.X
		}
		if n.decl.ClipVertical {
			innerY -= off.Y
		}
	}

	var children []int32
	for c := range e.arena.children(idx) {
		children = append(children, c)
	}

	if n.decl.Direction == LeftToRight {
		var total Pixels
		for _, c := range children {
			total += e.arena.elements[c].measured.W
		}
		if len(children) > 1 {
			total += gap * Pixels(len(children)-1)
		}
		cx := innerX + mainAxisOffset(n.decl.Align.X, innerW, total)
		for _, c := range children {
			cn := &e.arena.elements[c]
			cy := innerY + crossAxisOffset(n.decl.Align.Y, innerH, cn.measured.H)
			positionPass(e, c, cx, cy)
			cx += cn.measured.W + gap
		}
		return
	}

	var total Pixels
	for _, c := range children {
		total += e.arena.elements[c].measured.H
	}
	if len(children) > 1 {
		total += gap * Pixels(len(children)-1)
	}
	cy := innerY + mainAxisOffset(n.decl.Align.Y, innerH, total)
	for _, c := range children {
		cn := &e.arena.elements[c]
		cx := innerX + crossAxisOffset(n.decl.Align.X, innerW, cn.measured.W)
		positionPass(e, c, cx, cy)
		cy += cn.measured.H + gap
	}
}

func mainAxisOffset(align Alignment, available, used Pixels) Pixels {
	switch align {
	case AlignCenter:
		return (available - used) / 2
	case AlignEnd:
		return available - used
	default:
		return 0
	}
}

func crossAxisOffset(align Alignment, available, used Pixels) Pixels {
	switch align {
	case AlignCenter:
		return (available - used) / 2
	case AlignEnd:
		return available - used
	default:
		return 0
	}
}
