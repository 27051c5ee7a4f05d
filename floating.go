package claymark

// Anchor names one of the 9 attachment points on an element's bounding box
// (spec §4.7). Both the floating parent's anchor and the floating child's
// own anchor are drawn from this set; grounded on the teacher's
// OverlayCentered bool + explicit OverlayX/OverlayY (template.go), here
// generalized to the spec's full 9x9 + offset model (§4.7a).
type Anchor uint8

const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorCenterLeft
	AnchorCenter
	AnchorCenterRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

// point returns the anchor's point within box, in absolute coordinates.
func (a Anchor) point(box BoundingBox) Vector2 {
	var x, y Pixels
	switch a {
	case AnchorTopLeft, AnchorCenterLeft, AnchorBottomLeft:
		x = box.X
	case AnchorTopCenter, AnchorCenter, AnchorBottomCenter:
		x = box.X + box.W/2
	case AnchorTopRight, AnchorCenterRight, AnchorBottomRight:
		x = box.X + box.W
	}
	switch a {
	case AnchorTopLeft, AnchorTopCenter, AnchorTopRight:
		y = box.Y
	case AnchorCenterLeft, AnchorCenter, AnchorCenterRight:
		y = box.Y + box.H/2
	case AnchorBottomLeft, AnchorBottomCenter, AnchorBottomRight:
		y = box.Y + box.H
	}
	return Vector2{X: x, Y: y}
}

// FloatingAttachZIndex controls stacking order among floating elements that
// don't otherwise nest (spec §4.7).
type FloatingAttachZIndex int16

// PointerCaptureMode controls whether a floating element's contents can
// receive pointer events or only pass them through to whatever is
// underneath (spec §4.7).
type PointerCaptureMode uint8

const (
	PointerCaptureCapture PointerCaptureMode = iota
	PointerCapturePassthrough
)

// FloatingAttachment describes how an element floats relative to another
// element instead of taking its place in normal flow (spec §3/§4.7).
type FloatingAttachment struct {
	// AttachToID is the ElementID of the element this one floats relative
	// to. Resolved Open Question: markup spells this as a label string
	// (<floating-attach-to-element id="...">), hashed through the same
	// Identity Hasher as every other element id (DESIGN.md "Resolved Open
	// Questions" #1), so there's a single ID namespace, not two.
	AttachToID ElementID

	ParentAnchor Anchor
	ElementAnchor Anchor
	Offset        Vector2
	ZIndex        FloatingAttachZIndex
	PointerCapture PointerCaptureMode
}

// resolveFloatingElements repositions every floating subtree after the
// normal-flow position pass has run. Floating targets are resolved in
// discovery order (spec §4.7). A floating element is first sized and placed
// in normal flow like any other child, so it counts toward its parent's fit
// size and takes a slot among its siblings; this pass then moves its whole
// subtree to the attachment point. Targets are read after every solver pass
// has run, so their boxes are final.
func resolveFloatingElements(e *LayoutEngine) {
	e.arena.buildIDIndex()
	for i := range e.arena.elements {
		n := &e.arena.elements[i]
		if n.decl.Floating == nil {
			continue
		}
		var targetBox BoundingBox
		if n.decl.Floating.AttachToID == viewportRootID {
			targetBox = BoundingBox{X: 0, Y: 0, W: e.viewport.W, H: e.viewport.H}
		} else {
			targetIdx, ok := e.arena.indexForID(n.decl.Floating.AttachToID)
			if !ok {
				e.reportError(LayoutError{Kind: ErrorFloatingAttachmentMissing, Message: "floating attachment target not found"})
				continue
			}
			targetBox = e.arena.elements[targetIdx].box
		}
		newPos := resolveFloating(*n.decl.Floating, targetBox, Dimensions{W: n.box.W, H: n.box.H})
		shiftSubtree(e.arena, int32(i), newPos.X-n.box.X, newPos.Y-n.box.Y)
	}
}

// shiftSubtree translates idx and every descendant's box by (dx,dy),
// since floating repositioning moves a whole already-laid-out subtree
// rather than re-running the solver on it.
func shiftSubtree(a *arena, idx int32, dx, dy Pixels) {
	n := &a.elements[idx]
	n.box.X += dx
	n.box.Y += dy
	for c := range a.children(idx) {
		shiftSubtree(a, c, dx, dy)
	}
}

// resolveFloating computes a floating element's top-left position from its
// attachment target's resolved box. Called by resolveFloatingElements once
// the solver has finished, so the target's box is already final.
func resolveFloating(attach FloatingAttachment, targetBox BoundingBox, size Dimensions) Vector2 {
	anchorPoint := attach.ParentAnchor.point(targetBox)
	selfBox := BoundingBox{W: size.W, H: size.H}
	selfAnchor := attach.ElementAnchor.point(selfBox)
	return Vector2{
		X: anchorPoint.X - selfAnchor.X + attach.Offset.X,
		Y: anchorPoint.Y - selfAnchor.Y + attach.Offset.Y,
	}
}
