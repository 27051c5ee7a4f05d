package claymark

// PointerState is the host-reported pointer sample for one frame: position
// in device pixels and whether the primary button is held (spec §4.9).
type PointerState struct {
	Position Vector2
	Down     bool
}

// ScrollDelta is a host-reported wheel/trackpad event for one frame.
type ScrollDelta struct {
	DX, DY Pixels
}

// scrollDecayPerFrame and dragClickThreshold are the interaction probe's
// non-configurable constants (Resolved Open Question #2, DESIGN.md):
// the spec leaves scroll-inertia tuning and click/drag disambiguation
// unspecified, and the teacher doesn't expose either as a knob either
// (layer.go's ScrollDown/HalfPageDown move fixed line counts, not tunable
// speeds), so these stay implementation constants rather than markup
// attributes.
const (
	scrollDecayPerFrame = 0.85
	dragClickThreshold  = 3.0
)

type scrollState struct {
	offset     Vector2
	velocity   Vector2
	dragOrigin Vector2
	dragging   bool
}

// interactionProbe resolves hover, click, and scroll against the previous
// frame's resolved geometry (spec §4.9: "driven off last-frame geometry" —
// an immediate-mode engine can't hit-test a tree it hasn't built yet this
// frame). Grounded on the teacher's FocusManager (focus cycling over a
// list of registered targets) and Layer's scroll-offset/max-scroll
// clamping (layer.go).
type interactionProbe struct {
	pointer   PointerState
	prevDown  bool
	hitList   []hitEntry
	scrolling map[ElementID]*scrollState
}

type hitEntry struct {
	id  ElementID
	box BoundingBox
	clip bool
}

func newInteractionProbe() *interactionProbe {
	return &interactionProbe{scrolling: make(map[ElementID]*scrollState)}
}

// captureHitList snapshots this frame's resolved boxes for next frame's
// hover/click queries, in discovery order so later siblings and deeper
// floating content (emitted later) naturally win hit-test ties when
// scanned back to front.
func (p *interactionProbe) captureHitList(e *LayoutEngine) {
	p.hitList = p.hitList[:0]
	for i := range e.arena.elements {
		n := &e.arena.elements[i]
		p.hitList = append(p.hitList, hitEntry{id: n.id, box: n.box, clip: n.decl.ClipHorizontal || n.decl.ClipVertical})
	}
}

// SetPointerState records the host's pointer sample for this frame's
// HoveredElement/Clicked queries.
func (e *LayoutEngine) SetPointerState(s PointerState) {
	e.probe.prevDown = e.probe.pointer.Down
	e.probe.pointer = s
}

// HoveredElement returns the topmost element (by discovery/paint order)
// whose last-frame box contains the current pointer position.
func (e *LayoutEngine) HoveredElement() (ElementID, bool) {
	for i := len(e.probe.hitList) - 1; i >= 0; i-- {
		h := e.probe.hitList[i]
		if h.box.Contains(e.probe.pointer.Position) {
			return h.id, true
		}
	}
	return 0, false
}

// Clicked reports whether the pointer transitioned from up to down this
// frame while over the returned element.
func (e *LayoutEngine) Clicked() (ElementID, bool) {
	if !e.probe.pointer.Down || e.probe.prevDown {
		return 0, false
	}
	return e.HoveredElement()
}

// ElementHovered reports whether id's last-frame box contains the pointer,
// independent of whatever else might be stacked on top of it — unlike
// HoveredElement, which resolves ties by paint order, this answers "is the
// pointer over this particular element" for markup `<hovered>` guards
// (spec §4.11).
func (e *LayoutEngine) ElementHovered(id ElementID) bool {
	for _, h := range e.probe.hitList {
		if h.id == id {
			return h.box.Contains(e.probe.pointer.Position)
		}
	}
	return false
}

// ElementClicked reports whether the pointer transitioned from up to down
// this frame while over id specifically, for markup `<clicked>` guards.
func (e *LayoutEngine) ElementClicked(id ElementID) bool {
	if !e.probe.pointer.Down || e.probe.prevDown {
		return false
	}
	return e.ElementHovered(id)
}

// ApplyScroll accumulates a scroll delta for the given clipping element,
// with an exponential inertia decay applied once per frame by
// TickScrollInertia.
func (e *LayoutEngine) ApplyScroll(id ElementID, delta ScrollDelta) {
	s := e.probe.scrollState(id)
	s.velocity.X += delta.DX
	s.velocity.Y += delta.DY
	s.offset.X += delta.DX
	s.offset.Y += delta.DY
}

// ScrollOffset returns the current scroll offset for id, or the zero
// offset if it has never scrolled.
func (e *LayoutEngine) ScrollOffset(id ElementID) Vector2 {
	if s, ok := e.probe.scrolling[id]; ok {
		return s.offset
	}
	return Vector2{}
}

// TickScrollInertia decays every active scroll velocity by one frame and
// advances offsets accordingly; call once per frame after ApplyScroll.
func (e *LayoutEngine) TickScrollInertia() {
	for _, s := range e.probe.scrolling {
		if s.velocity.X == 0 && s.velocity.Y == 0 {
			continue
		}
		s.offset.X += s.velocity.X
		s.offset.Y += s.velocity.Y
		s.velocity.X *= scrollDecayPerFrame
		s.velocity.Y *= scrollDecayPerFrame
		if abs32(s.velocity.X) < 0.01 {
			s.velocity.X = 0
		}
		if abs32(s.velocity.Y) < 0.01 {
			s.velocity.Y = 0
		}
	}
}

func (p *interactionProbe) scrollState(id ElementID) *scrollState {
	s, ok := p.scrolling[id]
	if !ok {
		s = &scrollState{}
		p.scrolling[id] = s
	}
	return s
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
