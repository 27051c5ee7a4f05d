package claymark

import "testing"

func buildSingleBox(t *testing.T, e *LayoutEngine, w, h Pixels) ElementID {
	t.Helper()
	var id ElementID
	e.BeginLayout()
	e.OpenElement()
	id = e.ConfigureElement(NewElementDeclaration().
		WithBackgroundColor(RGB(10, 10, 10)).
		WithWidth(SizingFixedAxis(w)).WithHeight(SizingFixedAxis(h)))
	e.CloseElement()
	if _, err := e.EndLayout(); err != nil {
		t.Fatalf("EndLayout: %v", err)
	}
	return id
}

func TestHoveredElement(t *testing.T) {
	e := NewLayoutEngine(50, 50)
	id := buildSingleBox(t, e, 10, 10)

	e.SetPointerState(PointerState{Position: Vector2{X: 5, Y: 5}})
	got, ok := e.HoveredElement()
	if !ok || got != id {
		t.Errorf("HoveredElement() = (%v,%v), want (%v,true)", got, ok, id)
	}

	e.SetPointerState(PointerState{Position: Vector2{X: 40, Y: 40}})
	if _, ok := e.HoveredElement(); ok {
		t.Error("expected no hovered element outside the box")
	}
}

func TestClickedRequiresUpToDownTransition(t *testing.T) {
	e := NewLayoutEngine(50, 50)
	id := buildSingleBox(t, e, 10, 10)

	e.SetPointerState(PointerState{Position: Vector2{X: 5, Y: 5}, Down: false})
	if _, ok := e.Clicked(); ok {
		t.Error("did not expect a click while the button is up")
	}

	e.SetPointerState(PointerState{Position: Vector2{X: 5, Y: 5}, Down: true})
	got, ok := e.Clicked()
	if !ok || got != id {
		t.Errorf("Clicked() = (%v,%v), want (%v,true) on the down transition", got, ok, id)
	}

	// still held down next frame: not a new click
	e.SetPointerState(PointerState{Position: Vector2{X: 5, Y: 5}, Down: true})
	if _, ok := e.Clicked(); ok {
		t.Error("did not expect a second click while the button stays held down")
	}
}

func TestElementHoveredAndClickedAddressSpecificID(t *testing.T) {
	e := NewLayoutEngine(50, 50)

	var leftID, rightID ElementID
	e.BeginLayout()
	e.OpenElement()
	e.ConfigureElement(NewElementDeclaration().WithDirection(LeftToRight))

	e.OpenElement()
	leftID = e.ConfigureElement(NewElementDeclaration().WithWidth(SizingFixedAxis(10)).WithHeight(SizingFixedAxis(10)))
	e.CloseElement()

	e.OpenElement()
	rightID = e.ConfigureElement(NewElementDeclaration().WithWidth(SizingFixedAxis(10)).WithHeight(SizingFixedAxis(10)))
	e.CloseElement()

	e.CloseElement()
	if _, err := e.EndLayout(); err != nil {
		t.Fatalf("EndLayout: %v", err)
	}

	e.SetPointerState(PointerState{Position: Vector2{X: 5, Y: 5}}) // inside leftID only
	if !e.ElementHovered(leftID) {
		t.Error("expected leftID to be hovered")
	}
	if e.ElementHovered(rightID) {
		t.Error("did not expect rightID to be hovered")
	}
}

func TestScrollOffsetAccumulatesAndDecays(t *testing.T) {
	e := NewLayoutEngine(50, 50)
	id := ElementIDFor("scroller")

	if off := e.ScrollOffset(id); off != (Vector2{}) {
		t.Errorf("ScrollOffset before any scroll = %+v, want zero", off)
	}

	e.ApplyScroll(id, ScrollDelta{DY: 10})
	off := e.ScrollOffset(id)
	if off.Y != 10 {
		t.Errorf("ScrollOffset.Y after ApplyScroll(10) = %v, want 10", off.Y)
	}

	e.TickScrollInertia()
	after := e.ScrollOffset(id)
	if after.Y <= off.Y {
		t.Errorf("expected inertia to keep advancing the offset after one tick, got %v (was %v)", after.Y, off.Y)
	}
}

func TestScrollOffsetShiftsClippedChildren(t *testing.T) {
	e := NewLayoutEngine(50, 50)

	var childID ElementID
	build := func() {
		e.BeginLayout()
		e.OpenElement()
		id := e.ConfigureElement(NewElementDeclaration().
			WithWidth(SizingFixedAxis(10)).WithHeight(SizingFixedAxis(10)).
			WithClip(false, true))
		_ = id
		e.OpenElement()
		childID = e.ConfigureElement(NewElementDeclaration().WithWidth(SizingFixedAxis(5)).WithHeight(SizingFixedAxis(5)))
		e.CloseElement()
		e.CloseElement()
		if _, err := e.EndLayout(); err != nil {
			t.Fatalf("EndLayout: %v", err)
		}
	}

	build()
	before := boxFor(e, childID)

	e.ApplyScroll(e.arena.elements[0].id, ScrollDelta{DY: 3})
	build()
	after := boxFor(e, childID)

	if after.Y != before.Y-3 {
		t.Errorf("child Y after scrolling by 3 = %v, want %v", after.Y, before.Y-3)
	}
}
